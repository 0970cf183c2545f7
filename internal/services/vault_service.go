package services

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "vacationly/internal/errors"
	"vacationly/internal/logger"
	"vacationly/internal/models"
)

// VaultBundle is the full application state mirrored to the vault.
type VaultBundle struct {
	Employees      []models.Employee      `json:"employees"`
	Teams          []models.Team          `json:"teams"`
	Requests       []models.LeaveRequest  `json:"requests"`
	Holidays       []models.PublicHoliday `json:"holidays"`
	LeaveTypes     []models.LeaveType     `json:"leave_types"`
	BalanceHistory []models.BalanceChange `json:"balance_history"`
	Notifications  []models.Notification  `json:"notifications"`
}

// Debouncer coalesces bursts of triggers into a single callback after a
// quiet window. A newer trigger supersedes a pending one by resetting
// the window; it is never reported as an error.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
	fn    func()
}

// NewDebouncer creates a debouncer invoking fn after delay of quiet.
func NewDebouncer(delay time.Duration, fn func()) *Debouncer {
	return &Debouncer{delay: delay, fn: fn}
}

// Trigger schedules (or reschedules) the callback.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fn)
}

// Stop cancels any pending callback.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// vaultService mirrors application state to a keyed snapshot slot. The
// mirror is eventually consistent and last-writer-wins; local state
// stays authoritative when a push fails.
type vaultService struct {
	db       *gorm.DB
	debounce *Debouncer
}

// NewVaultService creates a new VaultServicer whose debounced pushes
// coalesce within the given window.
func NewVaultService(db *gorm.DB, debounceWindow time.Duration) VaultServicer {
	s := &vaultService{db: db}
	s.debounce = NewDebouncer(debounceWindow, func() {
		if err := s.Push(); err != nil && !errors.Is(err, apperrors.ErrVaultNotLinked) {
			logger.Get().Warnw("debounced vault push failed", "error", err)
		}
	})
	return s
}

// MarkDirty notes that local state changed. The eventual push is
// fire-and-forget: callers never block on sync completion.
func (s *vaultService) MarkDirty() {
	s.debounce.Trigger()
}

// linkedVaultID returns the vault id from settings, or ErrVaultNotLinked.
func (s *vaultService) linkedVaultID() (string, error) {
	var setting models.Setting
	if err := s.db.First(&setting, "key = ?", models.SettingVaultID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.ErrVaultNotLinked
		}
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return setting.Value, nil
}

func (s *vaultService) rememberVaultID(vaultID string) error {
	setting := models.Setting{Key: models.SettingVaultID, Value: vaultID}
	if err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&setting).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// Init generates a new vault identifier, links it, and pushes the
// current state immediately.
func (s *vaultService) Init() (string, error) {
	token := make([]byte, 6)
	if _, err := rand.Read(token); err != nil {
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	vaultID := fmt.Sprintf("AMADEUS-%X", token)

	if err := s.rememberVaultID(vaultID); err != nil {
		return "", err
	}
	if err := s.Push(); err != nil {
		return "", err
	}
	return vaultID, nil
}

// Connect restores state from an existing vault and links it.
func (s *vaultService) Connect(vaultID string) error {
	if err := s.Fetch(vaultID); err != nil {
		return err
	}
	return s.rememberVaultID(vaultID)
}

// Push snapshots the full bundle into the linked vault slot.
func (s *vaultService) Push() error {
	vaultID, err := s.linkedVaultID()
	if err != nil {
		return err
	}

	bundle, err := s.collectBundle()
	if err != nil {
		return err
	}

	payload, err := json.Marshal(bundle)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	snapshot := models.VaultSnapshot{VaultID: vaultID, Payload: string(payload)}
	if err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "vault_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&snapshot).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	logger.Get().Infow("vault push complete", "vault_id", vaultID)
	return nil
}

// Fetch replaces local collections with the vault snapshot. Last writer
// wins; no merge is attempted. Requests carrying only a legacy display
// name are re-linked to the directory by normalized-name match.
func (s *vaultService) Fetch(vaultID string) error {
	var snapshot models.VaultSnapshot
	if err := s.db.First(&snapshot, "vault_id = ?", vaultID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrVaultNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var bundle VaultBundle
	if err := json.Unmarshal([]byte(snapshot.Payload), &bundle); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	relinkRequests(&bundle)

	return s.db.Transaction(func(tx *gorm.DB) error {
		collections := []interface{}{
			&models.Notification{},
			&models.BalanceChange{},
			&models.LeaveRequest{},
			&models.PublicHoliday{},
			&models.LeaveType{},
			&models.Employee{},
			&models.Team{},
		}
		for _, collection := range collections {
			if err := tx.Unscoped().Where("1 = 1").Delete(collection).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}

		for _, batch := range []interface{}{
			bundle.Teams, bundle.Employees, bundle.LeaveTypes, bundle.Holidays,
			bundle.Requests, bundle.BalanceHistory, bundle.Notifications,
		} {
			if err := createAll(tx, batch); err != nil {
				return err
			}
		}
		return nil
	})
}

// relinkRequests resolves requests that predate the employee-id join key
// by matching the denormalized name case-insensitively and trimmed.
func relinkRequests(bundle *VaultBundle) {
	byName := make(map[string]string, len(bundle.Employees))
	for _, emp := range bundle.Employees {
		byName[strings.ToLower(strings.TrimSpace(emp.Name))] = emp.ID
	}
	for i := range bundle.Requests {
		if bundle.Requests[i].EmployeeID != "" {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(bundle.Requests[i].EmployeeName))
		if id, ok := byName[key]; ok {
			bundle.Requests[i].EmployeeID = id
		}
	}
}

// createAll inserts a typed slice when it is non-empty.
func createAll(tx *gorm.DB, batch interface{}) error {
	switch items := batch.(type) {
	case []models.Team:
		if len(items) == 0 {
			return nil
		}
		return wrapCreate(tx.Create(&items).Error)
	case []models.Employee:
		if len(items) == 0 {
			return nil
		}
		return wrapCreate(tx.Create(&items).Error)
	case []models.LeaveType:
		if len(items) == 0 {
			return nil
		}
		return wrapCreate(tx.Create(&items).Error)
	case []models.PublicHoliday:
		if len(items) == 0 {
			return nil
		}
		return wrapCreate(tx.Create(&items).Error)
	case []models.LeaveRequest:
		if len(items) == 0 {
			return nil
		}
		return wrapCreate(tx.Create(&items).Error)
	case []models.BalanceChange:
		if len(items) == 0 {
			return nil
		}
		return wrapCreate(tx.Create(&items).Error)
	case []models.Notification:
		if len(items) == 0 {
			return nil
		}
		return wrapCreate(tx.Create(&items).Error)
	}
	return nil
}

func wrapCreate(err error) error {
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// Status reports the linked vault and when it last synced.
func (s *vaultService) Status() (*VaultStatus, error) {
	vaultID, err := s.linkedVaultID()
	if err != nil {
		if errors.Is(err, apperrors.ErrVaultNotLinked) {
			return &VaultStatus{Linked: false}, nil
		}
		return nil, err
	}

	status := &VaultStatus{VaultID: vaultID, Linked: true}
	var snapshot models.VaultSnapshot
	if err := s.db.First(&snapshot, "vault_id = ?", vaultID).Error; err == nil {
		status.LastSynced = snapshot.UpdatedAt.Format(time.RFC3339)
	}
	return status, nil
}

// collectBundle reads every mirrored collection.
func (s *vaultService) collectBundle() (*VaultBundle, error) {
	bundle := &VaultBundle{}
	loads := []struct {
		dest interface{}
	}{
		{&bundle.Employees},
		{&bundle.Teams},
		{&bundle.Requests},
		{&bundle.Holidays},
		{&bundle.LeaveTypes},
		{&bundle.BalanceHistory},
		{&bundle.Notifications},
	}
	for _, l := range loads {
		if err := s.db.Find(l.dest).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return bundle, nil
}
