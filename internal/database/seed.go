package database

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"vacationly/internal/logger"
	"vacationly/internal/models"
)

// seedEmployee describes one directory entry in the seed roster.
// Managers are referenced by username so the roster stays readable.
type seedEmployee struct {
	Username string
	Name     string
	Role     string
	Email    string
	Team     string
	Manager  string
	IsAdmin  bool
}

var seedTeams = []string{
	"General Management",
	"Commercial",
	"IT & Tech Support",
	"Product & Solutions",
	"Finance & Admin",
}

var seedRoster = []seedEmployee{
	{Username: "mervat", Name: "Mervat Alfy", Role: "General Manager", Email: "mervat.alfy@eg.amadeus.com", Team: "General Management"},

	{Username: "tarek", Name: "Tarek Hefny", Role: "Commercial Director", Email: "tarek.hefny@eg.amadeus.com", Team: "Commercial", Manager: "mervat"},
	{Username: "mostafa", Name: "Mostafa Allam", Role: "Key Account Manager", Email: "mostafa.allam@eg.amadeus.com", Team: "Commercial", Manager: "tarek"},
	{Username: "m_ali", Name: "Mohamed Ali", Role: "Key Account Manager", Email: "mohamed.ali@eg.amadeus.com", Team: "Commercial", Manager: "tarek"},
	{Username: "nagy", Name: "Nagy Maccari", Role: "Key Account Manager", Email: "nagy.maccari@eg.amadeus.com", Team: "Commercial", Manager: "tarek"},
	{Username: "wassim", Name: "Wassim Kolta", Role: "Key Account Manager", Email: "wassim.kolta@eg.amadeus.com", Team: "Commercial", Manager: "tarek"},
	{Username: "loay", Name: "Loay Abdullah", Role: "Account Manager", Email: "loay.abdullah@eg.amadeus.com", Team: "Commercial", Manager: "tarek"},
	{Username: "passant", Name: "Passant E Shemerly", Role: "Snr Sales Analyst", Email: "passant.shemerly@eg.amadeus.com", Team: "Commercial", Manager: "tarek"},
	{Username: "abdelrahman", Name: "Abdelrahman Elsabagh", Role: "Marketing Executive", Email: "abdelrahman.elsabagh@eg.amadeus.com", Team: "Commercial", Manager: "tarek"},

	{Username: "maged", Name: "Maged Ghattas", Role: "IT & Techn. Support Manager", Email: "maged.ghattas@eg.amadeus.com", Team: "IT & Tech Support", Manager: "mervat", IsAdmin: true},
	{Username: "ola", Name: "Ola Abdel Salam", Role: "Snr HD & Training Specialist", Email: "ola.abdelsalam@eg.amadeus.com", Team: "IT & Tech Support", Manager: "maged"},
	{Username: "david", Name: "David Magdi", Role: "HD & Training Specialist", Email: "david.magdi@eg.amadeus.com", Team: "IT & Tech Support", Manager: "maged"},
	{Username: "sarah", Name: "Sarah Abdelazim", Role: "HD & Training Specialist", Email: "sarah.abdelazim@eg.amadeus.com", Team: "IT & Tech Support", Manager: "maged"},
	{Username: "avram", Name: "Avram Theodore", Role: "HD & Training Specialist", Email: "avram.theodore@eg.amadeus.com", Team: "IT & Tech Support", Manager: "maged"},
	{Username: "ramy", Name: "Ramy Nasr", Role: "Snr System & Network Administrator", Email: "ramy.nasr@eg.amadeus.com", Team: "IT & Tech Support", Manager: "maged"},
	{Username: "m_hefny", Name: "Mohamed El-Hefny", Role: "Snr System & Network Administrator", Email: "mohamed.elhefny@eg.amadeus.com", Team: "IT & Tech Support", Manager: "maged"},

	{Username: "mai", Name: "Mai Selwanes", Role: "Product & Solutions Manager", Email: "mai.selwanes@eg.amadeus.com", Team: "Product & Solutions", Manager: "mervat"},
	{Username: "habiba", Name: "Habiba ElDesouky", Role: "Products & Solutions Specialist", Email: "habiba.eldesouky@eg.amadeus.com", Team: "Product & Solutions", Manager: "mai"},
	{Username: "peter", Name: "Peter George", Role: "Products & Solutions Specialist", Email: "peter.george@eg.amadeus.com", Team: "Product & Solutions", Manager: "mai"},

	{Username: "osama", Name: "Osama Zaki", Role: "Financial Manager", Email: "osama.zaki@eg.amadeus.com", Team: "Finance & Admin", Manager: "mervat"},
	{Username: "karim", Name: "Karim Hamdy", Role: "Financial Accounting Snr Specialist", Email: "karim.hamdy@eg.amadeus.com", Team: "Finance & Admin", Manager: "osama"},
	{Username: "m_soliman", Name: "Mohamed Soliman", Role: "Financial Accounting Specialist", Email: "mohamed.soliman@eg.amadeus.com", Team: "Finance & Admin", Manager: "osama"},
	{Username: "viviane", Name: "Viviane Youssef", Role: "Office Manager", Email: "viviane.youssef@eg.amadeus.com", Team: "Finance & Admin", Manager: "osama"},
}

var seedHolidays = []models.PublicHoliday{
	{Date: "2024-01-07", Name: "Coptic Christmas"},
	{Date: "2024-01-25", Name: "Revolution Day"},
	{Date: "2024-04-25", Name: "Sinai Liberation Day"},
	{Date: "2024-05-01", Name: "Labour Day"},
	{Date: "2024-05-06", Name: "Sham El-Nessim"},
	{Date: "2024-06-30", Name: "30 June Revolution"},
	{Date: "2024-07-23", Name: "Revolution Day"},
	{Date: "2024-10-06", Name: "Armed Forces Day"},
}

// Seed populates an empty database with the initial organization:
// teams, leave types, the holiday calendar, the directory roster, and
// the opening annual accrual. A non-empty directory disables seeding.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Employee{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check employee count: %w", err)
	}
	if count > 0 {
		return nil
	}

	log := logger.Get()
	log.Info("Seeding initial organization data...")

	password := os.Getenv("SEED_PASSWORD")
	if password == "" {
		password = "amadeus2024"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		teamIDs := make(map[string]string, len(seedTeams))
		for _, name := range seedTeams {
			team := models.Team{Name: name}
			if err := tx.Create(&team).Error; err != nil {
				return fmt.Errorf("failed to seed team %q: %w", name, err)
			}
			teamIDs[name] = team.ID
		}

		annualAllowance := 30
		leaveTypes := []models.LeaveType{
			{Name: "Annual Leaves", Icon: "🏖️", IsDeductible: true, Allowance: &annualAllowance},
			{Name: "Sick Leave", Icon: "🤒", IsDeductible: false},
			{Name: "Work From Home", Icon: "🏠", IsDeductible: false},
		}
		if err := tx.Create(&leaveTypes).Error; err != nil {
			return fmt.Errorf("failed to seed leave types: %w", err)
		}

		holidays := seedHolidays
		if err := tx.Create(&holidays).Error; err != nil {
			return fmt.Errorf("failed to seed holidays: %w", err)
		}

		employeeIDs := make(map[string]string, len(seedRoster))
		for _, entry := range seedRoster {
			emp := models.Employee{
				Username:       entry.Username,
				Password:       string(hash),
				Name:           entry.Name,
				Role:           entry.Role,
				Email:          entry.Email,
				TotalAllowance: 30,
				IsAdmin:        entry.IsAdmin,
				IsActive:       true,
			}
			if teamID, ok := teamIDs[entry.Team]; ok {
				emp.TeamID = &teamID
			}
			if managerID, ok := employeeIDs[entry.Manager]; ok {
				emp.ManagerID = &managerID
			}
			if err := tx.Create(&emp).Error; err != nil {
				return fmt.Errorf("failed to seed employee %q: %w", entry.Username, err)
			}
			employeeIDs[entry.Username] = emp.ID
		}

		year := time.Now().Year()
		accrual := models.BalanceChange{
			Date:        fmt.Sprintf("%d-01-01", year),
			Description: fmt.Sprintf("%d Annual Accrual", year),
			Type:        models.BalanceAccrual,
			Amount:      30,
		}
		if err := tx.Create(&accrual).Error; err != nil {
			return fmt.Errorf("failed to seed annual accrual: %w", err)
		}

		log.Infof("Seeded %d teams, %d employees, %d holidays", len(seedTeams), len(seedRoster), len(holidays))
		return nil
	})
}
