package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	apperrors "vacationly/internal/errors"
	"vacationly/internal/logger"
	"vacationly/internal/models"
)

const (
	geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	advisorFallbackReply = "I'm sorry, I couldn't process that request."
	advisorErrorReply    = "Error: Unable to connect to the AI assistant. Please check your API key."

	vacationPolicy = `
- Annual leaves: 30 days.
- Reset: Automatic reset on Jan 1st. No carry-over.
- Public holidays: Not counted towards balance.
- Weekends: Friday and Saturday excluded.
- Work From Home: Non-deductible.
`

	availabilityGuidelines = `
- Weekends in Egypt: Friday and Saturday.
`
)

// advisorService talks to the Gemini REST API for planning advice and
// holiday lookups. The advisory surface is best-effort: chat failures
// degrade to a canned reply, never an error.
type advisorService struct {
	client       *http.Client
	baseURL      string
	apiKey       string
	chatModel    string
	holidayModel string
}

// NewAdvisorService creates a new AdvisorServicer backed by Gemini.
func NewAdvisorService(apiKey, chatModel, holidayModel string) AdvisorServicer {
	return &advisorService{
		client:       &http.Client{Timeout: 30 * time.Second},
		baseURL:      geminiBaseURL,
		apiKey:       apiKey,
		chatModel:    chatModel,
		holidayModel: holidayModel,
	}
}

// Gemini generateContent wire types, trimmed to the fields we use.

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	ResponseMimeType string          `json:"responseMimeType,omitempty"`
	ResponseSchema   json.RawMessage `json:"responseSchema,omitempty"`
}

type geminiRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// holidaySchema constrains the lookup response to a JSON array of
// {name, date} objects.
var holidaySchema = json.RawMessage(`{
	"type": "ARRAY",
	"items": {
		"type": "OBJECT",
		"properties": {
			"name": {"type": "STRING"},
			"date": {"type": "STRING", "description": "Format: YYYY-MM-DD"}
		},
		"required": ["name", "date"]
	}
}`)

// generate calls the model's generateContent endpoint and returns the
// first candidate's text.
func (s *advisorService) generate(model, prompt string, cfg *geminiGenerationConfig) (string, error) {
	body, err := json.Marshal(geminiRequest{
		Contents:         []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: cfg,
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", s.baseURL, model, s.apiKey)
	resp, err := s.client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini: unexpected status %d", resp.StatusCode)
	}

	var parsed geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

// Advise answers a planning question with the employee's balance and
// history as context.
func (s *advisorService) Advise(query string, stats models.UserStats, requests []models.LeaveRequest, leaveTypes []models.LeaveType) string {
	var typesInfo strings.Builder
	for _, lt := range leaveTypes {
		effect := "Gifted / Extra leave"
		if lt.IsDeductible {
			effect = "Deducts from annual allowance"
		}
		fmt.Fprintf(&typesInfo, "- %s (%s): %s\n", lt.Name, lt.Icon, effect)
	}

	history, err := json.Marshal(requests)
	if err != nil {
		history = []byte("[]")
	}

	prompt := fmt.Sprintf(`
You are an HR Planning Assistant for Vacationly. Your goal is to help employees maximize their time off while adhering to company policy and team needs.

Company Vacation Policy:
%s

Available Leave Types in this Organization:
%s

Team Availability & Constraints:
%s

Current User Data:
- Total Vacation Allowance: %d days
- Used Days (Deductible): %d days
- Available Days: %d days
- Pending Requests: %d days

Previous Requests History:
%s

Strategic Planning Instructions:
1. If the user asks for suggestions, look for gaps in the team schedule.
2. Check if they have many days left and suggest they take leave so as not to lose it, as there are no carry-over rules.
3. Suggest "Long Weekends" using public holidays.
4. Note the specific Leave Types available. For example, if they ask about "Sick Leave", explain if it deducts from their balance or not based on the provided list.

User Query: %s

Please provide helpful, friendly, and actionable advice. Use bullet points for date suggestions.
`,
		vacationPolicy, typesInfo.String(), availabilityGuidelines,
		stats.Total, stats.Used, stats.Total-stats.Used, stats.Pending,
		history, query)

	text, err := s.generate(s.chatModel, prompt, nil)
	if err != nil {
		logger.Get().Warnw("advisor chat failed", "error", err)
		return advisorErrorReply
	}
	if text == "" {
		return advisorFallbackReply
	}
	return text
}

// LookupHolidays asks the model for Egypt's public holidays in a year.
func (s *advisorService) LookupHolidays(year int) ([]HolidayCandidate, error) {
	prompt := fmt.Sprintf(`
List all official public holidays in Egypt for the year %d.
Include both fixed date holidays (like Coptic Christmas, Revolution Day) and floating lunar holidays (like Eid al-Fitr, Eid al-Adha, Islamic New Year, Prophet's Birthday).
For lunar holidays, provide the most accurate estimated Gregorian dates for Egypt in %d.
Return the data as a JSON array of objects with 'name' and 'date' (YYYY-MM-DD) properties.
`, year, year)

	text, err := s.generate(s.holidayModel, prompt, &geminiGenerationConfig{
		ResponseMimeType: "application/json",
		ResponseSchema:   holidaySchema,
	})
	if err != nil {
		logger.Get().Errorw("holiday lookup failed", "year", year, "error", err)
		return nil, apperrors.Wrap(apperrors.ErrAdvisorUnavailable, err)
	}
	if text == "" {
		return []HolidayCandidate{}, nil
	}

	var candidates []HolidayCandidate
	if err := json.Unmarshal([]byte(text), &candidates); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrAdvisorUnavailable, err)
	}
	return candidates, nil
}
