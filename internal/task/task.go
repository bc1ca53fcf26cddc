package task

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidSeverity = errors.New("invalid severity")

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Severities lists every severity in display order.
var Severities = []Severity{SeverityLow, SeverityMedium, SeverityHigh}

func ParseSeverity(s string) (Severity, error) {
	switch Severity(strings.ToLower(strings.TrimSpace(s))) {
	case SeverityLow:
		return SeverityLow, nil
	case SeverityMedium:
		return SeverityMedium, nil
	case SeverityHigh:
		return SeverityHigh, nil
	default:
		return "", ErrInvalidSeverity
	}
}

func (s Severity) Valid() bool {
	_, err := ParseSeverity(string(s))
	return err == nil
}

// Label is the capitalised form shown next to radio buttons.
func (s Severity) Label() string {
	switch s {
	case SeverityLow:
		return "Low"
	case SeverityMedium:
		return "Medium"
	case SeverityHigh:
		return "High"
	default:
		return string(s)
	}
}

// Next cycles low -> medium -> high -> low.
func (s Severity) Next() Severity {
	for i, v := range Severities {
		if v == s {
			return Severities[(i+1)%len(Severities)]
		}
	}
	return SeverityMedium
}

type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Done        bool      `json:"done"`
	Severity    Severity  `json:"severity"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewTask trims title and description. The caller is responsible for rejecting a blank title.
func NewTask(id, title, description string, severity Severity, now time.Time) Task {
	return Task{
		ID:          id,
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Done:        false,
		Severity:    severity,
		CreatedAt:   now,
	}
}

// ValidTitle reports whether title has any non-space content.
func ValidTitle(title string) bool {
	return strings.TrimSpace(title) != ""
}

func (t *Task) ToggleDone() {
	t.Done = !t.Done
}

// Matches reports whether the search text occurs in the title or the description,
// ignoring case. An empty search matches everything.
func (t Task) Matches(search string) bool {
	if search == "" {
		return true
	}
	q := strings.ToLower(search)
	return strings.Contains(strings.ToLower(t.Title), q) ||
		strings.Contains(strings.ToLower(t.Description), q)
}
