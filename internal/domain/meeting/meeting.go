// Package meeting defines policy-review meetings.
package meeting

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/jsamuelsen11/auditforce/internal/domain"
)

const (
	// DateLayout is the calendar-date format for meeting days.
	DateLayout = time.DateOnly
	// TimeLayout is the clock format for start and end times.
	TimeLayout = "15:04"

	displayDateLayout = "02/01/2006"
)

// Meeting is a scheduled review of a policy. AttendeeIDs holds no duplicates.
type Meeting struct {
	ID          string
	PolicyID    string
	Title       string
	Description string
	Date        string
	StartTime   string
	EndTime     string
	AttendeeIDs []string
	OrganizerID string
}

// DisplayDate renders Date as dd/mm/yyyy.
func (m *Meeting) DisplayDate() string {
	return DisplayDate(m.Date)
}

// Apply overwrites the meeting's editable fields with the draft's.
func (m *Meeting) Apply(d *Draft) {
	m.PolicyID = d.PolicyID
	m.Title = d.Title
	m.Description = d.Description
	m.Date = d.Date
	m.StartTime = d.StartTime
	m.EndTime = d.EndTime
	m.AttendeeIDs = Attendees(d.AttendeeIDs)
	if d.OrganizerID != "" {
		m.OrganizerID = d.OrganizerID
	}
}

// Draft carries the editable fields of a meeting.
type Draft struct {
	PolicyID    string
	Title       string
	Description string
	Date        string
	StartTime   string
	EndTime     string
	AttendeeIDs []string
	OrganizerID string
}

// Validate checks business rules for a meeting payload.
func (d *Draft) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(d.Title) == "" {
		fields["title"] = domain.MsgRequired
	}
	if d.PolicyID == "" {
		fields["policyId"] = domain.MsgRequired
	}
	if _, err := time.Parse(DateLayout, d.Date); err != nil {
		fields["date"] = fmt.Sprintf("must be YYYY-MM-DD, got %q", d.Date)
	}

	start, startErr := time.Parse(TimeLayout, d.StartTime)
	if startErr != nil {
		fields["startTime"] = fmt.Sprintf("must be HH:MM, got %q", d.StartTime)
	}
	end, endErr := time.Parse(TimeLayout, d.EndTime)
	if endErr != nil {
		fields["endTime"] = fmt.Sprintf("must be HH:MM, got %q", d.EndTime)
	}
	if startErr == nil && endErr == nil && !end.After(start) {
		fields["endTime"] = "must be after startTime"
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// Attendees returns ids with blanks and duplicates removed, order preserved.
func Attendees(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// DisplayDate renders a YYYY-MM-DD date as dd/mm/yyyy. Unparseable input is
// returned unchanged.
func DisplayDate(date string) string {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format(displayDateLayout)
}

// Filter holds optional filter criteria for listing meetings.
type Filter struct {
	Date     string
	PolicyID string
	UserID   string
}

// Matches reports whether m satisfies every set criterion. UserID matches
// the organizer or any attendee.
func (f Filter) Matches(m *Meeting) bool {
	if f.Date != "" && m.Date != f.Date {
		return false
	}
	if f.PolicyID != "" && m.PolicyID != f.PolicyID {
		return false
	}
	if f.UserID != "" && m.OrganizerID != f.UserID && !slices.Contains(m.AttendeeIDs, f.UserID) {
		return false
	}
	return true
}
