// Package audit defines audits, their findings and finding attachments.
package audit

import (
	"fmt"
	"strings"
	"time"

	"github.com/jsamuelsen11/auditforce/internal/domain"
	"github.com/jsamuelsen11/auditforce/internal/domain/grid"
)

// DateLayout is the calendar-date format used for audit periods.
const DateLayout = time.DateOnly

// FrozenReason is the message shown when a concluded audit's findings are edited.
const FrozenReason = "Esta auditoria foi concluída e não pode mais ser alterada."

// Attachment is evidence attached to a finding.
type Attachment struct {
	ID   string
	Name string
	URL  string
	Size int64
}

// Finding is the per-requirement result within an audit.
type Finding struct {
	ID            string
	RequirementID string
	Title         string
	Description   string
	Status        FindingStatus
	Attachments   []Attachment
}

// Audit is one execution of a grid. GridID never changes after creation and
// Findings are fixed 1:1 with the grid's requirements at that moment.
type Audit struct {
	ID        string
	Code      string
	Title     string
	Scope     string
	AuditorID string
	StartDate string
	EndDate   string
	Status    Status
	GridID    string
	Findings  []Finding
}

// IsConcluded reports whether the audit is read-only.
func (a *Audit) IsConcluded() bool {
	return a.Status == StatusConcluded
}

// Finding returns a pointer to the finding with the given id, or nil.
func (a *Audit) Finding(id string) *Finding {
	for i := range a.Findings {
		if a.Findings[i].ID == id {
			return &a.Findings[i]
		}
	}
	return nil
}

// Draft carries the fields supplied when scheduling an audit.
type Draft struct {
	Title     string
	Scope     string
	AuditorID string
	StartDate string
	EndDate   string
	GridID    string
}

// Validate checks business rules for an audit payload.
func (d *Draft) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(d.Title) == "" {
		fields["title"] = domain.MsgRequired
	}
	if d.AuditorID == "" {
		fields["auditorId"] = domain.MsgRequired
	}
	if d.GridID == "" {
		fields["gridId"] = domain.MsgRequired
	}

	start, startErr := time.Parse(DateLayout, d.StartDate)
	if startErr != nil {
		fields["startDate"] = fmt.Sprintf("must be YYYY-MM-DD, got %q", d.StartDate)
	}
	end, endErr := time.Parse(DateLayout, d.EndDate)
	if endErr != nil {
		fields["endDate"] = fmt.Sprintf("must be YYYY-MM-DD, got %q", d.EndDate)
	}
	if startErr == nil && endErr == nil && end.Before(start) {
		fields["endDate"] = "must not be before startDate"
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// SnapshotFindings builds one Not Applicable finding per grid requirement.
func SnapshotFindings(reqs []grid.Requirement, newID func() string) []Finding {
	findings := make([]Finding, len(reqs))
	for i := range reqs {
		findings[i] = Finding{
			ID:            newID(),
			RequirementID: reqs[i].ID,
			Title:         reqs[i].Title,
			Status:        FindingNotApplicable,
			Attachments:   []Attachment{},
		}
	}
	return findings
}

// FormatCode renders the human-facing audit code for a year and sequence.
func FormatCode(year, seq int) string {
	return fmt.Sprintf("AUD-%d-%03d", year, seq)
}
