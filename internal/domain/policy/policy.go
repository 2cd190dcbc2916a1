// Package policy defines versioned policies, their performance indicators
// and the versioning engine that decides how an edit evolves a policy.
package policy

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/jsamuelsen11/auditforce/internal/domain"
)

// TempIDPrefix marks indicator ids minted by a client before saving.
const TempIDPrefix = "temp-"

// Indicator is a measurable goal attached to a policy.
type Indicator struct {
	ID            string
	Objective     string
	Department    string
	ResponsibleID string
	Goal          float64
	ActualValue   float64
}

// BelowGoal reports whether the indicator misses its target.
func (i *Indicator) BelowGoal() bool {
	return i.ActualValue < i.Goal
}

// ChangeEntry records one version of a policy.
type ChangeEntry struct {
	Version     string
	UpdatedAt   time.Time
	Description string
	AuthorID    string
}

// Policy is the live head of a policy. ChangeHistory is ordered newest first.
type Policy struct {
	ID            string
	Title         string
	Category      string
	Version       string
	Content       string
	Status        Status
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Indicators    []Indicator
	ChangeHistory []ChangeEntry
}

// Indicator returns the indicator with the given id, or nil.
func (p *Policy) Indicator(id string) *Indicator {
	for i := range p.Indicators {
		if p.Indicators[i].ID == id {
			return &p.Indicators[i]
		}
	}
	return nil
}

// Clone returns a deep copy of p.
func (p *Policy) Clone() *Policy {
	if p == nil {
		return nil
	}
	c := *p
	c.Indicators = slices.Clone(p.Indicators)
	c.ChangeHistory = slices.Clone(p.ChangeHistory)
	return &c
}

// Draft carries the editable fields of a policy. An empty Status means
// Rascunho on create and "unchanged" on update.
type Draft struct {
	Title      string
	Category   string
	Content    string
	Status     Status
	Indicators []Indicator
}

// Validate checks business rules for a policy payload.
func (d *Draft) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(d.Title) == "" {
		fields["title"] = domain.MsgRequired
	}
	if strings.TrimSpace(d.Category) == "" {
		fields["category"] = domain.MsgRequired
	}
	if d.Status != "" && !d.Status.IsValid() {
		fields["status"] = fmt.Sprintf("invalid: %q", d.Status)
	}
	for i := range d.Indicators {
		if strings.TrimSpace(d.Indicators[i].Objective) == "" {
			fields[fmt.Sprintf("indicators[%d].objective", i)] = domain.MsgRequired
		}
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// SaveOptions tells the engine which branch to take on an edit.
type SaveOptions struct {
	CreateNewVersion  bool
	ChangeDescription string
	AuthorID          string
}
