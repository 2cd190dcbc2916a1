// Package actionplan defines 5W2H remediation plans raised against a
// non-compliant finding or an underperforming policy indicator.
package actionplan

import (
	"strings"
	"time"

	"github.com/jsamuelsen11/auditforce/internal/domain"
)

// FollowUp is a progress note on a plan.
type FollowUp struct {
	ID        string
	AuthorID  string
	Content   string
	Timestamp time.Time
}

// ActionPlan links to exactly one of FindingID or PerformanceIndicatorID.
// FollowUps are ordered newest first. Plans are never deleted.
type ActionPlan struct {
	ID                     string
	FindingID              string
	PerformanceIndicatorID string
	What                   string
	Why                    string
	Where                  string
	When                   string
	Who                    string
	How                    string
	HowMuch                *float64
	Status                 Status
	FollowUps              []FollowUp
}

// Apply overwrites the plan's editable fields with the draft's.
func (p *ActionPlan) Apply(d *Draft) {
	p.FindingID = d.FindingID
	p.PerformanceIndicatorID = d.PerformanceIndicatorID
	p.What = d.What
	p.Why = d.Why
	p.Where = d.Where
	p.When = d.When
	p.Who = d.Who
	p.How = d.How
	p.HowMuch = d.HowMuch
	if d.Status != "" {
		p.Status = d.Status
	}
}

// PrependFollowUp adds f as the newest follow-up.
func (p *ActionPlan) PrependFollowUp(f FollowUp) {
	p.FollowUps = append([]FollowUp{f}, p.FollowUps...)
}

// Draft carries the editable fields of an action plan. An empty Status
// means Pendente on create and "unchanged" on update.
type Draft struct {
	FindingID              string
	PerformanceIndicatorID string
	What                   string
	Why                    string
	Where                  string
	When                   string
	Who                    string
	How                    string
	HowMuch                *float64
	Status                 Status
}

// Validate checks business rules for an action plan payload.
func (d *Draft) Validate() error {
	fields := make(map[string]string)

	switch {
	case d.FindingID == "" && d.PerformanceIndicatorID == "":
		fields["findingId"] = "one of findingId or performanceIndicatorId is required"
	case d.FindingID != "" && d.PerformanceIndicatorID != "":
		fields["findingId"] = "must not be set together with performanceIndicatorId"
	}
	if strings.TrimSpace(d.What) == "" {
		fields["what"] = domain.MsgRequired
	}
	if d.Who == "" {
		fields["who"] = domain.MsgRequired
	}
	if d.When != "" {
		if _, err := time.Parse(time.DateOnly, d.When); err != nil {
			fields["when"] = "must be YYYY-MM-DD"
		}
	}
	if d.HowMuch != nil && *d.HowMuch < 0 {
		fields["howMuch"] = "must not be negative"
	}
	if d.Status != "" && !d.Status.IsValid() {
		fields["status"] = "invalid: " + d.Status.String()
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// Filter holds optional filter criteria for listing action plans.
// Zero-value fields mean "no filter" for that dimension.
type Filter struct {
	FindingID              string
	PerformanceIndicatorID string
	Who                    string
	Status                 Status
}

// Matches reports whether p satisfies every set criterion.
func (f Filter) Matches(p *ActionPlan) bool {
	if f.FindingID != "" && p.FindingID != f.FindingID {
		return false
	}
	if f.PerformanceIndicatorID != "" && p.PerformanceIndicatorID != f.PerformanceIndicatorID {
		return false
	}
	if f.Who != "" && p.Who != f.Who {
		return false
	}
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	return true
}
