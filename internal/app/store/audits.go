package store

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"go.opentelemetry.io/otel/attribute"

	"github.com/jsamuelsen11/auditforce/internal/app/fanout"
	"github.com/jsamuelsen11/auditforce/internal/domain"
	"github.com/jsamuelsen11/auditforce/internal/domain/audit"
	"github.com/jsamuelsen11/auditforce/internal/ports"
)

const (
	kindAudit      = "audit"
	kindFinding    = "finding"
	kindAttachment = "attachment"
)

// AddAudit schedules an audit against an existing grid. The audit starts in
// Planejando with one Não Aplicável finding per grid requirement. Nothing is
// stored when the grid does not resolve.
func (s *Store) AddAudit(ctx context.Context, d audit.Draft) (_ *audit.Audit, err error) {
	ctx, done := s.begin(ctx, "AddAudit", attribute.String("grid_id", d.GridID))
	defer func() { done(err) }()

	if err := d.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.grid(d.GridID)
	if g == nil {
		return nil, domain.NotFound(kindGrid, d.GridID)
	}

	year := s.now().Year()
	s.state.auditSeq[year]++

	a := audit.Audit{
		ID:        s.ids.NewID(),
		Code:      audit.FormatCode(year, s.state.auditSeq[year]),
		Title:     d.Title,
		Scope:     d.Scope,
		AuditorID: d.AuditorID,
		StartDate: d.StartDate,
		EndDate:   d.EndDate,
		Status:    audit.StatusPlanning,
		GridID:    g.ID,
		Findings:  audit.SnapshotFindings(g.Requirements, s.ids.NewID),
	}
	for i := range a.Findings {
		s.state.findingAudit[a.Findings[i].ID] = a.ID
	}
	s.state.audits = append(s.state.audits, a)

	s.log(ctx).InfoContext(ctx, "audit added",
		slog.String("audit_id", a.ID),
		slog.String("code", a.Code),
		slog.Int("findings", len(a.Findings)),
	)
	out := cloneAudit(a)
	return &out, nil
}

// UpdateAuditStatus sets an audit's status. Entering Concluído from any other
// status notifies every Administrator.
func (s *Store) UpdateAuditStatus(ctx context.Context, id string, status audit.Status) (_ *audit.Audit, err error) {
	ctx, done := s.begin(ctx, "UpdateAuditStatus", attribute.String("audit_id", id))
	defer func() { done(err) }()

	if !status.IsValid() {
		return nil, &domain.ValidationError{Fields: map[string]string{"status": fmt.Sprintf("invalid: %q", status)}}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.audit(id)
	if a == nil {
		return nil, domain.NotFound(kindAudit, id)
	}
	previous := a.Status
	a.Status = status

	s.log(ctx).InfoContext(ctx, "audit status updated",
		slog.String("audit_id", id),
		slog.String("from", previous.String()),
		slog.String("to", status.String()),
	)
	s.notify(ctx, fanout.AuditConcluded(a, previous, s.administratorIDs()))

	out := cloneAudit(*a)
	return &out, nil
}

// UpdateFindingStatus sets a finding's verdict. The owning audit's status is
// not derived from it.
func (s *Store) UpdateFindingStatus(ctx context.Context, findingID string, status audit.FindingStatus) (_ *audit.Finding, err error) {
	ctx, done := s.begin(ctx, "UpdateFindingStatus", attribute.String("finding_id", findingID))
	defer func() { done(err) }()

	if !status.IsValid() {
		return nil, &domain.ValidationError{Fields: map[string]string{"status": fmt.Sprintf("invalid: %q", status)}}
	}

	return s.mutateFinding(ctx, findingID, func(f *audit.Finding) error {
		f.Status = status
		return nil
	})
}

// UpdateFindingDescription replaces a finding's free-text description.
func (s *Store) UpdateFindingDescription(ctx context.Context, findingID, description string) (_ *audit.Finding, err error) {
	ctx, done := s.begin(ctx, "UpdateFindingDescription", attribute.String("finding_id", findingID))
	defer func() { done(err) }()

	return s.mutateFinding(ctx, findingID, func(f *audit.Finding) error {
		f.Description = description
		return nil
	})
}

// AddAttachment appends evidence to a finding.
func (s *Store) AddAttachment(ctx context.Context, findingID string, file domain.File) (_ *audit.Attachment, err error) {
	ctx, done := s.begin(ctx, "AddAttachment", attribute.String("finding_id", findingID))
	defer func() { done(err) }()

	if err := file.Validate(); err != nil {
		return nil, err
	}

	var added audit.Attachment
	_, err = s.mutateFinding(ctx, findingID, func(f *audit.Finding) error {
		added = audit.Attachment{
			ID:   s.ids.NewID(),
			Name: file.Name,
			URL:  file.URL,
			Size: file.Size,
		}
		f.Attachments = append(f.Attachments, added)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &added, nil
}

// DeleteAttachment removes one attachment from a finding.
func (s *Store) DeleteAttachment(ctx context.Context, findingID, attachmentID string) (err error) {
	ctx, done := s.begin(ctx, "DeleteAttachment",
		attribute.String("finding_id", findingID),
		attribute.String("attachment_id", attachmentID),
	)
	defer func() { done(err) }()

	_, err = s.mutateFinding(ctx, findingID, func(f *audit.Finding) error {
		i := slices.IndexFunc(f.Attachments, func(a audit.Attachment) bool { return a.ID == attachmentID })
		if i < 0 {
			return domain.NotFound(kindAttachment, attachmentID)
		}
		f.Attachments = slices.Delete(f.Attachments, i, i+1)
		return nil
	})
	return err
}

// mutateFinding locates a finding through the finding index and applies fn
// unless the owning audit is concluded.
func (s *Store) mutateFinding(ctx context.Context, findingID string, fn func(*audit.Finding) error) (*audit.Finding, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, f := s.finding(findingID)
	if f == nil {
		return nil, domain.NotFound(kindFinding, findingID)
	}
	if a.IsConcluded() {
		return nil, domain.Reject(audit.FrozenReason)
	}
	if err := fn(f); err != nil {
		return nil, err
	}

	s.log(ctx).InfoContext(ctx, "finding updated",
		slog.String("audit_id", a.ID),
		slog.String("finding_id", findingID),
	)
	out := cloneFinding(*f)
	return &out, nil
}

// ListAudits returns every audit in creation order.
func (s *Store) ListAudits(_ context.Context) []audit.Audit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.state.audits, cloneAudit)
}

// GetAudit returns the audit with the given id.
func (s *Store) GetAudit(_ context.Context, id string) (*audit.Audit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a := s.audit(id)
	if a == nil {
		return nil, domain.NotFound(kindAudit, id)
	}
	out := cloneAudit(*a)
	return &out, nil
}

// AuditReport assembles an audit with its grid, auditor and the action plans
// raised against its findings.
func (s *Store) AuditReport(_ context.Context, id string) (*ports.AuditReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a := s.audit(id)
	if a == nil {
		return nil, domain.NotFound(kindAudit, id)
	}

	r := &ports.AuditReport{
		Audit:   cloneAudit(*a),
		Summary: make(map[audit.FindingStatus]int, 3),
	}
	if g := s.grid(a.GridID); g != nil {
		cp := cloneGrid(*g)
		r.Grid = &cp
	}
	if u := s.user(a.AuditorID); u != nil {
		cp := cloneUser(*u)
		r.Auditor = &cp
	}
	for i := range a.Findings {
		r.Summary[a.Findings[i].Status]++
	}
	for i := range s.state.plans {
		p := &s.state.plans[i]
		if p.FindingID != "" && s.state.findingAudit[p.FindingID] == a.ID {
			r.ActionPlans = append(r.ActionPlans, clonePlan(*p))
		}
	}
	return r, nil
}

func (s *Store) audit(id string) *audit.Audit {
	i := slices.IndexFunc(s.state.audits, func(a audit.Audit) bool { return a.ID == id })
	if i < 0 {
		return nil
	}
	return &s.state.audits[i]
}

// finding resolves a finding id to its owning audit and the finding itself.
func (s *Store) finding(id string) (*audit.Audit, *audit.Finding) {
	auditID, ok := s.state.findingAudit[id]
	if !ok {
		return nil, nil
	}
	a := s.audit(auditID)
	if a == nil {
		return nil, nil
	}
	return a, a.Finding(id)
}
