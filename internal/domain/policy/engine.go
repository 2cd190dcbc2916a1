package policy

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/jsamuelsen11/auditforce/internal/domain"
)

const (
	initialDescription = "Versão inicial criada."
	defaultDescription = "Alterações gerais."
)

// Apply computes the next head for a save. head is nil when creating.
//
// On create the result is version 1.0 with a single history entry. On a plain
// edit the draft is merged into a copy of head and only UpdatedAt moves. On a
// fork (opts.CreateNewVersion) archived is a copy of head exactly as it was
// and next carries the incremented minor version with a new history entry
// prepended. Indicators without a permanent id receive one on every path.
//
// Apply never mutates head.
func Apply(head *Policy, d Draft, opts SaveOptions, now time.Time, newID func() string) (next, archived *Policy, err error) {
	indicators := assignIndicatorIDs(d.Indicators, newID)

	if head == nil {
		if opts.AuthorID == "" {
			return nil, nil, fmt.Errorf("create policy: author: %w", domain.ErrPrecondition)
		}
		status := d.Status
		if status == "" {
			status = StatusDraft
		}
		return &Policy{
			ID:         newID(),
			Title:      d.Title,
			Category:   d.Category,
			Version:    InitialVersion,
			Content:    d.Content,
			Status:     status,
			CreatedAt:  now,
			UpdatedAt:  now,
			Indicators: indicators,
			ChangeHistory: []ChangeEntry{{
				Version:     InitialVersion,
				UpdatedAt:   now,
				Description: initialDescription,
				AuthorID:    opts.AuthorID,
			}},
		}, nil, nil
	}

	next = head.Clone()
	next.Title = d.Title
	next.Category = d.Category
	next.Content = d.Content
	if d.Status != "" {
		next.Status = d.Status
	}
	next.Indicators = indicators
	next.UpdatedAt = now

	if !opts.CreateNewVersion {
		return next, nil, nil
	}

	if opts.AuthorID == "" {
		return nil, nil, fmt.Errorf("fork policy %q: author: %w", head.ID, domain.ErrPrecondition)
	}
	current, err := ParseVersion(head.Version)
	if err != nil {
		return nil, nil, fmt.Errorf("fork policy %q: %w: %w", head.ID, err, domain.ErrPrecondition)
	}
	version := current.NextMinor().String()

	description := strings.TrimSpace(opts.ChangeDescription)
	if description == "" {
		description = defaultDescription
	}

	next.Version = version
	next.ChangeHistory = append([]ChangeEntry{{
		Version:     version,
		UpdatedAt:   now,
		Description: description,
		AuthorID:    opts.AuthorID,
	}}, head.ChangeHistory...)

	return next, head.Clone(), nil
}

func assignIndicatorIDs(in []Indicator, newID func() string) []Indicator {
	out := slices.Clone(in)
	if out == nil {
		out = []Indicator{}
	}
	for i := range out {
		if out[i].ID == "" || strings.HasPrefix(out[i].ID, TempIDPrefix) {
			out[i].ID = newID()
		}
	}
	return out
}
