package store

import (
	"context"
	"log/slog"
	"slices"

	"go.opentelemetry.io/otel/attribute"

	"github.com/jsamuelsen11/auditforce/internal/domain"
	"github.com/jsamuelsen11/auditforce/internal/domain/policy"
)

const kindPolicy = "policy"

// SavePolicy creates a policy or edits its live head. With
// opts.CreateNewVersion the pre-edit head is archived and the head moves to
// the next minor version; otherwise the head is edited in place.
func (s *Store) SavePolicy(ctx context.Context, cmd domain.Save[policy.Draft], opts policy.SaveOptions) (_ *policy.Policy, err error) {
	ctx, done := s.begin(ctx, "SavePolicy",
		attribute.String("policy_id", cmd.ID()),
		attribute.Bool("new_version", opts.CreateNewVersion),
	)
	defer func() { done(err) }()

	d := cmd.Payload
	if err := d.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		head *policy.Policy
		idx  = -1
	)
	if cmd.IsUpdate() {
		idx = slices.IndexFunc(s.state.policies, func(p policy.Policy) bool { return p.ID == cmd.ID() })
		if idx < 0 {
			return nil, domain.NotFound(kindPolicy, cmd.ID())
		}
		head = &s.state.policies[idx]
	}

	next, archived, err := policy.Apply(head, d, opts, s.now(), s.ids.NewID)
	if err != nil {
		return nil, err
	}

	if idx < 0 {
		s.state.policies = append(s.state.policies, *next)
	} else {
		s.state.policies[idx] = *next
	}
	if archived != nil {
		s.state.history = append(s.state.history, *archived)
		if s.metrics != nil {
			s.metrics.PolicyVersionForkedTotal.Add(ctx, 1)
		}
	}

	s.log(ctx).InfoContext(ctx, "policy saved",
		slog.String("policy_id", next.ID),
		slog.String("version", next.Version),
		slog.Bool("forked", archived != nil),
	)
	out := clonePolicy(*next)
	return &out, nil
}

// DeletePolicy removes the head and every archived version of a policy.
func (s *Store) DeletePolicy(ctx context.Context, id string) (err error) {
	ctx, done := s.begin(ctx, "DeletePolicy", attribute.String("policy_id", id))
	defer func() { done(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	byID := func(p policy.Policy) bool { return p.ID == id }
	heads, archived := len(s.state.policies), len(s.state.history)
	s.state.policies = slices.DeleteFunc(s.state.policies, byID)
	s.state.history = slices.DeleteFunc(s.state.history, byID)

	if len(s.state.policies) == heads && len(s.state.history) == archived {
		return domain.NotFound(kindPolicy, id)
	}

	s.log(ctx).InfoContext(ctx, "policy deleted",
		slog.String("policy_id", id),
		slog.Int("archived_removed", archived-len(s.state.history)),
	)
	return nil
}

// ListPolicies returns every live policy head in creation order.
func (s *Store) ListPolicies(_ context.Context) []policy.Policy {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.state.policies, clonePolicy)
}

// GetPolicy returns the live head of a policy.
func (s *Store) GetPolicy(_ context.Context, id string) (*policy.Policy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := slices.IndexFunc(s.state.policies, func(p policy.Policy) bool { return p.ID == id })
	if i < 0 {
		return nil, domain.NotFound(kindPolicy, id)
	}
	out := clonePolicy(s.state.policies[i])
	return &out, nil
}

// ListPolicyHistory returns the archived snapshots of a policy, oldest first.
func (s *Store) ListPolicyHistory(_ context.Context, id string) []policy.Policy {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []policy.Policy
	for i := range s.state.history {
		if s.state.history[i].ID == id {
			out = append(out, clonePolicy(s.state.history[i]))
		}
	}
	return out
}

func (s *Store) policyTitle(id string) string {
	for i := range s.state.policies {
		if s.state.policies[i].ID == id {
			return s.state.policies[i].Title
		}
	}
	return ""
}
