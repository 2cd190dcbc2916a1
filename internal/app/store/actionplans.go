package store

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/jsamuelsen11/auditforce/internal/app/fanout"
	"github.com/jsamuelsen11/auditforce/internal/domain"
	"github.com/jsamuelsen11/auditforce/internal/domain/actionplan"
)

const kindActionPlan = "action plan"

// SaveActionPlan creates a plan or merges the payload into an existing one,
// then notifies the responsible user if the plan is new or was reassigned.
func (s *Store) SaveActionPlan(ctx context.Context, cmd domain.Save[actionplan.Draft]) (_ *actionplan.ActionPlan, err error) {
	ctx, done := s.begin(ctx, "SaveActionPlan", attribute.String("plan_id", cmd.ID()))
	defer func() { done(err) }()

	d := cmd.Payload
	if err := d.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		p           *actionplan.ActionPlan
		previousWho string
	)
	if cmd.IsUpdate() {
		p = s.plan(cmd.ID())
		if p == nil {
			return nil, domain.NotFound(kindActionPlan, cmd.ID())
		}
		previousWho = p.Who
	} else {
		s.state.plans = append(s.state.plans, actionplan.ActionPlan{
			ID:        s.ids.NewID(),
			Status:    actionplan.StatusPending,
			FollowUps: []actionplan.FollowUp{},
		})
		p = &s.state.plans[len(s.state.plans)-1]
	}
	p.Apply(&d)

	s.log(ctx).InfoContext(ctx, "action plan saved",
		slog.String("plan_id", p.ID),
		slog.Bool("update", cmd.IsUpdate()),
		slog.String("who", p.Who),
	)
	s.notify(ctx, fanout.ActionPlanAssigned(p, previousWho, !cmd.IsUpdate(), s.planSubject(p)))

	out := clonePlan(*p)
	return &out, nil
}

// UpdateActionPlanStatus sets only the plan's status.
func (s *Store) UpdateActionPlanStatus(ctx context.Context, id string, status actionplan.Status) (_ *actionplan.ActionPlan, err error) {
	ctx, done := s.begin(ctx, "UpdateActionPlanStatus", attribute.String("plan_id", id))
	defer func() { done(err) }()

	if !status.IsValid() {
		return nil, &domain.ValidationError{Fields: map[string]string{"status": fmt.Sprintf("invalid: %q", status)}}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.plan(id)
	if p == nil {
		return nil, domain.NotFound(kindActionPlan, id)
	}
	p.Status = status

	s.log(ctx).InfoContext(ctx, "action plan status updated", slog.String("plan_id", id), slog.String("status", status.String()))
	out := clonePlan(*p)
	return &out, nil
}

// AddFollowUp prepends a follow-up and notifies the responsible user unless
// they are the author.
func (s *Store) AddFollowUp(ctx context.Context, planID, content, authorID string) (_ *actionplan.FollowUp, err error) {
	ctx, done := s.begin(ctx, "AddFollowUp", attribute.String("plan_id", planID))
	defer func() { done(err) }()

	fields := make(map[string]string)
	if strings.TrimSpace(content) == "" {
		fields["content"] = domain.MsgRequired
	}
	if authorID == "" {
		fields["authorId"] = domain.MsgRequired
	}
	if len(fields) > 0 {
		return nil, &domain.ValidationError{Fields: fields}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.plan(planID)
	if p == nil {
		return nil, domain.NotFound(kindActionPlan, planID)
	}
	f := actionplan.FollowUp{
		ID:        s.ids.NewID(),
		AuthorID:  authorID,
		Content:   content,
		Timestamp: s.now(),
	}
	p.PrependFollowUp(f)

	s.log(ctx).InfoContext(ctx, "follow-up added", slog.String("plan_id", planID), slog.String("follow_up_id", f.ID))

	var authorName string
	if u := s.user(authorID); u != nil {
		authorName = u.Name
	}
	s.notify(ctx, fanout.FollowUpAdded(p, authorID, authorName))

	return &f, nil
}

// ListActionPlans returns the plans matching filter in creation order.
func (s *Store) ListActionPlans(_ context.Context, filter actionplan.Filter) []actionplan.ActionPlan {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]actionplan.ActionPlan, 0, len(s.state.plans))
	for i := range s.state.plans {
		if filter.Matches(&s.state.plans[i]) {
			out = append(out, clonePlan(s.state.plans[i]))
		}
	}
	return out
}

// GetActionPlan returns the plan with the given id.
func (s *Store) GetActionPlan(_ context.Context, id string) (*actionplan.ActionPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p := s.plan(id)
	if p == nil {
		return nil, domain.NotFound(kindActionPlan, id)
	}
	out := clonePlan(*p)
	return &out, nil
}

func (s *Store) plan(id string) *actionplan.ActionPlan {
	i := slices.IndexFunc(s.state.plans, func(p actionplan.ActionPlan) bool { return p.ID == id })
	if i < 0 {
		return nil
	}
	return &s.state.plans[i]
}

// planSubject resolves the finding or indicator a plan is linked to.
func (s *Store) planSubject(p *actionplan.ActionPlan) fanout.Subject {
	switch {
	case p.FindingID != "":
		subj := fanout.Subject{Finding: true}
		if _, f := s.finding(p.FindingID); f != nil {
			subj.Title = f.Title
		}
		return subj
	case p.PerformanceIndicatorID != "":
		subj := fanout.Subject{Indicator: true}
		for i := range s.state.policies {
			if ind := s.state.policies[i].Indicator(p.PerformanceIndicatorID); ind != nil {
				subj.Title = ind.Objective
				subj.PolicyTitle = s.state.policies[i].Title
				break
			}
		}
		return subj
	default:
		return fanout.Subject{}
	}
}
