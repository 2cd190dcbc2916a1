package store

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strconv"

	"github.com/jsamuelsen11/auditforce/internal/domain/actionplan"
	"github.com/jsamuelsen11/auditforce/internal/domain/audit"
	"github.com/jsamuelsen11/auditforce/internal/domain/grid"
	"github.com/jsamuelsen11/auditforce/internal/domain/meeting"
	"github.com/jsamuelsen11/auditforce/internal/domain/notification"
	"github.com/jsamuelsen11/auditforce/internal/domain/policy"
	"github.com/jsamuelsen11/auditforce/internal/domain/user"
)

// state holds the canonical collections in insertion order.
type state struct {
	users         []user.User
	grids         []grid.Grid
	audits        []audit.Audit
	plans         []actionplan.ActionPlan
	policies      []policy.Policy
	history       []policy.Policy
	meetings      []meeting.Meeting
	notifications []notification.Notification

	// findingAudit maps a finding id to the id of the audit that owns it.
	findingAudit map[string]string
	// auditSeq is the last audit sequence number issued per year.
	auditSeq map[int]int
}

func newState() state {
	return state{
		findingAudit: make(map[string]string),
		auditSeq:     make(map[int]int),
	}
}

// Snapshot is a point-in-time copy of every collection. It is what fixtures
// are loaded from and what Export returns.
type Snapshot struct {
	Users         []user.User
	Grids         []grid.Grid
	Audits        []audit.Audit
	ActionPlans   []actionplan.ActionPlan
	Policies      []policy.Policy
	PolicyHistory []policy.Policy
	Meetings      []meeting.Meeting
	Notifications []notification.Notification
}

var auditCodePattern = regexp.MustCompile(`^AUD-(\d{4})-(\d+)$`)

// Export returns a deep copy of the current state.
func (s *Store) Export() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{
		Users:         cloneAll(s.state.users, cloneUser),
		Grids:         cloneAll(s.state.grids, cloneGrid),
		Audits:        cloneAll(s.state.audits, cloneAudit),
		ActionPlans:   cloneAll(s.state.plans, clonePlan),
		Policies:      cloneAll(s.state.policies, clonePolicy),
		PolicyHistory: cloneAll(s.state.history, clonePolicy),
		Meetings:      cloneAll(s.state.meetings, cloneMeeting),
		Notifications: slices.Clone(s.state.notifications),
	}
}

// Import replaces the whole state with a copy of snap. It rejects snapshots
// whose finding ids collide across audits or whose users share an e-mail.
func (s *Store) Import(ctx context.Context, snap Snapshot) (err error) {
	ctx, done := s.begin(ctx, "Import")
	defer func() { done(err) }()

	next := newState()

	emails := make(map[string]string, len(snap.Users))
	for i := range snap.Users {
		key := user.NormalizeEmail(snap.Users[i].Email)
		if other, dup := emails[key]; dup {
			return fmt.Errorf("import: users %q and %q share e-mail %q", other, snap.Users[i].ID, key)
		}
		emails[key] = snap.Users[i].ID
	}

	for i := range snap.Audits {
		a := &snap.Audits[i]
		for j := range a.Findings {
			fid := a.Findings[j].ID
			if owner, dup := next.findingAudit[fid]; dup {
				return fmt.Errorf("import: finding %q belongs to audits %q and %q", fid, owner, a.ID)
			}
			next.findingAudit[fid] = a.ID
		}
		if m := auditCodePattern.FindStringSubmatch(a.Code); m != nil {
			year, _ := strconv.Atoi(m[1])
			seq, _ := strconv.Atoi(m[2])
			next.auditSeq[year] = max(next.auditSeq[year], seq)
		}
	}

	next.users = cloneAll(snap.Users, cloneUser)
	next.grids = cloneAll(snap.Grids, cloneGrid)
	next.audits = cloneAll(snap.Audits, cloneAudit)
	next.plans = cloneAll(snap.ActionPlans, clonePlan)
	next.policies = cloneAll(snap.Policies, clonePolicy)
	next.history = cloneAll(snap.PolicyHistory, clonePolicy)
	next.meetings = cloneAll(snap.Meetings, cloneMeeting)
	next.notifications = slices.Clone(snap.Notifications)

	s.mu.Lock()
	s.state = next
	s.mu.Unlock()

	s.log(ctx).InfoContext(ctx, "state imported",
		slog.Int("users", len(next.users)),
		slog.Int("grids", len(next.grids)),
		slog.Int("audits", len(next.audits)),
		slog.Int("policies", len(next.policies)),
	)
	return nil
}

func cloneAll[T any](in []T, clone func(T) T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	for i := range in {
		out[i] = clone(in[i])
	}
	return out
}

func cloneUser(u user.User) user.User { return u }

func cloneGrid(g grid.Grid) grid.Grid {
	cp := g
	cp.Requirements = slices.Clone(g.Requirements)
	return cp
}

func cloneFinding(f audit.Finding) audit.Finding {
	cp := f
	cp.Attachments = slices.Clone(f.Attachments)
	return cp
}

func cloneAudit(a audit.Audit) audit.Audit {
	cp := a
	cp.Findings = cloneAll(a.Findings, cloneFinding)
	return cp
}

func clonePlan(p actionplan.ActionPlan) actionplan.ActionPlan {
	cp := p
	if p.HowMuch != nil {
		v := *p.HowMuch
		cp.HowMuch = &v
	}
	cp.FollowUps = slices.Clone(p.FollowUps)
	return cp
}

func clonePolicy(p policy.Policy) policy.Policy {
	return *p.Clone()
}

func cloneMeeting(m meeting.Meeting) meeting.Meeting {
	cp := m
	cp.AttendeeIDs = slices.Clone(m.AttendeeIDs)
	return cp
}
