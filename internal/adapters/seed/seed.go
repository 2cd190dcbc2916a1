// Package seed loads initial fixtures into the domain store from a YAML
// document. Plaintext passwords in the document are hashed before import.
package seed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"runtime"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jsamuelsen11/auditforce/internal/app/fanout"
	"github.com/jsamuelsen11/auditforce/internal/app/store"
	"github.com/jsamuelsen11/auditforce/internal/domain/actionplan"
	"github.com/jsamuelsen11/auditforce/internal/domain/audit"
	"github.com/jsamuelsen11/auditforce/internal/domain/grid"
	"github.com/jsamuelsen11/auditforce/internal/domain/meeting"
	"github.com/jsamuelsen11/auditforce/internal/domain/policy"
	"github.com/jsamuelsen11/auditforce/internal/domain/user"
	"github.com/jsamuelsen11/auditforce/internal/platform/password"
)

const dateLayout = "2006-01-02"

// Fixture models the seed YAML document.
type Fixture struct {
	Users       []User       `yaml:"users"`
	Grids       []Grid       `yaml:"grids"`
	Audits      []Audit      `yaml:"audits"`
	ActionPlans []ActionPlan `yaml:"actionPlans"`
	Policies    []Policy     `yaml:"policies"`
	Meetings    []Meeting    `yaml:"meetings"`
}

// User is a seeded account. An empty Password leaves the user passwordless.
type User struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Role     string `yaml:"role"`
	Password string `yaml:"password"`
}

type Requirement struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Guidance    string `yaml:"guidance"`
}

type Grid struct {
	ID           string        `yaml:"id"`
	Title        string        `yaml:"title"`
	Scope        string        `yaml:"scope"`
	Description  string        `yaml:"description"`
	Requirements []Requirement `yaml:"requirements"`
}

type Finding struct {
	ID            string `yaml:"id"`
	RequirementID string `yaml:"requirementId"`
	Description   string `yaml:"description"`
	Status        string `yaml:"status"`
}

// Audit is a seeded audit. Finding titles are copied from the grid
// requirement each finding points at.
type Audit struct {
	ID        string    `yaml:"id"`
	Code      string    `yaml:"code"`
	Title     string    `yaml:"title"`
	Scope     string    `yaml:"scope"`
	AuditorID string    `yaml:"auditorId"`
	StartDate string    `yaml:"startDate"`
	EndDate   string    `yaml:"endDate"`
	Status    string    `yaml:"status"`
	GridID    string    `yaml:"gridId"`
	Findings  []Finding `yaml:"findings"`
}

type ActionPlan struct {
	ID                     string   `yaml:"id"`
	FindingID              string   `yaml:"findingId"`
	PerformanceIndicatorID string   `yaml:"performanceIndicatorId"`
	What                   string   `yaml:"what"`
	Why                    string   `yaml:"why"`
	Where                  string   `yaml:"where"`
	When                   string   `yaml:"when"`
	Who                    string   `yaml:"who"`
	How                    string   `yaml:"how"`
	HowMuch                *float64 `yaml:"howMuch"`
	Status                 string   `yaml:"status"`
}

type Indicator struct {
	ID            string  `yaml:"id"`
	Objective     string  `yaml:"objective"`
	Department    string  `yaml:"department"`
	ResponsibleID string  `yaml:"responsibleId"`
	Goal          float64 `yaml:"goal"`
	ActualValue   float64 `yaml:"actualValue"`
}

type ChangeEntry struct {
	Version     string    `yaml:"version"`
	UpdatedAt   time.Time `yaml:"updatedAt"`
	Description string    `yaml:"description"`
	AuthorID    string    `yaml:"authorId"`
}

type Policy struct {
	ID            string        `yaml:"id"`
	Title         string        `yaml:"title"`
	Category      string        `yaml:"category"`
	Version       string        `yaml:"version"`
	Content       string        `yaml:"content"`
	Status        string        `yaml:"status"`
	CreatedAt     time.Time     `yaml:"createdAt"`
	UpdatedAt     time.Time     `yaml:"updatedAt"`
	Indicators    []Indicator   `yaml:"performanceIndicators"`
	ChangeHistory []ChangeEntry `yaml:"changeHistory"`
}

// Meeting is a seeded meeting. InDays places it relative to the load date
// and is used when Date is empty.
type Meeting struct {
	ID          string   `yaml:"id"`
	PolicyID    string   `yaml:"policyId"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Date        string   `yaml:"date"`
	InDays      int      `yaml:"inDays"`
	StartTime   string   `yaml:"startTime"`
	EndTime     string   `yaml:"endTime"`
	AttendeeIDs []string `yaml:"attendees"`
	OrganizerID string   `yaml:"organizerId"`
}

// Load reads and validates a fixture file.
func Load(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed %s: %w", path, err)
	}
	return FromYAML(data)
}

// FromYAML parses and validates a fixture document. Unknown keys are errors.
func FromYAML(data []byte) (*Fixture, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f Fixture
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("parsing seed: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks ids and cross references inside the fixture. Every audit
// must hold exactly one finding per requirement of its grid.
func (f *Fixture) Validate() error {
	var errs []error

	users := make(map[string]bool, len(f.Users))
	for _, u := range f.Users {
		if u.ID == "" {
			errs = append(errs, fmt.Errorf("user %q: id is required", u.Email))
		}
		if !user.Role(u.Role).IsValid() {
			errs = append(errs, fmt.Errorf("user %q: invalid role %q", u.ID, u.Role))
		}
		users[u.ID] = true
	}

	reqs := make(map[string]map[string]bool, len(f.Grids))
	for _, g := range f.Grids {
		reqs[g.ID] = make(map[string]bool, len(g.Requirements))
		for _, r := range g.Requirements {
			reqs[g.ID][r.ID] = true
		}
	}

	for _, a := range f.Audits {
		gridReqs, ok := reqs[a.GridID]
		if !ok {
			errs = append(errs, fmt.Errorf("audit %q: unknown grid %q", a.ID, a.GridID))
			continue
		}
		if !users[a.AuditorID] {
			errs = append(errs, fmt.Errorf("audit %q: unknown auditor %q", a.ID, a.AuditorID))
		}
		if !audit.Status(a.Status).IsValid() {
			errs = append(errs, fmt.Errorf("audit %q: invalid status %q", a.ID, a.Status))
		}
		covered := make(map[string]bool, len(a.Findings))
		for _, fd := range a.Findings {
			if !gridReqs[fd.RequirementID] {
				errs = append(errs, fmt.Errorf("audit %q: finding %q points at unknown requirement %q",
					a.ID, fd.ID, fd.RequirementID))
			} else if covered[fd.RequirementID] {
				errs = append(errs, fmt.Errorf("audit %q: requirement %q has more than one finding",
					a.ID, fd.RequirementID))
			}
			covered[fd.RequirementID] = true
			if !audit.FindingStatus(fd.Status).IsValid() {
				errs = append(errs, fmt.Errorf("audit %q: finding %q has invalid status %q", a.ID, fd.ID, fd.Status))
			}
		}
		for _, rid := range slices.Sorted(maps.Keys(gridReqs)) {
			if !covered[rid] {
				errs = append(errs, fmt.Errorf("audit %q: requirement %q has no finding", a.ID, rid))
			}
		}
	}

	for _, p := range f.ActionPlans {
		if (p.FindingID == "") == (p.PerformanceIndicatorID == "") {
			errs = append(errs, fmt.Errorf("action plan %q: exactly one of findingId and performanceIndicatorId", p.ID))
		}
		if !actionplan.Status(p.Status).IsValid() {
			errs = append(errs, fmt.Errorf("action plan %q: invalid status %q", p.ID, p.Status))
		}
	}

	for _, p := range f.Policies {
		if !policy.Status(p.Status).IsValid() {
			errs = append(errs, fmt.Errorf("policy %q: invalid status %q", p.ID, p.Status))
		}
	}

	for _, m := range f.Meetings {
		if m.Date != "" {
			if _, err := time.Parse(dateLayout, m.Date); err != nil {
				errs = append(errs, fmt.Errorf("meeting %q: invalid date %q", m.ID, m.Date))
			}
		}
	}

	return errors.Join(errs...)
}

// Snapshot converts the fixture into a store snapshot. Passwords are hashed
// concurrently. today anchors meetings placed with InDays.
func (f *Fixture) Snapshot(ctx context.Context, hasher *password.Hasher, today time.Time) (store.Snapshot, error) {
	users, err := fanout.Map(ctx, runtime.GOMAXPROCS(0), f.Users, func(_ context.Context, u User) (user.User, error) {
		out := user.User{
			ID:        u.ID,
			Name:      u.Name,
			Email:     u.Email,
			Role:      user.Role(u.Role),
			AvatarURL: user.DefaultAvatarURL(u.ID),
			Status:    user.StatusOffline,
		}
		if u.Password == "" {
			return out, nil
		}
		hash, err := hasher.Hash(u.Password)
		if err != nil {
			return user.User{}, fmt.Errorf("hashing password of %q: %w", u.ID, err)
		}
		out.PasswordHash = hash
		return out, nil
	})
	if err != nil {
		return store.Snapshot{}, err
	}

	grids := make([]grid.Grid, len(f.Grids))
	titles := make(map[string]string)
	for i, g := range f.Grids {
		reqs := make([]grid.Requirement, len(g.Requirements))
		for j, r := range g.Requirements {
			reqs[j] = grid.Requirement(r)
			titles[r.ID] = r.Title
		}
		grids[i] = grid.Grid{
			ID:           g.ID,
			Title:        g.Title,
			Scope:        g.Scope,
			Description:  g.Description,
			Requirements: reqs,
		}
	}

	audits := make([]audit.Audit, len(f.Audits))
	for i, a := range f.Audits {
		findings := make([]audit.Finding, len(a.Findings))
		for j, fd := range a.Findings {
			findings[j] = audit.Finding{
				ID:            fd.ID,
				RequirementID: fd.RequirementID,
				Title:         titles[fd.RequirementID],
				Description:   fd.Description,
				Status:        audit.FindingStatus(fd.Status),
				Attachments:   []audit.Attachment{},
			}
		}
		audits[i] = audit.Audit{
			ID:        a.ID,
			Code:      a.Code,
			Title:     a.Title,
			Scope:     a.Scope,
			AuditorID: a.AuditorID,
			StartDate: a.StartDate,
			EndDate:   a.EndDate,
			Status:    audit.Status(a.Status),
			GridID:    a.GridID,
			Findings:  findings,
		}
	}

	plans := make([]actionplan.ActionPlan, len(f.ActionPlans))
	for i, p := range f.ActionPlans {
		plans[i] = actionplan.ActionPlan{
			ID:                     p.ID,
			FindingID:              p.FindingID,
			PerformanceIndicatorID: p.PerformanceIndicatorID,
			What:                   p.What,
			Why:                    p.Why,
			Where:                  p.Where,
			When:                   p.When,
			Who:                    p.Who,
			How:                    p.How,
			HowMuch:                p.HowMuch,
			Status:                 actionplan.Status(p.Status),
			FollowUps:              []actionplan.FollowUp{},
		}
	}

	policies := make([]policy.Policy, len(f.Policies))
	for i, p := range f.Policies {
		inds := make([]policy.Indicator, len(p.Indicators))
		for j, in := range p.Indicators {
			inds[j] = policy.Indicator(in)
		}
		history := make([]policy.ChangeEntry, len(p.ChangeHistory))
		for j, c := range p.ChangeHistory {
			history[j] = policy.ChangeEntry(c)
		}
		policies[i] = policy.Policy{
			ID:            p.ID,
			Title:         p.Title,
			Category:      p.Category,
			Version:       p.Version,
			Content:       p.Content,
			Status:        policy.Status(p.Status),
			CreatedAt:     p.CreatedAt,
			UpdatedAt:     p.UpdatedAt,
			Indicators:    inds,
			ChangeHistory: history,
		}
	}

	meetings := make([]meeting.Meeting, len(f.Meetings))
	for i, m := range f.Meetings {
		date := m.Date
		if date == "" {
			date = today.AddDate(0, 0, m.InDays).Format(dateLayout)
		}
		meetings[i] = meeting.Meeting{
			ID:          m.ID,
			PolicyID:    m.PolicyID,
			Title:       m.Title,
			Description: m.Description,
			Date:        date,
			StartTime:   m.StartTime,
			EndTime:     m.EndTime,
			AttendeeIDs: m.AttendeeIDs,
			OrganizerID: m.OrganizerID,
		}
	}

	return store.Snapshot{
		Users:       users,
		Grids:       grids,
		Audits:      audits,
		ActionPlans: plans,
		Policies:    policies,
		Meetings:    meetings,
	}, nil
}

// Importer replaces a store's state with a snapshot.
type Importer interface {
	Import(ctx context.Context, snap store.Snapshot) error
}

// Apply loads the fixture at path and replaces the importer's state with it.
func Apply(ctx context.Context, path string, s Importer, hasher *password.Hasher, logger *slog.Logger) error {
	f, err := Load(path)
	if err != nil {
		return err
	}

	snap, err := f.Snapshot(ctx, hasher, time.Now())
	if err != nil {
		return fmt.Errorf("building seed snapshot: %w", err)
	}
	if err := s.Import(ctx, snap); err != nil {
		return fmt.Errorf("importing seed: %w", err)
	}

	logger.InfoContext(ctx, "seed applied",
		slog.String("path", path),
		slog.Int("users", len(snap.Users)),
		slog.Int("audits", len(snap.Audits)),
		slog.Int("policies", len(snap.Policies)),
	)
	return nil
}
