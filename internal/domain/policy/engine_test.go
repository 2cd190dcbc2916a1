package policy

import (
	"errors"
	"reflect"
	"slices"
	"strconv"
	"testing"
	"time"

	"github.com/jsamuelsen11/auditforce/internal/domain"
)

var (
	t0 = time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	t1 = t0.Add(24 * time.Hour)
)

func seqIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return prefix + strconv.Itoa(n)
	}
}

func baseDraft() Draft {
	return Draft{
		Title:    "Segurança da Informação",
		Category: "TI",
		Content:  "# v1",
		Indicators: []Indicator{
			{ID: "temp-1", Objective: "Patch SLA", Goal: 95, ActualValue: 90},
		},
	}
}

func mustCreate(t *testing.T) *Policy {
	t.Helper()
	p, archived, err := Apply(nil, baseDraft(), SaveOptions{AuthorID: "user-1"}, t0, seqIDs("id-"))
	if err != nil {
		t.Fatalf("Apply(create) error = %v", err)
	}
	if archived != nil {
		t.Fatalf("Apply(create) archived = %+v, want nil", archived)
	}
	return p
}

func TestApply_Create(t *testing.T) {
	t.Parallel()

	p := mustCreate(t)

	if p.Version != InitialVersion {
		t.Errorf("Version = %q, want %q", p.Version, InitialVersion)
	}
	if p.Status != StatusDraft {
		t.Errorf("Status = %q, want %q", p.Status, StatusDraft)
	}
	if !p.CreatedAt.Equal(t0) || !p.UpdatedAt.Equal(t0) {
		t.Errorf("CreatedAt/UpdatedAt = %v/%v, want %v", p.CreatedAt, p.UpdatedAt, t0)
	}
	want := []ChangeEntry{{Version: "1.0", UpdatedAt: t0, Description: "Versão inicial criada.", AuthorID: "user-1"}}
	if !reflect.DeepEqual(p.ChangeHistory, want) {
		t.Errorf("ChangeHistory = %+v, want %+v", p.ChangeHistory, want)
	}
	if p.Indicators[0].ID == "temp-1" {
		t.Error("temporary indicator id was not replaced")
	}
}

func TestApply_CreateRequiresAuthor(t *testing.T) {
	t.Parallel()

	_, _, err := Apply(nil, baseDraft(), SaveOptions{}, t0, seqIDs("id-"))
	if !errors.Is(err, domain.ErrPrecondition) {
		t.Errorf("Apply() error = %v, want ErrPrecondition", err)
	}
}

func TestApply_EditInPlace(t *testing.T) {
	t.Parallel()

	head := mustCreate(t)
	before := head.Clone()

	d := baseDraft()
	d.Content = "# v1 typo fix"
	d.Indicators = head.Indicators
	next, archived, err := Apply(head, d, SaveOptions{}, t1, seqIDs("x-"))
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	if archived != nil {
		t.Errorf("archived = %+v, want nil", archived)
	}
	if next.Version != "1.0" {
		t.Errorf("Version = %q, want 1.0", next.Version)
	}
	if next.Content != "# v1 typo fix" {
		t.Errorf("Content = %q", next.Content)
	}
	if !next.UpdatedAt.Equal(t1) || !next.CreatedAt.Equal(t0) {
		t.Errorf("timestamps = %v/%v", next.CreatedAt, next.UpdatedAt)
	}
	if !reflect.DeepEqual(next.ChangeHistory, before.ChangeHistory) {
		t.Errorf("ChangeHistory changed on in-place edit")
	}
	if !reflect.DeepEqual(next.Indicators, before.Indicators) {
		t.Errorf("permanent indicator ids changed: %+v", next.Indicators)
	}
	if !reflect.DeepEqual(head, before) {
		t.Error("Apply mutated head")
	}
}

func TestApply_Fork(t *testing.T) {
	t.Parallel()

	head := mustCreate(t)
	before := head.Clone()

	d := baseDraft()
	d.Content = "# v2"
	d.Indicators = append(slices.Clone(head.Indicators), Indicator{ID: "temp-9", Objective: "Training"})
	opts := SaveOptions{CreateNewVersion: true, ChangeDescription: "x", AuthorID: "user-2"}

	next, archived, err := Apply(head, d, opts, t1, seqIDs("new-"))
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	if next.Version != "1.1" {
		t.Errorf("Version = %q, want 1.1", next.Version)
	}
	if len(next.ChangeHistory) != 2 {
		t.Fatalf("len(ChangeHistory) = %d, want 2", len(next.ChangeHistory))
	}
	if got := next.ChangeHistory[0]; got.Description != "x" || got.AuthorID != "user-2" || got.Version != "1.1" {
		t.Errorf("ChangeHistory[0] = %+v", got)
	}
	if got := next.ChangeHistory[1]; got.Version != "1.0" || got.AuthorID != "user-1" {
		t.Errorf("ChangeHistory[1] = %+v", got)
	}
	if next.Indicators[1].ID != "new-1" {
		t.Errorf("Indicators[1].ID = %q, want new-1", next.Indicators[1].ID)
	}
	if !reflect.DeepEqual(archived, before) {
		t.Errorf("archived = %+v, want pre-edit head %+v", archived, before)
	}
	if !reflect.DeepEqual(head, before) {
		t.Error("Apply mutated head")
	}
}

func TestApply_ForkDefaultsDescription(t *testing.T) {
	t.Parallel()

	head := mustCreate(t)
	next, _, err := Apply(head, baseDraft(), SaveOptions{CreateNewVersion: true, AuthorID: "user-1"}, t1, seqIDs("n-"))
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if got := next.ChangeHistory[0].Description; got != "Alterações gerais." {
		t.Errorf("Description = %q, want default", got)
	}
}

func TestApply_ForkRequiresAuthor(t *testing.T) {
	t.Parallel()

	head := mustCreate(t)
	_, _, err := Apply(head, baseDraft(), SaveOptions{CreateNewVersion: true}, t1, seqIDs("n-"))
	if !errors.Is(err, domain.ErrPrecondition) {
		t.Errorf("Apply() error = %v, want ErrPrecondition", err)
	}
}

func TestApply_ForkRejectsMalformedVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		version string
	}{
		{name: "prefixed", version: "v1"},
		{name: "non-numeric minor", version: "1.x"},
		{name: "empty", version: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			head := mustCreate(t)
			head.Version = tt.version
			next, archived, err := Apply(head, baseDraft(), SaveOptions{CreateNewVersion: true, AuthorID: "user-2"}, t1, seqIDs("n-"))
			if !errors.Is(err, domain.ErrPrecondition) {
				t.Errorf("Apply() error = %v, want ErrPrecondition", err)
			}
			if next != nil || archived != nil {
				t.Errorf("Apply() = (%v, %v), want nil results on error", next, archived)
			}
		})
	}
}

func TestApply_ForkSequenceIsMonotonic(t *testing.T) {
	t.Parallel()

	head := mustCreate(t)
	ids := seqIDs("n-")
	var archive []*Policy

	for i := 1; i <= 5; i++ {
		prev := head.Version
		next, archived, err := Apply(head, baseDraft(), SaveOptions{CreateNewVersion: true, AuthorID: "user-1"}, t1, ids)
		if err != nil {
			t.Fatalf("fork %d: %v", i, err)
		}
		if want := "1." + strconv.Itoa(i); next.Version != want {
			t.Errorf("fork %d: Version = %q, want %q", i, next.Version, want)
		}
		if archived.Version != prev {
			t.Errorf("fork %d: archived.Version = %q, want %q", i, archived.Version, prev)
		}
		archive = append(archive, archived)
		head = next
	}

	if len(head.ChangeHistory) != 6 {
		t.Errorf("len(ChangeHistory) = %d, want 6", len(head.ChangeHistory))
	}
	for i, p := range archive {
		if want := "1." + strconv.Itoa(i); p.Version != want {
			t.Errorf("archive[%d].Version = %q, want %q", i, p.Version, want)
		}
	}
}

func TestDraft_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		modify    func(*Draft)
		wantField string
	}{
		{name: "valid", modify: func(_ *Draft) {}},
		{name: "missing title", modify: func(d *Draft) { d.Title = "" }, wantField: "title"},
		{name: "missing category", modify: func(d *Draft) { d.Category = " " }, wantField: "category"},
		{name: "bad status", modify: func(d *Draft) { d.Status = "Published" }, wantField: "status"},
		{name: "indicator without objective", modify: func(d *Draft) { d.Indicators[0].Objective = "" }, wantField: "indicators[0].objective"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := baseDraft()
			tt.modify(&d)
			err := d.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			var verr *domain.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("errors.As(err, *ValidationError) = false, got %v", err)
			}
			if _, ok := verr.Fields[tt.wantField]; !ok {
				t.Errorf("Fields missing key %q, got %v", tt.wantField, verr.Fields)
			}
		})
	}
}

func TestIndicator_BelowGoal(t *testing.T) {
	t.Parallel()

	if !(&Indicator{Goal: 95, ActualValue: 90}).BelowGoal() {
		t.Error("90 of 95 should be below goal")
	}
	if (&Indicator{Goal: 95, ActualValue: 95}).BelowGoal() {
		t.Error("95 of 95 should meet goal")
	}
}
