package actionplan

import (
	"errors"
	"testing"
	"time"

	"github.com/jsamuelsen11/auditforce/internal/domain"
)

func validDraft() Draft {
	return Draft{
		FindingID: "f-1",
		What:      "Enable MFA",
		Why:       "Finding 3",
		When:      "2024-09-30",
		Who:       "user-3",
	}
}

func TestDraft_Validate(t *testing.T) {
	t.Parallel()

	neg := -1.0
	tests := []struct {
		name      string
		modify    func(*Draft)
		wantField string
	}{
		{name: "finding link passes", modify: func(_ *Draft) {}},
		{name: "indicator link passes", modify: func(d *Draft) {
			d.FindingID = ""
			d.PerformanceIndicatorID = "pi-1"
		}},
		{name: "no link fails", modify: func(d *Draft) { d.FindingID = "" }, wantField: "findingId"},
		{name: "both links fail", modify: func(d *Draft) { d.PerformanceIndicatorID = "pi-1" }, wantField: "findingId"},
		{name: "missing what", modify: func(d *Draft) { d.What = "" }, wantField: "what"},
		{name: "missing who", modify: func(d *Draft) { d.Who = "" }, wantField: "who"},
		{name: "bad when", modify: func(d *Draft) { d.When = "tomorrow" }, wantField: "when"},
		{name: "negative cost", modify: func(d *Draft) { d.HowMuch = &neg }, wantField: "howMuch"},
		{name: "unknown status", modify: func(d *Draft) { d.Status = "Done" }, wantField: "status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := validDraft()
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

func TestActionPlan_Apply_KeepsStatusWhenDraftEmpty(t *testing.T) {
	t.Parallel()

	p := ActionPlan{ID: "plan-1", Status: StatusStandby, Who: "user-3"}
	d := validDraft()
	d.Who = "user-4"
	p.Apply(&d)

	if p.Status != StatusStandby {
		t.Errorf("Status = %q, want %q", p.Status, StatusStandby)
	}
	if p.Who != "user-4" {
		t.Errorf("Who = %q, want %q", p.Who, "user-4")
	}
	if p.ID != "plan-1" {
		t.Errorf("ID = %q, want unchanged", p.ID)
	}
}

func TestActionPlan_PrependFollowUp(t *testing.T) {
	t.Parallel()

	base := time.Date(2024, 8, 1, 10, 0, 0, 0, time.UTC)
	p := ActionPlan{}
	p.PrependFollowUp(FollowUp{ID: "fu-1", Timestamp: base})
	p.PrependFollowUp(FollowUp{ID: "fu-2", Timestamp: base.Add(time.Hour)})

	if len(p.FollowUps) != 2 || p.FollowUps[0].ID != "fu-2" || p.FollowUps[1].ID != "fu-1" {
		t.Errorf("FollowUps = %+v, want newest first", p.FollowUps)
	}
}

func TestFilter_Matches(t *testing.T) {
	t.Parallel()

	p := &ActionPlan{FindingID: "f-1", Who: "user-3", Status: StatusPending}

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{"empty filter matches", Filter{}, true},
		{"finding matches", Filter{FindingID: "f-1"}, true},
		{"finding mismatch", Filter{FindingID: "f-2"}, false},
		{"indicator mismatch", Filter{PerformanceIndicatorID: "pi-1"}, false},
		{"who and status match", Filter{Who: "user-3", Status: StatusPending}, true},
		{"status mismatch", Filter{Status: StatusDone}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.filter.Matches(p); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}
