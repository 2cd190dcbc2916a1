package meeting

import (
	"errors"
	"reflect"
	"testing"

	"github.com/jsamuelsen11/auditforce/internal/domain"
)

func validDraft() Draft {
	return Draft{
		PolicyID:    "pol-1",
		Title:       "Revisão trimestral",
		Date:        "2024-08-20",
		StartTime:   "10:00",
		EndTime:     "11:00",
		AttendeeIDs: []string{"user-2", "user-3"},
		OrganizerID: "user-1",
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
		{name: "missing policy", modify: func(d *Draft) { d.PolicyID = "" }, wantField: "policyId"},
		{name: "bad date", modify: func(d *Draft) { d.Date = "20/08/2024" }, wantField: "date"},
		{name: "bad start", modify: func(d *Draft) { d.StartTime = "10h" }, wantField: "startTime"},
		{name: "bad end", modify: func(d *Draft) { d.EndTime = "25:00" }, wantField: "endTime"},
		{name: "end equals start", modify: func(d *Draft) { d.EndTime = "10:00" }, wantField: "endTime"},
		{name: "end before start", modify: func(d *Draft) { d.EndTime = "09:30" }, wantField: "endTime"},
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

func TestAttendees(t *testing.T) {
	t.Parallel()

	got := Attendees([]string{"user-2", "", "user-3", "user-2"})
	want := []string{"user-2", "user-3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Attendees() = %v, want %v", got, want)
	}
}

func TestDisplayDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"2024-08-20", "20/08/2024"},
		{"2024-01-05", "05/01/2024"},
		{"garbage", "garbage"},
	}
	for _, tt := range tests {
		if got := DisplayDate(tt.in); got != tt.want {
			t.Errorf("DisplayDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMeeting_ApplyKeepsOrganizer(t *testing.T) {
	t.Parallel()

	m := Meeting{ID: "meet-1", OrganizerID: "user-1"}
	d := validDraft()
	d.OrganizerID = ""
	d.AttendeeIDs = []string{"user-4", "user-4"}
	m.Apply(&d)

	if m.OrganizerID != "user-1" {
		t.Errorf("OrganizerID = %q, want user-1", m.OrganizerID)
	}
	if !reflect.DeepEqual(m.AttendeeIDs, []string{"user-4"}) {
		t.Errorf("AttendeeIDs = %v", m.AttendeeIDs)
	}
}

func TestFilter_Matches(t *testing.T) {
	t.Parallel()

	m := &Meeting{Date: "2024-08-20", PolicyID: "pol-1", OrganizerID: "user-1", AttendeeIDs: []string{"user-2"}}

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{"empty", Filter{}, true},
		{"date match", Filter{Date: "2024-08-20"}, true},
		{"date mismatch", Filter{Date: "2024-08-21"}, false},
		{"policy mismatch", Filter{PolicyID: "pol-2"}, false},
		{"organizer", Filter{UserID: "user-1"}, true},
		{"attendee", Filter{UserID: "user-2"}, true},
		{"outsider", Filter{UserID: "user-3"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.filter.Matches(m); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}
