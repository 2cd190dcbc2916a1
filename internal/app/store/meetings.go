package store

import (
	"cmp"
	"context"
	"log/slog"
	"slices"

	"go.opentelemetry.io/otel/attribute"

	"github.com/jsamuelsen11/auditforce/internal/app/fanout"
	"github.com/jsamuelsen11/auditforce/internal/domain"
	"github.com/jsamuelsen11/auditforce/internal/domain/meeting"
)

const kindMeeting = "meeting"

// SaveMeeting schedules or edits a meeting and notifies every attendee.
func (s *Store) SaveMeeting(ctx context.Context, cmd domain.Save[meeting.Draft]) (_ *meeting.Meeting, err error) {
	ctx, done := s.begin(ctx, "SaveMeeting", attribute.String("meeting_id", cmd.ID()))
	defer func() { done(err) }()

	d := cmd.Payload
	if err := d.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var m *meeting.Meeting
	if cmd.IsUpdate() {
		m = s.meeting(cmd.ID())
		if m == nil {
			return nil, domain.NotFound(kindMeeting, cmd.ID())
		}
	} else {
		s.state.meetings = append(s.state.meetings, meeting.Meeting{ID: s.ids.NewID()})
		m = &s.state.meetings[len(s.state.meetings)-1]
	}
	m.Apply(&d)

	s.log(ctx).InfoContext(ctx, "meeting saved",
		slog.String("meeting_id", m.ID),
		slog.Bool("update", cmd.IsUpdate()),
		slog.Int("attendees", len(m.AttendeeIDs)),
	)
	s.notify(ctx, fanout.MeetingSaved(m, s.policyTitle(m.PolicyID), !cmd.IsUpdate()))

	out := cloneMeeting(*m)
	return &out, nil
}

// DeleteMeeting cancels a meeting and notifies every attendee.
func (s *Store) DeleteMeeting(ctx context.Context, id string) (err error) {
	ctx, done := s.begin(ctx, "DeleteMeeting", attribute.String("meeting_id", id))
	defer func() { done(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.state.meetings, func(m meeting.Meeting) bool { return m.ID == id })
	if i < 0 {
		return domain.NotFound(kindMeeting, id)
	}
	cancelled := cloneMeeting(s.state.meetings[i])
	s.state.meetings = slices.Delete(s.state.meetings, i, i+1)

	s.log(ctx).InfoContext(ctx, "meeting cancelled", slog.String("meeting_id", id))
	s.notify(ctx, fanout.MeetingCancelled(&cancelled))
	return nil
}

// ListMeetings returns the meetings matching filter ordered by date and
// start time.
func (s *Store) ListMeetings(_ context.Context, filter meeting.Filter) []meeting.Meeting {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]meeting.Meeting, 0, len(s.state.meetings))
	for i := range s.state.meetings {
		if filter.Matches(&s.state.meetings[i]) {
			out = append(out, cloneMeeting(s.state.meetings[i]))
		}
	}
	slices.SortStableFunc(out, func(a, b meeting.Meeting) int {
		return cmp.Or(cmp.Compare(a.Date, b.Date), cmp.Compare(a.StartTime, b.StartTime))
	})
	return out
}

// GetMeeting returns the meeting with the given id.
func (s *Store) GetMeeting(_ context.Context, id string) (*meeting.Meeting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m := s.meeting(id)
	if m == nil {
		return nil, domain.NotFound(kindMeeting, id)
	}
	out := cloneMeeting(*m)
	return &out, nil
}

func (s *Store) meeting(id string) *meeting.Meeting {
	i := slices.IndexFunc(s.state.meetings, func(m meeting.Meeting) bool { return m.ID == id })
	if i < 0 {
		return nil
	}
	return &s.state.meetings[i]
}
