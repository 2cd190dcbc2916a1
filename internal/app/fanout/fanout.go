// Package fanout derives the notifications a mutation produces. The rules are
// pure: the store resolves the entities involved and persists what they return.
package fanout

import (
	"fmt"

	"github.com/jsamuelsen11/auditforce/internal/domain/actionplan"
	"github.com/jsamuelsen11/auditforce/internal/domain/audit"
	"github.com/jsamuelsen11/auditforce/internal/domain/meeting"
)

const (
	unknown = "N/A"
	someone = "Alguém"
)

// Message is a notification to be delivered to one user.
type Message struct {
	UserID string
	Text   string
}

// Subject describes what an action plan remediates. Exactly one of Finding
// or Indicator is set, mirroring the plan's link. Titles may be empty when
// the linked entity cannot be resolved.
type Subject struct {
	Finding     bool
	Indicator   bool
	Title       string
	PolicyTitle string
}

// ActionPlanAssigned notifies the plan's responsible user when the plan is new
// or its Who changed from a previously set user.
func ActionPlanAssigned(plan *actionplan.ActionPlan, previousWho string, created bool, subj Subject) []Message {
	reassigned := previousWho != "" && previousWho != plan.Who
	if !(created || reassigned) || plan.Who == "" {
		return nil
	}

	var text string
	switch {
	case subj.Finding:
		text = fmt.Sprintf("Você foi designado como responsável pelo plano de ação \"%s\" no achado \"%s\".",
			plan.What, orUnknown(subj.Title))
	case subj.Indicator:
		text = fmt.Sprintf("Você foi designado como responsável pelo plano de ação para o indicador \"%s\" na política \"%s\".",
			orUnknown(subj.Title), orUnknown(subj.PolicyTitle))
	default:
		return nil
	}
	return []Message{{UserID: plan.Who, Text: text}}
}

// FollowUpAdded notifies the plan's responsible user unless they wrote the
// follow-up themselves.
func FollowUpAdded(plan *actionplan.ActionPlan, authorID, authorName string) []Message {
	if plan.Who == "" || plan.Who == authorID {
		return nil
	}
	if authorName == "" {
		authorName = someone
	}
	return []Message{{
		UserID: plan.Who,
		Text:   fmt.Sprintf("%s adicionou um novo follow-up no plano de ação \"%s\".", authorName, plan.What),
	}}
}

// AuditConcluded notifies every administrator when an audit enters Concluído
// from any other status.
func AuditConcluded(a *audit.Audit, previous audit.Status, adminIDs []string) []Message {
	if a.Status != audit.StatusConcluded || previous == audit.StatusConcluded {
		return nil
	}
	text := fmt.Sprintf("A auditoria \"%s - %s\" foi concluída.", a.Code, a.Title)
	return broadcast(adminIDs, text)
}

// MeetingSaved notifies every attendee of a scheduled or edited meeting.
func MeetingSaved(m *meeting.Meeting, policyTitle string, created bool) []Message {
	var text string
	if created {
		text = fmt.Sprintf("Você foi convidado para a reunião \"%s\" sobre a política \"%s\" em %s.",
			m.Title, orUnknown(policyTitle), m.DisplayDate())
	} else {
		text = fmt.Sprintf("A reunião \"%s\" sobre a política \"%s\" foi atualizada.",
			m.Title, orUnknown(policyTitle))
	}
	return broadcast(m.AttendeeIDs, text)
}

// MeetingCancelled notifies every attendee that the meeting was removed.
func MeetingCancelled(m *meeting.Meeting) []Message {
	text := fmt.Sprintf("A reunião \"%s\" agendada para %s foi cancelada.", m.Title, m.DisplayDate())
	return broadcast(m.AttendeeIDs, text)
}

func broadcast(userIDs []string, text string) []Message {
	if len(userIDs) == 0 {
		return nil
	}
	out := make([]Message, len(userIDs))
	for i, id := range userIDs {
		out[i] = Message{UserID: id, Text: text}
	}
	return out
}

func orUnknown(s string) string {
	if s == "" {
		return unknown
	}
	return s
}
