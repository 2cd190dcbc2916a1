// Package grid defines audit grids: named checklists of requirements that
// audits are run against.
package grid

import (
	"fmt"
	"strings"

	"github.com/jsamuelsen11/auditforce/internal/domain"
)

// Requirement is one checklist item of a grid. ID is stable once persisted.
type Requirement struct {
	ID          string
	Title       string
	Description string
	Guidance    string
}

// Grid is a checklist template. It cannot be deleted while audits reference it.
type Grid struct {
	ID           string
	Title        string
	Scope        string
	Description  string
	Requirements []Requirement
}

// RequirementIDs returns the ids of the grid's requirements in order.
func (g *Grid) RequirementIDs() []string {
	ids := make([]string, len(g.Requirements))
	for i := range g.Requirements {
		ids[i] = g.Requirements[i].ID
	}
	return ids
}

// Draft carries the editable fields of a grid. Requirements with an empty
// ID are new and receive one when saved.
type Draft struct {
	Title        string
	Scope        string
	Description  string
	Requirements []Requirement
}

// Validate checks business rules for a grid payload.
func (d *Draft) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(d.Title) == "" {
		fields["title"] = domain.MsgRequired
	}

	seen := make(map[string]struct{}, len(d.Requirements))
	for i := range d.Requirements {
		r := &d.Requirements[i]
		if strings.TrimSpace(r.Title) == "" {
			fields[fmt.Sprintf("requirements[%d].title", i)] = domain.MsgRequired
		}
		if r.ID == "" {
			continue
		}
		if _, dup := seen[r.ID]; dup {
			fields[fmt.Sprintf("requirements[%d].id", i)] = fmt.Sprintf("duplicate: %q", r.ID)
		}
		seen[r.ID] = struct{}{}
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// AssignRequirementIDs gives every requirement lacking an id a fresh one.
func AssignRequirementIDs(reqs []Requirement, newID func() string) {
	for i := range reqs {
		if reqs[i].ID == "" {
			reqs[i].ID = newID()
		}
	}
}

// InUseReason is the message shown when a referenced grid is deleted.
const InUseReason = "Não é possível excluir esta grade, pois ela está sendo utilizada em uma ou mais auditorias."
