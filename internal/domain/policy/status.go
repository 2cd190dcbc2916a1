package policy

// Status is the publication state of a policy.
type Status string

const (
	StatusDraft     Status = "Rascunho"
	StatusPublished Status = "Publicado"
	StatusArchived  Status = "Arquivado"
)

// IsValid returns true if the status is one of the defined constants.
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (s Status) String() string {
	return string(s)
}
