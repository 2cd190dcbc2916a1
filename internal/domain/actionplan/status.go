package actionplan

// Status is the progress of an action plan.
type Status string

const (
	StatusPending    Status = "Pendente"
	StatusInProgress Status = "Em Execução"
	StatusStandby    Status = "Standby"
	StatusDone       Status = "Concluído"
)

// IsValid returns true if the status is one of the defined constants.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusStandby, StatusDone:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (s Status) String() string {
	return string(s)
}
