package audit

// Status is the lifecycle state of an audit.
type Status string

const (
	StatusPlanning   Status = "Planejando"
	StatusInProgress Status = "Em Execução"
	StatusActionPlan Status = "Plano de Ação"
	StatusConcluded  Status = "Concluído"
)

// IsValid returns true if the status is one of the defined constants.
func (s Status) IsValid() bool {
	switch s {
	case StatusPlanning, StatusInProgress, StatusActionPlan, StatusConcluded:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (s Status) String() string {
	return string(s)
}

// FindingStatus is the compliance verdict recorded for a requirement.
type FindingStatus string

const (
	FindingCompliant     FindingStatus = "Conforme"
	FindingNonCompliant  FindingStatus = "Não Conforme"
	FindingNotApplicable FindingStatus = "Não Aplicável"
)

// IsValid returns true if the finding status is one of the defined constants.
func (s FindingStatus) IsValid() bool {
	switch s {
	case FindingCompliant, FindingNonCompliant, FindingNotApplicable:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (s FindingStatus) String() string {
	return string(s)
}
