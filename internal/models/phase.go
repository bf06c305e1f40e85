package models

type Phase string

const (
	PhasePending      Phase = "pending"
	PhaseRegistration Phase = "registration"
	PhaseVoting       Phase = "voting"
	PhaseResult       Phase = "result"
	PhaseEnded        Phase = "ended"
)

// phaseOrder fixes the forward-only lifecycle of an election.
var phaseOrder = map[Phase]int{
	PhasePending:      0,
	PhaseRegistration: 1,
	PhaseVoting:       2,
	PhaseResult:       3,
	PhaseEnded:        4,
}

func (phase Phase) IsValid() bool {
	_, ok := phaseOrder[phase]
	return ok
}

func (phase Phase) IsTerminal() bool {
	return phase == PhaseEnded
}

// Next returns the immediate successor phase. Returns false for ended or
// unknown phases.
func (phase Phase) Next() (Phase, bool) {
	order, ok := phaseOrder[phase]
	if !ok || order >= phaseOrder[PhaseEnded] {
		return "", false
	}

	for candidate, candidateOrder := range phaseOrder {
		if candidateOrder == order+1 {
			return candidate, true
		}
	}

	return "", false
}

// CanTransitionTo reports whether moving to next is a legal single step
// forward. Ending is allowed from any non-terminal phase.
func (phase Phase) CanTransitionTo(next Phase) bool {
	currentOrder, ok := phaseOrder[phase]
	if !ok {
		return false
	}

	nextOrder, ok := phaseOrder[next]
	if !ok {
		return false
	}

	if next == PhaseEnded {
		return currentOrder < phaseOrder[PhaseEnded]
	}

	return nextOrder == currentOrder+1
}
