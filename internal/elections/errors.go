package elections

import (
	"errors"
	"fmt"

	models "github.com/openballot/VotingServer/internal/models"
)

var ErrElectionActive = errors.New("another election is already active")
var ErrNoActiveElection = errors.New("no active election")
var ErrElectionNotFound = errors.New("election not found")
var ErrInvalidEndTime = errors.New("end time must be after start time")

// InvalidPhaseTransitionError reports a transition attempted from the
// wrong source phase. It is a local validation failure, nothing needs to
// be rolled back.
type InvalidPhaseTransitionError struct {
	Current   models.Phase
	Requested models.Phase
}

func (err *InvalidPhaseTransitionError) Error() string {
	return fmt.Sprintf("invalid phase transition: election is in phase %q, requested %q", err.Current, err.Requested)
}
