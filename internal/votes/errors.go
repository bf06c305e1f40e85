package votes

import "errors"

var ErrVotingClosed = errors.New("no election is currently in the voting phase")
var ErrCandidateNotVotable = errors.New("candidate is not confirmed for this election")
var ErrResultsNotReady = errors.New("election is not in the result phase")
