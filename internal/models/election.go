package models

type Election struct {
	Id               uint
	Title            string
	Description      string
	StartTimestamp   int64  //unix timestamp at which registration may begin
	EndTimestamp     *int64 //optional unix timestamp at which voting is expected to end
	Phase            Phase
	LedgerElectionId *int64 //id assigned by the ledger, nil until the ledger confirms creation
}

// IsActive reports whether the election occupies a non-terminal phase.
func (election *Election) IsActive() bool {
	return !election.Phase.IsTerminal()
}
