package ledger

import "context"

type ReceiptStatus string

const (
	ReceiptSuccess ReceiptStatus = "success"
	ReceiptFailed  ReceiptStatus = "failed"
)

// Receipt is the normalized outcome of a mined ledger transaction.
type Receipt struct {
	TxHash string
	Status ReceiptStatus
}

func (receipt *Receipt) Succeeded() bool {
	return receipt != nil && receipt.Status == ReceiptSuccess
}

// CandidateVotes is the normalized tally shape returned by the ledger.
// Vote counts are plain integers here, whatever numeric type the
// underlying contract binding produced.
type CandidateVotes struct {
	CandidateAddress string
	VoteCount        uint64
}

// Client wraps the external voting contract. Every operation is fallible
// and potentially slow; implementations must honor the passed context and
// treat timeouts as failures. The client holds no domain state.
type Client interface {
	CreateElection(ctx context.Context) (int64, *Receipt, error)
	StartVoting(ctx context.Context) (*Receipt, error)
	EndVoting(ctx context.Context) (*Receipt, error)
	EndElection(ctx context.Context) (*Receipt, error)
	IsCandidate(ctx context.Context, electionId int64, walletAddress string) (bool, error)
	RegisterCandidate(ctx context.Context, walletAddress string) (*Receipt, error)
	Vote(ctx context.Context, candidateAddress string) (*Receipt, error)
	CandidatesWithVotes(ctx context.Context, electionId int64) ([]CandidateVotes, error)
	CurrentElectionId(ctx context.Context) (int64, error)
}
