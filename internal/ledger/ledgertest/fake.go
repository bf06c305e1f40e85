// Package ledgertest provides a deterministic in-memory ledger client for
// exercising the workflows without a real contract.
package ledgertest

import (
	"context"
	"fmt"
	"strings"
	"sync"

	ledger "github.com/openballot/VotingServer/internal/ledger"
)

type FakeClient struct {
	mutex sync.Mutex

	NextElectionId int64
	Tallies        map[int64][]ledger.CandidateVotes
	Registered     map[string]bool

	// Err<Op> makes the corresponding operation fail outright.
	ErrCreateElection    error
	ErrStartVoting       error
	ErrEndVoting         error
	ErrEndElection       error
	ErrRegisterCandidate error
	ErrVote              error
	ErrIsCandidate       error
	ErrTallies           error

	// RevertRegisterCandidate and RevertVote make the transaction mine
	// with a failed receipt instead of erroring.
	RevertRegisterCandidate bool
	RevertVote              bool

	Calls []string

	txCounter int
}

func NewFakeClient() *FakeClient {
	return &FakeClient{
		NextElectionId: 1,
		Tallies:        make(map[int64][]ledger.CandidateVotes),
		Registered:     make(map[string]bool),
	}
}

func (fake *FakeClient) record(call string) {
	fake.Calls = append(fake.Calls, call)
}

func (fake *FakeClient) nextReceipt(ok bool) *ledger.Receipt {
	fake.txCounter++

	status := ledger.ReceiptSuccess
	if !ok {
		status = ledger.ReceiptFailed
	}

	return &ledger.Receipt{
		TxHash: fmt.Sprintf("0xfaketx%04d", fake.txCounter),
		Status: status,
	}
}

func (fake *FakeClient) CreateElection(ctx context.Context) (int64, *ledger.Receipt, error) {
	fake.mutex.Lock()
	defer fake.mutex.Unlock()

	fake.record("createElection")
	if fake.ErrCreateElection != nil {
		return 0, nil, fake.ErrCreateElection
	}

	electionId := fake.NextElectionId
	fake.NextElectionId++
	return electionId, fake.nextReceipt(true), nil
}

func (fake *FakeClient) StartVoting(ctx context.Context) (*ledger.Receipt, error) {
	fake.mutex.Lock()
	defer fake.mutex.Unlock()

	fake.record("startVoting")
	if fake.ErrStartVoting != nil {
		return nil, fake.ErrStartVoting
	}

	return fake.nextReceipt(true), nil
}

func (fake *FakeClient) EndVoting(ctx context.Context) (*ledger.Receipt, error) {
	fake.mutex.Lock()
	defer fake.mutex.Unlock()

	fake.record("endVoting")
	if fake.ErrEndVoting != nil {
		return nil, fake.ErrEndVoting
	}

	return fake.nextReceipt(true), nil
}

func (fake *FakeClient) EndElection(ctx context.Context) (*ledger.Receipt, error) {
	fake.mutex.Lock()
	defer fake.mutex.Unlock()

	fake.record("endElection")
	if fake.ErrEndElection != nil {
		return nil, fake.ErrEndElection
	}

	return fake.nextReceipt(true), nil
}

func (fake *FakeClient) IsCandidate(ctx context.Context, electionId int64, walletAddress string) (bool, error) {
	fake.mutex.Lock()
	defer fake.mutex.Unlock()

	fake.record("isCandidate")
	if fake.ErrIsCandidate != nil {
		return false, fake.ErrIsCandidate
	}

	return fake.Registered[strings.ToLower(walletAddress)], nil
}

func (fake *FakeClient) RegisterCandidate(ctx context.Context, walletAddress string) (*ledger.Receipt, error) {
	fake.mutex.Lock()
	defer fake.mutex.Unlock()

	fake.record("registerCandidate")
	if fake.ErrRegisterCandidate != nil {
		return nil, fake.ErrRegisterCandidate
	}

	if fake.RevertRegisterCandidate {
		return fake.nextReceipt(false), nil
	}

	fake.Registered[strings.ToLower(walletAddress)] = true
	return fake.nextReceipt(true), nil
}

func (fake *FakeClient) Vote(ctx context.Context, candidateAddress string) (*ledger.Receipt, error) {
	fake.mutex.Lock()
	defer fake.mutex.Unlock()

	fake.record("vote")
	if fake.ErrVote != nil {
		return nil, fake.ErrVote
	}

	if fake.RevertVote {
		return fake.nextReceipt(false), nil
	}

	return fake.nextReceipt(true), nil
}

func (fake *FakeClient) CandidatesWithVotes(ctx context.Context, electionId int64) ([]ledger.CandidateVotes, error) {
	fake.mutex.Lock()
	defer fake.mutex.Unlock()

	fake.record("getAllCandidatesWithVotes")
	if fake.ErrTallies != nil {
		return nil, fake.ErrTallies
	}

	return fake.Tallies[electionId], nil
}

func (fake *FakeClient) CurrentElectionId(ctx context.Context) (int64, error) {
	fake.mutex.Lock()
	defer fake.mutex.Unlock()

	fake.record("getCurrentElectionId")
	return fake.NextElectionId - 1, nil
}
