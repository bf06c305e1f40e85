package votes

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	repositories "github.com/openballot/VotingServer/internal/database/repositories"
	ledger "github.com/openballot/VotingServer/internal/ledger"
	models "github.com/openballot/VotingServer/internal/models"
)

// Caster gates vote casting on store-side eligibility and forwards the
// irreversible act of voting to the ledger. Votes are not persisted
// locally; the ledger is authoritative for tallies and for one-vote-per-
// voter enforcement.
type Caster struct {
	elections  repositories.ElectionRepository
	candidates repositories.CandidateRepository
	ledger     ledger.Client
	logger     zerolog.Logger
}

func NewCaster(elections repositories.ElectionRepository, candidates repositories.CandidateRepository, ledgerClient ledger.Client, logger zerolog.Logger) *Caster {
	return &Caster{
		elections:  elections,
		candidates: candidates,
		ledger:     ledgerClient,
		logger:     logger.With().Str("component", "vote_caster").Logger(),
	}
}

// Cast casts a vote for the candidate identified by wallet address in the
// active election. Returns the ledger transaction hash on success.
func (caster *Caster) Cast(ctx context.Context, candidateWallet string) (string, error) {
	election, err := caster.elections.GetActiveElection()
	if err != nil {
		return "", fmt.Errorf("failed to load active election: %w", err)
	}

	if election == nil || election.Phase != models.PhaseVoting {
		return "", ErrVotingClosed
	}

	candidateWallet = models.NormalizeWalletAddress(candidateWallet)

	candidate, err := caster.candidates.GetByWalletAndElection(candidateWallet, election.Id)
	if err != nil {
		return "", fmt.Errorf("failed to load candidate: %w", err)
	}

	if candidate == nil || candidate.Status != models.CandidateConfirmed {
		return "", ErrCandidateNotVotable
	}

	receipt, err := caster.ledger.Vote(ctx, candidateWallet)
	if err != nil {
		return "", fmt.Errorf("failed to cast vote on ledger: %w", err)
	}

	if !receipt.Succeeded() {
		return "", fmt.Errorf("ledger rejected vote (tx %s)", receipt.TxHash)
	}

	caster.logger.Info().
		Uint("election_id", election.Id).
		Str("candidate", candidateWallet).
		Str("tx_hash", receipt.TxHash).
		Msg("vote cast")

	return receipt.TxHash, nil
}
