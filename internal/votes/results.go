package votes

import (
	"context"
	"fmt"
	"sort"

	models "github.com/openballot/VotingServer/internal/models"
)

// Results merges confirmed candidates with the ledger's tallies for the
// active election. Only reachable in the result phase. A failed ledger
// read degrades to zero votes rather than hiding candidates.
func (caster *Caster) Results(ctx context.Context) ([]*models.CandidateResult, error) {
	election, err := caster.elections.GetActiveElection()
	if err != nil {
		return nil, fmt.Errorf("failed to load active election: %w", err)
	}

	if election == nil || election.Phase != models.PhaseResult {
		return nil, ErrResultsNotReady
	}

	candidates, err := caster.candidates.GetConfirmedByElection(election.Id)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidates: %w", err)
	}

	votesByAddress := make(map[string]uint64)
	if election.LedgerElectionId != nil {
		tallies, err := caster.ledger.CandidatesWithVotes(ctx, *election.LedgerElectionId)
		if err != nil {
			caster.logger.Warn().
				Err(err).
				Uint("election_id", election.Id).
				Msg("ledger tally read failed, reporting zero votes")
		}

		for _, tally := range tallies {
			votesByAddress[models.NormalizeWalletAddress(tally.CandidateAddress)] = tally.VoteCount
		}
	}

	results := make([]*models.CandidateResult, len(candidates))
	for idx, candidate := range candidates {
		results[idx] = &models.CandidateResult{
			Candidate: candidate,
			Votes:     votesByAddress[candidate.WalletAddress],
		}
	}

	// Stable sort keeps insertion order between tied candidates.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Votes > results[j].Votes
	})

	return results, nil
}
