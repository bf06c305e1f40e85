package elections

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	repositories "github.com/openballot/VotingServer/internal/database/repositories"
	ledger "github.com/openballot/VotingServer/internal/ledger"
	models "github.com/openballot/VotingServer/internal/models"
)

// Engine validates and executes election phase transitions, keeping the
// store and the external ledger in agreement. Within a request the steps
// are strictly sequential: store write, ledger call, store commit or
// compensate.
type Engine struct {
	elections repositories.ElectionRepository
	ledger    ledger.Client
	logger    zerolog.Logger
}

func NewEngine(elections repositories.ElectionRepository, ledgerClient ledger.Client, logger zerolog.Logger) *Engine {
	return &Engine{
		elections: elections,
		ledger:    ledgerClient,
		logger:    logger.With().Str("component", "election_engine").Logger(),
	}
}

// Create inserts a new election in the pending phase, then registers it on
// the ledger. If the ledger rejects it the stored row is deleted again;
// the store must never retain an election the ledger refused.
func (engine *Engine) Create(ctx context.Context, title string, description string, startTimestamp int64, endTimestamp *int64) (*models.Election, error) {
	if endTimestamp != nil && *endTimestamp <= startTimestamp {
		return nil, ErrInvalidEndTime
	}

	active, err := engine.elections.GetActiveElection()
	if err != nil {
		return nil, fmt.Errorf("failed to check for active election: %w", err)
	}

	if active != nil {
		return nil, ErrElectionActive
	}

	election := &models.Election{
		Title:          title,
		Description:    description,
		StartTimestamp: startTimestamp,
		EndTimestamp:   endTimestamp,
		Phase:          models.PhasePending,
	}

	if err := engine.elections.Insert(election); err != nil {
		return nil, fmt.Errorf("failed to insert election: %w", err)
	}

	ledgerElectionId, receipt, err := engine.ledger.CreateElection(ctx)
	if err != nil || !receipt.Succeeded() {
		engine.compensateCreate(election.Id)

		if err == nil {
			err = fmt.Errorf("ledger rejected election creation (tx %s)", receipt.TxHash)
		}

		return nil, fmt.Errorf("failed to create election on ledger: %w", err)
	}

	if err := engine.elections.SetLedgerElectionId(election.Id, ledgerElectionId); err != nil {
		return nil, fmt.Errorf("failed to record ledger election id: %w", err)
	}

	election.LedgerElectionId = &ledgerElectionId

	engine.logger.Info().
		Uint("election_id", election.Id).
		Int64("ledger_election_id", ledgerElectionId).
		Str("title", title).
		Msg("election created")

	return election, nil
}

func (engine *Engine) compensateCreate(electionId uint) {
	if err := engine.elections.Delete(electionId); err != nil {
		engine.logger.Error().
			Err(err).
			Uint("election_id", electionId).
			Msg("failed to delete election after ledger rejection")
	}
}

// StartVoting moves the active election from registration to voting. The
// ledger call happens first; if it fails the phase is not advanced.
func (engine *Engine) StartVoting(ctx context.Context) (*models.Election, error) {
	return engine.advance(ctx, models.PhaseRegistration, models.PhaseVoting, engine.ledger.StartVoting)
}

// StartResult moves the active election from voting to result, closing
// voting on the ledger first. Same failure policy as StartVoting.
func (engine *Engine) StartResult(ctx context.Context) (*models.Election, error) {
	return engine.advance(ctx, models.PhaseVoting, models.PhaseResult, engine.ledger.EndVoting)
}

func (engine *Engine) advance(ctx context.Context, from models.Phase, to models.Phase, ledgerOp func(context.Context) (*ledger.Receipt, error)) (*models.Election, error) {
	election, err := engine.elections.GetActiveElection()
	if err != nil {
		return nil, fmt.Errorf("failed to load active election: %w", err)
	}

	if election == nil {
		return nil, ErrNoActiveElection
	}

	if election.Phase != from {
		return nil, &InvalidPhaseTransitionError{Current: election.Phase, Requested: to}
	}

	receipt, err := ledgerOp(ctx)
	if err != nil {
		return nil, fmt.Errorf("ledger refused transition to %s: %w", to, err)
	}

	if !receipt.Succeeded() {
		return nil, fmt.Errorf("ledger transition to %s reverted (tx %s)", to, receipt.TxHash)
	}

	updated, err := engine.elections.UpdatePhase(election.Id, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to persist phase %s: %w", to, err)
	}

	if !updated {
		// A concurrent request won the compare-and-swap.
		return nil, &InvalidPhaseTransitionError{Current: election.Phase, Requested: to}
	}

	election.Phase = to

	engine.logger.Info().
		Uint("election_id", election.Id).
		Str("phase", string(to)).
		Str("tx_hash", receipt.TxHash).
		Msg("election phase advanced")

	return election, nil
}

// EndElection marks the active election ended. Ending is an administrative
// action that must not be blocked by ledger unavailability: a failed
// ledger call is logged and the local phase still advances.
func (engine *Engine) EndElection(ctx context.Context) (*models.Election, error) {
	election, err := engine.elections.GetActiveElection()
	if err != nil {
		return nil, fmt.Errorf("failed to load active election: %w", err)
	}

	if election == nil {
		return nil, ErrNoActiveElection
	}

	if election.LedgerElectionId != nil {
		receipt, err := engine.ledger.EndElection(ctx)
		if err != nil {
			engine.logger.Warn().
				Err(err).
				Uint("election_id", election.Id).
				Msg("ledger end election failed, ending locally anyway")
		} else if !receipt.Succeeded() {
			engine.logger.Warn().
				Uint("election_id", election.Id).
				Str("tx_hash", receipt.TxHash).
				Msg("ledger end election reverted, ending locally anyway")
		}
	}

	if _, err := engine.elections.MarkEnded(election.Id); err != nil {
		return nil, fmt.Errorf("failed to mark election ended: %w", err)
	}

	election.Phase = models.PhaseEnded

	engine.logger.Info().
		Uint("election_id", election.Id).
		Msg("election ended")

	return election, nil
}

// Delete hard-deletes an election and its candidates. Administrative
// override, the ledger is not involved.
func (engine *Engine) Delete(electionId uint) error {
	election, err := engine.elections.GetById(electionId)
	if err != nil {
		return fmt.Errorf("failed to load election: %w", err)
	}

	if election == nil {
		return ErrElectionNotFound
	}

	if err := engine.elections.Delete(electionId); err != nil {
		return fmt.Errorf("failed to delete election: %w", err)
	}

	engine.logger.Info().
		Uint("election_id", electionId).
		Msg("election deleted")

	return nil
}

// Current returns the latest non-ended election, nil when there is none.
func (engine *Engine) Current() (*models.Election, error) {
	return engine.elections.GetActiveElection()
}
