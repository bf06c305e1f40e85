package candidates

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	assets "github.com/openballot/VotingServer/internal/assets"
	repositories "github.com/openballot/VotingServer/internal/database/repositories"
	ledger "github.com/openballot/VotingServer/internal/ledger"
	models "github.com/openballot/VotingServer/internal/models"
)

// RegistrationRequest carries everything a candidate submits. Logo is the
// uploaded image stream, LogoFileName its original name.
type RegistrationRequest struct {
	Name          string
	Party         string
	Slogan        string
	WalletAddress string
	Logo          io.Reader
	LogoFileName  string
}

// RegistrationResult is returned on success, TxHash identifying the ledger
// transaction that confirmed the candidate.
type RegistrationResult struct {
	Candidate *models.Candidate
	TxHash    string
}

// Registrar runs the candidate registration workflow: upload the logo,
// insert a pending row, register on the ledger, then confirm. If the
// ledger step fails both the row and the uploaded asset are removed, so
// the store never shows a candidate the ledger does not recognize.
type Registrar struct {
	elections  repositories.ElectionRepository
	candidates repositories.CandidateRepository
	ledger     ledger.Client
	assets     assets.Store
	logger     zerolog.Logger
}

func NewRegistrar(elections repositories.ElectionRepository, candidates repositories.CandidateRepository, ledgerClient ledger.Client, assetStore assets.Store, logger zerolog.Logger) *Registrar {
	return &Registrar{
		elections:  elections,
		candidates: candidates,
		ledger:     ledgerClient,
		assets:     assetStore,
		logger:     logger.With().Str("component", "candidate_registrar").Logger(),
	}
}

func (registrar *Registrar) Register(ctx context.Context, request *RegistrationRequest) (*RegistrationResult, error) {
	election, err := registrar.elections.GetActiveElection()
	if err != nil {
		return nil, fmt.Errorf("failed to load active election: %w", err)
	}

	if election == nil || election.Phase != models.PhaseRegistration {
		return nil, ErrNoActiveRegistration
	}

	if request.Logo == nil {
		return nil, ErrMissingAsset
	}

	walletAddress := models.NormalizeWalletAddress(request.WalletAddress)

	existing, err := registrar.candidates.GetByWalletAndElection(walletAddress, election.Id)
	if err != nil {
		return nil, fmt.Errorf("failed to check for existing candidate: %w", err)
	}

	if existing != nil {
		return nil, ErrDuplicateRegistration
	}

	if election.LedgerElectionId != nil {
		onLedger, err := registrar.ledger.IsCandidate(ctx, *election.LedgerElectionId, walletAddress)
		if err != nil {
			// Read-path degradation: an unreachable ledger must not
			// block registration, the write path below still decides.
			registrar.logger.Warn().
				Err(err).
				Str("wallet", walletAddress).
				Msg("ledger candidate lookup failed, continuing")
		} else if onLedger {
			return nil, ErrDuplicateOnLedger
		}
	}

	asset, err := registrar.assets.Save(request.LogoFileName, request.Logo)
	if err != nil {
		return nil, fmt.Errorf("failed to store logo: %w", err)
	}

	candidate := &models.Candidate{
		Name:          request.Name,
		Party:         request.Party,
		Slogan:        request.Slogan,
		LogoUrl:       asset.Url,
		LogoAssetId:   asset.Id,
		WalletAddress: walletAddress,
		ElectionId:    election.Id,
		Status:        models.CandidatePending,
	}

	if err := registrar.candidates.Insert(candidate); err != nil {
		registrar.deleteAsset(asset.Id)
		return nil, fmt.Errorf("failed to insert candidate: %w", err)
	}

	receipt, err := registrar.ledger.RegisterCandidate(ctx, walletAddress)
	if err != nil || !receipt.Succeeded() {
		registrar.compensate(candidate.Id, asset.Id)

		if err == nil {
			err = fmt.Errorf("ledger rejected candidate registration (tx %s)", receipt.TxHash)
		}

		return nil, fmt.Errorf("failed to register candidate on ledger: %w", err)
	}

	if err := registrar.candidates.UpdateStatus(candidate.Id, models.CandidateConfirmed); err != nil {
		return nil, fmt.Errorf("failed to confirm candidate: %w", err)
	}

	candidate.Status = models.CandidateConfirmed

	registrar.logger.Info().
		Uint("candidate_id", candidate.Id).
		Str("wallet", walletAddress).
		Str("tx_hash", receipt.TxHash).
		Msg("candidate registered")

	return &RegistrationResult{Candidate: candidate, TxHash: receipt.TxHash}, nil
}

// compensate undoes the store write and the asset upload after the ledger
// rejected the registration.
func (registrar *Registrar) compensate(candidateId uint, assetId string) {
	if err := registrar.candidates.Delete(candidateId); err != nil {
		registrar.logger.Error().
			Err(err).
			Uint("candidate_id", candidateId).
			Msg("failed to delete candidate after ledger rejection")
	}

	registrar.deleteAsset(assetId)
}

func (registrar *Registrar) deleteAsset(assetId string) {
	if err := registrar.assets.Delete(assetId); err != nil {
		registrar.logger.Error().
			Err(err).
			Str("asset_id", assetId).
			Msg("failed to delete uploaded logo")
	}
}

// ListConfirmed returns the candidates visible to voters: confirmed rows
// of an election that has not ended.
func (registrar *Registrar) ListConfirmed(electionId uint) ([]*models.Candidate, error) {
	election, err := registrar.elections.GetById(electionId)
	if err != nil {
		return nil, fmt.Errorf("failed to load election: %w", err)
	}

	if election == nil || election.Phase.IsTerminal() {
		return []*models.Candidate{}, nil
	}

	return registrar.candidates.GetConfirmedByElection(electionId)
}

// Status reports whether a wallet is a confirmed candidate in the active
// election.
func (registrar *Registrar) Status(walletAddress string) (*models.Candidate, error) {
	election, err := registrar.elections.GetActiveElection()
	if err != nil {
		return nil, fmt.Errorf("failed to load active election: %w", err)
	}

	if election == nil {
		return nil, nil
	}

	return registrar.candidates.GetByWalletAndElection(models.NormalizeWalletAddress(walletAddress), election.Id)
}
