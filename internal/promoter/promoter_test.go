package promoter_test

import (
	"testing"
	"time"

	"github.com/rs/zerolog"

	db_connection "github.com/openballot/VotingServer/internal/database/connection"
	repositories "github.com/openballot/VotingServer/internal/database/repositories"
	models "github.com/openballot/VotingServer/internal/models"
	promoter "github.com/openballot/VotingServer/internal/promoter"
)

func setupPromoter(t *testing.T) (*promoter.Promoter, repositories.ElectionRepository) {
	t.Helper()

	db, err := db_connection.GetDatabaseConnection(":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	electionRepo := repositories.NewElectionRepositoryImpl(db)

	return promoter.NewPromoter(electionRepo, 30*time.Second, zerolog.Nop()), electionRepo
}

func insertPendingElection(t *testing.T, electionRepo repositories.ElectionRepository, startTimestamp int64) *models.Election {
	t.Helper()

	election := &models.Election{
		Title:          "Council",
		StartTimestamp: startTimestamp,
		Phase:          models.PhasePending,
	}

	if err := electionRepo.Insert(election); err != nil {
		t.Fatalf("failed to insert election: %v", err)
	}

	return election
}

func TestTickPromotesElapsedElections(t *testing.T) {
	phasePromoter, electionRepo := setupPromoter(t)

	now := time.Unix(1700000000, 0)
	phasePromoter.SetClock(func() time.Time { return now })

	election := insertPendingElection(t, electionRepo, now.Unix()-60)

	if err := phasePromoter.Tick(); err != nil {
		t.Fatalf("tick failed: %v", err)
	}

	reloaded, err := electionRepo.GetById(election.Id)
	if err != nil {
		t.Fatalf("failed to reload election: %v", err)
	}

	if reloaded.Phase != models.PhaseRegistration {
		t.Fatalf("expected registration phase, got %q", reloaded.Phase)
	}
}

func TestTickSkipsFutureElections(t *testing.T) {
	phasePromoter, electionRepo := setupPromoter(t)

	now := time.Unix(1700000000, 0)
	phasePromoter.SetClock(func() time.Time { return now })

	election := insertPendingElection(t, electionRepo, now.Unix()+3600)

	if err := phasePromoter.Tick(); err != nil {
		t.Fatalf("tick failed: %v", err)
	}

	reloaded, err := electionRepo.GetById(election.Id)
	if err != nil {
		t.Fatalf("failed to reload election: %v", err)
	}

	if reloaded.Phase != models.PhasePending {
		t.Fatalf("expected election to stay pending, got %q", reloaded.Phase)
	}
}

func TestTickIsIdempotent(t *testing.T) {
	phasePromoter, electionRepo := setupPromoter(t)

	now := time.Unix(1700000000, 0)
	phasePromoter.SetClock(func() time.Time { return now })

	election := insertPendingElection(t, electionRepo, now.Unix()-60)

	if err := phasePromoter.Tick(); err != nil {
		t.Fatalf("first tick failed: %v", err)
	}

	if err := phasePromoter.Tick(); err != nil {
		t.Fatalf("second tick failed: %v", err)
	}

	reloaded, err := electionRepo.GetById(election.Id)
	if err != nil {
		t.Fatalf("failed to reload election: %v", err)
	}

	if reloaded.Phase != models.PhaseRegistration {
		t.Fatalf("expected registration phase after repeated ticks, got %q", reloaded.Phase)
	}
}

func TestTickNeverTouchesLaterPhases(t *testing.T) {
	phasePromoter, electionRepo := setupPromoter(t)

	now := time.Unix(1700000000, 0)
	phasePromoter.SetClock(func() time.Time { return now })

	election := &models.Election{
		Title:          "Council",
		StartTimestamp: now.Unix() - 60,
		Phase:          models.PhaseVoting,
	}

	if err := electionRepo.Insert(election); err != nil {
		t.Fatalf("failed to insert election: %v", err)
	}

	if err := phasePromoter.Tick(); err != nil {
		t.Fatalf("tick failed: %v", err)
	}

	reloaded, err := electionRepo.GetById(election.Id)
	if err != nil {
		t.Fatalf("failed to reload election: %v", err)
	}

	if reloaded.Phase != models.PhaseVoting {
		t.Fatalf("expected voting phase to be untouched, got %q", reloaded.Phase)
	}
}

func TestStartStop(t *testing.T) {
	phasePromoter, _ := setupPromoter(t)

	phasePromoter.Start()
	phasePromoter.Start()

	phasePromoter.Stop()
	phasePromoter.Stop()
}
