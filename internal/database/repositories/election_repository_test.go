package repositories_test

import (
	"testing"
	"time"

	models "github.com/openballot/VotingServer/internal/models"
)

func getTestElection() *models.Election {
	return &models.Election{
		Title:          "Council Election",
		Description:    "Annual council election",
		StartTimestamp: time.Now().Unix(),
		Phase:          models.PhasePending,
	}
}

func TestInsertAssignsId(t *testing.T) {
	electionRepo, _ := setupTestRepositories(t)

	election := getTestElection()
	if err := electionRepo.Insert(election); err != nil {
		t.Fatalf("failed to insert election: %v", err)
	}

	if election.Id == 0 {
		t.Fatalf("expected inserted election to receive an id")
	}
}

func TestGetActiveElectionSkipsEnded(t *testing.T) {
	electionRepo, _ := setupTestRepositories(t)

	ended := getTestElection()
	ended.Phase = models.PhaseEnded
	if err := electionRepo.Insert(ended); err != nil {
		t.Fatalf("failed to insert ended election: %v", err)
	}

	active, err := electionRepo.GetActiveElection()
	if err != nil {
		t.Fatalf("failed to get active election: %v", err)
	}

	if active != nil {
		t.Fatalf("expected no active election, got id %d", active.Id)
	}

	pending := getTestElection()
	if err := electionRepo.Insert(pending); err != nil {
		t.Fatalf("failed to insert pending election: %v", err)
	}

	active, err = electionRepo.GetActiveElection()
	if err != nil {
		t.Fatalf("failed to get active election: %v", err)
	}

	if active == nil || active.Id != pending.Id {
		t.Fatalf("expected pending election to be active")
	}
}

func TestUpdatePhaseIsCompareAndSwap(t *testing.T) {
	electionRepo, _ := setupTestRepositories(t)

	election := getTestElection()
	election.Phase = models.PhaseRegistration
	if err := electionRepo.Insert(election); err != nil {
		t.Fatalf("failed to insert election: %v", err)
	}

	updated, err := electionRepo.UpdatePhase(election.Id, models.PhaseRegistration, models.PhaseVoting)
	if err != nil {
		t.Fatalf("failed to update phase: %v", err)
	}

	if !updated {
		t.Fatalf("expected phase update to succeed")
	}

	// Second swap from the same source phase must lose.
	updated, err = electionRepo.UpdatePhase(election.Id, models.PhaseRegistration, models.PhaseVoting)
	if err != nil {
		t.Fatalf("failed to update phase: %v", err)
	}

	if updated {
		t.Fatalf("expected stale phase update to be rejected")
	}

	reloaded, err := electionRepo.GetById(election.Id)
	if err != nil {
		t.Fatalf("failed to reload election: %v", err)
	}

	if reloaded.Phase != models.PhaseVoting {
		t.Fatalf("expected phase voting, got %q", reloaded.Phase)
	}
}

func TestMarkEnded(t *testing.T) {
	electionRepo, _ := setupTestRepositories(t)

	election := getTestElection()
	election.Phase = models.PhaseVoting
	if err := electionRepo.Insert(election); err != nil {
		t.Fatalf("failed to insert election: %v", err)
	}

	ended, err := electionRepo.MarkEnded(election.Id)
	if err != nil {
		t.Fatalf("failed to mark ended: %v", err)
	}

	if !ended {
		t.Fatalf("expected election to be marked ended")
	}

	ended, err = electionRepo.MarkEnded(election.Id)
	if err != nil {
		t.Fatalf("failed to mark ended twice: %v", err)
	}

	if ended {
		t.Fatalf("expected second mark ended to be a no-op")
	}
}

func TestSetLedgerElectionId(t *testing.T) {
	electionRepo, _ := setupTestRepositories(t)

	election := getTestElection()
	if err := electionRepo.Insert(election); err != nil {
		t.Fatalf("failed to insert election: %v", err)
	}

	if err := electionRepo.SetLedgerElectionId(election.Id, 7); err != nil {
		t.Fatalf("failed to set ledger election id: %v", err)
	}

	reloaded, err := electionRepo.GetById(election.Id)
	if err != nil {
		t.Fatalf("failed to reload election: %v", err)
	}

	if reloaded.LedgerElectionId == nil || *reloaded.LedgerElectionId != 7 {
		t.Fatalf("expected ledger election id 7, got %v", reloaded.LedgerElectionId)
	}
}

func TestDeleteCascadesToCandidates(t *testing.T) {
	electionRepo, candidateRepo := setupTestRepositories(t)

	election := getTestElection()
	if err := electionRepo.Insert(election); err != nil {
		t.Fatalf("failed to insert election: %v", err)
	}

	candidate := &models.Candidate{
		Name:          "Alice",
		Party:         "Independents",
		WalletAddress: "0xaaa",
		ElectionId:    election.Id,
		Status:        models.CandidatePending,
	}

	if err := candidateRepo.Insert(candidate); err != nil {
		t.Fatalf("failed to insert candidate: %v", err)
	}

	if err := electionRepo.Delete(election.Id); err != nil {
		t.Fatalf("failed to delete election: %v", err)
	}

	remaining, err := candidateRepo.GetByElection(election.Id)
	if err != nil {
		t.Fatalf("failed to list candidates: %v", err)
	}

	if len(remaining) != 0 {
		t.Fatalf("expected candidates to be deleted with their election, found %d", len(remaining))
	}
}

func TestGetPendingElections(t *testing.T) {
	electionRepo, _ := setupTestRepositories(t)

	pending := getTestElection()
	if err := electionRepo.Insert(pending); err != nil {
		t.Fatalf("failed to insert pending election: %v", err)
	}

	registration := getTestElection()
	registration.Phase = models.PhaseRegistration
	if err := electionRepo.Insert(registration); err != nil {
		t.Fatalf("failed to insert registration election: %v", err)
	}

	elections, err := electionRepo.GetPendingElections()
	if err != nil {
		t.Fatalf("failed to get pending elections: %v", err)
	}

	if len(elections) != 1 || elections[0].Id != pending.Id {
		t.Fatalf("expected only the pending election to be returned")
	}
}
