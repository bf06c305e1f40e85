package models_test

import (
	"testing"

	models "github.com/openballot/VotingServer/internal/models"
)

func TestPhaseNextFollowsLifecycleOrder(t *testing.T) {
	expected := map[models.Phase]models.Phase{
		models.PhasePending:      models.PhaseRegistration,
		models.PhaseRegistration: models.PhaseVoting,
		models.PhaseVoting:       models.PhaseResult,
		models.PhaseResult:       models.PhaseEnded,
	}

	for phase, expectedNext := range expected {
		next, ok := phase.Next()
		if !ok {
			t.Fatalf("expected %q to have a next phase", phase)
		}

		if next != expectedNext {
			t.Fatalf("expected next of %q to be %q, got %q", phase, expectedNext, next)
		}
	}

	if _, ok := models.PhaseEnded.Next(); ok {
		t.Fatalf("ended phase must not have a next phase")
	}
}

func TestPhaseCanTransitionToRejectsSkipsAndReversals(t *testing.T) {
	if models.PhasePending.CanTransitionTo(models.PhaseVoting) {
		t.Fatalf("pending must not skip to voting")
	}

	if models.PhaseVoting.CanTransitionTo(models.PhaseRegistration) {
		t.Fatalf("voting must not move back to registration")
	}

	if models.PhaseEnded.CanTransitionTo(models.PhaseEnded) {
		t.Fatalf("ended is terminal")
	}

	if !models.PhaseRegistration.CanTransitionTo(models.PhaseVoting) {
		t.Fatalf("registration to voting must be allowed")
	}
}

func TestPhaseCanTransitionToAllowsEndingFromAnyActivePhase(t *testing.T) {
	for _, phase := range []models.Phase{models.PhasePending, models.PhaseRegistration, models.PhaseVoting, models.PhaseResult} {
		if !phase.CanTransitionTo(models.PhaseEnded) {
			t.Fatalf("expected %q to allow ending", phase)
		}
	}
}

func TestNormalizeWalletAddress(t *testing.T) {
	normalized := models.NormalizeWalletAddress("  0xABCdef0123 ")
	if normalized != "0xabcdef0123" {
		t.Fatalf("expected normalized address, got %q", normalized)
	}
}
