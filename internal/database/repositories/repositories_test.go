package repositories_test

import (
	"testing"

	db_connection "github.com/openballot/VotingServer/internal/database/connection"
	repositories "github.com/openballot/VotingServer/internal/database/repositories"
)

func setupTestRepositories(t *testing.T) (repositories.ElectionRepository, repositories.CandidateRepository) {
	t.Helper()

	db, err := db_connection.GetDatabaseConnection(":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	return repositories.NewElectionRepositoryImpl(db), repositories.NewCandidateRepositoryImpl(db)
}
