package repositories

import "gorm.io/gorm"

func InitializeGlobalRepositories(db *gorm.DB) error {
	err := InitializeGlobalElectionRepository(db)
	if err != nil {
		return err
	}

	return InitializeGlobalCandidateRepository(db)
}
