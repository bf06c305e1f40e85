package repositories

import (
	"gorm.io/gorm"

	db_models "github.com/openballot/VotingServer/internal/database/models"
	mapping "github.com/openballot/VotingServer/internal/mapping"
	models "github.com/openballot/VotingServer/internal/models"
)

type CandidateRepository interface {
	Insert(candidate *models.Candidate) error
	GetById(id uint) (*models.Candidate, error)
	GetByWalletAndElection(walletAddress string, electionId uint) (*models.Candidate, error)
	GetByWallet(walletAddress string) ([]*models.Candidate, error)
	GetByElection(electionId uint) ([]*models.Candidate, error)
	GetConfirmedByElection(electionId uint) ([]*models.Candidate, error)
	UpdateStatus(id uint, status models.CandidateStatus) error
	Delete(id uint) error
}

type CandidateRepositoryImpl struct {
	db *gorm.DB
}

var GlobalCandidateRepository CandidateRepository = nil

func InitializeGlobalCandidateRepository(db *gorm.DB) error {
	if GlobalCandidateRepository != nil {
		return nil
	}

	GlobalCandidateRepository = NewCandidateRepositoryImpl(db)
	return nil
}

func NewCandidateRepositoryImpl(db *gorm.DB) *CandidateRepositoryImpl {
	return &CandidateRepositoryImpl{db: db}
}

func (repo *CandidateRepositoryImpl) Insert(candidate *models.Candidate) error {
	candidateDB := mapping.CandidateToCandidateDB(candidate)

	if err := repo.db.Create(candidateDB).Error; err != nil {
		return err
	}

	candidate.Id = candidateDB.Id
	return nil
}

func (repo *CandidateRepositoryImpl) GetById(id uint) (*models.Candidate, error) {
	candidateDB := &db_models.CandidateDB{}
	result := repo.db.Where("id = ?", id).Find(candidateDB)

	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		return nil, nil
	}

	return mapping.CandidateDBToCandidate(candidateDB), nil
}

func (repo *CandidateRepositoryImpl) GetByWalletAndElection(walletAddress string, electionId uint) (*models.Candidate, error) {
	candidateDB := &db_models.CandidateDB{}
	result := repo.db.
		Where("wallet_address = ? AND election_id = ?", models.NormalizeWalletAddress(walletAddress), electionId).
		Find(candidateDB)

	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		return nil, nil
	}

	return mapping.CandidateDBToCandidate(candidateDB), nil
}

func (repo *CandidateRepositoryImpl) GetByWallet(walletAddress string) ([]*models.Candidate, error) {
	var candidatesDB []*db_models.CandidateDB
	result := repo.db.
		Where("wallet_address = ?", models.NormalizeWalletAddress(walletAddress)).
		Order("id ASC").
		Find(&candidatesDB)

	if result.Error != nil {
		return nil, result.Error
	}

	return mapping.CandidatesDBToCandidates(candidatesDB), nil
}

func (repo *CandidateRepositoryImpl) GetByElection(electionId uint) ([]*models.Candidate, error) {
	var candidatesDB []*db_models.CandidateDB
	result := repo.db.
		Where("election_id = ?", electionId).
		Order("id ASC").
		Find(&candidatesDB)

	if result.Error != nil {
		return nil, result.Error
	}

	return mapping.CandidatesDBToCandidates(candidatesDB), nil
}

// GetConfirmedByElection returns confirmed candidates in insertion order.
// Result aggregation depends on this order for stable tie breaking.
func (repo *CandidateRepositoryImpl) GetConfirmedByElection(electionId uint) ([]*models.Candidate, error) {
	var candidatesDB []*db_models.CandidateDB
	result := repo.db.
		Where("election_id = ? AND status = ?", electionId, string(models.CandidateConfirmed)).
		Order("id ASC").
		Find(&candidatesDB)

	if result.Error != nil {
		return nil, result.Error
	}

	return mapping.CandidatesDBToCandidates(candidatesDB), nil
}

func (repo *CandidateRepositoryImpl) UpdateStatus(id uint, status models.CandidateStatus) error {
	return repo.db.Model(&db_models.CandidateDB{}).
		Where("id = ?", id).
		Update("status", string(status)).Error
}

func (repo *CandidateRepositoryImpl) Delete(id uint) error {
	return repo.db.Where("id = ?", id).Delete(&db_models.CandidateDB{}).Error
}
