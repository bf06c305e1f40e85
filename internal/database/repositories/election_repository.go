package repositories

import (
	"gorm.io/gorm"

	db_models "github.com/openballot/VotingServer/internal/database/models"
	mapping "github.com/openballot/VotingServer/internal/mapping"
	models "github.com/openballot/VotingServer/internal/models"
)

type ElectionRepository interface {
	Insert(election *models.Election) error
	GetById(id uint) (*models.Election, error)
	GetActiveElection() (*models.Election, error)
	GetLatestElection() (*models.Election, error)
	GetPendingElections() ([]*models.Election, error)
	UpdatePhase(id uint, from models.Phase, to models.Phase) (bool, error)
	MarkEnded(id uint) (bool, error)
	SetLedgerElectionId(id uint, ledgerElectionId int64) error
	Delete(id uint) error
}

type ElectionRepositoryImpl struct {
	db *gorm.DB
}

var GlobalElectionRepository ElectionRepository = nil

func InitializeGlobalElectionRepository(db *gorm.DB) error {
	if GlobalElectionRepository != nil {
		return nil
	}

	GlobalElectionRepository = NewElectionRepositoryImpl(db)
	return nil
}

func NewElectionRepositoryImpl(db *gorm.DB) *ElectionRepositoryImpl {
	return &ElectionRepositoryImpl{db: db}
}

func (repo *ElectionRepositoryImpl) Insert(election *models.Election) error {
	electionDB := mapping.ElectionToElectionDB(election)

	if err := repo.db.Create(electionDB).Error; err != nil {
		return err
	}

	election.Id = electionDB.Id
	return nil
}

func (repo *ElectionRepositoryImpl) GetById(id uint) (*models.Election, error) {
	electionDB := &db_models.ElectionDB{}
	result := repo.db.Where("id = ?", id).Find(electionDB)

	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		return nil, nil
	}

	return mapping.ElectionDBToElection(electionDB), nil
}

// GetActiveElection returns the latest election in any non terminal phase,
// nil when every election has ended.
func (repo *ElectionRepositoryImpl) GetActiveElection() (*models.Election, error) {
	electionDB := &db_models.ElectionDB{}
	result := repo.db.Where("phase <> ?", string(models.PhaseEnded)).
		Order("created_at DESC").
		Limit(1).
		Find(electionDB)

	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		return nil, nil
	}

	return mapping.ElectionDBToElection(electionDB), nil
}

func (repo *ElectionRepositoryImpl) GetLatestElection() (*models.Election, error) {
	electionDB := &db_models.ElectionDB{}
	result := repo.db.Order("created_at DESC").Limit(1).Find(electionDB)

	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		return nil, nil
	}

	return mapping.ElectionDBToElection(electionDB), nil
}

func (repo *ElectionRepositoryImpl) GetPendingElections() ([]*models.Election, error) {
	var electionsDB []*db_models.ElectionDB
	result := repo.db.Where("phase = ?", string(models.PhasePending)).
		Order("created_at ASC").
		Find(&electionsDB)

	if result.Error != nil {
		return nil, result.Error
	}

	elections := make([]*models.Election, len(electionsDB))
	for idx, electionDB := range electionsDB {
		elections[idx] = mapping.ElectionDBToElection(electionDB)
	}

	return elections, nil
}

// UpdatePhase moves the election from one phase to another with a
// compare-and-swap on the source phase. Returns false when the election
// was no longer in the source phase, so concurrent transitions lose
// cleanly instead of overwriting each other.
func (repo *ElectionRepositoryImpl) UpdatePhase(id uint, from models.Phase, to models.Phase) (bool, error) {
	result := repo.db.Model(&db_models.ElectionDB{}).
		Where("id = ? AND phase = ?", id, string(from)).
		Update("phase", string(to))

	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

// MarkEnded forces the election into the ended phase from whatever
// non terminal phase it currently occupies.
func (repo *ElectionRepositoryImpl) MarkEnded(id uint) (bool, error) {
	result := repo.db.Model(&db_models.ElectionDB{}).
		Where("id = ? AND phase <> ?", id, string(models.PhaseEnded)).
		Update("phase", string(models.PhaseEnded))

	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

func (repo *ElectionRepositoryImpl) SetLedgerElectionId(id uint, ledgerElectionId int64) error {
	return repo.db.Model(&db_models.ElectionDB{}).
		Where("id = ?", id).
		Update("ledger_election_id", ledgerElectionId).Error
}

// Delete removes the election and all of its candidates in one transaction.
func (repo *ElectionRepositoryImpl) Delete(id uint) error {
	return repo.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("election_id = ?", id).Delete(&db_models.CandidateDB{}).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", id).Delete(&db_models.ElectionDB{}).Error
	})
}
