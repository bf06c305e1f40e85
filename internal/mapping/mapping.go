package mapping

import (
	db_models "github.com/openballot/VotingServer/internal/database/models"
	models "github.com/openballot/VotingServer/internal/models"
)

func ElectionToElectionDB(election *models.Election) *db_models.ElectionDB {
	return &db_models.ElectionDB{
		Id:               election.Id,
		Title:            election.Title,
		Description:      election.Description,
		StartTimestamp:   election.StartTimestamp,
		EndTimestamp:     election.EndTimestamp,
		Phase:            string(election.Phase),
		LedgerElectionId: election.LedgerElectionId,
	}
}

func ElectionDBToElection(electionDB *db_models.ElectionDB) *models.Election {
	return &models.Election{
		Id:               electionDB.Id,
		Title:            electionDB.Title,
		Description:      electionDB.Description,
		StartTimestamp:   electionDB.StartTimestamp,
		EndTimestamp:     electionDB.EndTimestamp,
		Phase:            models.Phase(electionDB.Phase),
		LedgerElectionId: electionDB.LedgerElectionId,
	}
}

func CandidateToCandidateDB(candidate *models.Candidate) *db_models.CandidateDB {
	return &db_models.CandidateDB{
		Id:            candidate.Id,
		Name:          candidate.Name,
		Party:         candidate.Party,
		Slogan:        candidate.Slogan,
		LogoUrl:       candidate.LogoUrl,
		LogoAssetId:   candidate.LogoAssetId,
		WalletAddress: models.NormalizeWalletAddress(candidate.WalletAddress),
		ElectionId:    candidate.ElectionId,
		Status:        string(candidate.Status),
	}
}

func CandidateDBToCandidate(candidateDB *db_models.CandidateDB) *models.Candidate {
	return &models.Candidate{
		Id:            candidateDB.Id,
		Name:          candidateDB.Name,
		Party:         candidateDB.Party,
		Slogan:        candidateDB.Slogan,
		LogoUrl:       candidateDB.LogoUrl,
		LogoAssetId:   candidateDB.LogoAssetId,
		WalletAddress: candidateDB.WalletAddress,
		ElectionId:    candidateDB.ElectionId,
		Status:        models.CandidateStatus(candidateDB.Status),
	}
}

func CandidatesDBToCandidates(candidatesDB []*db_models.CandidateDB) []*models.Candidate {
	candidates := make([]*models.Candidate, len(candidatesDB))
	for idx, candidateDB := range candidatesDB {
		candidates[idx] = CandidateDBToCandidate(candidateDB)
	}

	return candidates
}
