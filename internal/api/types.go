package api

import models "github.com/openballot/VotingServer/internal/models"

type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

type CreateElectionRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	StartTime   int64  `json:"startTime"`
	EndTime     *int64 `json:"endTime,omitempty"`
}

type ElectionResponse struct {
	Id               uint   `json:"id"`
	Title            string `json:"title"`
	Description      string `json:"description"`
	StartTime        int64  `json:"startTime"`
	EndTime          *int64 `json:"endTime,omitempty"`
	Phase            string `json:"phase"`
	LedgerElectionId *int64 `json:"ledgerElectionId,omitempty"`
}

type CandidateResponse struct {
	Id            uint   `json:"id"`
	Name          string `json:"name"`
	Party         string `json:"party"`
	Slogan        string `json:"slogan"`
	LogoUrl       string `json:"logoUrl"`
	WalletAddress string `json:"walletAddress"`
	Status        string `json:"status"`
}

type CurrentElectionResponse struct {
	Phase      string              `json:"phase"`
	Election   *ElectionResponse   `json:"election,omitempty"`
	Candidates []CandidateResponse `json:"candidates"`
}

type RegistrationResponse struct {
	Candidate CandidateResponse `json:"candidate"`
	TxHash    string            `json:"txHash"`
}

type CastVoteRequest struct {
	CandidateWallet string `json:"candidateWallet"`
}

type VoteResponse struct {
	TxHash string `json:"txHash"`
}

type ResultEntry struct {
	Candidate CandidateResponse `json:"candidate"`
	Votes     uint64            `json:"votes"`
}

func electionResponse(election *models.Election) *ElectionResponse {
	return &ElectionResponse{
		Id:               election.Id,
		Title:            election.Title,
		Description:      election.Description,
		StartTime:        election.StartTimestamp,
		EndTime:          election.EndTimestamp,
		Phase:            string(election.Phase),
		LedgerElectionId: election.LedgerElectionId,
	}
}

func candidateResponse(candidate *models.Candidate) CandidateResponse {
	return CandidateResponse{
		Id:            candidate.Id,
		Name:          candidate.Name,
		Party:         candidate.Party,
		Slogan:        candidate.Slogan,
		LogoUrl:       candidate.LogoUrl,
		WalletAddress: candidate.WalletAddress,
		Status:        string(candidate.Status),
	}
}

func candidateResponses(candidates []*models.Candidate) []CandidateResponse {
	responses := make([]CandidateResponse, len(candidates))
	for idx, candidate := range candidates {
		responses[idx] = candidateResponse(candidate)
	}

	return responses
}
