package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	candidates "github.com/openballot/VotingServer/internal/candidates"
	elections "github.com/openballot/VotingServer/internal/elections"
	models "github.com/openballot/VotingServer/internal/models"
	votes "github.com/openballot/VotingServer/internal/votes"
)

const maxLogoUploadBytes = 10 << 20

func (server *Server) writeJSON(w http.ResponseWriter, status int, response *APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		server.logger.Error().Err(err).Msg("failed to encode response")
	}
}

func (server *Server) writeData(w http.ResponseWriter, status int, message string, data any) {
	server.writeJSON(w, status, &APIResponse{Success: true, Message: message, Data: data})
}

func (server *Server) writeError(w http.ResponseWriter, err error) {
	server.writeJSON(w, statusForError(err), &APIResponse{Success: false, Error: err.Error()})
}

// statusForError maps workflow errors onto HTTP statuses: local
// validation failures are the client's fault, everything else is ours.
func statusForError(err error) int {
	var invalidTransition *elections.InvalidPhaseTransitionError
	if errors.As(err, &invalidTransition) {
		return http.StatusBadRequest
	}

	switch {
	case errors.Is(err, elections.ErrElectionActive),
		errors.Is(err, elections.ErrNoActiveElection),
		errors.Is(err, elections.ErrInvalidEndTime),
		errors.Is(err, candidates.ErrNoActiveRegistration),
		errors.Is(err, candidates.ErrMissingAsset),
		errors.Is(err, candidates.ErrDuplicateRegistration),
		errors.Is(err, candidates.ErrDuplicateOnLedger),
		errors.Is(err, votes.ErrVotingClosed),
		errors.Is(err, votes.ErrCandidateNotVotable),
		errors.Is(err, votes.ErrResultsNotReady):
		return http.StatusBadRequest
	case errors.Is(err, elections.ErrElectionNotFound):
		return http.StatusNotFound
	}

	return http.StatusInternalServerError
}

func (server *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (server *Server) handleCreateElection(w http.ResponseWriter, r *http.Request) {
	var request CreateElectionRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		server.writeJSON(w, http.StatusBadRequest, &APIResponse{Success: false, Error: "invalid request body"})
		return
	}

	if request.Title == "" || request.StartTime == 0 {
		server.writeJSON(w, http.StatusBadRequest, &APIResponse{Success: false, Error: "title and startTime are required"})
		return
	}

	election, err := server.engine.Create(r.Context(), request.Title, request.Description, request.StartTime, request.EndTime)
	if err != nil {
		server.writeError(w, err)
		return
	}

	server.writeData(w, http.StatusCreated, "election created", electionResponse(election))
}

func (server *Server) handleCurrentElection(w http.ResponseWriter, r *http.Request) {
	election, err := server.engine.Current()
	if err != nil {
		server.writeError(w, err)
		return
	}

	if election == nil {
		server.writeData(w, http.StatusOK, "", &CurrentElectionResponse{
			Phase:      "none",
			Candidates: []CandidateResponse{},
		})
		return
	}

	response := &CurrentElectionResponse{
		Phase:      string(election.Phase),
		Election:   electionResponse(election),
		Candidates: []CandidateResponse{},
	}

	// Candidate list is hidden once results are being computed.
	if election.Phase != models.PhaseResult {
		electionCandidates, err := server.registrar.ListConfirmed(election.Id)
		if err != nil {
			server.writeError(w, err)
			return
		}

		response.Candidates = candidateResponses(electionCandidates)
	}

	server.writeData(w, http.StatusOK, "", response)
}

func (server *Server) handleStartVoting(w http.ResponseWriter, r *http.Request) {
	election, err := server.engine.StartVoting(r.Context())
	if err != nil {
		server.writeError(w, err)
		return
	}

	server.writeData(w, http.StatusOK, "voting phase started", electionResponse(election))
}

func (server *Server) handleStartResult(w http.ResponseWriter, r *http.Request) {
	election, err := server.engine.StartResult(r.Context())
	if err != nil {
		server.writeError(w, err)
		return
	}

	server.writeData(w, http.StatusOK, "result phase started", electionResponse(election))
}

func (server *Server) handleEndElection(w http.ResponseWriter, r *http.Request) {
	election, err := server.engine.EndElection(r.Context())
	if err != nil {
		server.writeError(w, err)
		return
	}

	server.writeData(w, http.StatusOK, "election ended", electionResponse(election))
}

func (server *Server) handleDeleteElection(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		server.writeJSON(w, http.StatusBadRequest, &APIResponse{Success: false, Error: "invalid election id"})
		return
	}

	if err := server.engine.Delete(uint(id)); err != nil {
		server.writeError(w, err)
		return
	}

	server.writeData(w, http.StatusOK, "election deleted", nil)
}

func (server *Server) handleRegisterCandidate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxLogoUploadBytes); err != nil {
		server.writeJSON(w, http.StatusBadRequest, &APIResponse{Success: false, Error: "invalid multipart form"})
		return
	}

	request := &candidates.RegistrationRequest{
		Name:          r.FormValue("name"),
		Party:         r.FormValue("party"),
		Slogan:        r.FormValue("slogan"),
		WalletAddress: r.FormValue("walletAddress"),
	}

	if request.Name == "" || request.Party == "" || request.WalletAddress == "" {
		server.writeJSON(w, http.StatusBadRequest, &APIResponse{Success: false, Error: "name, party and walletAddress are required"})
		return
	}

	logo, logoHeader, err := r.FormFile("logo")
	if err == nil {
		defer logo.Close()
		request.Logo = io.Reader(logo)
		request.LogoFileName = logoHeader.Filename
	}

	result, err := server.registrar.Register(r.Context(), request)
	if err != nil {
		server.writeError(w, err)
		return
	}

	server.writeData(w, http.StatusCreated, "candidate registered", &RegistrationResponse{
		Candidate: candidateResponse(result.Candidate),
		TxHash:    result.TxHash,
	})
}

func (server *Server) handleListCandidates(w http.ResponseWriter, r *http.Request) {
	electionId, err := strconv.ParseUint(r.URL.Query().Get("electionId"), 10, 32)
	if err != nil {
		server.writeJSON(w, http.StatusBadRequest, &APIResponse{Success: false, Error: "electionId parameter is required"})
		return
	}

	electionCandidates, err := server.registrar.ListConfirmed(uint(electionId))
	if err != nil {
		server.writeError(w, err)
		return
	}

	server.writeData(w, http.StatusOK, "", candidateResponses(electionCandidates))
}

func (server *Server) handleCheckCandidate(w http.ResponseWriter, r *http.Request) {
	candidate, err := server.registrar.Status(mux.Vars(r)["walletAddress"])
	if err != nil {
		server.writeError(w, err)
		return
	}

	if candidate == nil {
		server.writeData(w, http.StatusOK, "", map[string]bool{"registered": false})
		return
	}

	server.writeData(w, http.StatusOK, "", candidateResponse(candidate))
}

func (server *Server) handleCastVote(w http.ResponseWriter, r *http.Request) {
	var request CastVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		server.writeJSON(w, http.StatusBadRequest, &APIResponse{Success: false, Error: "invalid request body"})
		return
	}

	if request.CandidateWallet == "" {
		server.writeJSON(w, http.StatusBadRequest, &APIResponse{Success: false, Error: "candidateWallet is required"})
		return
	}

	txHash, err := server.caster.Cast(r.Context(), request.CandidateWallet)
	if err != nil {
		server.writeError(w, err)
		return
	}

	server.writeData(w, http.StatusOK, "vote cast", &VoteResponse{TxHash: txHash})
}

func (server *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	results, err := server.caster.Results(r.Context())
	if err != nil {
		server.writeError(w, err)
		return
	}

	entries := make([]ResultEntry, len(results))
	for idx, result := range results {
		entries[idx] = ResultEntry{
			Candidate: candidateResponse(result.Candidate),
			Votes:     result.Votes,
		}
	}

	server.writeData(w, http.StatusOK, "", entries)
}
