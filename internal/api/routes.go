package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

func (server *Server) setupRoutes() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/health", server.handleHealth).Methods(http.MethodGet)

	router.HandleFunc("/api/election", server.handleCreateElection).Methods(http.MethodPost)
	router.HandleFunc("/api/election/current", server.handleCurrentElection).Methods(http.MethodGet)
	router.HandleFunc("/api/election/start-voting", server.handleStartVoting).Methods(http.MethodPost)
	router.HandleFunc("/api/election/start-result", server.handleStartResult).Methods(http.MethodPost)
	router.HandleFunc("/api/election/end", server.handleEndElection).Methods(http.MethodPost)
	router.HandleFunc("/api/election/{id:[0-9]+}", server.handleDeleteElection).Methods(http.MethodDelete)

	router.HandleFunc("/api/candidate/register", server.handleRegisterCandidate).Methods(http.MethodPost)
	router.HandleFunc("/api/candidate/list", server.handleListCandidates).Methods(http.MethodGet)
	router.HandleFunc("/api/candidate/check/{walletAddress}", server.handleCheckCandidate).Methods(http.MethodGet)

	router.HandleFunc("/api/vote", server.handleCastVote).Methods(http.MethodPost)
	router.HandleFunc("/api/results", server.handleResults).Methods(http.MethodGet)

	return router
}
