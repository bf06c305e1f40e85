package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	assets "github.com/openballot/VotingServer/internal/assets"
	candidates "github.com/openballot/VotingServer/internal/candidates"
	db_connection "github.com/openballot/VotingServer/internal/database/connection"
	repositories "github.com/openballot/VotingServer/internal/database/repositories"
	elections "github.com/openballot/VotingServer/internal/elections"
	"github.com/openballot/VotingServer/internal/ledger/ledgertest"
	models "github.com/openballot/VotingServer/internal/models"
	votes "github.com/openballot/VotingServer/internal/votes"
)

type serverFixture struct {
	server    *Server
	elections repositories.ElectionRepository
	ledger    *ledgertest.FakeClient
}

func setupServer(t *testing.T) *serverFixture {
	t.Helper()

	db, err := db_connection.GetDatabaseConnection(":memory:")
	require.NoError(t, err)

	electionRepo := repositories.NewElectionRepositoryImpl(db)
	candidateRepo := repositories.NewCandidateRepositoryImpl(db)
	fakeLedger := ledgertest.NewFakeClient()

	assetStore, err := assets.NewFileStore(t.TempDir(), "/uploads")
	require.NoError(t, err)

	log := zerolog.Nop()
	engine := elections.NewEngine(electionRepo, fakeLedger, log)
	registrar := candidates.NewRegistrar(electionRepo, candidateRepo, fakeLedger, assetStore, log)
	caster := votes.NewCaster(electionRepo, candidateRepo, fakeLedger, log)

	return &serverFixture{
		server:    NewServer(engine, registrar, caster, 0, time.Minute, log),
		elections: electionRepo,
		ledger:    fakeLedger,
	}
}

func (fixture *serverFixture) do(t *testing.T, request *http.Request) (*httptest.ResponseRecorder, *APIResponse) {
	t.Helper()

	recorder := httptest.NewRecorder()
	fixture.server.setupRoutes().ServeHTTP(recorder, request)

	response := &APIResponse{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), response))

	return recorder, response
}

func (fixture *serverFixture) createElection(t *testing.T) {
	t.Helper()

	body, err := json.Marshal(&CreateElectionRequest{
		Title:     "Council",
		StartTime: time.Now().Unix(),
	})
	require.NoError(t, err)

	recorder, _ := fixture.do(t, httptest.NewRequest(http.MethodPost, "/api/election", bytes.NewReader(body)))
	require.Equal(t, http.StatusCreated, recorder.Code)
}

func (fixture *serverFixture) promoteToRegistration(t *testing.T) *models.Election {
	t.Helper()

	election, err := fixture.elections.GetActiveElection()
	require.NoError(t, err)
	require.NotNil(t, election)

	promoted, err := fixture.elections.UpdatePhase(election.Id, models.PhasePending, models.PhaseRegistration)
	require.NoError(t, err)
	require.True(t, promoted)

	election.Phase = models.PhaseRegistration
	return election
}

func registrationForm(t *testing.T, wallet string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	require.NoError(t, writer.WriteField("name", "Alice"))
	require.NoError(t, writer.WriteField("party", "Independents"))
	require.NoError(t, writer.WriteField("slogan", "Forward"))
	require.NoError(t, writer.WriteField("walletAddress", wallet))

	part, err := writer.CreateFormFile("logo", "logo.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("logo bytes"))
	require.NoError(t, err)

	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func TestHealthEndpoint(t *testing.T) {
	fixture := setupServer(t)

	recorder := httptest.NewRecorder()
	fixture.server.setupRoutes().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "OK", recorder.Body.String())
}

func TestCreateElectionEndpoint(t *testing.T) {
	fixture := setupServer(t)

	fixture.createElection(t)

	// A second create while the first is still active must fail.
	body, err := json.Marshal(&CreateElectionRequest{Title: "Second", StartTime: time.Now().Unix()})
	require.NoError(t, err)

	recorder, response := fixture.do(t, httptest.NewRequest(http.MethodPost, "/api/election", bytes.NewReader(body)))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.False(t, response.Success)
	assert.Contains(t, response.Error, "already active")
}

func TestCreateElectionValidatesBody(t *testing.T) {
	fixture := setupServer(t)

	recorder, response := fixture.do(t, httptest.NewRequest(http.MethodPost, "/api/election", bytes.NewReader([]byte(`{}`))))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.False(t, response.Success)
}

func TestCurrentElectionNoneSentinel(t *testing.T) {
	fixture := setupServer(t)

	recorder, response := fixture.do(t, httptest.NewRequest(http.MethodGet, "/api/election/current", nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	data, ok := response.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "none", data["phase"])
}

func TestPhaseTransitionEndpoints(t *testing.T) {
	fixture := setupServer(t)

	fixture.createElection(t)

	// Voting cannot start from pending.
	recorder, response := fixture.do(t, httptest.NewRequest(http.MethodPost, "/api/election/start-voting", nil))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, response.Error, "invalid phase transition")

	fixture.promoteToRegistration(t)

	recorder, _ = fixture.do(t, httptest.NewRequest(http.MethodPost, "/api/election/start-voting", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder, _ = fixture.do(t, httptest.NewRequest(http.MethodPost, "/api/election/start-result", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder, _ = fixture.do(t, httptest.NewRequest(http.MethodPost, "/api/election/end", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)

	// Ending again has nothing to end.
	recorder, response = fixture.do(t, httptest.NewRequest(http.MethodPost, "/api/election/end", nil))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, response.Error, "no active election")
}

func TestRegisterCandidateEndpoint(t *testing.T) {
	fixture := setupServer(t)

	fixture.createElection(t)
	election := fixture.promoteToRegistration(t)

	body, contentType := registrationForm(t, "0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA")
	request := httptest.NewRequest(http.MethodPost, "/api/candidate/register", body)
	request.Header.Set("Content-Type", contentType)

	recorder, response := fixture.do(t, request)
	require.Equal(t, http.StatusCreated, recorder.Code)
	assert.True(t, response.Success)

	listRecorder, listResponse := fixture.do(t, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/candidate/list?electionId=%d", election.Id), nil))
	require.Equal(t, http.StatusOK, listRecorder.Code)

	listed, ok := listResponse.Data.([]any)
	require.True(t, ok)
	assert.Len(t, listed, 1)
}

func TestRegisterCandidateWithoutLogo(t *testing.T) {
	fixture := setupServer(t)

	fixture.createElection(t)
	fixture.promoteToRegistration(t)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("name", "Alice"))
	require.NoError(t, writer.WriteField("party", "Independents"))
	require.NoError(t, writer.WriteField("walletAddress", "0xaaa"))
	require.NoError(t, writer.Close())

	request := httptest.NewRequest(http.MethodPost, "/api/candidate/register", body)
	request.Header.Set("Content-Type", writer.FormDataContentType())

	recorder, response := fixture.do(t, request)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, response.Error, "logo")
}

func TestVoteAndResultsEndpoints(t *testing.T) {
	fixture := setupServer(t)

	fixture.createElection(t)
	fixture.promoteToRegistration(t)

	body, contentType := registrationForm(t, "0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA")
	request := httptest.NewRequest(http.MethodPost, "/api/candidate/register", body)
	request.Header.Set("Content-Type", contentType)

	recorder, _ := fixture.do(t, request)
	require.Equal(t, http.StatusCreated, recorder.Code)

	recorder, _ = fixture.do(t, httptest.NewRequest(http.MethodPost, "/api/election/start-voting", nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	voteBody, err := json.Marshal(&CastVoteRequest{CandidateWallet: "0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"})
	require.NoError(t, err)

	recorder, response := fixture.do(t, httptest.NewRequest(http.MethodPost, "/api/vote", bytes.NewReader(voteBody)))
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.True(t, response.Success)

	// Results are gated on the result phase.
	recorder, _ = fixture.do(t, httptest.NewRequest(http.MethodGet, "/api/results", nil))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder, _ = fixture.do(t, httptest.NewRequest(http.MethodPost, "/api/election/start-result", nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder, response = fixture.do(t, httptest.NewRequest(http.MethodGet, "/api/results", nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	results, ok := response.Data.([]any)
	require.True(t, ok)
	assert.Len(t, results, 1)
}

func TestDeleteElectionEndpoint(t *testing.T) {
	fixture := setupServer(t)

	fixture.createElection(t)

	election, err := fixture.elections.GetActiveElection()
	require.NoError(t, err)

	recorder, _ := fixture.do(t, httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/election/%d", election.Id), nil))
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder, _ = fixture.do(t, httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/election/%d", election.Id), nil))
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
