package api

import (
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	candidates "github.com/openballot/VotingServer/internal/candidates"
	elections "github.com/openballot/VotingServer/internal/elections"
	votes "github.com/openballot/VotingServer/internal/votes"
)

// Server exposes the election workflows over HTTP.
type Server struct {
	logger    zerolog.Logger
	server    *http.Server
	engine    *elections.Engine
	registrar *candidates.Registrar
	caster    *votes.Caster
}

func NewServer(engine *elections.Engine, registrar *candidates.Registrar, caster *votes.Caster, port uint16, requestTimeout time.Duration, logger zerolog.Logger) *Server {
	server := &Server{
		logger:    logger.With().Str("component", "api_server").Logger(),
		engine:    engine,
		registrar: registrar,
		caster:    caster,
	}

	if requestTimeout <= 0 {
		requestTimeout = 2 * time.Minute
	}

	server.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      server.setupRoutes(),
		ReadTimeout:  requestTimeout,
		WriteTimeout: requestTimeout,
	}

	return server
}

// Start binds the listen address and serves in the background. The bind
// is probed synchronously so a taken port fails fast.
func (server *Server) Start() error {
	startupChannel := make(chan error, 1)

	go func() {
		ln, err := net.Listen("tcp", server.server.Addr)
		if err != nil {
			startupChannel <- fmt.Errorf("failed to bind to address %s: %w", server.server.Addr, err)
			return
		}

		startupChannel <- nil

		err = server.server.Serve(ln)
		switch err {
		case nil, http.ErrServerClosed:
			server.logger.Info().Msg("api server closed")
		default:
			server.logger.Error().Err(err).Msg("api server error")
		}
	}()

	select {
	case err := <-startupChannel:
		if err != nil {
			return err
		}

		server.logger.Info().Str("addr", server.server.Addr).Msg("api server started")
		return nil
	case <-time.After(5 * time.Second):
		return fmt.Errorf("api server startup timeout")
	}
}

func (server *Server) Stop() error {
	if server.server != nil {
		return server.server.Close()
	}

	return nil
}
