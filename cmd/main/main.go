package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	api "github.com/openballot/VotingServer/internal/api"
	assets "github.com/openballot/VotingServer/internal/assets"
	candidates "github.com/openballot/VotingServer/internal/candidates"
	config "github.com/openballot/VotingServer/internal/config"
	db "github.com/openballot/VotingServer/internal/database/connection"
	repositories "github.com/openballot/VotingServer/internal/database/repositories"
	elections "github.com/openballot/VotingServer/internal/elections"
	ledger "github.com/openballot/VotingServer/internal/ledger"
	logging "github.com/openballot/VotingServer/internal/logger"
	promoter "github.com/openballot/VotingServer/internal/promoter"
	votes "github.com/openballot/VotingServer/internal/votes"
)

func main() {
	godotenv.Load()

	logLevel := zerolog.InfoLevel
	if parsed, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil && os.Getenv("LOG_LEVEL") != "" {
		logLevel = parsed
	}

	log := logging.New(logLevel, os.Getenv("LOG_FORMAT"))

	configFile := os.Getenv("CONFIG_FILE")
	if configFile == "" {
		configFile = "config/config.yml"
	}

	if err := config.InitializeGlobalConfig(configFile); err != nil {
		log.Fatal().Err(err).Msg("failed to load config file")
	}

	dbFile := config.GlobalConfig.DatabaseConfig.File
	if dbFile == "" {
		dbFile = "databases/voting.db"
	}

	if err := db.InitializeGlobalDB(dbFile); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}

	if err := repositories.InitializeGlobalRepositories(db.GlobalDB); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize repositories")
	}

	privateKey := os.Getenv("LEDGER_PRIVATE_KEY")
	if privateKey == "" {
		log.Fatal().Msg("LEDGER_PRIVATE_KEY not set")
	}

	ledgerClient, err := ledger.NewEthereumClient(&config.GlobalConfig.LedgerConfig, privateKey, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create ledger client")
	}
	defer ledgerClient.Close()

	assetStore, err := assets.NewFileStore(config.GlobalConfig.AssetConfig.Directory, config.GlobalConfig.AssetConfig.BaseUrl)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create asset store")
	}

	engine := elections.NewEngine(repositories.GlobalElectionRepository, ledgerClient, log)
	registrar := candidates.NewRegistrar(repositories.GlobalElectionRepository, repositories.GlobalCandidateRepository, ledgerClient, assetStore, log)
	caster := votes.NewCaster(repositories.GlobalElectionRepository, repositories.GlobalCandidateRepository, ledgerClient, log)

	phasePromoter := promoter.NewPromoter(
		repositories.GlobalElectionRepository,
		time.Duration(config.GlobalConfig.PromoterConfig.TickInterval)*time.Second,
		log,
	)

	if config.GlobalConfig.PromoterConfig.Enabled {
		phasePromoter.Start()
		defer phasePromoter.Stop()
	}

	server := api.NewServer(
		engine,
		registrar,
		caster,
		config.GlobalConfig.ApiConfig.Port,
		time.Duration(config.GlobalConfig.ApiConfig.RequestTimeout)*time.Second,
		log,
	)

	if err := server.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start api server")
	}
	defer server.Stop()

	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, syscall.SIGINT, syscall.SIGTERM)
	<-signalChannel

	log.Info().Msg("shutting down")
}
