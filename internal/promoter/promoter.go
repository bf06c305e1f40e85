package promoter

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	repositories "github.com/openballot/VotingServer/internal/database/repositories"
	models "github.com/openballot/VotingServer/internal/models"
)

// Promoter periodically moves pending elections whose start time has
// elapsed into the registration phase. It is the only component allowed
// to perform that transition; admin actions own every later one, so the
// two never race over the same source phase. The ledger is never touched.
type Promoter struct {
	elections repositories.ElectionRepository
	interval  time.Duration
	now       func() time.Time
	logger    zerolog.Logger

	mutex       sync.Mutex
	running     bool
	stopChannel chan struct{}
	wg          sync.WaitGroup
}

func NewPromoter(elections repositories.ElectionRepository, interval time.Duration, logger zerolog.Logger) *Promoter {
	if interval <= 0 {
		interval = 30 * time.Second
	}

	return &Promoter{
		elections: elections,
		interval:  interval,
		now:       time.Now,
		logger:    logger.With().Str("component", "phase_promoter").Logger(),
	}
}

// SetClock replaces the wall clock, for tests.
func (promoter *Promoter) SetClock(now func() time.Time) {
	promoter.now = now
}

// Start launches the background loop and returns immediately. Safe to
// call more than once.
func (promoter *Promoter) Start() {
	promoter.mutex.Lock()
	defer promoter.mutex.Unlock()

	if promoter.running {
		return
	}

	promoter.stopChannel = make(chan struct{})
	promoter.running = true
	promoter.wg.Add(1)

	go promoter.run()
}

// Stop signals the loop to exit and waits for it to finish. Safe to call
// more than once.
func (promoter *Promoter) Stop() {
	promoter.mutex.Lock()
	if !promoter.running {
		promoter.mutex.Unlock()
		return
	}

	close(promoter.stopChannel)
	promoter.running = false
	promoter.mutex.Unlock()

	promoter.wg.Wait()
}

func (promoter *Promoter) run() {
	defer promoter.wg.Done()

	ticker := time.NewTicker(promoter.interval)
	defer ticker.Stop()

	promoter.logger.Info().
		Dur("interval", promoter.interval).
		Msg("phase promoter started")

	for {
		select {
		case <-promoter.stopChannel:
			promoter.logger.Info().Msg("phase promoter stopped")
			return
		case <-ticker.C:
			if err := promoter.Tick(); err != nil {
				promoter.logger.Error().Err(err).Msg("promoter tick failed")
			}
		}
	}
}

// Tick promotes every pending election whose start time has elapsed. The
// compare-and-swap on the pending phase makes repeated ticks idempotent:
// an already promoted election simply no longer matches.
func (promoter *Promoter) Tick() error {
	pending, err := promoter.elections.GetPendingElections()
	if err != nil {
		return err
	}

	now := promoter.now().Unix()

	for _, election := range pending {
		if election.StartTimestamp > now {
			continue
		}

		promoted, err := promoter.elections.UpdatePhase(election.Id, models.PhasePending, models.PhaseRegistration)
		if err != nil {
			promoter.logger.Error().
				Err(err).
				Uint("election_id", election.Id).
				Msg("failed to promote election")
			continue
		}

		if promoted {
			promoter.logger.Info().
				Uint("election_id", election.Id).
				Str("title", election.Title).
				Msg("election promoted to registration")
		}
	}

	return nil
}
