package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/openrec/dugout/internal/store"
	"github.com/openrec/dugout/internal/store/repository"
	"github.com/openrec/dugout/internal/syncjob"
)

// Orchestrator manages the recurring background tasks: the nightly
// league-site schedule sync and the stale game cleanup.
type Orchestrator struct {
	db       *store.Database
	syncSvc  *syncjob.Service
	gameRepo *repository.GameRepository
	config   *Config
	cancel   context.CancelFunc
}

// Config holds scheduler configuration
type Config struct {
	NightlySyncHour   int           // Default: 4 (4 AM)
	CleanupInterval   time.Duration // Default: 6h
	CurrentSeason     string        // e.g., "Summer 2026"
	EnableNightlySync bool          // Default: true
	EnableCleanup     bool          // Default: true
}

// DefaultConfig returns default scheduler configuration
func DefaultConfig() *Config {
	return &Config{
		NightlySyncHour:   4,
		CleanupInterval:   6 * time.Hour,
		CurrentSeason:     "Summer 2026",
		EnableNightlySync: true,
		EnableCleanup:     true,
	}
}

// NewOrchestrator creates a new scheduler orchestrator
func NewOrchestrator(db *store.Database, syncSvc *syncjob.Service, config *Config) *Orchestrator {
	if config == nil {
		config = DefaultConfig()
	}

	return &Orchestrator{
		db:       db,
		syncSvc:  syncSvc,
		gameRepo: repository.NewGameRepository(db),
		config:   config,
	}
}

// Start begins all scheduled tasks and blocks until the context is cancelled
func (o *Orchestrator) Start(ctx context.Context) {
	log.Println("Scheduler orchestrator starting")
	log.Printf("Nightly schedule sync: %v (at %02d:00)", o.config.EnableNightlySync, o.config.NightlySyncHour)
	log.Printf("Game cleanup: %v (every %v)", o.config.EnableCleanup, o.config.CleanupInterval)
	log.Printf("Season: %s", o.config.CurrentSeason)

	ctx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	if o.config.EnableNightlySync {
		go o.runNightlySync(ctx)
	}
	if o.config.EnableCleanup {
		go o.runCleanup(ctx)
	}

	<-ctx.Done()
	log.Println("Scheduler orchestrator stopping...")
}

// Stop cancels all scheduled tasks
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
}

// runNightlySync enqueues a full-season schedule sync once a day
func (o *Orchestrator) runNightlySync(ctx context.Context) {
	log.Printf("→ Nightly sync scheduler started (runs at %02d:00 daily)", o.config.NightlySyncHour)

	for {
		now := time.Now()
		nextRun := time.Date(now.Year(), now.Month(), now.Day(), o.config.NightlySyncHour, 0, 0, 0, now.Location())
		if now.After(nextRun) {
			nextRun = nextRun.Add(24 * time.Hour)
		}

		waitDuration := time.Until(nextRun)
		log.Printf("  Next schedule sync: %s (in %v)", nextRun.Format("2006-01-02 15:04:05"), waitDuration.Round(time.Second))

		select {
		case <-ctx.Done():
			log.Println("→ Nightly sync scheduler stopped")
			return
		case <-time.After(waitDuration):
			job, err := o.syncSvc.Enqueue(ctx, syncjob.Request{Season: o.config.CurrentSeason})
			if err != nil {
				log.Printf("Failed to enqueue nightly sync: %v", err)
				continue
			}
			log.Printf("Nightly schedule sync enqueued (job %s)", job.JobID)
		}
	}
}

// runCleanup periodically marks past scheduled games as played
func (o *Orchestrator) runCleanup(ctx context.Context) {
	log.Printf("→ Game cleanup started (every %v)", o.config.CleanupInterval)

	ticker := time.NewTicker(o.config.CleanupInterval)
	defer ticker.Stop()

	// Run once on startup
	o.cleanupOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("→ Game cleanup stopped")
			return
		case <-ticker.C:
			o.cleanupOnce(ctx)
		}
	}
}

func (o *Orchestrator) cleanupOnce(ctx context.Context) {
	count, err := o.gameRepo.CleanupPastGames(ctx)
	if err != nil {
		log.Printf("Game cleanup failed: %v", err)
		return
	}
	if count > 0 {
		log.Printf("Marked %d past games as played", count)
	}
}
