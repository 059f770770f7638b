package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/pundit-agent/internal/config"
	"github.com/pundit-agent/internal/discovery"
	"github.com/pundit-agent/internal/lifecycle"
	"github.com/pundit-agent/internal/models"
	"github.com/pundit-agent/internal/settings"
	"github.com/pundit-agent/internal/storage"
	"github.com/pundit-agent/internal/storage/sqlite"
	"github.com/pundit-agent/internal/syncer"
	"github.com/pundit-agent/pkg/logger"
	"github.com/pundit-agent/pkg/ratelimit"
)

var (
	cfgFile string
	cfg     *config.Config
	log     *logger.Logger
	repo    storage.Repository
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pundit-scheduler",
		Short: "Background feed scanner for the content assistant",
		Long: `Scans the configured account's active sources on a schedule and
merges matching articles into its inbox. Run as a service so the inbox
stays fresh between interactive sessions.`,
		RunE: runScheduler,
	}

	rootCmd.Flags().StringVar(&cfgFile, "config", "", "config file path")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runScheduler(cmd *cobra.Command, args []string) error {
	var err error

	// Load config
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Scheduler.UserEmail == "" {
		return fmt.Errorf("scheduler.user_email is required")
	}

	// Initialize logger
	log = logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})

	log.Info().Msg("Starting Pundit Scheduler")

	repo, err = sqlite.New(cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer repo.Close()

	if err := repo.Migrate(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	ctx := context.Background()
	user, err := repo.GetUserByEmail(ctx, cfg.Scheduler.UserEmail)
	if err != nil {
		return fmt.Errorf("failed to resolve scheduler account %s: %w", cfg.Scheduler.UserEmail, err)
	}
	log = log.WithUser(user.ID)

	// Start health check server for the hosting platform
	go startHealthServer()

	limiter := ratelimit.NewDefaultLimiter()
	scanner := discovery.New(limiter, cfg.Scanner.Bound, log)

	job := &scanJob{
		userID:  user.ID,
		scanner: scanner,
	}
	job.bridge = syncer.New(repo, cfg.Sync.Debounce, job.snapshot, log)
	job.bridge.SetUser(user.ID)

	// Create cron scheduler
	c := cron.New(cron.WithLogger(cronLogger{log}))

	_, err = c.AddFunc(cfg.Scheduler.ScanCron, func() {
		job.run(context.Background())
	})
	if err != nil {
		return fmt.Errorf("failed to schedule scan job: %w", err)
	}
	log.Info().Str("cron", cfg.Scheduler.ScanCron).Msg("Scan job scheduled")

	// Start scheduler
	c.Start()
	log.Info().Msg("Scheduler started")

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info().Msg("Shutting down scheduler")
	c.Stop()
	job.bridge.Flush()
	job.bridge.Wait()

	return nil
}

// scanJob runs one scheduled scan: load the user's snapshot, scan active
// sources, merge into the inbox and schedule a debounced write-back.
type scanJob struct {
	userID  string
	scanner *discovery.Scanner
	bridge  *syncer.Syncer

	mu         sync.Mutex
	store      *settings.Store
	controller *lifecycle.Controller
	lastScanAt *time.Time
}

func (j *scanJob) run(ctx context.Context) {
	log.Info().Msg("Running scheduled scan")

	snap, err := repo.ReadSnapshot(ctx, j.userID)
	if err != nil {
		log.Error().Err(err).Msg("Scheduled scan aborted, snapshot read failed")
		return
	}

	j.mu.Lock()
	j.store = settings.New()
	// Generation stays interactive; the daemon only ingests, so no client
	j.controller = lifecycle.New(j.store, nil, cfg.Inbox.Cap, log)
	if snap != nil {
		j.store.Load(snap)
		j.controller.Load(snap.Inbox, snap.Archive)
	}
	sources := j.store.ActiveSources()
	terms := j.store.Terms()
	j.mu.Unlock()

	stubs := j.scanner.Scan(ctx, sources, terms)

	j.mu.Lock()
	added := j.controller.Ingest(stubs)
	now := time.Now()
	j.lastScanAt = &now
	total := len(j.controller.Inbox())
	j.mu.Unlock()

	j.bridge.Notify()

	log.Info().
		Int("candidates", len(stubs)).
		Int("added", added).
		Int("inbox", total).
		Msg("Scheduled scan completed")
}

func (j *scanJob) snapshot() *models.Snapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.controller == nil {
		return &models.Snapshot{}
	}
	return &models.Snapshot{
		Sources:    j.store.Sources(),
		Keywords:   j.store.Keywords(),
		Companies:  j.store.Companies(),
		Inbox:      j.controller.Inbox(),
		Archive:    j.controller.Archive(),
		LastScanAt: j.lastScanAt,
	}
}

// cronLogger adapts our logger for cron
type cronLogger struct {
	log *logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Info().Msgf(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error().Err(err).Msgf(msg, keysAndValues...)
}

// startHealthServer starts a simple HTTP server for health checks
func startHealthServer() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "10000"
	}

	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Pundit Scheduler"))
	})

	log.Info().Str("port", port).Msg("Health check server starting")
	if err := http.ListenAndServe(":"+port, nil); err != nil {
		log.Error().Err(err).Msg("Health server failed")
	}
}
