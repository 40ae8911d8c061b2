package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/viralforge/adforge/internal/adapters/cache"
	eventadapter "github.com/viralforge/adforge/internal/adapters/events"
	httpadapter "github.com/viralforge/adforge/internal/adapters/http"
	"github.com/viralforge/adforge/internal/adapters/memory"
	"github.com/viralforge/adforge/internal/adapters/postgres"
	"github.com/viralforge/adforge/internal/adapters/vendors"
	"github.com/viralforge/adforge/internal/application"
	"github.com/viralforge/adforge/internal/domain"
	"github.com/viralforge/adforge/internal/ports"
)

type Runtime struct {
	cfg        Config
	logger     *slog.Logger
	httpServer *http.Server
	worker     *eventadapter.Worker
}

// NewRuntime wires the service. With DATABASE_URL and REDIS_URL set it runs
// against Postgres and Redis, and the Redis-backed job queue lets the api and
// worker binaries share one backlog; without them it falls back to the
// in-memory adapters, which is the local-dev and test path.
func NewRuntime(ctx context.Context, configPath string) (*Runtime, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})).With("service", cfg.ServiceID)
	slog.SetDefault(logger)

	var (
		campaignRepo ports.CampaignRepository
		clipRepo     ports.ClipVersionRepository
		archiveRepo  ports.ArchiveRepository
		ledger       ports.CreditLedger
		queue        ports.GenerationQueue
	)
	if cfg.DatabaseURL != "" {
		db, err := postgres.Connect(ctx, cfg.DatabaseURL, cfg.MaxDBConns)
		if err != nil {
			return nil, err
		}
		if err := postgres.RunMigrations(ctx, db); err != nil {
			return nil, err
		}
		repos := postgres.NewRepositories(db)
		campaignRepo, clipRepo, archiveRepo = repos.Campaigns, repos.Clips, repos.Archives
	} else {
		repos := memory.NewRepositories()
		campaignRepo, clipRepo, archiveRepo = repos.Campaigns, repos.Clips, repos.Archives
	}
	if cfg.RedisURL != "" {
		client, err := cache.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		ledger = cache.NewRedisCreditLedger(client)
		// A Redis-backed queue is what lets the standalone worker binary see
		// jobs the api process enqueues.
		queue = cache.NewRedisQueue(client, "")
	} else {
		ledger = memory.NewCreditLedger()
		queue = eventadapter.NewQueue()
	}

	mediaCfg := vendors.MediaConfig{
		GatewayURL:  cfg.MediaGatewayURL,
		GatewayKey:  cfg.MediaGatewayKey,
		VideoURL:    cfg.VideoEngineURL,
		VideoKey:    cfg.VideoEngineKey,
		CallTimeout: cfg.VendorTimeout(),
	}
	progress := eventadapter.NewPublisher()

	service := application.NewService(application.Dependencies{
		Config: application.Config{
			ServiceName: cfg.ServiceID,
			Pricing: domain.PricingTable{
				VideoCreditsPerSecond: cfg.VideoCreditsPerSecond,
				FrameCredits:          cfg.FrameCredits,
				VoiceCredits:          cfg.VoiceCredits,
				AmbientCredits:        cfg.AmbientCredits,
			},
			MaxRewriteAttempts: cfg.MaxRewriteAttempts,
			EagerFrameBeats:    cfg.EagerFrameBeats,
			AssemblyTimeout:    cfg.AssemblyTimeout(),
			QueuePollInterval:  cfg.WorkerPollInterval(),
		},
		Campaigns: campaignRepo,
		Clips:     clipRepo,
		Archives:  archiveRepo,
		Scripts:   vendors.NewOpenAIScriptModel(cfg.ScriptModelKey, cfg.ScriptModelBaseURL, cfg.ScriptModelName),
		Images:    vendors.NewImageClient(mediaCfg),
		Video:     vendors.NewVideoClient(mediaCfg),
		Voice:     vendors.NewVoiceClient(mediaCfg),
		Ambient:   vendors.NewAmbientClient(mediaCfg),
		Mixer:     vendors.NewMixerClient(mediaCfg),
		ASR:       vendors.NewTranscriberClient(mediaCfg),
		Xform:     vendors.NewTransformClient(mediaCfg, cfg.TransformPollInterval()),
		Ledger:    ledger,
		Queue:     queue,
		Progress:  progress,
	})

	handler := httpadapter.NewHandler(service)
	router := httpadapter.NewRouter(handler)
	httpServer := &http.Server{Addr: fmt.Sprintf(":%d", cfg.HTTPPort), Handler: router, ReadHeaderTimeout: 5 * time.Second}
	worker := eventadapter.NewWorker(service, logger, cfg.WorkerPollInterval())

	return &Runtime{cfg: cfg, logger: logger, httpServer: httpServer, worker: worker}, nil
}

func (r *Runtime) RunAPI(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	errCh := make(chan error, 1)

	go func() {
		if err := r.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	// The api runtime drains the queue too: with the in-memory queue it is
	// the only consumer, and with the Redis queue it shares the load with any
	// standalone workers.
	go func() { _ = r.worker.Run(ctx) }()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		r.logger.ErrorContext(ctx, "runtime failure", "error", err)
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = r.httpServer.Shutdown(shutdownCtx)
	return nil
}

func (r *Runtime) RunWorker(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	errCh := make(chan error, 1)
	go func() {
		if err := r.worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errCh <- err
		}
	}()
	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}
