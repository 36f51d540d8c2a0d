package container

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"wbs/classifier/internal/config"
	"wbs/classifier/internal/dictionary"
	"wbs/classifier/internal/domain"
	"wbs/classifier/internal/export"
	"wbs/classifier/internal/pipeline"
	"wbs/classifier/internal/queue"
	"wbs/classifier/internal/repository"
	"wbs/classifier/internal/ruleset"
	"wbs/classifier/internal/service"
	"wbs/classifier/internal/state"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Container holds all initialized components
type Container struct {
	Config       *config.Config
	Repository   repository.WBSRepository
	Queue        queue.Queue
	StateManager state.StateManager
	Dictionary   domain.Dictionary

	Service *service.Service

	db    *pgxpool.Pool
	redis *redis.Client
}

// New creates a new container with all dependencies initialized. The
// dictionary is loaded here, before anything is queued: a broken workbook
// must stop the run before any output exists.
func New(cfg *config.Config) (*Container, error) {
	container := &Container{
		Config: cfg,
	}

	dict, err := dictionary.Load(cfg.Dictionary)
	if err != nil {
		return nil, fmt.Errorf("failed to load dictionary: %w", err)
	}
	container.Dictionary = dict

	db, err := pgxpool.New(context.Background(),
		fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
			cfg.Database.Host,
			cfg.Database.Port,
			cfg.Database.User,
			cfg.Database.Password,
			cfg.Database.Name,
		))
	if err != nil {
		return nil, err
	}
	container.db = db

	wbsRepo := repository.NewWBSRepository(db)
	container.Repository = wbsRepo

	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.Database,
	})

	// Test connection
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Info("✅ Connected to Redis successfully")

	redisQueue, err := queue.NewRedisQueue(rdb, cfg.Redis)
	if err != nil {
		return nil, err
	}
	container.Queue = redisQueue

	container.redis = rdb
	stateManager := state.NewRedisStateManager(rdb)
	container.StateManager = stateManager

	exporter := export.NewExporter(cfg.Export.Dir, cfg.Export.Encoding)

	svc := service.NewService(
		wbsRepo,
		redisQueue,
		stateManager,
		exporter,
		dict,
		ruleset.Default(),
		pipeline.Options{
			MaxDepth:        cfg.Pipeline.MaxDepth,
			CaseInsensitive: cfg.Pipeline.CaseInsensitive,
		},
		cfg.Redis.ConsumerGroup,
		cfg.Redis.MinIdleTime,
	)
	container.Service = svc

	return container, nil
}

// Run queues every pending group and processes the queue
func (c *Container) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	// Enqueue classification tasks
	g.Go(func() error {
		return c.Service.EnqueueAll(ctx)
	})

	// Run workers to process tasks
	g.Go(func() error {
		return c.Service.RunWorkers(ctx, c.Config.Pipeline.MaxWorkers)
	})

	return g.Wait()
}

// Close performs cleanup when shutting down
func (c *Container) Close() error {
	log.Info("Shutting down container...")

	c.db.Close()
	c.redis.Close()

	log.Info("Container shut down successfully")
	return nil
}
