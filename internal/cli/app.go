package cli

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	gomongo "go.mongodb.org/mongo-driver/mongo"

	"github.com/owaspcebu/ctf-platform/internal/api"
	"github.com/owaspcebu/ctf-platform/internal/api/handler"
	"github.com/owaspcebu/ctf-platform/internal/core/ports"
	"github.com/owaspcebu/ctf-platform/internal/core/service"
	"github.com/owaspcebu/ctf-platform/internal/infrastructure/db/memory"
	"github.com/owaspcebu/ctf-platform/internal/infrastructure/db/mongo"
	"github.com/owaspcebu/ctf-platform/internal/infrastructure/db/redis"
	"github.com/owaspcebu/ctf-platform/internal/pkg/config"
	"github.com/owaspcebu/ctf-platform/pkg/logger"
)

// repositories groups one storage backend's implementation of every port.
type repositories struct {
	users       ports.UserRepository
	challenges  ports.ChallengeRepository
	progress    ports.ProgressRepository
	submissions ports.SubmissionRepository
	leaderboard ports.LeaderboardRepository
}

// app is the fully wired process: services plus the handles that need closing.
type app struct {
	cfg    *config.Config
	log    zerolog.Logger
	auth   *service.AuthService
	admin  *service.AdminService
	deps   api.Dependencies
	mongo  *gomongo.Client
	redis  *goredis.Client
	health map[string]handler.Pinger
}

func initLogger(cfg *config.Config) zerolog.Logger {
	return logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "ctfd",
	})
}

// newApp connects to the configured backends and builds every service.
func newApp(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*app, error) {
	a := &app{cfg: cfg, log: log, health: make(map[string]handler.Pinger)}

	repos, err := a.openStore(ctx)
	if err != nil {
		a.Close(ctx)
		return nil, err
	}

	var (
		limiter service.AttemptLimiter
		cache   *redis.LeaderboardCache
	)
	if cfg.Redis.Addr != "" {
		rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			a.Close(ctx)
			return nil, err
		}
		a.redis = rdb
		a.health["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		limiter = redis.NewAttemptLimiter(rdb, cfg.Submit.MaxAttempts, cfg.Submit.AttemptWindow)
		cache = redis.NewLeaderboardCache(rdb, cfg.Leaderboard.CacheTTL)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected")
	} else {
		log.Warn().Msg("REDIS_ADDR not set, submission throttle and leaderboard cache disabled")
	}

	// nil interfaces, not typed nil pointers, when Redis is off
	var (
		lbCache     service.LeaderboardCache
		invalidator service.LeaderboardInvalidator
	)
	if cache != nil {
		lbCache, invalidator = cache, cache
	}

	a.auth = service.NewAuthService(repos.users, cfg.JWTSecret, cfg.TokenTTL, invalidator)
	a.admin = service.NewAdminService(repos.users, repos.challenges, logger.Component("admin"))
	tracker := service.NewProgressService(repos.progress, logger.Component("progress"))
	challenges := service.NewChallengeService(repos.challenges, repos.users, repos.progress, tracker, invalidator, logger.Component("challenges"))

	scoring := service.NewScoringService(repos.challenges, repos.progress, repos.submissions, limiter, invalidator, logger.Component("scoring"))
	leaderboard := service.NewLeaderboardService(repos.leaderboard, repos.progress, repos.challenges, lbCache, logger.Component("leaderboard"))

	a.deps = api.Dependencies{
		Auth:        a.auth,
		Challenges:  challenges,
		Scoring:     scoring,
		Leaderboard: leaderboard,
		Admin:       a.admin,
		JWTSecret:   cfg.JWTSecret,
		Health:      a.health,
		Logger:      log,
	}
	return a, nil
}

func (a *app) openStore(ctx context.Context) (*repositories, error) {
	switch a.cfg.Store {
	case config.StoreMemory:
		a.log.Warn().Msg("using in-memory store, data is lost on restart")
		s := memory.NewStore()
		return &repositories{
			users:       memory.NewUserRepository(s),
			challenges:  memory.NewChallengeRepository(s),
			progress:    memory.NewProgressRepository(s),
			submissions: memory.NewSubmissionRepository(s),
			leaderboard: memory.NewLeaderboardRepository(s),
		}, nil

	case config.StoreMongo:
		client, db, err := mongo.Connect(ctx, mongo.Config{URI: a.cfg.Mongo.URI, Database: a.cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		a.mongo = client
		a.health["mongodb"] = func(ctx context.Context) error { return client.Ping(ctx, nil) }
		a.log.Info().Str("database", a.cfg.Mongo.Database).Msg("mongodb connected")

		if err := mongo.EnsureIndexes(ctx, db); err != nil {
			return nil, err
		}
		return &repositories{
			users:       mongo.NewUserRepository(db),
			challenges:  mongo.NewChallengeRepository(db),
			progress:    mongo.NewProgressRepository(db),
			submissions: mongo.NewSubmissionRepository(db),
			leaderboard: mongo.NewLeaderboardRepository(db),
		}, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", a.cfg.Store)
}

// Close releases backend connections.
func (a *app) Close(ctx context.Context) {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.Warn().Err(err).Msg("redis close failed")
		}
	}
	if a.mongo != nil {
		if err := a.mongo.Disconnect(ctx); err != nil {
			a.log.Warn().Err(err).Msg("mongodb disconnect failed")
		}
	}
}
