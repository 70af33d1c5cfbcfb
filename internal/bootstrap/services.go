package bootstrap

import (
	"database/sql"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/joblane/jobboard/config"
	"github.com/joblane/jobboard/internal/core"
	"github.com/joblane/jobboard/internal/data"
	"github.com/joblane/jobboard/internal/service"
)

// ServiceDeps contains the shared infrastructure services are built from.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// ServiceContainer holds the constructed application services.
type ServiceContainer struct {
	Jobs  *service.JobService
	Cache core.CacheRepository
}

// NewServices builds the application services from shared infrastructure.
// The listing cache is only wired when enabled and a Redis client is present.
func NewServices(deps *ServiceDeps) ServiceContainer {
	var cache core.CacheRepository
	if deps.Config.Cache.Enabled && deps.RedisClient != nil {
		cache = data.NewRedisCacheRepo(deps.RedisClient)
	}

	jobs := service.NewJobService(service.JobServiceOptions{
		Repo:     data.NewJobRepo(deps.DB),
		Cache:    cache,
		CacheTTL: deps.Config.Cache.ListTTL,
		Logger:   deps.Logger,
	})

	return ServiceContainer{Jobs: jobs, Cache: cache}
}
