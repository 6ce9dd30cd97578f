// Package app builds every service once at startup and hands them to the
// HTTP layer explicitly.
package app

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/lumenworks/sitecms/backend/go-services/internal/config"
	"github.com/lumenworks/sitecms/backend/go-services/internal/content"
	"github.com/lumenworks/sitecms/backend/go-services/internal/content/repository"
	"github.com/lumenworks/sitecms/backend/go-services/internal/content/service"
	"github.com/lumenworks/sitecms/backend/go-services/internal/database"
	"github.com/lumenworks/sitecms/backend/go-services/internal/events"
	"github.com/lumenworks/sitecms/backend/go-services/internal/jobs"
	"github.com/lumenworks/sitecms/backend/go-services/internal/media"
	"github.com/lumenworks/sitecms/backend/go-services/internal/navigation"
	"github.com/lumenworks/sitecms/backend/go-services/internal/sessions"
	"github.com/lumenworks/sitecms/backend/go-services/internal/settings"
	"github.com/lumenworks/sitecms/backend/go-services/internal/site"
	"github.com/lumenworks/sitecms/backend/go-services/internal/storage"
	"github.com/lumenworks/sitecms/backend/go-services/internal/users"
	"github.com/lumenworks/sitecms/backend/go-services/pkg/logger"
)

// Backend names reported by /ready.
const (
	BackendMemory = "memory"
	BackendMongo  = "mongo"
	BackendRedis  = "redis"
	BackendMinIO  = "minio"
)

// App is the application context shared by the handlers.
type App struct {
	Config     *config.Config
	Bus        *events.Bus
	Content    *service.Service
	Navigation *navigation.Service
	Jobs       *jobs.Service
	Settings   *settings.Service
	Users      *users.Service
	Sessions   *sessions.Service
	Site       *site.Service
	Media      media.Store

	// Memory is set when media lives in process and must be served by the API.
	Memory *media.MemoryStore
	Redis  *redis.Client
	Mongo  *mongo.Client
	MinIO  *storage.MinIOStorage

	Backends map[string]string

	closers []func()
}

// Option adjusts New; tests use it to force in-process backends.
type Option func(*options)

type options struct {
	usersOpts []users.Option
}

// WithUserOptions forwards options to the users service.
func WithUserOptions(o ...users.Option) Option {
	return func(opts *options) { opts.usersOpts = append(opts.usersOpts, o...) }
}

// New connects to the configured backends, falling back to memory for any
// store whose backend is absent or unreachable.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	var o options
	for _, fn := range opts {
		fn(&o)
	}
	a := &App{Config: cfg, Bus: events.NewBus(), Backends: map[string]string{}}

	if addr := cfg.RedisAddr(); addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Warnf("redis %s unreachable, continuing without it: %v", addr, err)
			_ = client.Close()
		} else {
			logger.Infof("connected to Redis at %s", addr)
			a.Redis = client
			a.closers = append(a.closers, func() { _ = client.Close() })
		}
	}

	var db *mongo.Database
	if cfg.MongoDB.URI != "" {
		client, err := database.ConnectMongoWithRetry(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout, 5)
		if err != nil {
			logger.Warnf("could not connect to MongoDB, using in-memory stores: %v", err)
		} else {
			a.Mongo = client
			db = client.Database(cfg.MongoDB.Database)
			a.closers = append(a.closers, func() { _ = client.Disconnect(context.Background()) })
		}
	}

	// content
	var contentRepo repository.Repository
	switch {
	case db != nil:
		contentRepo = repository.NewMongoRepo(ctx, db.Collection("content"))
		a.Backends["content"] = BackendMongo
	case a.Redis != nil && cfg.Redis.UseForContent:
		contentRepo = repository.NewRedisRepo(a.Redis, "")
		a.Backends["content"] = BackendRedis
	default:
		contentRepo = repository.NewMemoryRepo()
		a.Backends["content"] = BackendMemory
	}

	// media
	if cfg.MinIO.Endpoint != "" {
		st, err := storage.NewMinIOStorage(ctx, cfg.MinIO)
		if err != nil {
			logger.Warnf("minio unavailable, keeping uploads in memory: %v", err)
		} else {
			a.MinIO = st
			a.Media = st
			a.Backends["media"] = BackendMinIO
		}
	}
	if a.Media == nil {
		a.Memory = media.NewMemoryStore(cfg.MinIO.PublicURL)
		a.Media = a.Memory
		a.Backends["media"] = BackendMemory
	}
	a.Content = service.NewService(contentRepo, a.Bus, service.WithUploader(media.NewUploader(a.Media)))

	// navigation, jobs, users
	if db != nil {
		a.Navigation = navigation.NewService(navigation.NewMongoRepo(ctx, db.Collection("navigation")), a.Bus)
		a.Jobs = jobs.NewService(jobs.NewMongoRepo(ctx, db.Collection("jobs")), a.Bus)
		a.Users = users.NewService(users.NewMongoUserRepository(ctx, db.Collection("users")), o.usersOpts...)
		a.Backends["navigation"], a.Backends["jobs"], a.Backends["users"] = BackendMongo, BackendMongo, BackendMongo
	} else {
		a.Navigation = navigation.NewService(navigation.NewMemoryRepo(), a.Bus)
		a.Jobs = jobs.NewService(jobs.NewMemoryRepo(), a.Bus)
		a.Users = users.NewService(users.NewMemoryUserRepository(), o.usersOpts...)
		a.Backends["navigation"], a.Backends["jobs"], a.Backends["users"] = BackendMemory, BackendMemory, BackendMemory
	}

	// settings and token revocations
	if a.Redis != nil {
		a.Settings = settings.NewService(settings.NewRedisRepo(a.Redis, ""), a.Bus)
		a.Sessions = sessions.NewService(sessions.NewRedisRepository(a.Redis, ""))
		a.Backends["settings"], a.Backends["sessions"] = BackendRedis, BackendRedis
	} else {
		a.Settings = settings.NewService(settings.NewMemoryRepo(), a.Bus)
		a.Sessions = sessions.NewService(sessions.NewMemoryRepository())
		a.Backends["settings"], a.Backends["sessions"] = BackendMemory, BackendMemory
	}

	a.Site = site.NewService(a.Content, a.Navigation, a.Jobs, a.Settings)

	if err := a.wire(ctx); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) wire(ctx context.Context) error {
	pages, err := a.Content.GetContentByType(ctx, content.TypePage)
	if err != nil {
		return fmt.Errorf("load pages for navigation: %w", err)
	}
	unsub, err := a.Navigation.Sync(ctx, pages)
	if err != nil {
		return fmt.Errorf("navigation sync: %w", err)
	}
	a.closers = append(a.closers, unsub)

	if m := events.NewRedisMirror(a.Redis, a.Config.Events.RedisChannel); m != nil {
		a.closers = append(a.closers, m.Attach(a.Bus))
		logger.Infof("mirroring events to redis channel %s", a.Config.Events.RedisChannel)
	}

	auth := a.Config.Auth
	if _, err := a.Users.EnsureAdmin(ctx, auth.AdminEmail, auth.AdminPassword, auth.AdminName); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	return nil
}

// Ready reports the health of each external dependency in use.
func (a *App) Ready(ctx context.Context) map[string]bool {
	deps := map[string]bool{}
	if a.Redis != nil {
		deps["redis"] = a.Redis.Ping(ctx).Err() == nil
	}
	if a.Mongo != nil {
		deps["mongo"] = a.Mongo.Ping(ctx, nil) == nil
	}
	if a.MinIO != nil {
		deps["minio"] = a.MinIO.Ping(ctx) == nil
	}
	return deps
}

// Close releases subscriptions and connections in reverse order.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
