package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/soulbrew/blog-services/handlers"
	"github.com/soulbrew/blog-services/internal/blog/repository"
	"github.com/soulbrew/blog-services/internal/blog/service"
	"github.com/soulbrew/blog-services/internal/config"
	"github.com/soulbrew/blog-services/internal/database"
	"github.com/soulbrew/blog-services/internal/media"
	"github.com/soulbrew/blog-services/internal/oidc"
	"github.com/soulbrew/blog-services/internal/sessions"
	"github.com/soulbrew/blog-services/internal/storage"
	"github.com/soulbrew/blog-services/internal/users"
	"github.com/soulbrew/blog-services/pkg/logger"
	"github.com/soulbrew/blog-services/pkg/metrics"
	"github.com/soulbrew/blog-services/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// logging level is controlled with LOG_LEVEL env: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: oidc=%v mongo=%v redis=%v fixtures=%v",
		cfg.OIDC.IssuerURL != "", cfg.MongoDB.URI != "", cfg.Redis.Host != "", cfg.Server.SeedFixtures)

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// Lightweight CORS middleware for dev/test: set common headers and respond to OPTIONS.
	// (Keep this intentionally simple; production should use a stricter policy.)
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	})

	ctx := context.Background()

	// Connect to Redis early so the rate limiter and token blacklist can use it
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.Redis.Host + ":" + cfg.Redis.Port, Password: cfg.Redis.Password})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			redisClient = nil
		} else {
			sessions.SetBlacklistClient(redisClient)
			logger.Infof("Connected to Redis: %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}

	// Optional global rate limiter (per-user when authenticated, otherwise per-IP)
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && redisClient != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	// Content repository: Mongo when configured, fixture posts otherwise
	var repo repository.Repository
	var mongoClient *mongo.Client
	if cfg.Server.SeedFixtures {
		repo = repository.NewFixtureRepo()
		logger.Infof("Serving seeded fixture content (no MongoDB)")
	} else {
		// Retry with backoff to tolerate startup races against the database
		const maxAttempts = 5
		backoff := time.Second
		var errConn error
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			mongoClient, errConn = database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
			if errConn == nil {
				break
			}
			logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", attempt, maxAttempts, errConn)
			if attempt < maxAttempts {
				time.Sleep(backoff)
				backoff *= 2
			}
		}
		if errConn != nil {
			logger.Fatalf("could not connect to MongoDB after %d attempts: %v", maxAttempts, errConn)
		}
		defer func() { _ = mongoClient.Disconnect(ctx) }()
		db := mongoClient.Database(cfg.MongoDB.Database)
		repo = repository.NewMongoRepo(db.Collection("posts"), db.Collection("categories"))
	}

	blogSvc := service.New(repo, service.WithRetry(cfg.Search.FetchRetries, cfg.Search.RetryDelay))

	// Media metadata records live next to the content when Mongo is available
	var mediaStore *media.Store
	if mongoClient != nil {
		mediaStore = media.NewStore(mongoClient.Database(cfg.MongoDB.Database).Collection("media"))
	}

	// Object storage for post images (optional)
	var uploader handlers.Uploader
	if mc := storage.LoadMinIOConfig(); mc.Endpoint != "" {
		store, err := storage.NewMinIOStorage(mc)
		if err != nil {
			logger.Warnf("failed to initialize MinIO storage: %v", err)
		} else {
			uploader = store
			logger.Infof("Media uploads backed by MinIO bucket %q", mc.Bucket)
		}
	}

	// OIDC verifier and token exchanger for the editor sign-in flow
	var verifier middleware.Verifier
	var exchanger handlers.TokenExchanger
	if cfg.OIDC.IssuerURL != "" && cfg.OIDC.ClientID != "" {
		ver, err := oidc.NewVerifier(ctx, cfg.OIDC.IssuerURL, cfg.OIDC.ClientID)
		if err != nil {
			logger.Warnf("failed to initialize OIDC verifier: %v", err)
		} else {
			verifier = ver
		}
		ex, err := oidc.NewExchanger(ctx, cfg.OIDC.IssuerURL, cfg.OIDC.ClientID, cfg.OIDC.ClientSecret)
		if err != nil {
			logger.Warnf("failed to initialize OIDC token exchanger: %v", err)
		} else {
			exchanger = ex
		}
	}
	// Insecure verifier for integration tests: parses claims without signature checks
	if verifier == nil && strings.EqualFold(strings.TrimSpace(os.Getenv("ALLOW_INSECURE_TOKEN")), "true") {
		logger.Warn("enabling insecure OIDC verifier (integration mode)")
		verifier = oidc.NewInsecureVerifier()
	}

	// User and session services
	var userSvc *users.Service
	var sessionsSvc *sessions.Service
	if mongoClient != nil {
		usersCol := mongoClient.Database(cfg.MongoDB.Database).Collection("users")
		userSvc = users.NewService(users.NewMongoUserRepository(usersCol))
	}
	switch {
	case redisClient != nil:
		sessionsSvc = sessions.NewService(sessions.NewRedisRepository(redisClient, ""))
		logger.Infof("Using Redis for session storage")
	case mongoClient != nil:
		sessionsCol := mongoClient.Database(cfg.MongoDB.Database).Collection("sessions")
		srepo, err := sessions.NewMongoRepository(ctx, sessionsCol)
		if err != nil {
			logger.Warnf("failed to initialize Mongo session repository: %v", err)
		} else {
			sessionsSvc = sessions.NewService(srepo)
		}
	default:
		sessionsSvc = sessions.NewService(sessions.NewMemoryRepository())
		logger.Infof("Using in-memory session storage (fixture mode)")
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// readiness: 200 only when the critical dependencies are available
	r.GET("/ready", func(c *gin.Context) {
		ready := true
		deps := map[string]bool{}

		deps["content"] = repo != nil
		if !deps["content"] {
			ready = false
		}
		deps["sessions"] = sessionsSvc != nil
		if !deps["sessions"] {
			ready = false
		}
		if cfg.OIDC.IssuerURL != "" {
			deps["oidc"] = verifier != nil
			if !deps["oidc"] {
				ready = false
			}
		} else {
			deps["oidc"] = true
		}
		if cfg.Redis.Host != "" && cfg.RateLimit.UseRedis {
			deps["redis"] = redisClient != nil
			if !deps["redis"] {
				ready = false
			}
		} else {
			deps["redis"] = true
		}

		status := http.StatusOK
		state := "ready"
		if !ready {
			status = http.StatusServiceUnavailable
			state = "not_ready"
		}
		c.JSON(status, gin.H{"status": state, "deps": deps, "uptime": time.Since(startTime).String()})
	})

	// Public read API
	api := r.Group("/api")
	handlers.NewPostsHandler(blogSvc).Register(api)

	// Auth endpoints need user + session services
	if userSvc != nil && sessionsSvc != nil && verifier != nil {
		handlers.NewAuthHandler(cfg, userSvc, sessionsSvc, verifier, exchanger).Register(api)
	} else {
		logger.Warnf("auth endpoints not registered (users=%v sessions=%v verifier=%v)",
			userSvc != nil, sessionsSvc != nil, verifier != nil)
	}

	// Admin write API, guarded by the verifier when one is configured
	admin := r.Group("/api/admin")
	if verifier != nil {
		admin.Use(middleware.AuthMiddleware(verifier))
	} else {
		logger.Warnf("admin endpoints are unprotected (no OIDC verifier configured)")
	}
	handlers.NewAdminHandler(blogSvc, uploader, mediaStore).Register(admin)

	handlers.RegisterSwagger(r)

	// Expose Prometheus metrics
	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("Starting blog service on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
