package app

import (
	"context"
	"sync"

	"marketplace-service/internal/catalog"
	"marketplace-service/internal/config"
	"marketplace-service/internal/gen"
	"marketplace-service/internal/handler"
	"marketplace-service/internal/identity/directory"
	"marketplace-service/internal/identity/resolver"
	"marketplace-service/internal/logger"
	"marketplace-service/internal/middleware"
	"marketplace-service/internal/nav"
	"marketplace-service/internal/onboarding"
	"marketplace-service/internal/phone"
	"marketplace-service/internal/phone/dev"
	"marketplace-service/internal/phone/identitytoolkit"
	"marketplace-service/internal/session"

	"github.com/gin-gonic/gin"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	var dir directory.Directory
	if infra.DB != nil {
		dir = directory.NewPostgresDirectory(infra.DB)
	} else {
		dir = directory.NewSeededDirectory()
	}

	stores := memoryStoreFactory()
	if infra.Redis != nil {
		stores = func(sessionID string) session.Store {
			return session.NewRedisStore(infra.Redis.Client, sessionID)
		}
	}

	identityResolver := resolver.NewDirectoryResolver(dir)
	pipeline := onboarding.NewPipeline(dir)
	registry := nav.NewRegistry(stores, identityResolver, pipeline)

	verifier, err := setupVerifier(cfg)
	if err != nil {
		return nil, nil, err
	}

	var generator gen.Generator
	if cfg.AnthropicAPIKey != "" {
		generator, err = gen.NewAnthropicGenerator(cfg.AnthropicAPIKey)
		if err != nil {
			return nil, nil, err
		}
	} else {
		logger.Warn("no ANTHROPIC_API_KEY, descriptions use static fallback", nil)
	}

	apiHandler := handler.NewHandler(
		verifier,
		generator,
		catalog.NewSeededStore(),
		infra.Events,
		registry,
	)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	router.Use(middleware.Session(registry))

	apiHandler.RegisterRoutes(router)

	// ----------------------------
	// Cleanup
	// ----------------------------

	return router, infra.Close, nil
}

// setupVerifier picks the phone verification provider: the Identity
// Toolkit REST API when a key is configured, else the fixed-code dev
// verifier.
func setupVerifier(cfg config.Config) (phone.Verifier, error) {
	if cfg.IdentityToolkitAPIKey != "" {
		prod, err := identitytoolkit.New(cfg.IdentityToolkitAPIKey)
		if err != nil {
			return nil, err
		}
		reg := phone.NewRegistry(prod, dev.New())
		return reg.Get(prod.Name())
	}

	logger.Warn("no IDENTITY_TOOLKIT_API_KEY, using dev phone verifier", nil)
	return dev.New(), nil
}

// memoryStoreFactory keeps one in-memory store per session id so a
// session's identity survives across requests within the process.
func memoryStoreFactory() nav.StoreFactory {
	var mu sync.Mutex
	byID := make(map[string]*session.MemoryStore)

	return func(sessionID string) session.Store {
		mu.Lock()
		defer mu.Unlock()
		if s, ok := byID[sessionID]; ok {
			return s
		}
		s := session.NewMemoryStore()
		byID[sessionID] = s
		return s
	}
}
