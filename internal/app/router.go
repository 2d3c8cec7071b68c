package app

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/devtools-playground/internal/common"
	"github.com/noah-isme/devtools-playground/internal/config"
	"github.com/noah-isme/devtools-playground/internal/dictionary"
	"github.com/noah-isme/devtools-playground/internal/health"
	"github.com/noah-isme/devtools-playground/internal/obs"
	"github.com/noah-isme/devtools-playground/internal/ratelimit"
	"github.com/noah-isme/devtools-playground/internal/resilience"
	"github.com/noah-isme/devtools-playground/internal/security"
	"github.com/noah-isme/devtools-playground/internal/shopping"
	"github.com/noah-isme/devtools-playground/internal/store"
	"github.com/noah-isme/devtools-playground/internal/words"
)

// MetricsNamespace prefixes every Prometheus collector the API registers.
const MetricsNamespace = "devtools"

// Dependencies enumerates the collaborators the HTTP router is built from.
type Dependencies struct {
	Config *config.Config
	Logger zerolog.Logger
	Store  store.Repository
	// Redis is optional. When nil the dictionary cache is disabled and rate
	// limiting falls back to a process-local store.
	Redis *redis.Client
	// Registry receives the collectors. Nil selects the default registry.
	Registry *prometheus.Registry
	Gate     *health.Gate
	Tracing  bool
}

// NewRouter builds the API route table.
func NewRouter(deps Dependencies) (*chi.Mux, error) {
	if deps.Config == nil {
		return nil, errors.New("app: config is required")
	}
	if deps.Store == nil {
		return nil, errors.New("app: store is required")
	}
	cfg := deps.Config
	logger := deps.Logger

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		metricsH                         = promhttp.Handler()
	)
	if deps.Registry != nil {
		registerer = deps.Registry
		metricsH = promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{Registry: deps.Registry})
	}
	httpMetrics := obs.NewHTTPMetrics(MetricsNamespace, nil, registerer)
	domainMetrics := obs.NewDomainMetrics(MetricsNamespace, registerer)
	cacheBreaker := resilience.NewBreaker(5, 0.5, 30*time.Second).
		WithLogger(logger).
		WithMetrics(resilience.NewMetrics(MetricsNamespace, registerer)).
		WithTarget("redis")

	dictionarySvc, err := dictionary.NewService(dictionary.ServiceConfig{
		Repository: deps.Store,
		Cache:      dictionary.NewCache(deps.Redis, cfg.DictionaryCacheTTL).WithBreaker(cacheBreaker),
		Metrics:    domainMetrics,
		Logger:     logger,
	})
	if err != nil {
		return nil, err
	}
	dictionaryHandler := dictionary.NewHandler(dictionary.HandlerConfig{Service: dictionarySvc, Logger: logger})
	shoppingHandler := shopping.NewHandler(shopping.HandlerConfig{
		Calculator: shopping.NewCalculator(logger),
		Metrics:    domainMetrics,
		Logger:     logger,
	})
	wordsHandler := words.NewHandler(domainMetrics, logger)
	healthHandler := health.Handler{
		Checker:      health.Probe{DB: deps.Store, Redis: deps.Redis},
		Gate:         deps.Gate,
		Info:         health.NewInfo(cfg.AppName, cfg.AppVersion),
		DBTimeout:    500 * time.Millisecond,
		RedisTimeout: 300 * time.Millisecond,
	}
	limits := ratelimit.Handler{
		Limiter: NewLimiter(deps.Redis),
		Config: ratelimit.Config{
			Key:    ratelimit.ByGroup(ratelimit.ByClientIP),
			Window: cfg.RateLimitWindow,
			Max:    cfg.RateLimitMax,
		},
		OnError: func(err error) {
			logger.Warn().Err(err).Msg("rate limiter unavailable")
		},
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(obs.TagEndpoints)
	if deps.Tracing {
		r.Use(obs.TracingMiddleware)
	}
	r.Use(obs.HTTPObs{Metrics: httpMetrics}.Middleware)
	r.Use(obs.RequestLogger{Logger: logger}.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins(cfg),
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", "X-RateLimit-Remaining", "Retry-After"},
		MaxAge:         300,
	}))
	r.Use(security.Headers{Enable: cfg.SecureHeaders}.Middleware)
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		common.JSONError(w, http.StatusNotFound, common.CodeNotFound, "route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		common.JSONError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed", nil)
	})

	r.Handle("/metrics", metricsH)
	r.Get("/", healthHandler.Root)
	r.Get("/health", healthHandler.Healthy)
	r.Get("/health/live", healthHandler.Live)
	r.Get("/health/ready", healthHandler.Ready)

	api := func(v chi.Router) {
		v.Use(security.BodyLimit{Max: cfg.BodyLimitBytes}.Middleware)
		v.Route("/dictionary", func(d chi.Router) {
			d.Use(obs.Endpoint("dictionary"), limits.Middleware)
			d.Post("/add", dictionaryHandler.Add)
			d.Get("/{word}", dictionaryHandler.Get)
		})
		v.Route("/shopping", func(s chi.Router) {
			s.Use(obs.Endpoint("shopping"), limits.Middleware)
			s.Post("/total", shoppingHandler.Total)
			s.Post("/total-simple", shoppingHandler.TotalSimple)
		})
		v.With(obs.Endpoint("words"), limits.Middleware).Post("/word/concat", wordsHandler.Concat)
	}
	r.Group(api)
	r.Route("/api/v1", api)
	return r, nil
}

// NewLimiter selects the shared Redis limiter when a client is configured
// and the in-memory limiter otherwise.
func NewLimiter(client *redis.Client) ratelimit.Limiter {
	if client != nil {
		return ratelimit.SlidingWindow{Client: client, Prefix: "ratelimit:"}
	}
	return ratelimit.NewMemory("ratelimit")
}

func allowedOrigins(cfg *config.Config) []string {
	if len(cfg.CORSAllowedOrigins) == 0 {
		return []string{"*"}
	}
	return cfg.CORSAllowedOrigins
}
