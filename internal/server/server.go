package server

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/ultroi/sixbits/config"
	"github.com/ultroi/sixbits/internal/ai"
	"github.com/ultroi/sixbits/internal/directory"
	"github.com/ultroi/sixbits/internal/news"
	"github.com/ultroi/sixbits/internal/runtime"
	"github.com/ultroi/sixbits/internal/store"
)

func Run(cfg *config.Config) error {
	e := echo.New()
	e.HideBanner = true
	e.Debug = cfg.General.Debug
	e.Use(middleware.Recover())
	if cfg.General.Debug || cfg.General.LogLevel == "debug" {
		e.Use(middleware.Logger())
	}

	// Unified HTTP error handler with structured JSON and logging
	baseLogger := log.New(log.Writer(), "[HTTP] ", log.LstdFlags)
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		msg := err.Error()
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if he.Message != nil {
				msg = fmt.Sprint(he.Message)
			}
		}
		req := c.Request()
		baseLogger.Printf("%d %s %s from %s: %v", code, req.Method, req.URL.Path, c.RealIP(), err)
		if !c.Response().Committed {
			_ = c.JSON(code, map[string]interface{}{"error": msg})
		}
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Cookie", "Authorization"},
		AllowCredentials: true,
	}))

	e.GET("/healthz", func(c echo.Context) error { return c.String(200, "ok") })
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	ctx := context.Background()

	dsn, err := cfg.Storage.Postgres.DSN()
	if err != nil {
		return err
	}
	st, err := store.NewWithDSN(ctx, dsn)
	if err != nil {
		return err
	}

	secret, err := runtime.LoadJWTSecret(cfg)
	if err != nil {
		return err
	}

	// Redis is optional: without it chat rate limiting and the reminder
	// scheduler lock degrade to single-instance behaviour.
	var rdb *redis.Client
	if cfg.Storage.Redis.Host != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Storage.Redis.Addr(),
			Password: cfg.Storage.Redis.Password,
			DB:       cfg.Storage.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis connection failed (%s): %w", cfg.Storage.Redis.Addr(), err)
		}
	}

	// AI provider chain: Gemini primary, DeepSeek fallback, both under the
	// retry wrapper.
	gem, err := ai.NewGeminiProvider(ctx, cfg.Providers.Gemini.APIKey, cfg.Providers.Gemini.Model,
		cfg.Providers.Gemini.Temperature, cfg.Providers.Gemini.MaxTokens)
	if err != nil {
		return err
	}
	var fallback ai.TextProvider
	if cfg.Providers.DeepSeek.APIKey != "" {
		fallback = ai.NewDeepSeekProvider(cfg.Providers.DeepSeek.APIKey, cfg.Providers.DeepSeek.BaseURL,
			cfg.Providers.DeepSeek.Model, cfg.Providers.DeepSeek.Temperature,
			cfg.Providers.DeepSeek.MaxTokens, cfg.Providers.DeepSeek.Timeout)
	}
	chain := &ai.FallbackChain{
		Primary:  gem,
		Fallback: fallback,
		Retry: ai.RetryConfig{
			MaxRetries:     cfg.Retry.MaxRetries,
			BaseDelay:      cfg.Retry.BaseDelay,
			MaxDelay:       cfg.Retry.MaxDelay,
			RequestTimeout: cfg.Retry.RequestTimeout,
		},
		Logger: log.New(log.Writer(), "[AI] ", log.LstdFlags),
	}

	// Education news aggregator with its one-hour cache.
	aggregator := news.NewAggregator(
		news.NewClient(cfg.NewsAPI.APIKey, cfg.NewsAPI.Endpoint),
		news.NewCache(cfg.NewsAPI.CacheTTL, nil),
		cfg.NewsAPI.PageSize,
		log.New(log.Writer(), "[NEWS] ", log.LstdFlags),
	)

	// Directory search index, built from the database at startup.
	idx, err := directory.NewIndex()
	if err != nil {
		return err
	}
	courses, err := st.ListCourses(ctx, "")
	if err != nil {
		return err
	}
	colleges, err := st.ListColleges(ctx, "")
	if err != nil {
		return err
	}
	if err := idx.Load(courses, colleges); err != nil {
		return err
	}

	api := e.Group("/api")

	auth := &AuthHandler{Store: st, Secret: secret}
	auth.Register(api.Group("/auth"))

	me := api.Group("/me")
	me.Use(runtime.EchoAuthMiddleware(secret))
	me.GET("", func(c echo.Context) error {
		userID := c.Get("user_id").(string)
		name, email, err := st.GetUser(c.Request().Context(), userID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(200, MeResponse{UserID: userID, Name: name, Email: email})
	})

	ch := &ChatHandler{
		Store:        st,
		Chain:        chain,
		Rdb:          rdb,
		HistoryLimit: cfg.Chat.HistoryLimit,
		RateLimit:    cfg.Chat.RateLimitPerMinute,
		Logger:       log.New(log.Writer(), "[CHAT] ", log.LstdFlags),
	}
	ch.Register(api.Group("/chat"), secret)

	qh := &QuizHandler{Store: st, Chain: chain, Logger: log.New(log.Writer(), "[QUIZ] ", log.LstdFlags)}
	qh.Register(api.Group("/quiz"), secret)

	crs := &CoursesHandler{Store: st}
	crs.Register(api.Group("/courses"))

	col := &CollegesHandler{Store: st}
	col.Register(api.Group("/colleges"))

	sh := &SearchHandler{Index: idx}
	sh.Register(api.Group("/search"))

	th := &TimelineHandler{Store: st}
	th.Register(api.Group("/timeline"), secret)

	nh := &NewsHandler{Aggregator: aggregator, Reader: news.NewReader()}
	nh.Register(api.Group("/news"))

	if cfg.Reminders.Enabled {
		sched := &ReminderScheduler{
			Store:    st,
			Rdb:      rdb,
			CronSpec: cfg.Reminders.CronSpec,
			Window:   cfg.Reminders.Window,
			Stop:     make(chan struct{}),
			Logger:   log.New(log.Writer(), "[SCHED] ", log.LstdFlags),
		}
		sched.Start()
	}

	addr := cfg.General.Listen
	if addr != "" && addr[0] != ':' {
		addr = ":" + addr
	}
	if addr == "" {
		addr = ":10002"
	}
	log.Printf("listening on %s", addr)
	return e.Start(addr)
}
