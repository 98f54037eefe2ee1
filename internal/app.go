package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"user-directory/config"
	"user-directory/internal/application/ports"
	"user-directory/internal/application/services"
	"user-directory/internal/infrastructure/db/memory/user"
	"user-directory/internal/infrastructure/metrics"
	"user-directory/internal/infrastructure/mq"
	"user-directory/internal/interface/api/rest"
	"user-directory/internal/interface/api/rest/middleware"
	"user-directory/internal/interface/shell"
	"user-directory/pkg/rmqconsumer"
)

const shutdownTimeout = 5 * time.Second

// Options select the front ends and the process streams.
type Options struct {
	EnvFile    string
	HTTP       bool
	Shell      bool
	In         io.Reader
	Out        io.Writer
	Registerer prometheus.Registerer
}

type App struct {
	logger     *zap.Logger
	cfg        config.Config
	opts       Options
	httpSrv    *http.Server
	router     *gin.Engine
	shell      *shell.Shell
	mCounter   *prometheus.CounterVec
	mq         ports.RabbitMQ
	mqConsumer ports.RMQConsumer
}

func NewApp(ctx context.Context, opts Options) (*App, error) {
	// config
	if err := godotenv.Load(opts.EnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", opts.EnvFile, err)
	}
	cfg := config.Load()

	// logger
	logger, err := newLogger(cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("cannot initialize zap logger: %w", err)
	}

	// metrics
	if opts.Registerer == nil {
		opts.Registerer = prometheus.DefaultRegisterer
	}
	mCounter := metrics.NewCounter(opts.Registerer)

	// router
	switch cfg.App.Env {
	case gin.ReleaseMode, "prod", "production":
		gin.SetMode(gin.ReleaseMode)
	case gin.TestMode:
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogGin(logger, mCounter))

	// httpServer
	httpSrv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	app := &App{
		logger:   logger,
		cfg:      cfg,
		opts:     opts,
		httpSrv:  httpSrv,
		router:   r,
		mCounter: mCounter,
	}

	if !cfg.MQEnabled() {
		logger.Info("RABBITMQ_HOST not set, user events disabled")
		return app, nil
	}

	// rabbitMQ
	rabbitDsn, err := cfg.AMQPDSN()
	if err != nil {
		logger.Fatal("RabbitMQ config error", zap.Error(err))
	}
	rbMQ := mq.New(cfg.MQ, logger)
	if err = rbMQ.Connect(ctx, rabbitDsn); err != nil {
		logger.Fatal("failed to connect to rabbitMQ", zap.Error(err))
	}
	if err = rbMQ.Init(); err != nil {
		logger.Fatal("failed init rabbitMQ", zap.Error(err))
	}
	// rmqConsumer
	rmqConsumer := rmqconsumer.New(cfg.MQ, logger, rbMQ.GetConn(), auditOut(opts))
	if err = rmqConsumer.Connect(rabbitDsn); err != nil {
		logger.Fatal("failed to connect rabbitMQ consumer", zap.Error(err))
	}
	if err = rmqConsumer.Init(); err != nil {
		logger.Fatal("failed to init rabbitMQ consumer", zap.Error(err))
	}

	app.mq = rbMQ
	app.mqConsumer = rmqConsumer

	return app, nil
}

// auditOut is where audit entries are printed. The shell owns the output
// stream when it runs, so entries then go to the logger.
func auditOut(opts Options) io.Writer {
	switch {
	case opts.Shell:
		return nil
	case opts.Out != nil:
		return opts.Out
	default:
		return os.Stdout
	}
}

func newLogger(env string) (*zap.Logger, error) {
	switch env {
	case "dev", "development", gin.DebugMode:
		return zap.NewDevelopment()
	default:
		return zap.NewProduction()
	}
}

func (a *App) Close() {
	if a.mqConsumer != nil {
		a.mqConsumer.Close()
	}
	if a.mq != nil && a.mq.GetConn() != nil {
		_ = a.mq.GetConn().Close()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// Run - The central place to launch and manage our application and
// parallel processes through a single context.
func (a *App) Run(ctx context.Context) error {
	// context with os signals cancel chan
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	if a.opts.HTTP {
		g.Go(func() error {
			a.logger.Info("starting "+a.cfg.App.Name, zap.String("addr", a.cfg.App.Host+":"+a.cfg.App.Port))
			if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("http server "+a.cfg.App.Name+" error: %w", err)
			}

			return nil
		})
	}

	if a.shell != nil {
		g.Go(func() error {
			err := a.shell.Run(ctx)
			if a.opts.HTTP {
				a.logger.Info("shell closed, http api keeps serving")
			} else {
				cancel()
			}
			return err
		})
	}

	if a.mq != nil {
		g.Go(func() error {
			a.mq.PublisherWorker(ctx)
			return nil
		})
	}

	if a.mqConsumer != nil {
		g.Go(func() error {
			a.mqConsumer.DeliveryWorker(ctx)
			return nil
		})
	}

	<-ctx.Done()

	a.logger.Info("shutting down " + a.cfg.App.Name + " gracefully...")
	if a.opts.HTTP {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()
		if err := a.httpSrv.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("http server shutdown "+a.cfg.App.Name+" error", zap.Error(err))
			return err
		}
	}

	if err := g.Wait(); err != nil {
		a.logger.Error(a.cfg.App.Name+" returning an error", zap.Error(err))
		return err
	}

	a.logger.Info(a.cfg.App.Name + " gracefully stopped")

	return nil
}

func (a *App) InitControllers() {
	// repos
	userRepo := user.NewRepository()

	// services
	var events ports.EventPublisher
	if a.mq != nil {
		events = a.mq
	}
	userService := services.NewUserService(userRepo, events, a.mCounter, a.logger)

	// controllers
	rest.NewUserController(a.router, userService, a.logger)
	if a.opts.Shell {
		a.shell = shell.New(userService, a.logger, a.opts.In, a.opts.Out)
	}

	// ops
	a.router.GET(rest.RouteHealth, func(c *gin.Context) { c.Status(http.StatusOK) })
	a.router.GET(rest.RouteMetrics, gin.WrapH(a.metricsHandler()))
}

func (a *App) metricsHandler() http.Handler {
	if g, ok := a.opts.Registerer.(prometheus.Gatherer); ok && a.opts.Registerer != prometheus.DefaultRegisterer {
		return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
	}
	return promhttp.Handler()
}

func (a *App) Logger() *zap.Logger { return a.logger }
