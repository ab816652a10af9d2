// Package devserver is a development backend for the giftshop client: an
// in-memory catalog behind the same REST endpoints the client consumes.
package devserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/giftshop/internal/cryptox"
	"github.com/dmitrijs2005/giftshop/internal/devserver/config"
	"github.com/dmitrijs2005/giftshop/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const limiterCleanup = 5 * time.Minute

type App struct {
	config  *config.Config
	logger  logging.Logger
	limiter *RateLimiter
	handler http.Handler
	secret  []byte
}

// secretSize is the length in bytes of a generated signing secret.
const secretSize = 32

func NewApp(cfg *config.Config) (*App, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	logger := logging.Setup(os.Stdout, level)

	accounts, err := NewAccounts()
	if err != nil {
		return nil, fmt.Errorf("accounts init error: %w", err)
	}

	secret := []byte(cfg.SecretKey)
	if len(secret) == 0 {
		key, err := cryptox.RandomHex(secretSize)
		if err != nil {
			return nil, fmt.Errorf("secret key init error: %w", err)
		}
		secret = []byte(key)
		logger.Warn(context.Background(), "no secret key configured, tokens are signed with a random per-process key")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	limiter := NewRateLimiter(cfg.LoginRatePerMinute, limiterCleanup)

	h := NewRouter(&RouterDeps{
		Catalog:       NewCatalog(),
		Accounts:      accounts,
		Orders:        NewOrderBook(),
		Metrics:       NewMetrics(reg),
		LoginLimiter:  limiter,
		Logger:        logger,
		SecretKey:     secret,
		TokenValidity: cfg.TokenValidity,
	})

	return &App{config: cfg, logger: logger, limiter: limiter, handler: h, secret: secret}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// drains in-flight requests for at most ShutdownTimeout.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()
	defer app.limiter.Stop()

	app.initSignalHandler(cancelFunc)

	ln, err := net.Listen("tcp", app.config.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen [%s]: %w", app.config.Addr, err)
	}

	return app.serve(ctx, ln)
}

func (app *App) serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           app.handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "Starting HTTP server", "address", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	app.logger.Info(context.Background(), "Stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.config.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	<-errCh
	return nil
}
