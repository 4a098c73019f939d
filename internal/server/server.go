package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"tasklane/internal/activity"
	"tasklane/internal/config"
	"tasklane/internal/metrics"
	"tasklane/internal/store"
)

const (
	allowRemoteEnvKey = "TASKLANE_ALLOW_REMOTE"
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 30 * time.Second
	writeTimeout      = 60 * time.Second
	idleTimeout       = 60 * time.Second
	shutdownTimeout   = 10 * time.Second

	loginMaxFailures = 5
	loginWindow      = 5 * time.Minute
	loginBlockedFor  = 15 * time.Minute
)

// Store is everything the HTTP layer needs from persistence.
type Store interface {
	store.TaskStore
	store.HistoryStore
	store.NotificationStore
	store.ProjectStore
	store.CommentStore
	store.AuthStore
}

type pinger interface {
	Ping(ctx context.Context) error
}

// Options tunes a Server. Zero values fall back to config defaults.
type Options struct {
	SubtaskPageSize   int
	NotificationLimit int
	SessionTTL        time.Duration
	Metrics           *metrics.Metrics
}

// Server wraps HTTP handlers for the tasklane API.
type Server struct {
	addr         string
	pinger       pinger
	coordinator  *activity.Coordinator
	authService  *AuthService
	loginLimiter *loginRateLimiter
	metrics      *metrics.Metrics
	logger       *slog.Logger

	subtaskPageSize   int
	notificationLimit int
	now               func() time.Time
}

// New creates a new server instance.
func New(addr string, st Store, logger *slog.Logger, opts Options) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.SubtaskPageSize <= 0 {
		opts.SubtaskPageSize = config.DefaultSubtaskPageSize
	}
	if opts.NotificationLimit <= 0 {
		opts.NotificationLimit = config.DefaultNotificationsListLimit
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.New()
	}

	coordinator := activity.New(activity.Stores{
		Tasks:         st,
		History:       st,
		Notifications: st,
		Projects:      st,
		Comments:      st,
	}, logger, activity.WithRecorder(opts.Metrics))

	srv := &Server{
		addr:              addr,
		coordinator:       coordinator,
		authService:       NewAuthService(st, opts.SessionTTL),
		loginLimiter:      newLoginRateLimiter(loginMaxFailures, loginWindow, loginBlockedFor),
		metrics:           opts.Metrics,
		logger:            logger.With("component", "server"),
		subtaskPageSize:   opts.SubtaskPageSize,
		notificationLimit: opts.NotificationLimit,
		now:               time.Now,
	}
	if p, ok := st.(pinger); ok {
		srv.pinger = p
	}
	return srv
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.withRequestLogging(s.routes())
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log().Info("starting server", "addr", s.addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.log().Info("shutting down server", "addr", s.addr)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// ListenAddr converts a base API URL into a listen address.
func ListenAddr(apiURL string) (string, error) {
	if apiURL == "" {
		return "", fmt.Errorf("api url is required")
	}
	if u, err := url.Parse(apiURL); err == nil && u.Host != "" {
		host := u.Hostname()
		if !isAllowedListenHost(host) {
			return "", fmt.Errorf("remote listen host %q requires %s=true", host, allowRemoteEnvKey)
		}
		return u.Host, nil
	}

	host, _, err := net.SplitHostPort(apiURL)
	if err == nil && !isAllowedListenHost(host) {
		return "", fmt.Errorf("remote listen host %q requires %s=true", host, allowRemoteEnvKey)
	}

	return apiURL, nil
}

func isAllowedListenHost(host string) bool {
	if host == "" {
		return true
	}
	if strings.EqualFold(strings.TrimSpace(os.Getenv(allowRemoteEnvKey)), "true") {
		return true
	}
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

func (s *Server) log() *slog.Logger {
	if s != nil && s.logger != nil {
		return s.logger
	}
	return slog.Default()
}
