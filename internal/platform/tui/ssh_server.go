package tui

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vovakirdan/flappy-quest/internal/config"
	"github.com/vovakirdan/flappy-quest/internal/metrics"
	"github.com/vovakirdan/flappy-quest/internal/session"
	"github.com/vovakirdan/flappy-quest/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.flappyquest/host_key.
	HostKeyPath string

	// DBPath is the path to the profile database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// MetricsAddress serves Prometheus metrics when set (e.g., ":9090").
	MetricsAddress string

	Game   config.Config
	Logger *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.flappyquest/flappyquest.db",
		IdleTimeout: 30 * time.Minute,
		Game:        config.Default(),
	}
}

// SSHServer serves one hub per SSH session. Each SSH user plays on a
// profile stored under their own namespace.
type SSHServer struct {
	config  SSHServerConfig
	server  *ssh.Server
	metrics *http.Server
	store   *storage.Store
	logger  *log.Logger
	active  *activeProfiles
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "flappyquest-ssh",
		})
	}

	// Profiles cannot live without storage
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("cannot open profile database: %w", err)
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
		active: newActiveProfiles(),
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			store.Close()
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".flappyquest", "host_key")
	}

	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		store.Close()
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	// Middlewares run last to first: logging, then the profile guard.
	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.profileMiddleware,
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}
	srv.server = server

	if cfg.MetricsAddress != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		srv.metrics = &http.Server{
			Addr:              cfg.MetricsAddress,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
	}

	return srv, nil
}

// teaHandler builds the hub for the profile claimed by profileMiddleware.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	profile, err := session.OpenStoredProfile(s.store, sshSession.User(), s.config.Game, session.ProfileOptions{
		Logger: s.logger.With("user", sshSession.User()),
		Seed:   time.Now().UnixNano(),
	})
	if err != nil {
		s.logger.Error("cannot open profile", "user", sshSession.User(), "error", err)
		return nil, nil
	}
	s.active.attach(sshSession.User(), profile)

	model := NewModel(profile, Options{
		Config: s.config.Game,
		Logger: s.logger.With("user", sshSession.User()),
		Width:  pty.Window.Width,
		Height: pty.Window.Height,
	})

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// profileMiddleware admits one live session per profile and flushes the
// profile's pending round when the session ends.
func (s *SSHServer) profileMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		user := sshSession.User()
		if !s.active.acquire(user) {
			s.logger.Warn("profile already in use", "user", user)
			wish.Fatalln(sshSession, "This profile is already playing in another session.")
			return
		}
		metrics.ActiveSessions.Inc()
		defer func() {
			metrics.ActiveSessions.Dec()
			if profile := s.active.release(user); profile != nil {
				profile.Controller.Close()
			}
		}()
		next(sshSession)
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	if s.metrics != nil {
		s.logger.Info("serving metrics", "address", s.config.MetricsAddress)
		go func() {
			if err := s.metrics.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				s.logger.Error("metrics server error", "error", err)
			}
		}()
	}

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	if s.metrics != nil {
		err = errors.Join(err, s.metrics.Shutdown(ctx))
	}
	// Each session settles its own round in profileMiddleware
	if waitErr := s.active.wait(ctx); waitErr != nil {
		s.logger.Warn("sessions still running at shutdown", "count", s.active.count(), "error", waitErr)
	}
	return errors.Join(err, s.store.Close())
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// activeProfiles tracks which profiles have a live session.
type activeProfiles struct {
	mu       sync.Mutex
	profiles map[string]*session.Profile
	idle     chan struct{} // Closed when the last session is released
}

func newActiveProfiles() *activeProfiles {
	return &activeProfiles{profiles: make(map[string]*session.Profile)}
}

// acquire claims user. It fails while another session holds it.
func (a *activeProfiles) acquire(user string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, busy := a.profiles[user]; busy {
		return false
	}
	a.profiles[user] = nil
	return true
}

// attach records the profile opened for a claimed user.
func (a *activeProfiles) attach(user string, p *session.Profile) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.profiles[user]; ok {
		a.profiles[user] = p
	}
}

// release frees user and returns its profile, if one was attached.
func (a *activeProfiles) release(user string) *session.Profile {
	a.mu.Lock()
	defer a.mu.Unlock()
	p := a.profiles[user]
	delete(a.profiles, user)
	if len(a.profiles) == 0 && a.idle != nil {
		close(a.idle)
		a.idle = nil
	}
	return p
}

func (a *activeProfiles) count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.profiles)
}

// wait blocks until every claimed profile is released or ctx is done.
func (a *activeProfiles) wait(ctx context.Context) error {
	a.mu.Lock()
	if len(a.profiles) == 0 {
		a.mu.Unlock()
		return nil
	}
	if a.idle == nil {
		a.idle = make(chan struct{})
	}
	idle := a.idle
	a.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
