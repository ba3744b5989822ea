package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"lavahop/internal/arena"
	"lavahop/internal/logging"
	"lavahop/internal/spectate"
)

// RuntimeOptions are the frontend specific pieces of a Runtime.
type RuntimeOptions struct {
	// LogOutput receives logs when -debug is off. Nil discards.
	LogOutput io.Writer
	// Sound receives step events when -sound is on.
	Sound EventSink
}

// Runtime is everything a frontend needs to run a match: the session, its
// logger and the optional spectator server.
type Runtime struct {
	Session *Session
	Logger  *log.Logger

	// SpectateAddr is the bound spectator address, empty when disabled.
	SpectateAddr string

	logFile io.Closer
	server  *http.Server
}

// NewRuntime resolves cfg and starts the collaborators it enables.
func NewRuntime(cfg Config, opts RuntimeOptions) (*Runtime, error) {
	arenaCfg, err := cfg.Arena()
	if err != nil {
		return nil, err
	}

	logger := log.New()
	logOpts := logging.Options{Level: cfg.LogLevel, Fallback: opts.LogOutput}
	if cfg.Debug {
		logOpts.Dir = cfg.LogDir
		logOpts.Level = "debug"
	}
	f, err := logging.Setup(logger, logOpts)
	if err != nil {
		return nil, err
	}
	r := &Runtime{Logger: logger}
	if f != nil {
		r.logFile = f
	}

	world := arena.NewWithConfig(arenaCfg)
	world.SetLogger(logger.WithField("component", "arena"))

	sessionOpts := SessionOptions{PublishEvery: cfg.PublishEvery, Logger: logger}
	if cfg.Sound && opts.Sound != nil {
		sessionOpts.Sound = opts.Sound
	}
	if cfg.Spectate != "" {
		hub := spectate.NewHub(logger.WithField("component", "spectate"))
		if err := r.serve(cfg.Spectate, spectate.NewServer(hub)); err != nil {
			r.Close()
			return nil, err
		}
		sessionOpts.Hub = hub
	}
	r.Session = NewSession(world, sessionOpts)

	logger.WithFields(log.Fields{
		"seed":  arenaCfg.Seed,
		"blue":  arenaCfg.Blue.String(),
		"red":   arenaCfg.Red.String(),
		"lanes": arenaCfg.Params.Lanes(),
	}).Info("arena ready")
	return r, nil
}

func (r *Runtime) serve(addr string, handler http.Handler) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("spectate: listen %s: %w", addr, err)
	}
	r.SpectateAddr = ln.Addr().String()
	r.server = &http.Server{Handler: handler, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := r.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			r.Logger.WithError(err).Error("spectator server stopped")
		}
	}()
	r.Logger.WithField("addr", r.SpectateAddr).Info("spectator server listening")
	return nil
}

// Close stops the spectator server and closes the log file.
func (r *Runtime) Close() {
	if r.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := r.server.Shutdown(ctx); err != nil {
			r.Logger.WithError(err).Warn("spectator shutdown")
		}
		cancel()
		r.server = nil
	}
	if r.logFile != nil {
		r.logFile.Close()
		r.logFile = nil
	}
}
