// Package web serves the request-driven mode: an allow-listed, password
// protected page that runs detection and, on request, a purge pass.
package web

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/glorpus-work/cachectl/internal/logger"
	"github.com/glorpus-work/cachectl/pkg/auth"
	"github.com/glorpus-work/cachectl/pkg/backend"
	"github.com/glorpus-work/cachectl/pkg/cache"
	"github.com/glorpus-work/cachectl/pkg/config"
	"github.com/glorpus-work/cachectl/pkg/errors"
)

const (
	// ActionField carries the requested action; ActionClear triggers a purge.
	ActionField = "action"
	ActionClear = "clear"

	// LiteSpeedPurgeHeader asks a LiteSpeed front end to purge its page cache.
	LiteSpeedPurgeHeader = "X-LiteSpeed-Purge"

	pageTitle       = "Server Cache Manager"
	timestampLayout = "2006-01-02 15:04:05"
	shutdownTimeout = 5 * time.Second
)

// Server is an http.Handler for the cache manager page.
type Server struct {
	cfg           *config.Config
	gate          *auth.Gate
	caps          backend.Capabilities
	inspectorOpts []cache.Option
	postPurge     func(context.Context, *cache.PurgeReport)
	history       *History
	router        *httprouter.Router
	now           func() time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithCapabilities links in-process cache capabilities.
func WithCapabilities(caps backend.Capabilities) Option {
	return func(s *Server) { s.caps = caps }
}

// WithInspectorOptions passes options to every inspector the server creates.
func WithInspectorOptions(opts ...cache.Option) Option {
	return func(s *Server) { s.inspectorOpts = append(s.inspectorOpts, opts...) }
}

// WithHistory keeps recent purge summaries in h and links h as the
// in-process object cache unless one was already supplied.
func WithHistory(h *History) Option {
	return func(s *Server) { s.history = h }
}

// WithPostPurge registers a callback run after every purge pass.
func WithPostPurge(fn func(context.Context, *cache.PurgeReport)) Option {
	return func(s *Server) { s.postPurge = fn }
}

// NewServer wires the routes.
func NewServer(cfg *config.Config, opts ...Option) *Server {
	s := &Server{
		cfg:  cfg,
		gate: auth.NewGate(cfg.AdminPassword, cfg.AllowedIPs),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.history != nil && s.caps.Object == nil {
		s.caps.Object = s.history.ObjectCache()
	}

	router := httprouter.New()
	router.GET("/", s.handleIndex)
	router.POST("/", s.handleInspect)
	router.GET("/healthz", s.handleHealth)
	s.router = router
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	logger.Info("serving cache manager", logger.Fields{"addr": addr})

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if !s.gate.AllowAddr(r.RemoteAddr) {
		s.reject(w, r, auth.ErrAddressNotAllowed)
		return
	}
	s.render(w, pageData{Title: pageTitle})
}

func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := s.gate.Authorize(r); err != nil {
		s.reject(w, r, err)
		return
	}

	meta := s.requestMeta(r)
	caps := s.caps
	if caps.Edge == nil && liteSpeedFront(meta.ServerSoftware) {
		caps.Edge = headerPurger{w: w}
	}

	registry := backend.NewRegistry(s.cfg, caps, meta)
	inspector := cache.NewInspector(r.Context(), registry, s.inspectorOpts...)

	data := pageData{
		Title:      pageTitle,
		Authorized: true,
		Detection:  inspector.Results(),
		CheckedAt:  s.now().Format(timestampLayout),
	}
	if r.PostFormValue(ActionField) == ActionClear {
		report := inspector.PurgeAll(r.Context())
		data.Purged = true
		data.Purge = report.Lines()
		logger.Info("purge requested over http", logger.Fields{
			"remote":    r.RemoteAddr,
			"succeeded": report.Succeeded(),
			"failed":    report.Failed(),
		})
		if s.history != nil {
			s.history.add(historyEntry{
				At:      data.CheckedAt,
				Remote:  r.RemoteAddr,
				Cleared: report.Cleared(),
				Failed:  report.Failed(),
			})
		}
		if s.postPurge != nil {
			s.postPurge(r.Context(), report)
		}
	}
	if s.history != nil {
		data.History = s.history.entries()
	}
	data.HasAvailable = inspector.HasAvailable()
	s.render(w, data)
}

func (s *Server) reject(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := http.StatusUnauthorized, auth.MsgAuthFailed
	if errors.Is(err, auth.ErrAddressNotAllowed) {
		status, msg = http.StatusForbidden, auth.MsgAccessDenied
	}
	logger.Warn("request rejected", logger.Fields{"remote": r.RemoteAddr, "reason": err.Error()})
	http.Error(w, msg, status)
}

func (s *Server) render(w http.ResponseWriter, data pageData) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		logger.Error("render failed", logger.Fields{"error": err.Error()})
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *Server) requestMeta(r *http.Request) backend.RequestMeta {
	return backend.RequestMeta{
		RemoteAddr:     r.RemoteAddr,
		ServerSoftware: s.cfg.Server.ServerSoftware,
		CFRay:          r.Header.Get("CF-Ray") != "",
		CFConnectingIP: r.Header.Get("CF-Connecting-IP") != "",
	}
}
