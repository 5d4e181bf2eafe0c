// Package server exposes the derived dashboard and the milestone calendar
// on the loopback interface.
package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/tartampluch/circle-squared/internal/config"
	"github.com/tartampluch/circle-squared/internal/engine"
)

// cacheItem is a rendered resource and its metadata for HTTP caching.
type cacheItem struct {
	data         []byte
	contentType  string
	etag         string
	lastModified string // RFC1123 format required by HTTP headers
}

// Server serves the latest published calendar and dashboard.
// Both resources are swapped atomically: readers never take a lock and
// always see a complete version.
type Server struct {
	calendar  atomic.Pointer[cacheItem]
	dashboard atomic.Pointer[cacheItem]

	Port    string
	router  chi.Router
	started time.Time
}

// New creates a server that will listen on 127.0.0.1:port.
func New(port string) *Server {
	s := &Server{
		Port:    port,
		started: time.Now(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.GetHead)
	r.MethodNotAllowed(handleMethodNotAllowed)

	r.Get(config.RouteCalendar, s.serve(&s.calendar))
	r.Route(config.RouteAPI, func(r chi.Router) {
		r.Get(config.RouteDashboard, s.serve(&s.dashboard))
		r.Get(config.RouteHealth, s.handleHealth)
	})

	s.router = r
}

// Start listens on the loopback interface and blocks until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	if s.Port == "" {
		return errors.New(config.ErrPortRequired)
	}

	srv := &http.Server{
		Addr:         config.LocalhostBindAddr + config.AddrSeparator + s.Port,
		Handler:      s,
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)
	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyPort, s.Port,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// UpdateCalendar replaces the served iCalendar document.
func (s *Server) UpdateCalendar(data []byte) {
	s.calendar.Store(newCacheItem(data, config.MimeTextCalendar))
	logUpdate(config.RouteCalendar, s.calendar.Load())
}

// UpdateDashboard replaces the served dashboard.
func (s *Server) UpdateDashboard(dash engine.Dashboard) error {
	data, err := json.Marshal(dash)
	if err != nil {
		return err
	}
	s.dashboard.Store(newCacheItem(data, config.MimeJSON))
	logUpdate(config.RouteAPI+config.RouteDashboard, s.dashboard.Load())
	return nil
}

func newCacheItem(data []byte, contentType string) *cacheItem {
	hash := sha256.Sum256(data)
	return &cacheItem{
		data:         data,
		contentType:  contentType,
		etag:         fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:])),
		lastModified: time.Now().UTC().Format(http.TimeFormat),
	}
}

func logUpdate(resource string, item *cacheItem) {
	slog.Debug(config.MsgCacheUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeyResource, resource,
		config.LogKeySizeBytes, len(item.data),
		config.LogKeyETag, item.etag,
	)
}

// serve returns a handler for the resource held in slot, with conditional
// request support.
func (s *Server) serve(slot *atomic.Pointer[cacheItem]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		item := slot.Load()
		if item == nil {
			w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
			http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
			return
		}

		w.Header().Set(config.HeaderContentType, item.contentType)
		w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
		w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
		w.Header().Set(config.HeaderETag, item.etag)
		w.Header().Set(config.HeaderLastModified, item.lastModified)

		if notModified(r, item) {
			w.WriteHeader(http.StatusNotModified)
			return
		}

		if r.Method == http.MethodGet {
			if _, err := io.Copy(w, bytes.NewReader(item.data)); err != nil {
				slog.Error(config.ErrWriteResp,
					config.LogKeyComponent, config.CompServer,
					config.LogKeyError, err,
				)
			}
		}
	}
}

func notModified(r *http.Request, item *cacheItem) bool {
	if match := r.Header.Get(config.HeaderIfNoneMatch); match != "" {
		return match == item.etag
	}

	since := r.Header.Get(config.HeaderIfModifiedSince)
	if since == "" {
		return false
	}
	clientTime, err := time.Parse(http.TimeFormat, since)
	if err != nil {
		return false
	}
	serverTime, err := time.Parse(http.TimeFormat, item.lastModified)
	if err != nil {
		return false
	}
	return !serverTime.After(clientTime)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set(config.HeaderContentType, config.MimeJSON)
	if err := json.NewEncoder(w).Encode(map[string]any{
		"status":  "ok",
		"version": config.Version,
		"uptime":  time.Since(s.started).Seconds(),
		"ready":   s.dashboard.Load() != nil,
	}); err != nil {
		slog.Error(config.ErrWriteResp,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyError, err,
		)
	}
}

func handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set(config.HeaderAllow, config.AllowedMethods)
	http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
}
