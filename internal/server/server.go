// Package server exposes the conversion engine over a localhost HTTP
// surface: a JSON conversion API computed per request, and the ICS
// occasions feed served from an atomically swapped cache with conditional
// GET support.
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
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/tartampluch/go-hijri/internal/config"
	"github.com/tartampluch/go-hijri/internal/engine"
	"github.com/tartampluch/go-hijri/internal/tabular"
)

// cacheItem stores the rendered occasions feed and its metadata for HTTP caching.
type cacheItem struct {
	data         []byte
	etag         string
	lastModified string // RFC1123 format required by HTTP headers
}

// ConversionServer serves the JSON API and the generated ICS feed.
type ConversionServer struct {
	// cache uses atomic.Pointer for lock-free reads. The feed is read
	// frequently by clients but regenerated rarely, so this beats a RWMutex
	// by eliminating contention on the hot path (HTTP GET).
	cache     atomic.Pointer[cacheItem]
	Converter *engine.Converter
	Port      string
}

// NewConversionServer creates a new instance of the server.
func NewConversionServer(port string, conv *engine.Converter) *ConversionServer {
	return &ConversionServer{
		Converter: conv,
		Port:      port,
	}
}

// Start initializes the HTTP server and blocks until the context is cancelled.
func (s *ConversionServer) Start(ctx context.Context) error {
	if s.Port == "" {
		return errors.New(config.ErrPortRequired)
	}

	mux := http.NewServeMux()
	mux.HandleFunc(config.RouteCalendar, s.handleCalendarRequest)
	mux.HandleFunc(config.RouteConvert, s.handleConvertRequest)
	mux.HandleFunc(config.RouteSourceInfo, s.handleSourceInfoRequest)

	srv := &http.Server{
		Addr:         config.LocalhostBindAddr + config.AddrSeparator + s.Port,
		Handler:      mux,
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
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
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

// Update atomically replaces the served ICS content.
func (s *ConversionServer) Update(data []byte) {
	hash := sha256.Sum256(data)
	etag := fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:]))

	lastMod := time.Now().UTC().Format(http.TimeFormat)

	item := &cacheItem{
		data:         data,
		etag:         etag,
		lastModified: lastMod,
	}

	// Atomic store ensures a concurrent reader sees either the old or the
	// new complete item, never a partial state.
	s.cache.Store(item)

	slog.Debug(config.MsgCacheUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeySizeBytes, len(data),
		config.LogKeyETag, etag,
	)
}

// handleCalendarRequest serves the ICS content with HTTP caching support.
func (s *ConversionServer) handleCalendarRequest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set(config.HeaderAllow, config.AllowedMethods)
		http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
		return
	}

	item := s.cache.Load()
	if item == nil {
		w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
		http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
		return
	}

	w.Header().Set(config.HeaderContentType, config.MimeTextCalendar)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
	w.Header().Set(config.HeaderETag, item.etag)
	w.Header().Set(config.HeaderLastModified, item.lastModified)

	if match := r.Header.Get(config.HeaderIfNoneMatch); match == item.etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	if since := r.Header.Get(config.HeaderIfModifiedSince); since != "" {
		if clientTime, err := time.Parse(http.TimeFormat, since); err == nil {
			if serverTime, err := time.Parse(http.TimeFormat, item.lastModified); err == nil {
				if !serverTime.After(clientTime) {
					w.WriteHeader(http.StatusNotModified)
					return
				}
			}
		}
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

// apiError is the uniform JSON error payload.
type apiError struct {
	Error string `json:"error"`
}

// handleConvertRequest computes a conversion per request. Conversions are
// pure and cheap, so no caching is involved on this route.
func (s *ConversionServer) handleConvertRequest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set(config.HeaderAllow, config.AllowedMethods)
		http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	from := q.Get(config.QueryParamFrom)
	to := q.Get(config.QueryParamTo)
	date := q.Get(config.QueryParamDate)
	if from == "" || to == "" || date == "" {
		writeJSON(w, http.StatusBadRequest, apiError{Error: config.ErrMissingQuery})
		return
	}

	y, m, d, err := ParseDate(date)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: err.Error()})
		return
	}

	result, err := s.Converter.Convert(from, to, y, m, d)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleSourceInfoRequest reports official-data coverage for a Hijri year/month.
func (s *ConversionServer) handleSourceInfoRequest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set(config.HeaderAllow, config.AllowedMethods)
		http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	yearStr := q.Get(config.QueryParamYear)
	if yearStr == "" {
		writeJSON(w, http.StatusBadRequest, apiError{Error: config.ErrMissingQuery})
		return
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: config.ErrDateParse})
		return
	}

	month := 0
	if monthStr := q.Get(config.QueryParamMonth); monthStr != "" {
		month, err = strconv.Atoi(monthStr)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, apiError{Error: config.ErrDateParse})
			return
		}
	}

	if year < config.MinHijriYear || year > config.MaxHijriYear {
		writeJSON(w, http.StatusBadRequest, apiError{Error: tabular.ErrYearOutOfRange.Error()})
		return
	}

	writeJSON(w, http.StatusOK, s.Converter.GetSourceInfo(year, month))
}

// writeJSON emits a JSON payload with the API's standard headers.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set(config.HeaderContentType, config.MimeJSON)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlNoStore)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error(config.ErrWriteResp,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyError, err,
		)
	}
}

// ParseDate parses YYYY/MM/DD with /, - or . separators into its numeric
// components. Range validation is the engine's job; this only enforces shape.
func ParseDate(s string) (int, int, int, error) {
	normalized := strings.NewReplacer("-", "/", ".", "/").Replace(s)
	parts := strings.Split(normalized, "/")
	if len(parts) != 3 {
		return 0, 0, 0, errors.New(config.ErrDateParse)
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return 0, 0, 0, errors.New(config.ErrDateParse)
		}
		nums[i] = n
	}
	return nums[0], nums[1], nums[2], nil
}

// ParseYearMonth parses YYYY/MM with the same separators as ParseDate.
func ParseYearMonth(s string) (int, int, error) {
	normalized := strings.NewReplacer("-", "/", ".", "/").Replace(s)
	parts := strings.Split(normalized, "/")
	if len(parts) != 2 {
		return 0, 0, errors.New(config.ErrDateParse)
	}

	year, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, errors.New(config.ErrDateParse)
	}
	month, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, errors.New(config.ErrDateParse)
	}
	return year, month, nil
}
