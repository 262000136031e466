// Package server exposes a published grid snapshot over HTTP.
//
// Routes:
//
//	GET  /healthz          liveness
//	GET  /v1/grid          summary of the current snapshot
//	PUT  /v1/grid          rebuild or reclassify, then publish
//	GET  /v1/grid/blocked  blocked cells and invalid nodes
//	POST /v1/route         search between two points
//	GET  /metrics          Prometheus metrics
//
// Searches always run against the snapshot loaded when the request
// arrived; a concurrent PUT publishes a new one without disturbing them.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/gridroute/astar"
	"github.com/katalvlaran/gridroute/snapshot"
)

// ErrNoSnapshot is returned by New when the store is empty.
var ErrNoSnapshot = errors.New("server: store holds no snapshot")

// Options configures a Server.
type Options struct {
	Logger   logrus.FieldLogger
	Search   []astar.Option
	Registry *prometheus.Registry
}

// Option represents a functional option for New.
type Option func(*Options)

// WithLogger sets the request and lifecycle logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithSearchOptions sets the options passed to every search.
func WithSearchOptions(opts ...astar.Option) Option {
	return func(o *Options) {
		o.Search = opts
	}
}

// WithRegistry registers metrics on reg instead of a private registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(o *Options) {
		if reg != nil {
			o.Registry = reg
		}
	}
}

// Server serves one snapshot.Store.
type Server struct {
	store   *snapshot.Store
	log     logrus.FieldLogger
	search  []astar.Option
	reg     *prometheus.Registry
	metrics *metrics
	engine  *gin.Engine

	mu sync.Mutex // serializes PUT /v1/grid
}

// New builds the router around store.
func New(store *snapshot.Store, opts ...Option) (*Server, error) {
	o := Options{Logger: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(&o)
	}
	if store == nil || store.Load() == nil {
		return nil, ErrNoSnapshot
	}
	if o.Registry == nil {
		o.Registry = prometheus.NewRegistry()
	}

	s := &Server{
		store:   store,
		log:     o.Logger,
		search:  o.Search,
		reg:     o.Registry,
		metrics: newMetrics(o.Registry),
	}
	s.observe(store.Load())

	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())
	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	v1 := r.Group("/v1")
	v1.GET("/grid", s.HandleGetGrid)
	v1.PUT("/grid", s.HandleUpdateGrid)
	v1.GET("/grid/blocked", s.HandleBlocked)
	v1.POST("/route", s.HandleRoute)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(o.Registry, promhttp.HandlerOpts{})))
	s.engine = r

	return s, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.engine }

// Run serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		s.log.WithField("addr", addr).Info("listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Info("shutting down")
		return srv.Shutdown(shutdown)
	}
}

// observe refreshes the gauges for a newly published snapshot.
func (s *Server) observe(snap *snapshot.Snapshot) {
	s.metrics.blockedCells.Set(float64(snap.Blocked().Len()))
	s.metrics.invalidNodes.Set(float64(snap.Index().Len()))
}

// getOrCreateRequestID echoes X-Request-ID or mints one.
func getOrCreateRequestID(c *gin.Context) string {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Header("X-Request-ID", requestID)
	return requestID
}

// requestLogger tags each request with an ID and logs its completion.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		began := time.Now()
		id := getOrCreateRequestID(c)
		c.Set("request_id", id)
		c.Next()
		s.log.WithFields(logrus.Fields{
			"request_id": id,
			"method":     c.Request.Method,
			"path":       c.FullPath(),
			"status":     c.Writer.Status(),
			"elapsed":    time.Since(began),
		}).Debug("request")
	}
}

// logger returns the request-scoped logger.
func (s *Server) logger(c *gin.Context, handler string) logrus.FieldLogger {
	return s.log.WithFields(logrus.Fields{
		"request_id": c.GetString("request_id"),
		"handler":    handler,
	})
}
