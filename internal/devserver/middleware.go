package devserver

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/dmitrijs2005/tailorhub/internal/client/models"
	"github.com/dmitrijs2005/tailorhub/internal/common"
	"github.com/dmitrijs2005/tailorhub/internal/logging"
)

const userKey = "user"

// authRequired resolves the bearer token to a user and stores it in the
// gin context.
func (h *handler) authRequired(c *gin.Context) {
	raw := c.GetHeader(common.AuthorizationHeaderName)
	token, ok := strings.CutPrefix(raw, common.BearerPrefix)
	if !ok || token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authorized, no token"})
		return
	}
	claims, err := ParseToken(token, h.secret)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authorized, token failed"})
		return
	}
	u, err := h.store.User(claims.UserID)
	if err != nil {
		fail(c, err)
		return
	}
	c.Set(userKey, u)
	c.Next()
}

func currentUser(c *gin.Context) models.User {
	u, _ := c.MustGet(userKey).(models.User)
	return u
}

func requireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if u := currentUser(c); u.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": fmt.Sprintf("Only %s accounts can do this", role)})
			return
		}
		c.Next()
	}
}

func requestLogger(log logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"request_id", c.GetHeader(common.RequestIDHeaderName),
			"duration", time.Since(start))
	}
}

type serverMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newServerMetrics(reg prometheus.Registerer) *serverMetrics {
	f := promauto.With(reg)
	return &serverMetrics{
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tailorhub",
			Subsystem: "devserver",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "tailorhub",
			Subsystem: "devserver",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

func metricsMiddleware(m *serverMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.duration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

type cachedResponse struct {
	status int
	body   []byte
}

// idempotencyCache replays the first response for a repeated
// Idempotency-Key from the same user. Server errors are not cached.
type idempotencyCache struct {
	mu    sync.Mutex
	saved map[string]cachedResponse
}

func newIdempotencyCache() *idempotencyCache {
	return &idempotencyCache{saved: make(map[string]cachedResponse)}
}

type recordingWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *recordingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *recordingWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

func (ic *idempotencyCache) middleware(c *gin.Context) {
	key := c.GetHeader(common.IdempotencyKeyHeaderName)
	if key == "" || c.Request.Method == http.MethodGet {
		c.Next()
		return
	}
	key = currentUser(c).ID + "|" + c.Request.Method + "|" + c.Request.URL.Path + "|" + key

	ic.mu.Lock()
	prev, ok := ic.saved[key]
	ic.mu.Unlock()
	if ok {
		c.Header("Idempotent-Replayed", "true")
		c.Data(prev.status, "application/json; charset=utf-8", prev.body)
		c.Abort()
		return
	}

	rw := &recordingWriter{ResponseWriter: c.Writer}
	c.Writer = rw
	c.Next()

	if status := rw.Status(); status < http.StatusInternalServerError {
		ic.mu.Lock()
		ic.saved[key] = cachedResponse{status: status, body: rw.body.Bytes()}
		ic.mu.Unlock()
	}
}
