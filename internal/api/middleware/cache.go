package middleware

import (
	"bytes"
	"net/http"
	"sync"
	"time"
)

// ResponseCache caches one successful response body for a fixed TTL under a
// single key, regardless of query parameters or caller identity. This mirrors
// the listing cache of the original system; within the TTL every caller
// observes the first-rendered page.
type ResponseCache struct {
	ttl time.Duration

	mu          sync.Mutex
	body        []byte
	contentType string
	expiresAt   time.Time
}

func NewResponseCache(ttl time.Duration) *ResponseCache {
	return &ResponseCache{ttl: ttl}
}

type bufferingWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (w *bufferingWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *bufferingWriter) Write(p []byte) (int, error) {
	w.buf.Write(p)
	return w.ResponseWriter.Write(p)
}

func (c *ResponseCache) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.mu.Lock()
		if c.body != nil && time.Now().Before(c.expiresAt) {
			body, contentType := c.body, c.contentType
			c.mu.Unlock()
			if contentType != "" {
				w.Header().Set("Content-Type", contentType)
			}
			w.Write(body)
			return
		}
		c.mu.Unlock()

		bw := &bufferingWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(bw, r)

		if bw.status != http.StatusOK {
			return
		}

		c.mu.Lock()
		c.body = append([]byte(nil), bw.buf.Bytes()...)
		c.contentType = bw.Header().Get("Content-Type")
		c.expiresAt = time.Now().Add(c.ttl)
		c.mu.Unlock()
	})
}
