package api

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
)

type cachedResponse struct {
	status      int
	contentType string
	body        []byte
}

type bodyCacheWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w bodyCacheWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// ResponseCache returns a middleware that caches successful GET responses for
// the given TTL. Resource listings change rarely compared to how often every
// dashboard polls them; booking and slot endpoints must never go through this.
func ResponseCache(ttl time.Duration) gin.HandlerFunc {
	store := gocache.New(ttl, 2*ttl)

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := c.Request.URL.RequestURI()
		if v, found := store.Get(key); found {
			cached := v.(cachedResponse)
			c.Data(cached.status, cached.contentType, cached.body)
			c.Abort()
			return
		}

		writer := bodyCacheWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = writer
		c.Next()

		status := c.Writer.Status()
		if status == http.StatusOK {
			store.Set(key, cachedResponse{
				status:      status,
				contentType: c.Writer.Header().Get("Content-Type"),
				body:        writer.body.Bytes(),
			}, ttl)
		}
	}
}
