package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/instantfun/soundboard/internal/errors"
	"github.com/instantfun/soundboard/internal/logger"
	"github.com/instantfun/soundboard/internal/metrics"
	"github.com/instantfun/soundboard/internal/util"
	"go.uber.org/zap"
)

const proxyCacheControl = "public, max-age=31536000"

// Proxy re-streams a plain-HTTP asset over this service's own transport so
// browsers on an HTTPS page can play it without mixed-content blocking.
// URLs that are not plain-HTTP are redirected back to the client untouched.
// The body is copied straight from the upstream connection to the response
// writer; it is never buffered, and the upstream request shares the inbound
// request's context so a client disconnect tears down the upstream fetch.
// GET /api/proxy?url=...
func (h *Handlers) Proxy(c *gin.Context) {
	targetURL := c.Query("url")
	if targetURL == "" {
		util.RespondValidationError(c, "url", "missing url parameter")
		return
	}

	if !strings.HasPrefix(targetURL, "http://") {
		c.Redirect(http.StatusFound, targetURL)
		return
	}

	req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodGet, targetURL, nil)
	if err != nil {
		util.RespondValidationError(c, "url", "invalid url")
		return
	}

	resp, err := h.proxyClient.Do(req)
	if err != nil {
		metrics.Get().ProxyUpstreamError.Inc()
		logger.Warn("proxy upstream fetch failed", zap.String("url", targetURL), zap.Error(err))
		util.RespondWithAPIError(c, errors.UpstreamError("proxy error"))
		return
	}
	defer resp.Body.Close()

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "audio/mpeg"
	}

	c.Header("Content-Type", contentType)
	c.Header("Cache-Control", proxyCacheControl)
	c.Status(http.StatusOK)

	written, err := io.Copy(c.Writer, resp.Body)
	if written > 0 {
		metrics.Get().ProxyBytesStreamed.Add(float64(written))
	}
	if err != nil {
		// Headers are gone; just record the broken transfer.
		logger.Warn("proxy stream interrupted",
			zap.String("url", targetURL),
			zap.Int64("bytes_written", written),
			zap.Error(err))
	}
}
