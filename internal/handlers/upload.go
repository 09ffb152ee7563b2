package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/instantfun/soundboard/internal/errors"
	"github.com/instantfun/soundboard/internal/metrics"
	"github.com/instantfun/soundboard/internal/util"
)

// UploadToken mints a short-lived, bucket-scoped upload credential so the
// client can push audio bytes directly to object storage. Any authenticated
// caller may request one; there is no per-user quota.
// GET /api/upload-token
func (h *Handlers) UploadToken(c *gin.Context) {
	if _, ok := util.GetUserFromContext(c); !ok {
		return
	}

	if !h.cfg.Storage.Configured() || h.store == nil {
		util.RespondWithAPIError(c, errors.ConfigError("storage is not configured"))
		return
	}

	cred, err := h.store.MintUploadToken(c.Request.Context())
	if err != nil {
		util.RespondInternalError(c, "failed to issue upload token")
		return
	}

	metrics.Get().UploadTokensIssued.Inc()

	c.JSON(http.StatusOK, gin.H{
		"token":      cred.Token,
		"key":        cred.Key,
		"domain":     h.cfg.Storage.Domain,
		"max_size":   h.cfg.MaxFileSize,
		"expires_at": cred.ExpiresAt,
	})
}
