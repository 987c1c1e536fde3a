package api

import (
	"net/http"
	"time"

	"inspection-marketplace/internal/handler/httperr"
	"inspection-marketplace/internal/handler/middleware"
	"inspection-marketplace/internal/pkg/errs"
	"inspection-marketplace/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/spf13/cast"
)

var errMissingPrincipal = errs.New("no authenticated user on request")

// currentUser aborts the request when the auth middleware did not run.
func currentUser(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingPrincipal, "Unauthorized", nil)
	}
	return id, ok
}

func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return uuid.Nil, false
	}
	return id, true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return false
	}
	return true
}

// listParams reads ?cursor= and ?limit=; a bad limit falls back to the default.
func listParams(c *gin.Context) (*queries.Cursor, int) {
	var cursor *queries.Cursor
	if after := c.Query("cursor"); after != "" {
		cursor = &queries.Cursor{After: after}
	}
	return cursor, queries.ValidateLimit(cast.ToInt(c.Query("limit")))
}

func queryTime(c *gin.Context, key string, fallback time.Time) (time.Time, bool) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, true
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid "+key, nil)
		return time.Time{}, false
	}
	return t, true
}
