package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/forumhive/forum-api/internal/query"
)

const (
	defaultLimit = 20
	defaultSort  = "id:asc"

	invalidSortDetail = "Invalid sort parameters. It must match attribute:order. ex: id:asc or id:desc"
	invalidPageDetail = "Invalid values: offset(>=0) or limit(>0)"
)

// pageParams extracts limit, offset and sort from the query string. An
// unparseable limit or offset counts as invalid pagination, never a silent
// fallback to the defaults.
func pageParams(c *gin.Context) (limit, offset int, sort string, err error) {
	sort = c.DefaultQuery("sort", defaultSort)

	limit, err = intQuery(c, "limit", defaultLimit)
	if err != nil {
		return 0, 0, sort, query.ErrInvalidPagination
	}
	offset, err = intQuery(c, "offset", 0)
	if err != nil {
		return 0, 0, sort, query.ErrInvalidPagination
	}
	return limit, offset, sort, query.ValidatePage(limit, offset)
}

func intQuery(c *gin.Context, key string, defaultValue int) (int, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return defaultValue, nil
	}
	return strconv.Atoi(raw)
}

// pathID parses a numeric path parameter, returning ok=false after writing
// nothing; callers decide how to report it.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// serverError logs the failure and reports a generic 500 envelope.
func serverError(c *gin.Context, logger *zap.Logger, key string, err error) {
	logger.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		key:       nil,
		"detail":  "Internal server error",
	})
}
