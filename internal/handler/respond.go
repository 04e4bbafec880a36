package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"rockalpatio/internal/collection"
	"rockalpatio/internal/model"
	"rockalpatio/internal/service/auth"
	"rockalpatio/internal/store"
)

const (
	userKey = "user"

	// LoginPath 未登录时前端跳转的位置
	LoginPath = "/"
	HomePath  = "/dashboard"
)

// SetUser stores the signed-in user on the request.
func SetUser(c *gin.Context, u *model.User) { c.Set(userKey, u) }

// CurrentUser returns the user stored by the auth middleware, if any.
func CurrentUser(c *gin.Context) *model.User {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	u, _ := v.(*model.User)
	return u
}

// StatusOf maps an error onto the HTTP status reported for it.
func StatusOf(err error) int {
	var fe *collection.FieldError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &fe):
		return http.StatusUnprocessableEntity
	case errors.Is(err, collection.ErrUnauthorized), errors.Is(err, auth.ErrUnauthenticated),
		errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized
	}

	switch store.KindOf(err) {
	case store.KindNotFound:
		return http.StatusNotFound
	case store.KindInvalid:
		return http.StatusUnprocessableEntity
	case store.KindConflict:
		return http.StatusConflict
	case store.KindUnavailable:
		return http.StatusServiceUnavailable
	case store.KindCanceled:
		// 客户端已断开，状态码只用于日志
		return 499
	}
	return http.StatusInternalServerError
}

// Unauthorized writes the 401 that sends the browser back to sign-in.
func Unauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg, "redirect": LoginPath})
}

// writeError reports err. extra is merged into the body, e.g. the draft
// that failed validation.
func writeError(c *gin.Context, log *zap.Logger, action string, err error, extra gin.H) {
	status := StatusOf(err)
	if status == http.StatusUnauthorized {
		Unauthorized(c, err.Error())
		return
	}

	body := gin.H{"error": err.Error()}
	var fe *collection.FieldError
	if errors.As(err, &fe) {
		body["field"] = fe.Field
	}
	if kind := store.KindOf(err); kind != store.KindUnknown && kind != store.KindNone {
		body["kind"] = kind
	}
	for k, v := range extra {
		body[k] = v
	}

	if status >= 500 {
		_ = c.Error(err)
		log.Error(action+": failed", zap.Int("status", status), zap.Error(err))
	} else {
		log.Warn(action+": rejected", zap.Int("status", status), zap.Error(err))
	}
	c.JSON(status, body)
}

// loadFailed reports a collection that could not be loaded. The page
// offers a retry.
func loadFailed(c *gin.Context, log *zap.Logger, action string, err error) {
	writeError(c, log, action, err, gin.H{"state": collection.StateFailed, "retry": true})
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// listBody is the common part of every collection page.
func listBody[T collection.Entity, D any](m *collection.Manager[T, D], v *collection.View[T, D]) gin.H {
	return gin.H{
		"state":    v.State,
		"filter":   v.Filter,
		"tabs":     m.Tabs(v),
		"items":    m.Visible(v),
		"total":    len(v.Items),
		"selected": v.Selected,
	}
}
