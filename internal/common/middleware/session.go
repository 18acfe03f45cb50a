package middleware

import (
	"context"
	stderrors "errors"
	"strings"

	"sales-briefing/internal/common/database"
	"sales-briefing/internal/common/errors"
	"sales-briefing/internal/common/logger"

	"github.com/gin-gonic/gin"
)

// SessionStore resolves a session key to its owner.
type SessionStore interface {
	Lookup(ctx context.Context, key string) (string, error)
}

const SessionUserKey = "sessionUser"

// SessionGuard requires "Authorization: Bearer <token>" where prefix+token is
// a live key in the store. A missing session is 401; a store failure is 503.
func SessionGuard(store SessionStore, prefix string, log logger.Logger) gin.HandlerFunc {
	errorHandler := errors.NewErrorHandler(log)

	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			errorHandler.HandleRequestError(c, errors.NewUnauthorizedError("missing bearer token"))
			return
		}

		user, err := store.Lookup(c.Request.Context(), prefix+token)
		switch {
		case stderrors.Is(err, database.ErrKeyNotFound):
			errorHandler.HandleRequestError(c, errors.NewUnauthorizedError("session not found or expired"))
			return
		case err != nil:
			errorHandler.HandleRequestError(c, errors.NewSessionStoreError(err))
			return
		}

		c.Set(SessionUserKey, user)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}
