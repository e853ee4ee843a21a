package apiserver

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/pwaforge/pwaforge/pkg/token"
	"github.com/sirupsen/logrus"
)

type ContextKey string

const OwnerID ContextKey = "ownerID"

func tokenAuthMiddleware(verifier token.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authorization := r.Header.Get("Authorization")
			if authorization == "" || !strings.HasPrefix(authorization, "Bearer ") {
				writeError(w, http.StatusUnauthorized, errors.New("no bearer token provided"))
				return
			}

			ownerID, err := verifier.Verify(strings.TrimPrefix(authorization, "Bearer "))
			if err != nil {
				logrus.Debugf("rejected token: %v", err)
				writeError(w, http.StatusForbidden, errors.New("invalid token"))
				return
			}

			ctx := context.WithValue(r.Context(), OwnerID, ownerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func ownerIDFromContext(ctx context.Context) string {
	ownerID, _ := ctx.Value(OwnerID).(string)
	return ownerID
}
