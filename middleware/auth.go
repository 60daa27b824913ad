package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"isip/store"
	"isip/utils"
)

var userStore store.UserStore

// Init wires the user store the auth middleware verifies callers against.
func Init(users store.UserStore) {
	userStore = users
}

// AuthMiddleware guards the administrator surface: it requires a valid
// Bearer access token whose subject still exists in the user store.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondWithError(w, http.StatusUnauthorized, "Missing or invalid Authorization header")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ValidateToken(tokenString, utils.TokenTypeAccess)
		if err != nil {
			utils.RespondWithError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		userID, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			utils.RespondWithError(w, http.StatusUnauthorized, "Invalid token subject")
			return
		}

		// The token alone is not enough: a deleted administrator must not
		// keep access until expiry.
		if _, err := userStore.GetByID(r.Context(), userID); err != nil {
			if err != store.ErrNotFound {
				log.Printf("AuthMiddleware: user lookup failed: %v", err)
			}
			utils.RespondWithError(w, http.StatusUnauthorized, "User not found")
			return
		}

		ctx := context.WithValue(r.Context(), "userID", claims.UserID)
		ctx = context.WithValue(ctx, "username", claims.Username)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
