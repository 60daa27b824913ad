// handlers/auth_handler.go
package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"isip/store"
	"isip/utils"
)

// Login exchanges administrator credentials for an access/refresh token
// pair and stamps last_login.
func Login(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := decodeJSON(w, r, &creds); err != nil {
		return
	}

	creds.Username = strings.TrimSpace(creds.Username)
	if creds.Username == "" || creds.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Username and password required")
		return
	}

	user, err := userStore.GetByUsername(r.Context(), creds.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Burn a comparison so unknown usernames cost the same as bad passwords.
			_ = utils.CheckPasswordHash("dummy_password", "$2a$10$dummyhashfordummycomparison")
			utils.RespondWithError(w, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		log.Printf("login lookup error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Authentication service unavailable")
		return
	}

	if !utils.CheckPasswordHash(creds.Password, user.PasswordHash) {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	access, err := utils.GenerateAccessToken(user.ID.Hex(), user.Username)
	if err != nil {
		log.Printf("access token generation error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate authentication token")
		return
	}
	refresh, err := utils.GenerateRefreshToken(user.ID.Hex(), user.Username)
	if err != nil {
		log.Printf("refresh token generation error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate authentication token")
		return
	}

	if err := userStore.RecordLogin(r.Context(), user.ID, time.Now().UTC()); err != nil {
		log.Printf("failed to record login: %v", err)
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{
		"access":  access,
		"refresh": refresh,
	})
}

// RefreshToken exchanges a valid refresh token for a fresh access token.
func RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Refresh string `json:"refresh"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}
	if req.Refresh == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Refresh token required")
		return
	}

	claims, err := utils.ValidateToken(req.Refresh, utils.TokenTypeRefresh)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid or expired refresh token")
		return
	}

	access, err := utils.GenerateAccessToken(claims.UserID, claims.Username)
	if err != nil {
		log.Printf("access token generation error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate authentication token")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"access": access})
}
