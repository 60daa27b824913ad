// handlers/user_handler.go
package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"isip/models"
	"isip/store"
	"isip/utils"
)

type CreateUserRequest struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

func CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	fieldErrors := map[string]string{}
	if req.Username == "" {
		fieldErrors["username"] = requiredFieldMessage
	}
	if req.Password == "" {
		fieldErrors["password"] = requiredFieldMessage
	}
	if len(fieldErrors) > 0 {
		utils.RespondWithValidationErrors(w, fieldErrors)
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		log.Printf("password hashing error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Password processing failed")
		return
	}

	user := models.User{
		Username:     req.Username,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: hash,
	}

	if err := userStore.Create(r.Context(), &user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			utils.RespondWithValidationErrors(w, map[string]string{"username": "already in use"})
			return
		}
		log.Printf("insert user error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, user)
}

func ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := userStore.List(r.Context())
	if err != nil {
		log.Printf("list users error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch users")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, users)
}

// GetCurrentUser returns the administrator behind the bearer token.
func GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	userIDHex, ok := r.Context().Value("userID").(string)
	if !ok || userIDHex == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	userID, err := primitive.ObjectIDFromHex(userIDHex)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid token subject")
		return
	}

	user, err := userStore.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.RespondWithError(w, http.StatusUnauthorized, "User not found")
			return
		}
		log.Printf("current user lookup error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch user")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, user)
}

func GetUser(w http.ResponseWriter, r *http.Request) {
	userID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	user, err := userStore.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "User not found")
			return
		}
		log.Printf("get user error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch user")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, user)
}

// UpdateUserRequest changes profile fields and optionally the password.
// last_login is not settable; it only moves on successful logins.
type UpdateUserRequest struct {
	Username  *string `json:"username"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Password  *string `json:"password"`
}

func UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	var req UpdateUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	if req.Username != nil && *req.Username == "" {
		utils.RespondWithValidationErrors(w, map[string]string{"username": "may not be blank"})
		return
	}

	update := store.UserUpdate{
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	}
	if req.Password != nil {
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			log.Printf("password hashing error: %v", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Password processing failed")
			return
		}
		update.PasswordHash = &hash
	}

	user, err := userStore.Update(r.Context(), userID, update)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "User not found")
			return
		}
		if errors.Is(err, store.ErrDuplicate) {
			utils.RespondWithValidationErrors(w, map[string]string{"username": "already in use"})
			return
		}
		log.Printf("update user error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update user")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, user)
}

func DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	if err := userStore.Delete(r.Context(), userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "User not found")
			return
		}
		log.Printf("delete user error: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete user")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "User deleted"})
}
