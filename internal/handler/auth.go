// internal/handler/auth.go
package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dangerclosesec/fieldwork/internal/auth"
	"github.com/dangerclosesec/fieldwork/internal/domain"
	"github.com/dangerclosesec/fieldwork/internal/model"
	"github.com/dangerclosesec/fieldwork/internal/service"
	chmw "github.com/go-chi/chi/v5/middleware"
)

type AuthHandler struct {
	userService *service.UserService
}

func NewAuthHandler(userService *service.UserService) *AuthHandler {
	return &AuthHandler{userService: userService}
}

type AuthResponse struct {
	BaseResponse
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

func (h *AuthHandler) SignupHandler(w http.ResponseWriter, r *http.Request) {
	var input service.SignupInput
	if !decodeJSON(w, r, &input) {
		return
	}

	output, err := h.userService.Signup(r.Context(), input)
	if err != nil {
		slog.InfoContext(r.Context(), "User registration rejected", "error", err, "requestID", chmw.GetReqID(r.Context()))
		handleError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, AuthResponse{
		BaseResponse: BaseResponse{Ok: true},
		User:         output.User,
		Token:        output.Token,
	})
}

func (h *AuthHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var input service.LoginInput
	if !decodeJSON(w, r, &input) {
		return
	}

	output, err := h.userService.Login(r.Context(), input)
	if err != nil {
		slog.InfoContext(r.Context(), "User login failed", "error", err, "requestID", chmw.GetReqID(r.Context()))
		if errors.Is(err, domain.ErrInvalidCredentials) {
			respondWithError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		handleError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, AuthResponse{
		BaseResponse: BaseResponse{Ok: true},
		User:         output.User,
		Token:        output.Token,
	})
}

// MeHandler returns the signed-in user.
func (h *AuthHandler) MeHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		handleError(w, r, domain.ErrUnauthenticated)
		return
	}

	user, err := h.userService.GetUser(r.Context(), userID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, user)
}
