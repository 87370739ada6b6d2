package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"subtrack/internal/auth"
	"subtrack/internal/domain"
	"subtrack/internal/middleware"
)

type registerRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Locale   string `json:"locale"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Locale    string    `json:"locale"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		Locale:    u.Locale,
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
	}
}

func (a *App) AuthRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Name = strings.TrimSpace(req.Name)
	if _, err := mail.ParseAddress(req.Email); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "valid email required")
		return
	}
	if req.Name == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "name required")
		return
	}
	if len(req.Password) < 8 {
		a.error(w, http.StatusBadRequest, "bad_request", "password must be at least 8 characters")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		a.domainError(w, err)
		return
	}
	locale := req.Locale
	if locale == "" {
		locale = middleware.LocaleFromContext(r.Context())
	}
	user, err := a.Users.Create(r.Context(), &domain.User{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
		Role:         domain.UserRoleUser,
		Locale:       locale,
		Active:       true,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			a.error(w, http.StatusConflict, "conflict", "email already registered")
			return
		}
		a.domainError(w, err)
		return
	}

	token, err := a.signToken(user)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to sign token")
		return
	}
	a.json(w, http.StatusCreated, map[string]any{"token": token, "user": toUserResponse(user)})
}

func (a *App) AuthLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	user, err := a.Users.GetByEmail(r.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusUnauthorized, "unauthorized", "invalid credentials")
			return
		}
		a.domainError(w, err)
		return
	}
	if !auth.VerifyPassword(req.Password, user.PasswordHash) {
		a.error(w, http.StatusUnauthorized, "unauthorized", "invalid credentials")
		return
	}
	if !user.Active {
		a.error(w, http.StatusForbidden, "forbidden", "account disabled")
		return
	}

	// First login from a localized client fills in the missing locale.
	if user.Locale == "" {
		if detected := middleware.LocaleFromContext(r.Context()); detected != "" {
			if updated, err := a.Users.UpdateProfile(r.Context(), user.ID, user.Name, detected); err == nil {
				user = updated
			}
		}
	}

	token, err := a.signToken(user)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to sign token")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"token": token, "user": toUserResponse(user)})
}

func (a *App) Me(w http.ResponseWriter, r *http.Request) {
	user, err := a.Users.GetByID(r.Context(), a.currentUserID(r))
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"user": toUserResponse(user)})
}

func (a *App) signToken(u *domain.User) (string, error) {
	return middleware.SignJWT(a.Cfg.JWTSecret, middleware.TokenClaims{
		Sub:      u.ID,
		Role:     string(u.Role),
		Locale:   u.Locale,
		Exp:      time.Now().Add(a.Cfg.JWTTTL).Unix(),
		Issuer:   "subtrack",
		Audience: "subtrack-api",
	})
}
