package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/kdhingra/meattrack-backend/api/responses"
	"github.com/kdhingra/meattrack-backend/api/validators"
	"github.com/kdhingra/meattrack-backend/internal/users"
	pkgerrors "github.com/kdhingra/meattrack-backend/pkg/errors"
	"github.com/kdhingra/meattrack-backend/pkg/logger"
)

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required,min=1"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
}

type loginResponse struct {
	User        userResponse `json:"user"`
	AccessToken string       `json:"access_token"`
	ExpiresAt   time.Time    `json:"expires_at"`
}

// AuthRegister creates an account and returns its public profile.
func AuthRegister(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "users service unavailable"))
			return
		}

		var req registerRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.Register(r.Context(), users.RegisterInput{
			Email:    req.Email,
			Password: req.Password,
			Name:     req.Name,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, userResponse{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.Name,
		})
	}
}

// AuthLogin verifies credentials and mints an access token.
func AuthLogin(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "users service unavailable"))
			return
		}

		var req loginRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), users.LoginInput{
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, loginResponse{
			User: userResponse{
				ID:    result.User.ID,
				Email: result.User.Email,
				Name:  result.User.Name,
			},
			AccessToken: result.AccessToken,
			ExpiresAt:   result.ExpiresAt,
		})
	}
}

// AuthProfile returns the authenticated account.
func AuthProfile(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "users service unavailable"))
			return
		}

		userID, err := authedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.Profile(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, userResponse{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.Name,
		})
	}
}
