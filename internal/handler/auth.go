package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/segyhp/loan-ledger/internal/domain"
	"github.com/segyhp/loan-ledger/internal/service"
	customError "github.com/segyhp/loan-ledger/pkg/errors"
	"github.com/segyhp/loan-ledger/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

const sessionCookieName = "session"

type ctxKey string

const actorCtxKey = ctxKey("actor")

type AuthHandler struct {
	service      *service.AuthService
	validator    *validator.Validate
	log          logrus.FieldLogger
	secureCookie bool
}

func NewAuthHandler(service *service.AuthService, log logrus.FieldLogger, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		service:      service,
		validator:    validator.New(),
		log:          log,
		secureCookie: secureCookie,
	}
}

// ActorFromContext returns the authenticated actor stored by RequireAuth
func ActorFromContext(ctx context.Context) (*service.Claims, bool) {
	claims, ok := ctx.Value(actorCtxKey).(*service.Claims)
	return claims, ok
}

// sessionToken reads a bearer token, falling back to the session cookie
func sessionToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// Login handles POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var request domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, h.log, customError.WrapValidation(err))
		return
	}
	if err := h.validator.Struct(&request); err != nil {
		writeError(w, h.log, customError.WrapValidation(err))
		return
	}

	session, err := h.service.Login(r.Context(), &request)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	response.Success(w, session)
}

// Logout handles POST /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Logout(r.Context(), sessionToken(r)); err != nil {
		writeError(w, h.log, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	response.Success(w, map[string]bool{"logged_out": true})
}

// RequireAuth rejects requests without a valid session
func (h *AuthHandler) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := h.service.Authenticate(r.Context(), sessionToken(r))
		if err != nil {
			writeError(w, h.log, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), actorCtxKey, claims)))
	})
}
