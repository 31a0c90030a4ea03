package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lojaweb/catalog/internal/auth"
	"github.com/lojaweb/catalog/internal/domain/user"
	"github.com/lojaweb/catalog/internal/notifications"
	"github.com/lojaweb/catalog/internal/observability"
	"github.com/lojaweb/catalog/internal/security"
	"github.com/lojaweb/catalog/internal/validation"
)

type UserWriter interface {
	Create(ctx context.Context, u user.User) (user.User, error)
}

type CredentialIssuer interface {
	Login(ctx context.Context, login, password string) (auth.Session, error)
}

type AuthHandler struct {
	users    UserWriter
	issuer   CredentialIssuer
	notifier notifications.Notifier
	log      *slog.Logger
	prom     *observability.Prom
}

func NewAuthHandler(users UserWriter, issuer CredentialIssuer, notifier notifications.Notifier, log *slog.Logger, prom *observability.Prom) *AuthHandler {
	if log == nil {
		log = observability.NopLogger()
	}
	return &AuthHandler{
		users:    users,
		issuer:   issuer,
		notifier: notifier,
		log:      log,
		prom:     prom,
	}
}

type LoginResponse struct {
	ID    int64    `json:"id"`
	Login string   `json:"login"`
	Name  string   `json:"nome"`
	Roles []string `json:"roles"`
	Token string   `json:"token"`
}

func (h *AuthHandler) Register(ctx *gin.Context) {
	var req user.RegisterRequest

	if !BindJSON(ctx, &req) {
		return
	}

	if errs := validation.ValidateRegistration(req); len(errs) > 0 {
		RespondValidation(ctx, errs)
		return
	}

	hash, err := security.HashPassword(req.Password)
	if err != nil {
		RespondInternal(ctx, "Could not create user")
		return
	}

	// new accounts are plain users; ADMIN is granted out of band
	u, err := h.users.Create(ctx.Request.Context(), user.User{
		Login:        req.Login,
		PasswordHash: hash,
		Name:         req.Name,
		Email:        req.Email,
		Roles:        user.NewRoles(user.RoleUser),
	})
	if err != nil {
		if errors.Is(err, user.ErrLoginTaken) {
			RespondConflict(ctx, "Login is already in use")
			return
		}
		RespondStorage(ctx, "Could not create user", err)
		return
	}

	if h.notifier != nil {
		err := h.notifier.SendWelcome(ctx.Request.Context(), notifications.WelcomeInput{
			UserID: u.ID,
			Login:  u.Login,
			Name:   u.Name,
			Email:  u.Email,
		})
		if err != nil {
			h.log.WarnContext(ctx.Request.Context(), "welcome notification failed", "user_id", u.ID, "err", err)
		}
	}

	ctx.JSON(http.StatusCreated, u)
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req user.LoginRequest

	if !BindJSON(ctx, &req) {
		return
	}

	if errs := validation.ValidateLogin(req); len(errs) > 0 {
		RespondValidation(ctx, errs)
		return
	}

	session, err := h.issuer.Login(ctx.Request.Context(), req.Login, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			h.prom.ObserveAuth("login", "invalid_credentials")
			RespondError(ctx, http.StatusUnprocessableEntity, "invalid_credentials", "Invalid login or password", nil)
			return
		}
		h.prom.ObserveAuth("login", "error")
		RespondStorage(ctx, "Could not log in", err)
		return
	}

	h.prom.ObserveAuth("login", "ok")

	ctx.JSON(http.StatusOK, LoginResponse{
		ID:    session.User.ID,
		Login: session.User.Login,
		Name:  session.User.Name,
		Roles: session.User.Roles.Slice(),
		Token: session.Token,
	})
}
