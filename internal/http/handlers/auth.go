package handlers

import (
	"context"
	"errors"
	"time"

	"net/http"

	"github.com/danmwangi/schoolhub/internal/auth"
	"github.com/danmwangi/schoolhub/internal/config"
	"github.com/danmwangi/schoolhub/internal/domain/user"
	"github.com/danmwangi/schoolhub/internal/repo/postgres"
	"github.com/danmwangi/schoolhub/internal/security"
	"github.com/gin-gonic/gin"
)

type UserReader interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
}

type UserWriter interface {
	Create(ctx context.Context, username, email, passwordHash, userType string) (user.User, error)
}

type AuthHandler struct {
	users      UserReader
	userWriter UserWriter
	jwt        *auth.Manager
}

func NewAuthHandler(users UserReader, userWriter UserWriter, jwtManager *auth.Manager) *AuthHandler {
	return &AuthHandler{
		users:      users,
		userWriter: userWriter,
		jwt:        jwtManager,
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type SignUpRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	UserType string `json:"user_type"`
}

// Login verifies credentials and issues a session token. A missing user
// and a wrong password produce the same 401 so the response never leaks
// which half was wrong.
func (h *AuthHandler) Login(ctx *gin.Context) {
	var req LoginRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		RespondInvalidInput(ctx, BindDetails(err, &req))
		return
	}

	// short timeout for DB lookup
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	foundUser, err := h.users.GetByEmail(cctx, req.Email)

	if err != nil {
		RespondUnAuthorized(ctx, "invalid_credentials", "Invalid Credentials")
		return
	}

	err = security.CheckPassword(foundUser.PasswordHash, req.Password)

	if err != nil {
		RespondUnAuthorized(ctx, "invalid_credentials", "Invalid Credentials")
		return
	}

	token, err := h.jwt.GenerateAccessToken(foundUser.ID, foundUser.Email, foundUser.UserType)

	if err != nil {
		RespondInternal(ctx, "Could not generate access token")
		return
	}

	// the user struct keeps its hash out of JSON, so returning the full
	// record here is safe
	ctx.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user":    foundUser,
	})
}

// SignUp creates a user and issues a token in the same shape as Login.
// Duplicate detection rides on the users.email unique constraint.
func (h *AuthHandler) SignUp(ctx *gin.Context) {
	var req SignUpRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		RespondInvalidInput(ctx, BindDetails(err, &req))
		return
	}

	userType := req.UserType

	if userType == "" {
		userType = user.DefaultUserType
	}

	hash, err := security.HashPassword(req.Password)

	if err != nil {
		RespondInternal(ctx, "Some error occurred while creating the User.")
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	u, err := h.userWriter.Create(cctx, req.Username, req.Email, hash, userType)

	if err != nil {
		if errors.Is(err, postgres.ErrEmailAlreadyUsed) {
			RespondUnAuthorized(ctx, "duplicate_user", "User with this email already exists. Try with another email.")
			return
		}

		RespondError(ctx, http.StatusInternalServerError, "internal_error", err.Error(), nil)
		return
	}

	token, err := h.jwt.GenerateAccessToken(u.ID, u.Email, u.UserType)

	if err != nil {
		RespondInternal(ctx, "Could not generate access token")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Successfully signed up",
		"token":   token,
		"user":    u,
	})
}
