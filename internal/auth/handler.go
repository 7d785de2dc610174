// Package auth implements the identity boundary: sign-up creates a
// credential and a matching profile row under one id, sign-in exchanges
// credentials for a token, sign-out only invalidates local session state.
package auth

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dohmens-hub/backend/internal/models"
	"github.com/dohmens-hub/backend/internal/token"
	"github.com/dohmens-hub/backend/internal/users"
	"github.com/dohmens-hub/backend/pkg/response"
	"github.com/dohmens-hub/backend/pkg/utils"
)

// SignUpRequest is the body for POST /auth/signup. New accounts always
// start as students; only an admin changes roles afterward.
type SignUpRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"full_name" binding:"required"`
	GradYear *int   `json:"grad_year" binding:"omitempty,min=1900,max=2100"`
}

// SignInRequest is the body for POST /auth/signin.
type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse is the auth response with the session token.
type TokenResponse struct {
	Token string            `json:"token"`
	User  models.UserPublic `json:"user"`
}

// Handler handles identity HTTP endpoints.
type Handler struct {
	users  *users.Repository
	tokens *token.Service
	logger *zap.Logger
}

// NewHandler creates an auth handler.
func NewHandler(repo *users.Repository, tokens *token.Service, logger *zap.Logger) *Handler {
	return &Handler{users: repo, tokens: tokens, logger: logger}
}

// SignUp handles POST /auth/signup.
func (h *Handler) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	if h.users.GetByEmail(c.Request.Context(), req.Email) != nil {
		response.BadRequest(c, "email already registered")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		response.Internal(c, "failed to hash password")
		return
	}

	// The credential id and the profile id are the same opaque value.
	user := &models.User{
		ID:       uuid.New(),
		Email:    req.Email,
		Password: hash,
		FullName: req.FullName,
		GradYear: req.GradYear,
		Role:     models.RoleStudent,
	}
	if !h.users.Create(c.Request.Context(), user) {
		response.Internal(c, "failed to create account")
		return
	}

	tok, err := h.tokens.Generate(user.ID, user.Email, string(user.Role))
	if err != nil {
		response.Internal(c, "failed to generate token")
		return
	}
	response.Created(c, TokenResponse{Token: tok, User: user.ToPublic()})
}

// SignIn handles POST /auth/signin.
func (h *Handler) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	user := h.users.GetByEmail(c.Request.Context(), req.Email)
	if user == nil || !utils.CheckPassword(req.Password, user.Password) {
		response.Unauthorized(c, "invalid email or password")
		return
	}

	tok, err := h.tokens.Generate(user.ID, user.Email, string(user.Role))
	if err != nil {
		response.Internal(c, "failed to generate token")
		return
	}
	response.OK(c, TokenResponse{Token: tok, User: user.ToPublic()})
}

// SignOut handles POST /auth/signout. Sessions are bearer tokens; the
// server keeps no registry, so this only acknowledges the client-side
// discard.
func (h *Handler) SignOut(c *gin.Context) {
	response.OK(c, gin.H{"signed_out": true})
}
