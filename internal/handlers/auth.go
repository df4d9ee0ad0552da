package handlers

import (
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"wardrobe-backend/internal/middleware"
	"wardrobe-backend/internal/models"
	"wardrobe-backend/internal/supabase"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type AuthHandler struct {
	sb        *supabase.Client
	db        *supabase.DatabaseClient
	jwtSecret string
	log       *zap.Logger
}

func NewAuthHandler(sb *supabase.Client, db *supabase.DatabaseClient, jwtSecret string, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		sb:        sb,
		db:        db,
		jwtSecret: jwtSecret,
		log:       log,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" || req.Nickname == "" {
		fail(c, http.StatusBadRequest, "missing required parameters")
		return
	}
	if !emailPattern.MatchString(req.Email) {
		fail(c, http.StatusBadRequest, "invalid email format")
		return
	}

	userIDStr, err := h.sb.SignUp(req.Email, req.Password, req.Nickname)
	if err != nil {
		h.log.Error("signup failed", zap.String("email", req.Email), zap.Error(err))
		fail(c, http.StatusBadRequest, "registration failed")
		return
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		fail(c, http.StatusInternalServerError, "registration failed")
		return
	}

	// The profile row may already exist when a half-finished signup is
	// retried.
	if _, err := h.db.GetProfile(userID); err != nil {
		profile := models.Profile{
			ID:        userID,
			Nickname:  req.Nickname,
			CreatedAt: time.Now().UTC(),
		}
		if err := h.db.CreateProfile(profile); err != nil {
			h.log.Error("profile creation failed", zap.String("user_id", userIDStr), zap.Error(err))
			fail(c, http.StatusInternalServerError, "failed to create user profile")
			return
		}
	}

	c.JSON(http.StatusOK, models.IDResponse{ID: userIDStr})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		fail(c, http.StatusBadRequest, "missing email or password")
		return
	}

	token, userIDStr, err := h.sb.SignIn(req.Email, req.Password)
	if err != nil {
		if !supabase.IsEmailNotConfirmed(err) {
			fail(c, http.StatusUnauthorized, "invalid email or password")
			return
		}
		// Password was accepted but the email is unconfirmed; issue a
		// locally-signed token instead of the platform session.
		userIDStr, err = h.sb.FindUserIDByEmail(req.Email)
		if err != nil {
			h.log.Error("user lookup failed on login fallback", zap.Error(err))
			fail(c, http.StatusUnauthorized, "invalid email or password")
			return
		}
		token, err = middleware.IssueLocalToken(h.jwtSecret, userIDStr, req.Email)
		if err != nil {
			h.log.Error("local token issue failed", zap.Error(err))
			fail(c, http.StatusInternalServerError, "server configuration error")
			return
		}
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		fail(c, http.StatusInternalServerError, "login failed")
		return
	}

	profile, err := h.db.GetProfile(userID)
	if err != nil {
		h.log.Error("profile lookup failed on login", zap.String("user_id", userIDStr), zap.Error(err))
		fail(c, http.StatusInternalServerError, "failed to load user profile")
		return
	}

	if err := h.db.TouchLastLogin(userID); err != nil {
		h.log.Warn("failed to update last login", zap.String("user_id", userIDStr), zap.Error(err))
	}

	c.JSON(http.StatusOK, models.LoginResponse{
		Token: token,
		User: models.ProfileResponse{
			ID:        profile.ID.String(),
			Nickname:  profile.Nickname,
			AvatarURL: profile.AvatarURL,
			City:      profile.City,
		},
	})
}

// Reset handles both halves of the password-reset flow: email alone
// sends the recovery mail, token plus new_password applies the change.
func (h *AuthHandler) Reset(c *gin.Context) {
	var req models.ResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	switch {
	case req.Email != "" && req.Token == "" && req.NewPassword == "":
		if err := h.sb.SendRecovery(req.Email); err != nil {
			fail(c, http.StatusBadRequest, "failed to send recovery email")
			return
		}
	case req.Token != "" && req.NewPassword != "":
		if err := h.sb.UpdatePassword(req.Token, req.NewPassword); err != nil {
			fail(c, http.StatusBadRequest, "failed to update password")
			return
		}
	default:
		fail(c, http.StatusBadRequest, "invalid parameters")
		return
	}

	c.JSON(http.StatusOK, models.OKResponse{OK: true})
}
