package handler

import (
	"log/slog"
	"net/http"

	"github.com/bqmanh/marketplace-be/internal/api/dto"
	"github.com/bqmanh/marketplace-be/internal/auth"
	"github.com/gin-gonic/gin"
)

// IssueToken handles POST /jwt
// Issues a session token for the given email and sets it as an HTTP-only cookie.
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var req dto.IssueTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "a valid email is required",
		})
		return
	}

	token, err := auth.IssueToken(req.Email, h.auth.Secret, h.auth.TokenTTL)
	if err != nil {
		h.logger.Error("Failed to issue session token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to issue session token",
		})
		return
	}

	auth.SetSessionCookie(c, h.auth.CookieName, token, h.prod)

	h.logger.Info("Session token issued",
		slog.String("email", req.Email),
	)

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Logout handles GET /logout
// Clears the session cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	auth.ClearSessionCookie(c, h.auth.CookieName, h.prod)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
