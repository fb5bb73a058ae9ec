package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"oraex/internal/middleware"
	"oraex/internal/store"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "credentials_required"})
		return
	}

	user, err := s.Store.Authenticate(c.Request.Context(), req.Username, req.Password)
	if errors.Is(err, store.ErrBadCredentials) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
		return
	}
	if err != nil {
		serverError(c, s.Log, err)
		return
	}

	session, err := s.Sessions.Issue(user.Username, user.DisplayName, user.Role)
	if err != nil {
		serverError(c, s.Log, err)
		return
	}
	c.SetCookie(middleware.SessionCookie, session.Token,
		int(session.ExpiresAt.Sub(session.IssuedAt).Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"session": session})
}

func (s *Server) handleLogout(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if token == "" {
		if cookie, err := c.Request.Cookie(middleware.SessionCookie); err == nil {
			token = cookie.Value
		}
	}
	if token != "" {
		s.Sessions.Revoke(token)
	}
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"status": "logged_out"})
}
