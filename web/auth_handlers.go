package web

import (
	"net/http"

	"matchbook/application/dto"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type authResponse struct {
	Token   string         `json:"token"`
	Profile dto.ProfileDTO `json:"profile"`
}

func (s *Server) handleRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ctx := c.Request.Context()
	if _, err := s.identity.Register(ctx, req.Username, req.Password); err != nil {
		respondError(c, err)
		return
	}

	// A fresh account is signed in immediately
	token, user, err := s.identity.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	log.WithField("username", user.Username).Info("User registered")
	c.JSON(http.StatusCreated, authResponse{
		Token:   token,
		Profile: dto.UserToProfileDTO(user),
	})
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	token, user, err := s.identity.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, authResponse{
		Token:   token,
		Profile: dto.UserToProfileDTO(user),
	})
}

func (s *Server) handleLogout(c *gin.Context) {
	if err := s.identity.RevokeSession(c.Request.Context(), bearerToken(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
