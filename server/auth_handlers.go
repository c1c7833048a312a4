package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	errs "github.com/techagentng/civiceye/errors"
	"github.com/techagentng/civiceye/logger"
	"github.com/techagentng/civiceye/models"
	"github.com/techagentng/civiceye/server/response"
	"go.uber.org/zap"
)

func (s *Server) handleSignup() gin.HandlerFunc {
	return func(c *gin.Context) {
		var signupRequest models.SignupRequest
		if err := decode(c, &signupRequest); err != nil {
			response.JSON(c, "", errs.ErrBadRequest.Status, nil, err)
			return
		}
		userResponse, err := s.AuthService.SignupUser(&signupRequest)
		if err != nil {
			response.JSON(c, "", err.Status, nil, err)
			return
		}
		response.JSON(c, "signup successful", http.StatusCreated, userResponse, nil)
	}
}

func (s *Server) handleLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		var loginRequest models.LoginRequest
		if err := decode(c, &loginRequest); err != nil {
			response.JSON(c, "", errs.ErrBadRequest.Status, nil, err)
			return
		}
		userResponse, err := s.AuthService.LoginUser(&loginRequest)
		if err != nil {
			response.JSON(c, "", err.Status, nil, err)
			return
		}
		response.JSON(c, "login successful", http.StatusOK, userResponse, nil)
	}
}

func (s *Server) handleLogout() gin.HandlerFunc {
	return func(c *gin.Context) {
		accessToken := c.GetString("access_token")
		if err := s.AuthService.Logout(c.Request.Context(), accessToken); err != nil {
			logger.Log.Error("error clearing session", zap.Error(err))
			respondAndAbort(c, "Logout failed", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}
		response.JSON(c, "logout successful", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleShowProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}
		response.JSON(c, "user profile", http.StatusOK, user, nil)
	}
}

func (s *Server) handleUpdateDeviceToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.DeviceTokenRequest
		if err := decode(c, &req); err != nil {
			response.JSON(c, "", errs.ErrBadRequest.Status, nil, err)
			return
		}
		if err := s.AuthService.UpdateDeviceToken(c.GetUint("userID"), req.Token); err != nil {
			respondError(c, err)
			return
		}
		response.JSON(c, "device token saved", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleGetNotifications() gin.HandlerFunc {
	return func(c *gin.Context) {
		notifications, err := s.NotificationService.GetNotifications(c.GetUint("userID"))
		if err != nil {
			respondError(c, err)
			return
		}
		response.JSON(c, "notifications", http.StatusOK, notifications, nil)
	}
}
