package server

import (
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	errs "github.com/techagentng/civiceye/errors"
	"github.com/techagentng/civiceye/logger"
	"github.com/techagentng/civiceye/models"
	"github.com/techagentng/civiceye/server/response"
	"github.com/techagentng/civiceye/services/jwt"
	"github.com/techagentng/civiceye/services/session"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Authorize checks the bearer token, requires a live session slot for it and loads the
// current user. The slot is rewritten with the fresh user record on every request.
func (s *Server) Authorize() gin.HandlerFunc {
	return func(c *gin.Context) {
		accessToken := getTokenFromHeader(c)
		if accessToken == "" && websocket.IsWebSocketUpgrade(c.Request) {
			accessToken = c.Query("token")
		}
		if accessToken == "" {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}

		accessClaims, err := jwt.ValidateAndGetClaims(accessToken, s.Config.JWTSecret)
		if err != nil {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}
		userID, err := jwt.UserID(accessClaims)
		if err != nil {
			respondAndAbort(c, "", http.StatusBadRequest, nil, errs.New("Invalid userID format", http.StatusBadRequest))
			return
		}

		if _, err := s.Sessions.Load(c.Request.Context(), accessToken); err != nil {
			if errors.Is(err, session.ErrNoSession) {
				respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.ErrSessionExpired)
				return
			}
			logger.Log.Error("session lookup failed", zap.Error(err))
			respondAndAbort(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}

		user, err := s.AuthRepository.FindUserByID(userID)
		if err != nil {
			if errors.Is(err, errs.ErrNotFound) {
				respondAndAbort(c, "user not found", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
				return
			}
			respondAndAbort(c, "unable to find entity", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
			return
		}

		if err := s.Sessions.Save(c.Request.Context(), accessToken, user, s.Config.TokenTTL); err != nil {
			logger.Log.Warn("session refresh failed", zap.Uint("user_id", user.ID), zap.Error(err))
		}

		c.Set("user", user)
		c.Set("userID", userID)
		c.Set("access_token", accessToken)
		c.Next()
	}
}

// RequireAdmin lets only officials through. It must run after Authorize.
func (s *Server) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok || !user.IsAdmin() {
			respondAndAbort(c, "", http.StatusForbidden, nil, errs.ErrForbidden)
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get("user")
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}

type userLimiter struct {
	limiter *rate.Limiter
	expires time.Time
}

// submissionLimiter throttles report submissions per user with a token bucket.
type submissionLimiter struct {
	mu       sync.Mutex
	limiters map[uint]*userLimiter
	limit    rate.Limit
	burst    int
	idle     time.Duration
}

func newSubmissionLimiter(perHour int) *submissionLimiter {
	if perHour < 1 {
		perHour = 1
	}
	return &submissionLimiter{
		limiters: map[uint]*userLimiter{},
		limit:    rate.Every(time.Hour / time.Duration(perHour)),
		burst:    perHour,
		idle:     time.Hour,
	}
}

func (l *submissionLimiter) allow(userID uint) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	for id, ul := range l.limiters {
		if now.After(ul.expires) {
			delete(l.limiters, id)
		}
	}

	ul, ok := l.limiters[userID]
	if !ok {
		ul = &userLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[userID] = ul
	}
	ul.expires = now.Add(l.idle)
	return ul.limiter.Allow()
}

func (l *submissionLimiter) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}
		if !l.allow(user.ID) {
			respondAndAbort(c, "You are submitting reports too quickly. Please try again later.",
				http.StatusTooManyRequests, nil, errs.New("too many reports", http.StatusTooManyRequests))
			return
		}
		c.Next()
	}
}

// limitAuthAttempts throttles signup and login per client IP.
func limitAuthAttempts(store ratelimit.Store) gin.HandlerFunc {
	return ratelimit.RateLimiter(store, &ratelimit.Options{
		ErrorHandler: errs.ErrorHandler,
		KeyFunc:      keyFunc,
	})
}

func keyFunc(c *gin.Context) string {
	return c.ClientIP()
}

// requestLogger writes one structured access-log line per request.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Log.Info("request",
			zap.String("client_ip", c.ClientIP()),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("proto", c.Request.Proto),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("user_agent", c.Request.UserAgent()),
			zap.String("error", c.Errors.ByType(gin.ErrorTypePrivate).String()),
		)
	}
}

// respondAndAbort calls response.JSON and aborts the Context
func respondAndAbort(c *gin.Context, message string, status int, data interface{}, e *errs.Error) {
	var err error
	if e != nil {
		err = e
	}
	response.JSON(c, message, status, data, err)
	c.Abort()
}

func getTokenFromHeader(c *gin.Context) string {
	authHeader := c.Request.Header.Get("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return authHeader[7:]
	}
	return ""
}

// respondError replies with the status carried by err.
func respondError(c *gin.Context, err error) {
	status := errs.Status(err)
	if status == http.StatusInternalServerError {
		logger.Log.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
		err = errs.ErrInternalServerError
	}
	response.JSON(c, "", status, nil, err)
}
