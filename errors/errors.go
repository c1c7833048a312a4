package errors

import (
	goerrors "errors"
	"net/http"
	"strings"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
)

// Error is an error that knows which HTTP status it should be reported with.
type Error struct {
	Message string `json:"message"`
	Status  int    `json:"-"`
}

// New creates an Error with the given message and HTTP status.
func New(message string, status int) *Error {
	return &Error{
		Message: message,
		Status:  status,
	}
}

func (e *Error) Error() string {
	return e.Message
}

var (
	ErrNotFound            = New("not found", http.StatusNotFound)
	ErrBadRequest          = New("bad request", http.StatusBadRequest)
	ErrUnauthorized        = New("unauthorized", http.StatusUnauthorized)
	ErrForbidden           = New("forbidden", http.StatusForbidden)
	ErrInternalServerError = New("internal server error", http.StatusInternalServerError)
	ErrInvalidPassword     = New("invalid email or password", http.StatusUnauthorized)
	ErrDuplicateEmail      = New("email already registered", http.StatusConflict)
	ErrDuplicateLabel      = New("violation type already exists", http.StatusConflict)
	ErrReportNotFound      = New("report not found", http.StatusNotFound)
	ErrReportNotPending    = New("report has already been reviewed", http.StatusConflict)
	ErrInvalidDecision     = New("status must be APPROVED or REJECTED", http.StatusBadRequest)
	ErrNegativePoints      = New("points cannot be negative", http.StatusBadRequest)
	ErrNoViolationType     = New("please select at least one violation type", http.StatusBadRequest)
	ErrRewardNotFound      = New("reward not found", http.StatusNotFound)
	ErrInsufficientPoints  = New("not enough points to redeem this reward", http.StatusUnprocessableEntity)
	ErrSessionExpired      = New("session expired, please sign in again", http.StatusUnauthorized)
)

// Status returns the HTTP status carried by err, or 500 when err is not an *Error.
func Status(err error) int {
	var e *Error
	if goerrors.As(err, &e) {
		return e.Status
	}
	return http.StatusInternalServerError
}

// GetUniqueContraintError maps a storage-level unique violation to a conflict error.
func GetUniqueContraintError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if goerrors.As(err, &e) {
		return e
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate") || strings.Contains(msg, "already") {
		return New(err.Error(), http.StatusConflict)
	}
	return ErrInternalServerError
}

// ErrorHandler is the rate limiter callback for throttled clients.
func ErrorHandler(c *gin.Context, info ratelimit.Info) {
	c.JSON(http.StatusTooManyRequests, gin.H{
		"message":   "",
		"data":      nil,
		"errors":    "too many requests, try again in " + time.Until(info.ResetTime).Round(time.Second).String(),
		"status":    http.StatusText(http.StatusTooManyRequests),
		"timestamp": time.Now().Format(time.RFC850),
	})
	c.Abort()
}
