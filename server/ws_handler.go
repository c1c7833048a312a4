package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	errs "github.com/techagentng/civiceye/errors"
	"github.com/techagentng/civiceye/logger"
	"github.com/techagentng/civiceye/models"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

func (s *Server) upgrader() *websocket.Upgrader {
	allowed := s.Config.AccessControlAllowOrigin
	return &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" || allowed == "" || allowed == "*" {
				return true
			}
			for _, o := range strings.Split(allowed, ",") {
				if strings.TrimSpace(o) == origin {
					return true
				}
			}
			return false
		},
	}
}

// canSee reports whether user may receive events about report.
func canSee(user *models.User, report models.Report) bool {
	return user.IsAdmin() || report.UserID == user.ID
}

// handleReportFeed streams report events over a websocket. Officials get every event;
// citizens only get events about their own reports.
func (s *Server) handleReportFeed() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}

		conn, err := s.upgrader().Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Log.Warn("websocket upgrade failed", zap.Error(err))
			return
		}
		defer conn.Close()

		events, cancel := s.Hub.Subscribe()
		defer cancel()

		done := make(chan struct{})
		go func() {
			defer close(done)
			conn.SetReadLimit(512)
			_ = conn.SetReadDeadline(time.Now().Add(pongWait))
			conn.SetPongHandler(func(string) error {
				return conn.SetReadDeadline(time.Now().Add(pongWait))
			})
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case ev, open := <-events:
				if !open {
					_ = conn.WriteControl(websocket.CloseMessage,
						websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"), time.Now().Add(writeWait))
					return
				}
				if !canSee(user, ev.Report) {
					continue
				}
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteJSON(ev); err != nil {
					return
				}
			case <-ticker.C:
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}
}
