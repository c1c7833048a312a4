package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	errs "github.com/techagentng/civiceye/errors"
	"github.com/techagentng/civiceye/models"
	"github.com/techagentng/civiceye/server/response"
)

func (s *Server) handleGetReviewQueue() gin.HandlerFunc {
	return func(c *gin.Context) {
		page, pageSize := pagination(c)
		result, err := s.ReportService.ListReports(models.ReportFilter{
			Status:   statusFilter(c),
			Page:     page,
			PageSize: pageSize,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		response.JSON(c, "reports retrieved", http.StatusOK, result, nil)
	}
}

func (s *Server) handleUpdateReportStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		reviewer, ok := currentUser(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}

		var req models.StatusUpdateRequest
		if err := decode(c, &req); err != nil {
			response.JSON(c, "", errs.ErrBadRequest.Status, nil, err)
			return
		}

		report, err := s.ReportService.UpdateReportStatus(c.Request.Context(), c.Param("reportID"), reviewer, &req)
		if err != nil {
			respondError(c, err)
			return
		}
		response.JSON(c, "Report "+string(report.Status), http.StatusOK, report, nil)
	}
}

func (s *Server) handleGetAdminStats() gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := s.ReportService.GetStats()
		if err != nil {
			respondError(c, err)
			return
		}
		response.JSON(c, "stats retrieved", http.StatusOK, stats, nil)
	}
}

func (s *Server) handleCreateViolationType() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ViolationTypeRequest
		if err := decode(c, &req); err != nil {
			response.JSON(c, "", errs.ErrBadRequest.Status, nil, err)
			return
		}
		vt, err := s.ReportService.CreateViolationType(&req)
		if err != nil {
			respondError(c, err)
			return
		}
		response.JSON(c, "violation type created", http.StatusCreated, vt, nil)
	}
}

func (s *Server) handleCreateOfficial() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.SignupRequest
		if err := decode(c, &req); err != nil {
			response.JSON(c, "", errs.ErrBadRequest.Status, nil, err)
			return
		}
		official, err := s.AuthService.CreateOfficial(&req)
		if err != nil {
			response.JSON(c, "", err.Status, nil, err)
			return
		}
		response.JSON(c, "official created", http.StatusCreated, official, nil)
	}
}

func (s *Server) handleGetUsers() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := models.Role(strings.ToUpper(strings.TrimSpace(c.Query("role"))))
		users, err := s.AuthService.ListUsers(role)
		if err != nil {
			respondError(c, err)
			return
		}
		response.JSON(c, "users retrieved", http.StatusOK, users, nil)
	}
}
