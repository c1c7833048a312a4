package server

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	errs "github.com/techagentng/civiceye/errors"
	"github.com/techagentng/civiceye/models"
	"github.com/techagentng/civiceye/server/response"
	"github.com/techagentng/civiceye/services/storage"
)

const (
	DefaultPageSize = 20
	DefaultPage     = 1
)

// readUpload reads an optional multipart file. A missing file yields nil data.
func readUpload(c *gin.Context, field string) ([]byte, string, error) {
	file, header, err := c.Request.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, "", nil
		}
		return nil, "", errs.New(err.Error(), http.StatusBadRequest)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, storage.MaxFileSize+1))
	if err != nil {
		return nil, "", errs.New("failed to read file content", http.StatusBadRequest)
	}
	if len(data) > storage.MaxFileSize {
		return nil, "", storage.ErrFileTooLarge
	}
	return data, header.Filename, nil
}

func pagination(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(DefaultPage)))
	if err != nil || page < 1 {
		page = DefaultPage
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(DefaultPageSize)))
	if err != nil || pageSize < 1 || pageSize > 100 {
		pageSize = DefaultPageSize
	}
	return page, pageSize
}

func statusFilter(c *gin.Context) models.ReportStatus {
	status := strings.ToUpper(strings.TrimSpace(c.Query("status")))
	if status == "ALL" {
		return ""
	}
	return models.ReportStatus(status)
}

func (s *Server) handleSubmitReport() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}

		var req models.ReportRequest
		if err := decode(c, &req); err != nil {
			response.JSON(c, "", errs.ErrBadRequest.Status, nil, err)
			return
		}

		image, _, err := readUpload(c, "image")
		if err != nil {
			respondError(c, err)
			return
		}

		report, err := s.ReportService.SubmitReport(c.Request.Context(), user, &req, image)
		if err != nil {
			respondError(c, err)
			return
		}
		response.JSON(c, "Report submitted successfully", http.StatusCreated, report, nil)
	}
}

func (s *Server) handleGetReport() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}
		report, err := s.ReportService.GetReport(c.Param("reportID"), user)
		if err != nil {
			respondError(c, err)
			return
		}
		response.JSON(c, "report retrieved", http.StatusOK, report, nil)
	}
}

func (s *Server) handleGetMyReports() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userID")
		page, pageSize := pagination(c)
		result, err := s.ReportService.ListReports(models.ReportFilter{
			Status:   statusFilter(c),
			UserID:   &userID,
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

func (s *Server) handleGetMyStats() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.ErrUnauthorized)
			return
		}
		stats, err := s.ReportService.GetUserStats(user)
		if err != nil {
			respondError(c, err)
			return
		}
		response.JSON(c, "stats retrieved", http.StatusOK, stats, nil)
	}
}

func (s *Server) handleGetViolationTypes() gin.HandlerFunc {
	return func(c *gin.Context) {
		types, err := s.ReportService.GetViolationTypes()
		if err != nil {
			respondError(c, err)
			return
		}
		response.JSON(c, "violation types", http.StatusOK, types, nil)
	}
}
