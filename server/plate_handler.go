package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/techagentng/civiceye/server/response"
)

func (s *Server) handleDetectPlate() gin.HandlerFunc {
	return func(c *gin.Context) {
		image, filename, err := readUpload(c, "image")
		if err != nil {
			respondError(c, err)
			return
		}
		if filename == "" {
			filename = "plate.jpg"
		}

		result, err := s.PlateService.DetectPlate(c.Request.Context(), image, filename)
		if err != nil {
			respondError(c, err)
			return
		}
		message := "plate detected"
		if result.LowConfidence {
			message = result.Hint
		}
		response.JSON(c, message, http.StatusOK, result, nil)
	}
}
