package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/techagentng/civiceye/server/response"
)

func (s *Server) handleGetAllRewards() gin.HandlerFunc {
	return func(c *gin.Context) {
		rewards, err := s.RewardService.GetAllRewards()
		if err != nil {
			respondError(c, err)
			return
		}
		response.JSON(c, "Rewards retrieved successfully", http.StatusOK, rewards, nil)
	}
}

func (s *Server) handleRedeemReward() gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := s.RewardService.RedeemReward(c.GetUint("userID"), c.Param("rewardID"))
		if err != nil {
			respondError(c, err)
			return
		}
		response.JSON(c, "Reward redeemed successfully", http.StatusOK, result, nil)
	}
}

func (s *Server) handleGetPointHistory() gin.HandlerFunc {
	return func(c *gin.Context) {
		entries, err := s.RewardService.GetPointHistory(c.GetUint("userID"))
		if err != nil {
			respondError(c, err)
			return
		}
		response.JSON(c, "points history", http.StatusOK, entries, nil)
	}
}
