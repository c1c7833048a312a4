package services

import (
	"github.com/techagentng/civiceye/config"
	"github.com/techagentng/civiceye/db"
	"github.com/techagentng/civiceye/logger"
	"github.com/techagentng/civiceye/models"
)

type RewardService interface {
	GetAllRewards() ([]models.Reward, error)
	RedeemReward(userID uint, rewardID string) (*models.RedemptionResponse, error)
	GetPointHistory(userID uint) ([]models.PointEntry, error)
}

type rewardService struct {
	Config     *config.Config
	rewardRepo db.RewardRepository
}

func NewRewardService(rewardRepo db.RewardRepository, conf *config.Config) RewardService {
	return &rewardService{
		Config:     conf,
		rewardRepo: rewardRepo,
	}
}

func (s *rewardService) GetAllRewards() ([]models.Reward, error) {
	return s.rewardRepo.GetAllRewards()
}

// RedeemReward spends points on a reward. The balance can never go below zero.
func (s *rewardService) RedeemReward(userID uint, rewardID string) (*models.RedemptionResponse, error) {
	reward, balance, err := s.rewardRepo.Redeem(userID, rewardID)
	if err != nil {
		return nil, err
	}
	logger.Sugar.Infow("reward redeemed", "user_id", userID, "reward_id", reward.ID, "cost", reward.PointsCost, "balance", balance)
	return &models.RedemptionResponse{Reward: reward, Balance: balance}, nil
}

func (s *rewardService) GetPointHistory(userID uint) ([]models.PointEntry, error) {
	return s.rewardRepo.GetPointEntriesByUserID(userID)
}
