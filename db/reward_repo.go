package db

import (
	"github.com/pkg/errors"
	errs "github.com/techagentng/civiceye/errors"
	"github.com/techagentng/civiceye/models"
	"gorm.io/gorm"
)

type RewardRepository interface {
	GetAllRewards() ([]models.Reward, error)
	GetRewardByID(rewardID string) (*models.Reward, error)
	Redeem(userID uint, rewardID string) (*models.Reward, int, error)
	GetPointEntriesByUserID(userID uint) ([]models.PointEntry, error)
}

type rewardRepo struct {
	DB *gorm.DB
}

func NewRewardRepo(db *GormDB) RewardRepository {
	return &rewardRepo{db.DB}
}

func (r *rewardRepo) GetAllRewards() ([]models.Reward, error) {
	rewards := []models.Reward{}
	if err := r.DB.Order("points_cost ASC").Order("id").Find(&rewards).Error; err != nil {
		return nil, errors.Wrap(err, "error listing rewards")
	}
	return rewards, nil
}

func (r *rewardRepo) GetRewardByID(rewardID string) (*models.Reward, error) {
	var reward models.Reward
	if err := r.DB.Where("id = ?", rewardID).First(&reward).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrRewardNotFound
		}
		return nil, errors.Wrap(err, "error finding reward")
	}
	return &reward, nil
}

// Redeem spends the reward's cost from the user's balance and returns the new balance.
// The debit only matches when the balance covers the cost.
func (r *rewardRepo) Redeem(userID uint, rewardID string) (*models.Reward, int, error) {
	var (
		reward  models.Reward
		balance int
	)
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", rewardID).First(&reward).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.ErrRewardNotFound
			}
			return errors.Wrap(err, "error finding reward")
		}

		res := tx.Model(&models.User{}).
			Where("id = ? AND points >= ?", userID, reward.PointsCost).
			UpdateColumn("points", gorm.Expr("points - ?", reward.PointsCost))
		if res.Error != nil {
			return errors.Wrap(res.Error, "error debiting points")
		}
		if res.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
				return errors.Wrap(err, "error finding user")
			}
			if count == 0 {
				return errs.ErrNotFound
			}
			return errs.ErrInsufficientPoints
		}

		var err error
		balance, err = pointsOf(tx, userID)
		if err != nil {
			return err
		}
		entry := models.PointEntry{
			UserID:   userID,
			Kind:     models.PointsRedeemed,
			RewardID: &reward.ID,
			Points:   -reward.PointsCost,
			Balance:  balance,
		}
		return errors.Wrap(tx.Create(&entry).Error, "error writing points ledger")
	})
	if err != nil {
		return nil, 0, err
	}
	return &reward, balance, nil
}

func (r *rewardRepo) GetPointEntriesByUserID(userID uint) ([]models.PointEntry, error) {
	entries := []models.PointEntry{}
	err := r.DB.Where("user_id = ?", userID).Order("created_at DESC").Order("id DESC").Find(&entries).Error
	if err != nil {
		return nil, errors.Wrap(err, "error listing points ledger")
	}
	return entries, nil
}
