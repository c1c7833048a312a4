package db

import (
	"github.com/pkg/errors"
	"github.com/techagentng/civiceye/models"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	CreateNotification(n *models.Notification) error
	GetNotificationsByUserID(userID uint) ([]models.Notification, error)
}

type notificationRepo struct {
	DB *gorm.DB
}

func NewNotificationRepo(db *GormDB) NotificationRepository {
	return &notificationRepo{db.DB}
}

func (n *notificationRepo) CreateNotification(notification *models.Notification) error {
	return errors.Wrap(n.DB.Create(notification).Error, "error saving notification")
}

func (n *notificationRepo) GetNotificationsByUserID(userID uint) ([]models.Notification, error) {
	notifications := []models.Notification{}
	err := n.DB.Where("user_id = ?", userID).Order("created_at DESC").Order("id DESC").Find(&notifications).Error
	if err != nil {
		return nil, errors.Wrap(err, "error listing notifications")
	}
	return notifications, nil
}
