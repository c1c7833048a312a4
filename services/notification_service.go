package services

import (
	"context"
	"fmt"
	"time"

	firebase "firebase.google.com/go"
	"firebase.google.com/go/messaging"
	"github.com/techagentng/civiceye/db"
	"github.com/techagentng/civiceye/logger"
	"github.com/techagentng/civiceye/mailingservices"
	"github.com/techagentng/civiceye/models"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

const notifyTimeout = 5 * time.Second

type NotificationService interface {
	NotifyReportReviewed(ctx context.Context, author *models.User, report *models.Report)
	GetNotifications(userID uint) ([]models.Notification, error)
}

// PushSender delivers a push notification to one device.
type PushSender interface {
	SendPush(ctx context.Context, deviceToken, title, body string, data map[string]string) error
}

type notificationService struct {
	repo   db.NotificationRepository
	mail   mailingservices.Mailer
	pusher PushSender
}

// NewNotificationService builds the review notifier. mail and pusher may be nil, in which
// case only the in-app notification is written.
func NewNotificationService(repo db.NotificationRepository, mail mailingservices.Mailer, pusher PushSender) NotificationService {
	return &notificationService{repo: repo, mail: mail, pusher: pusher}
}

func reviewMessage(report *models.Report) (string, string) {
	var title, body string
	switch report.Status {
	case models.StatusApproved:
		points := 0
		if report.RewardPoints != nil {
			points = *report.RewardPoints
		}
		title = "Report approved"
		body = fmt.Sprintf("Your report for vehicle %s was approved. You earned %d points.", report.VehicleNumber, points)
	default:
		title = "Report rejected"
		body = fmt.Sprintf("Your report for vehicle %s was rejected.", report.VehicleNumber)
	}
	if report.AdminComment != "" {
		body += " Official's comment: " + report.AdminComment
	}
	return title, body
}

// NotifyReportReviewed tells the author about the outcome of their report. Delivery failures
// are logged and never reach the caller.
func (n *notificationService) NotifyReportReviewed(ctx context.Context, author *models.User, report *models.Report) {
	title, body := reviewMessage(report)

	if err := n.repo.CreateNotification(&models.Notification{
		UserID:   author.ID,
		ReportID: report.ID,
		Title:    title,
		Message:  body,
	}); err != nil {
		logger.Log.Error("failed to save notification", zap.String("report_id", report.ID), zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(ctx, notifyTimeout)
	defer cancel()

	if n.mail != nil {
		if err := n.mail.SendMail(ctx, "CivicEye: "+title, body, author.Email); err != nil {
			logger.Log.Warn("failed to send review email", zap.String("report_id", report.ID), zap.Error(err))
		}
	}
	if n.pusher != nil && author.DeviceToken != "" {
		data := map[string]string{"report_id": report.ID, "status": string(report.Status)}
		if err := n.pusher.SendPush(ctx, author.DeviceToken, title, body, data); err != nil {
			logger.Log.Warn("failed to send review push", zap.String("report_id", report.ID), zap.Error(err))
		}
	}
}

func (n *notificationService) GetNotifications(userID uint) ([]models.Notification, error) {
	return n.repo.GetNotificationsByUserID(userID)
}

type messagingClient interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// FirebasePusher sends push notifications through Firebase Cloud Messaging.
type FirebasePusher struct {
	client messagingClient
}

func NewFirebasePusher(ctx context.Context, credentialsFile string) (*FirebasePusher, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("error initializing Firebase app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting Messaging client: %w", err)
	}
	return &FirebasePusher{client: client}, nil
}

func (f *FirebasePusher) SendPush(ctx context.Context, deviceToken, title, body string, data map[string]string) error {
	message := &messaging.Message{
		Token: deviceToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}
	_, err := f.client.Send(ctx, message)
	return err
}
