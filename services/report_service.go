package services

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/techagentng/civiceye/config"
	"github.com/techagentng/civiceye/db"
	errs "github.com/techagentng/civiceye/errors"
	"github.com/techagentng/civiceye/logger"
	"github.com/techagentng/civiceye/models"
	"github.com/techagentng/civiceye/services/events"
	"github.com/techagentng/civiceye/services/storage"
	"go.uber.org/zap"
)

type ReportService interface {
	SubmitReport(ctx context.Context, user *models.User, req *models.ReportRequest, image []byte) (*models.Report, error)
	GetReport(reportID string, viewer *models.User) (*models.Report, error)
	ListReports(filter models.ReportFilter) (*models.ReportPage, error)
	UpdateReportStatus(ctx context.Context, reportID string, reviewer *models.User, req *models.StatusUpdateRequest) (*models.Report, error)
	GetStats() (*models.ReportStats, error)
	GetUserStats(user *models.User) (*models.UserStats, error)
	GetViolationTypes() ([]models.ViolationType, error)
	CreateViolationType(req *models.ViolationTypeRequest) (*models.ViolationType, error)
}

type reportService struct {
	Config            *config.Config
	reportRepo        db.ReportRepository
	violationTypeRepo db.ViolationTypeRepository
	authRepo          db.AuthRepository
	store             storage.Store
	hub               *events.Hub
	notifier          NotificationService
	now               func() time.Time
}

func NewReportService(reportRepo db.ReportRepository, violationTypeRepo db.ViolationTypeRepository, authRepo db.AuthRepository,
	store storage.Store, hub *events.Hub, notifier NotificationService, conf *config.Config) ReportService {
	return &reportService{
		Config:            conf,
		reportRepo:        reportRepo,
		violationTypeRepo: violationTypeRepo,
		authRepo:          authRepo,
		store:             store,
		hub:               hub,
		notifier:          notifier,
		now:               time.Now,
	}
}

func (s *reportService) SubmitReport(ctx context.Context, user *models.User, req *models.ReportRequest, image []byte) (*models.Report, error) {
	labels, err := s.validateLabels(req.ViolationTypes)
	if err != nil {
		return nil, err
	}

	vehicle := strings.ToUpper(strings.TrimSpace(req.VehicleNumber))
	location := sanitizeText(req.Location)
	if vehicle == "" || location == "" {
		return nil, errs.New("vehicle number and location are required", http.StatusBadRequest)
	}

	report := &models.Report{
		ID:             uuid.NewString(),
		UserID:         user.ID,
		UserName:       user.Name,
		ViolationTypes: labels,
		VehicleNumber:  vehicle,
		Location:       location,
		Description:    sanitizeText(req.Description),
		Status:         models.StatusPending,
		ImageURL:       s.Config.PlaceholderImageURL,
		CreatedAt:      s.now(),
	}

	if len(image) > 0 {
		ev, err := storage.SaveEvidence(ctx, s.store, "reports", report.ID, image)
		if err != nil {
			return nil, err
		}
		report.ImageURL = ev.ImageURL
		report.ThumbnailURL = ev.ThumbnailURL
	}

	report, err = s.reportRepo.SaveReport(report)
	if err != nil {
		logger.Log.Error("failed to save report", zap.Uint("user_id", user.ID), zap.Error(err))
		return nil, errs.ErrInternalServerError
	}

	logger.Sugar.Infow("report submitted", "report_id", report.ID, "user_id", user.ID, "violations", labels)
	s.publish(models.EventReportCreated, report)
	return report, nil
}

// validateLabels checks every label against the catalog and drops repeats, keeping order.
func (s *reportService) validateLabels(labels []string) ([]string, error) {
	catalog, err := s.violationTypeRepo.GetAllViolationTypes()
	if err != nil {
		return nil, err
	}
	known := make(map[string]bool, len(catalog))
	for _, vt := range catalog {
		known[vt.Label] = true
	}

	seen := map[string]bool{}
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		l = strings.TrimSpace(l)
		if l == "" || seen[l] {
			continue
		}
		if !known[l] {
			return nil, errs.New("unknown violation type: "+l, http.StatusBadRequest)
		}
		seen[l] = true
		out = append(out, l)
	}
	if len(out) == 0 {
		return nil, errs.ErrNoViolationType
	}
	return out, nil
}

func (s *reportService) GetReport(reportID string, viewer *models.User) (*models.Report, error) {
	report, err := s.reportRepo.GetReportByID(reportID)
	if err != nil {
		return nil, err
	}
	if !viewer.IsAdmin() && report.UserID != viewer.ID {
		return nil, errs.ErrReportNotFound
	}
	return report, nil
}

func (s *reportService) ListReports(filter models.ReportFilter) (*models.ReportPage, error) {
	if filter.Status != "" && filter.Status != models.StatusPending && !filter.Status.Terminal() {
		return nil, errs.New("status filter must be ALL, PENDING, APPROVED or REJECTED", http.StatusBadRequest)
	}
	reports, total, err := s.reportRepo.ListReports(filter)
	if err != nil {
		return nil, err
	}
	return &models.ReportPage{
		Reports:  reports,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

// UpdateReportStatus adjudicates a PENDING report. When an approval carries no points the
// award defaults to the sum of the default points of the report's violation types.
func (s *reportService) UpdateReportStatus(ctx context.Context, reportID string, reviewer *models.User, req *models.StatusUpdateRequest) (*models.Report, error) {
	catalog, err := s.violationTypeRepo.GetAllViolationTypes()
	if err != nil {
		return nil, err
	}

	comment := sanitizeText(req.Comment)
	at := s.now()
	reviewed, err := s.reportRepo.Adjudicate(reportID, func(current models.Report) (models.Report, int, error) {
		points := models.DefaultPointsFor(current.ViolationTypes, catalog)
		if req.Points != nil {
			points = *req.Points
		}
		return Adjudicate(current, Decision{
			Status:     req.Status,
			Points:     points,
			Comment:    comment,
			ReviewerID: reviewer.ID,
			At:         at,
		})
	})
	if err != nil {
		return nil, err
	}

	logger.Sugar.Infow("report reviewed",
		"report_id", reviewed.ID, "status", reviewed.Status, "reviewer_id", reviewer.ID, "points", reviewed.RewardPoints)
	s.publish(models.EventReportReviewed, reviewed)

	if s.notifier != nil {
		author, err := s.authRepo.FindUserByID(reviewed.UserID)
		if err != nil {
			logger.Log.Warn("report author not found for notification", zap.String("report_id", reviewed.ID), zap.Error(err))
		} else {
			s.notifier.NotifyReportReviewed(ctx, author, reviewed)
		}
	}
	return reviewed, nil
}

func (s *reportService) publish(t models.EventType, report *models.Report) {
	if s.hub == nil {
		return
	}
	s.hub.Publish(models.ReportEvent{Type: t, Report: *report})
}

func (s *reportService) GetStats() (*models.ReportStats, error) {
	return s.reportRepo.CountByStatus(nil)
}

func (s *reportService) GetUserStats(user *models.User) (*models.UserStats, error) {
	stats, err := s.reportRepo.CountByStatus(&user.ID)
	if err != nil {
		return nil, err
	}
	return &models.UserStats{ReportStats: *stats, Points: user.Points}, nil
}

func (s *reportService) GetViolationTypes() ([]models.ViolationType, error) {
	return s.violationTypeRepo.GetAllViolationTypes()
}

func (s *reportService) CreateViolationType(req *models.ViolationTypeRequest) (*models.ViolationType, error) {
	label := sanitizeText(req.Label)
	if label == "" {
		return nil, errs.New("label is required", http.StatusBadRequest)
	}
	if req.DefaultPoints < 0 {
		return nil, errs.ErrNegativePoints
	}
	return s.violationTypeRepo.CreateViolationType(&models.ViolationType{Label: label, DefaultPoints: req.DefaultPoints})
}
