package db

import (
	"time"

	"github.com/pkg/errors"
	errs "github.com/techagentng/civiceye/errors"
	"github.com/techagentng/civiceye/models"
	"gorm.io/gorm"
)

const defaultPageSize = 20

// DecideFunc turns a stored report into its reviewed form and the number of points to credit.
type DecideFunc func(report models.Report) (models.Report, int, error)

type ReportRepository interface {
	SaveReport(report *models.Report) (*models.Report, error)
	GetReportByID(reportID string) (*models.Report, error)
	ListReports(filter models.ReportFilter) ([]models.Report, int64, error)
	CountByStatus(userID *uint) (*models.ReportStats, error)
	Adjudicate(reportID string, decide DecideFunc) (*models.Report, error)
}

type reportRepo struct {
	DB *gorm.DB
}

func NewReportRepo(db *GormDB) ReportRepository {
	return &reportRepo{db.DB}
}

func (r *reportRepo) SaveReport(report *models.Report) (*models.Report, error) {
	if err := r.DB.Create(report).Error; err != nil {
		return nil, errors.Wrap(err, "failed to save report")
	}
	return report, nil
}

func (r *reportRepo) GetReportByID(reportID string) (*models.Report, error) {
	var report models.Report
	err := r.DB.Where("id = ?", reportID).First(&report).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrReportNotFound
		}
		return nil, errors.Wrap(err, "error finding report")
	}
	return &report, nil
}

// ListReports returns one page of reports, newest first, and the total matching the filter.
func (r *reportRepo) ListReports(filter models.ReportFilter) ([]models.Report, int64, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = defaultPageSize
	}
	offset := (page - 1) * pageSize

	query := r.DB.Model(&models.Report{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}

	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "error counting reports")
	}

	reports := []models.Report{}
	err := query.Order("created_at DESC").Order("id DESC").Limit(pageSize).Offset(offset).Find(&reports).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "error listing reports")
	}
	return reports, total, nil
}

// CountByStatus tallies reports per status, optionally for a single author.
func (r *reportRepo) CountByStatus(userID *uint) (*models.ReportStats, error) {
	type row struct {
		Status string
		Count  int64
		Points int64
	}
	var rows []row

	query := r.DB.Model(&models.Report{}).
		Select("status, COUNT(*) AS count, COALESCE(SUM(reward_points), 0) AS points").
		Group("status")
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}
	if err := query.Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "error counting reports")
	}

	stats := &models.ReportStats{}
	for _, rw := range rows {
		switch models.ReportStatus(rw.Status) {
		case models.StatusPending:
			stats.Pending = rw.Count
		case models.StatusApproved:
			stats.Approved = rw.Count
			stats.PointsAwarded = rw.Points
		case models.StatusRejected:
			stats.Rejected = rw.Count
		}
		stats.Total += rw.Count
	}
	return stats, nil
}

// Adjudicate applies decide to a PENDING report and, in the same transaction, credits the
// author. The status update only matches rows that are still PENDING, so a report can be
// reviewed at most once even when two officials act at the same time.
func (r *reportRepo) Adjudicate(reportID string, decide DecideFunc) (*models.Report, error) {
	var reviewed models.Report
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var current models.Report
		if err := tx.Where("id = ?", reportID).First(&current).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.ErrReportNotFound
			}
			return errors.Wrap(err, "error loading report")
		}

		next, credit, err := decide(current)
		if err != nil {
			return err
		}

		res := tx.Model(&models.Report{}).
			Where("id = ? AND status = ?", reportID, models.StatusPending).
			Updates(map[string]interface{}{
				"status":        next.Status,
				"admin_comment": next.AdminComment,
				"reward_points": next.RewardPoints,
				"reviewed_by":   next.ReviewedBy,
				"reviewed_at":   next.ReviewedAt,
				"updated_at":    time.Now(),
			})
		if res.Error != nil {
			return errors.Wrap(res.Error, "error updating report status")
		}
		if res.RowsAffected == 0 {
			return errs.ErrReportNotPending
		}

		if credit > 0 {
			if err := creditPoints(tx, current.UserID, current.ID, credit); err != nil {
				return err
			}
		}

		return tx.Where("id = ?", reportID).First(&reviewed).Error
	})
	if err != nil {
		return nil, err
	}
	return &reviewed, nil
}

func creditPoints(tx *gorm.DB, userID uint, reportID string, credit int) error {
	res := tx.Model(&models.User{}).Where("id = ?", userID).
		UpdateColumn("points", gorm.Expr("points + ?", credit))
	if res.Error != nil {
		return errors.Wrap(res.Error, "error crediting points")
	}
	if res.RowsAffected == 0 {
		return errs.New("report author no longer exists", errs.ErrNotFound.Status)
	}

	balance, err := pointsOf(tx, userID)
	if err != nil {
		return err
	}
	entry := models.PointEntry{
		UserID:   userID,
		Kind:     models.PointsEarned,
		ReportID: &reportID,
		Points:   credit,
		Balance:  balance,
	}
	if err := tx.Create(&entry).Error; err != nil {
		return errors.Wrap(err, "error writing points ledger")
	}
	return nil
}

func pointsOf(tx *gorm.DB, userID uint) (int, error) {
	var user models.User
	if err := tx.Select("points").Where("id = ?", userID).First(&user).Error; err != nil {
		return 0, errors.Wrap(err, "error reading balance")
	}
	return user.Points, nil
}
