package services

import (
	"time"

	errs "github.com/techagentng/civiceye/errors"
	"github.com/techagentng/civiceye/models"
)

// Decision is an official's verdict on a report. Points is the resolved award and is
// ignored for rejections.
type Decision struct {
	Status     models.ReportStatus
	Points     int
	Comment    string
	ReviewerID uint
	At         time.Time
}

// Adjudicate applies d to report and returns the reviewed report together with the number
// of points to credit to its author. Only PENDING reports can be adjudicated.
func Adjudicate(report models.Report, d Decision) (models.Report, int, error) {
	if report.Status != models.StatusPending {
		return report, 0, errs.ErrReportNotPending
	}

	credit := 0
	switch d.Status {
	case models.StatusApproved:
		if d.Points < 0 {
			return report, 0, errs.ErrNegativePoints
		}
		points := d.Points
		report.RewardPoints = &points
		credit = points
	case models.StatusRejected:
		report.RewardPoints = nil
	default:
		return report, 0, errs.ErrInvalidDecision
	}

	reviewer := d.ReviewerID
	at := d.At
	report.Status = d.Status
	report.AdminComment = d.Comment
	report.ReviewedBy = &reviewer
	report.ReviewedAt = &at
	return report, credit, nil
}
