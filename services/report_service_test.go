package services

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	errs "github.com/techagentng/civiceye/errors"
	"github.com/techagentng/civiceye/models"
)

func submit(t *testing.T, f *fixture, user *models.User, labels ...string) *models.Report {
	t.Helper()
	r, err := f.reports.SubmitReport(context.Background(), user, &models.ReportRequest{
		ViolationTypes: labels,
		VehicleNumber:  "tn 10 ab 1234",
		Location:       "Anna Salai",
		Description:    "Rode through the red light",
	}, nil)
	require.NoError(t, err)
	return r
}

func TestSubmitReport(t *testing.T) {
	f := newFixture(t)
	citizen := f.signup(t, "Asha", "asha@example.com", "")
	events, cancel := f.hub.Subscribe()
	defer cancel()

	r := submit(t, f, citizen, "Signal Jump", "No Helmet", "Signal Jump")
	assert.Equal(t, models.StatusPending, r.Status)
	assert.Nil(t, r.RewardPoints)
	assert.Equal(t, "TN 10 AB 1234", r.VehicleNumber)
	assert.Equal(t, []string{"Signal Jump", "No Helmet"}, r.ViolationTypes)
	assert.Equal(t, "Asha", r.UserName)
	assert.Equal(t, "https://picsum.photos/800/600", r.ImageURL)

	ev := <-events
	assert.Equal(t, models.EventReportCreated, ev.Type)
	assert.Equal(t, r.ID, ev.Report.ID)

	got, err := f.reports.GetReport(r.ID, citizen)
	require.NoError(t, err)
	assert.Equal(t, r.ID, got.ID)
}

func TestSubmitReportWithEvidence(t *testing.T) {
	f := newFixture(t)
	citizen := f.signup(t, "Asha", "asha@example.com", "")

	r, err := f.reports.SubmitReport(context.Background(), citizen, &models.ReportRequest{
		ViolationTypes: []string{"No Helmet"},
		VehicleNumber:  "KA05MH2211",
		Location:       "MG Road",
	}, pngImage(t))
	require.NoError(t, err)
	assert.Equal(t, "/media/reports/"+r.ID+".png", r.ImageURL)
	assert.Equal(t, "/media/reports/thumbnails/"+r.ID+".jpg", r.ThumbnailURL)

	_, err = os.Stat(filepath.Join(f.mediaDir, "reports", r.ID+".png"))
	assert.NoError(t, err)

	_, err = f.reports.SubmitReport(context.Background(), citizen, &models.ReportRequest{
		ViolationTypes: []string{"No Helmet"},
		VehicleNumber:  "KA05MH2211",
		Location:       "MG Road",
	}, []byte("plain text"))
	assert.Equal(t, http.StatusBadRequest, errs.Status(err))
}

func TestSubmitReportValidation(t *testing.T) {
	f := newFixture(t)
	citizen := f.signup(t, "Asha", "asha@example.com", "")

	tests := []struct {
		name string
		req  models.ReportRequest
		want string
	}{
		{"no violation", models.ReportRequest{VehicleNumber: "X", Location: "Y"}, errs.ErrNoViolationType.Message},
		{"blank labels", models.ReportRequest{ViolationTypes: []string{" "}, VehicleNumber: "X", Location: "Y"}, errs.ErrNoViolationType.Message},
		{"unknown label", models.ReportRequest{ViolationTypes: []string{"Jaywalking"}, VehicleNumber: "X", Location: "Y"}, "unknown violation type: Jaywalking"},
		{"missing location", models.ReportRequest{ViolationTypes: []string{"No Helmet"}, VehicleNumber: "X", Location: "<b></b>"}, "vehicle number and location are required"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := tc.req
			_, err := f.reports.SubmitReport(context.Background(), citizen, &req, nil)
			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, errs.Status(err))
			assert.Equal(t, tc.want, err.Error())
		})
	}

	page, err := f.reports.ListReports(models.ReportFilter{})
	require.NoError(t, err)
	assert.Zero(t, page.Total)
}

func TestApproveCreditsAuthorOnce(t *testing.T) {
	f := newFixture(t)
	citizen := f.signup(t, "Asha", "asha@example.com", "")
	admin := f.signup(t, "Officer", "officer@example.com", models.RoleAdmin)
	r := submit(t, f, citizen, "Signal Jump")

	points := 75
	reviewed, err := f.reports.UpdateReportStatus(context.Background(), r.ID, admin,
		&models.StatusUpdateRequest{Status: models.StatusApproved, Points: &points, Comment: "Clear photo"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, reviewed.Status)
	assert.Equal(t, 75, *reviewed.RewardPoints)
	assert.Equal(t, "Clear photo", reviewed.AdminComment)
	assert.Equal(t, 75, f.reload(t, citizen.ID).Points)

	_, err = f.reports.UpdateReportStatus(context.Background(), r.ID, admin,
		&models.StatusUpdateRequest{Status: models.StatusApproved, Points: &points})
	assert.ErrorIs(t, err, errs.ErrReportNotPending)
	_, err = f.reports.UpdateReportStatus(context.Background(), r.ID, admin,
		&models.StatusUpdateRequest{Status: models.StatusRejected})
	assert.ErrorIs(t, err, errs.ErrReportNotPending)
	assert.Equal(t, 75, f.reload(t, citizen.ID).Points)

	require.Len(t, f.notifier.reports, 1)
	assert.Equal(t, citizen.ID, f.notifier.authors[0])

	stats, err := f.reports.GetUserStats(f.reload(t, citizen.ID))
	require.NoError(t, err)
	assert.Equal(t, models.UserStats{ReportStats: models.ReportStats{Approved: 1, Total: 1, PointsAwarded: 75}, Points: 75}, *stats)
}

func TestApproveDefaultsToCatalogPoints(t *testing.T) {
	f := newFixture(t)
	citizen := f.signup(t, "Asha", "asha@example.com", "")
	admin := f.signup(t, "Officer", "officer@example.com", models.RoleAdmin)
	r := submit(t, f, citizen, "Signal Jump", "No Helmet")

	reviewed, err := f.reports.UpdateReportStatus(context.Background(), r.ID, admin,
		&models.StatusUpdateRequest{Status: models.StatusApproved})
	require.NoError(t, err)
	assert.Equal(t, 150, *reviewed.RewardPoints)
	assert.Equal(t, 150, f.reload(t, citizen.ID).Points)
}

func TestRejectLeavesBalance(t *testing.T) {
	f := newFixture(t)
	citizen := f.signup(t, "Asha", "asha@example.com", "")
	admin := f.signup(t, "Officer", "officer@example.com", models.RoleAdmin)
	r := submit(t, f, citizen, "Illegal Parking")
	events, cancel := f.hub.Subscribe()
	defer cancel()

	reviewed, err := f.reports.UpdateReportStatus(context.Background(), r.ID, admin,
		&models.StatusUpdateRequest{Status: models.StatusRejected, Comment: "Plate not visible"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, reviewed.Status)
	assert.Nil(t, reviewed.RewardPoints)
	assert.Zero(t, f.reload(t, citizen.ID).Points)

	ev := <-events
	assert.Equal(t, models.EventReportReviewed, ev.Type)
	assert.Equal(t, models.StatusRejected, ev.Report.Status)

	_, err = f.reports.UpdateReportStatus(context.Background(), "missing", admin,
		&models.StatusUpdateRequest{Status: models.StatusRejected})
	assert.ErrorIs(t, err, errs.ErrReportNotFound)
}

func TestConcurrentReviewsCreditOnce(t *testing.T) {
	f := newFixture(t)
	citizen := f.signup(t, "Asha", "asha@example.com", "")
	admin := f.signup(t, "Officer", "officer@example.com", models.RoleAdmin)
	r := submit(t, f, citizen, "Signal Jump")

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			points := 40
			_, err := f.reports.UpdateReportStatus(context.Background(), r.ID, admin,
				&models.StatusUpdateRequest{Status: models.StatusApproved, Points: &points})
			if err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, 40, f.reload(t, citizen.ID).Points)
}

func TestGetReportHidesOthersReports(t *testing.T) {
	f := newFixture(t)
	asha := f.signup(t, "Asha", "asha@example.com", "")
	ravi := f.signup(t, "Ravi", "ravi@example.com", "")
	admin := f.signup(t, "Officer", "officer@example.com", models.RoleAdmin)
	r := submit(t, f, asha, "No Helmet")

	_, err := f.reports.GetReport(r.ID, ravi)
	assert.ErrorIs(t, err, errs.ErrReportNotFound)
	_, err = f.reports.GetReport(r.ID, admin)
	assert.NoError(t, err)
}

func TestListReportsFilter(t *testing.T) {
	f := newFixture(t)
	citizen := f.signup(t, "Asha", "asha@example.com", "")
	admin := f.signup(t, "Officer", "officer@example.com", models.RoleAdmin)
	first := submit(t, f, citizen, "No Helmet")
	submit(t, f, citizen, "Signal Jump")

	_, err := f.reports.UpdateReportStatus(context.Background(), first.ID, admin,
		&models.StatusUpdateRequest{Status: models.StatusRejected})
	require.NoError(t, err)

	page, err := f.reports.ListReports(models.ReportFilter{Status: models.StatusPending})
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Total)

	_, err = f.reports.ListReports(models.ReportFilter{Status: "ARCHIVED"})
	assert.Equal(t, http.StatusBadRequest, errs.Status(err))

	stats, err := f.reports.GetStats()
	require.NoError(t, err)
	assert.Equal(t, models.ReportStats{Pending: 1, Rejected: 1, Total: 2}, *stats)
}

func TestCreateViolationType(t *testing.T) {
	f := newFixture(t)

	vt, err := f.reports.CreateViolationType(&models.ViolationTypeRequest{Label: "No Number Plate", DefaultPoints: 60})
	require.NoError(t, err)
	assert.Equal(t, "No Number Plate", vt.Label)

	_, err = f.reports.CreateViolationType(&models.ViolationTypeRequest{Label: "No Helmet"})
	assert.ErrorIs(t, err, errs.ErrDuplicateLabel)

	_, err = f.reports.CreateViolationType(&models.ViolationTypeRequest{Label: "Bad", DefaultPoints: -5})
	assert.ErrorIs(t, err, errs.ErrNegativePoints)

	citizen := f.signup(t, "Asha", "asha@example.com", "")
	r := submit(t, f, citizen, "No Number Plate")
	assert.Equal(t, []string{"No Number Plate"}, r.ViolationTypes)
}
