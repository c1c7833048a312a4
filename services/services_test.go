package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/techagentng/civiceye/config"
	"github.com/techagentng/civiceye/db"
	"github.com/techagentng/civiceye/models"
	"github.com/techagentng/civiceye/services/events"
	"github.com/techagentng/civiceye/services/session"
	"github.com/techagentng/civiceye/services/storage"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:           "test-secret",
		TokenTTL:            time.Hour,
		SessionSlot:         "civicEye_user",
		PlaceholderImageURL: "https://picsum.photos/800/600",
	}
}

func testDB(t *testing.T) *db.GormDB {
	t.Helper()
	g, err := db.OpenSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)
	require.NoError(t, db.SeedCatalog(g.DB))
	t.Cleanup(func() { _ = g.Close() })
	return g
}

type recordingNotifier struct {
	mu      sync.Mutex
	reports []models.Report
	authors []uint
}

func (r *recordingNotifier) NotifyReportReviewed(_ context.Context, author *models.User, report *models.Report) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.authors = append(r.authors, author.ID)
	r.reports = append(r.reports, *report)
}

func (r *recordingNotifier) GetNotifications(uint) ([]models.Notification, error) {
	return nil, nil
}

type fixture struct {
	db       *db.GormDB
	auth     AuthService
	reports  ReportService
	rewards  RewardService
	authRepo db.AuthRepository
	sessions *session.MemoryStore
	hub      *events.Hub
	notifier *recordingNotifier
	mediaDir string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	g := testDB(t)
	conf := testConfig()
	f := &fixture{
		db:       g,
		authRepo: db.NewAuthRepo(g),
		sessions: session.NewMemoryStore(conf.SessionSlot),
		hub:      events.NewHub(),
		notifier: &recordingNotifier{},
		mediaDir: t.TempDir(),
	}
	t.Cleanup(f.hub.Close)

	store, err := storage.NewDiskStore(f.mediaDir, "/media")
	require.NoError(t, err)

	f.auth = NewAuthService(f.authRepo, f.sessions, conf)
	f.reports = NewReportService(db.NewReportRepo(g), db.NewViolationTypeRepo(g), f.authRepo, store, f.hub, f.notifier, conf)
	f.rewards = NewRewardService(db.NewRewardRepo(g), conf)
	return f
}

// signup registers a citizen through public signup, or an official through CreateOfficial.
func (f *fixture) signup(t *testing.T, name, email string, role models.Role) *models.User {
	t.Helper()
	req := &models.SignupRequest{Name: name, Email: email, Password: "secret123"}
	if role == models.RoleAdmin {
		official, apiErr := f.auth.CreateOfficial(req)
		require.Nil(t, apiErr)
		return official
	}
	resp, apiErr := f.auth.SignupUser(req)
	require.Nil(t, apiErr)
	return resp.User
}

func (f *fixture) reload(t *testing.T, id uint) *models.User {
	t.Helper()
	u, err := f.authRepo.FindUserByID(id)
	require.NoError(t, err)
	return u
}

func pngImage(t *testing.T) []byte {
	t.Helper()
	buf := &bytes.Buffer{}
	require.NoError(t, png.Encode(buf, image.NewGray(image.Rect(0, 0, 400, 300))))
	return buf.Bytes()
}
