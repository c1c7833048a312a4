package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	errs "github.com/techagentng/civiceye/errors"
	"github.com/techagentng/civiceye/models"
)

func TestAdjudicate(t *testing.T) {
	at := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	pending := models.Report{ID: "r1", UserID: 7, Status: models.StatusPending}
	fifty := 50

	tests := []struct {
		name       string
		report     models.Report
		decision   Decision
		wantErr    error
		wantCredit int
		wantPoints *int
	}{
		{
			name:       "approve credits points",
			report:     pending,
			decision:   Decision{Status: models.StatusApproved, Points: 50, Comment: "clear evidence", ReviewerID: 1, At: at},
			wantCredit: 50,
			wantPoints: &fifty,
		},
		{
			name:     "reject credits nothing",
			report:   pending,
			decision: Decision{Status: models.StatusRejected, Points: 50, ReviewerID: 1, At: at},
		},
		{
			name:     "already approved",
			report:   models.Report{ID: "r1", Status: models.StatusApproved, RewardPoints: &fifty},
			decision: Decision{Status: models.StatusApproved, Points: 10},
			wantErr:  errs.ErrReportNotPending,
		},
		{
			name:     "already rejected",
			report:   models.Report{ID: "r1", Status: models.StatusRejected},
			decision: Decision{Status: models.StatusApproved, Points: 10},
			wantErr:  errs.ErrReportNotPending,
		},
		{
			name:     "back to pending",
			report:   pending,
			decision: Decision{Status: models.StatusPending},
			wantErr:  errs.ErrInvalidDecision,
		},
		{
			name:     "negative points",
			report:   pending,
			decision: Decision{Status: models.StatusApproved, Points: -1},
			wantErr:  errs.ErrNegativePoints,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, credit, err := Adjudicate(tc.report, tc.decision)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Zero(t, credit)
				assert.Equal(t, tc.report, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantCredit, credit)
			assert.Equal(t, tc.decision.Status, got.Status)
			assert.Equal(t, tc.wantPoints, got.RewardPoints)
			assert.Equal(t, tc.decision.Comment, got.AdminComment)
			require.NotNil(t, got.ReviewedBy)
			assert.Equal(t, tc.decision.ReviewerID, *got.ReviewedBy)
			require.NotNil(t, got.ReviewedAt)
			assert.True(t, at.Equal(*got.ReviewedAt))
		})
	}
}

func TestAdjudicateDoesNotAliasPoints(t *testing.T) {
	d := Decision{Status: models.StatusApproved, Points: 20}
	got, _, err := Adjudicate(models.Report{Status: models.StatusPending}, d)
	require.NoError(t, err)
	d.Points = 99
	assert.Equal(t, 20, *got.RewardPoints)
}

func TestSanitizeText(t *testing.T) {
	assert.Equal(t, "Near the bus stop", sanitizeText("  <b>Near</b> the bus stop<script>alert(1)</script> "))
	assert.Equal(t, "Main street &amp; co", sanitizeText("Main street & co"))

	// encoded markup is decoded first and then stripped like literal markup
	assert.Equal(t, "", sanitizeText("&lt;script&gt;alert(1)&lt;/script&gt;"))
	assert.Equal(t, "hi", sanitizeText("&lt;img src=x onerror=alert(1)&gt;hi"))
	assert.NotContains(t, sanitizeText("&amp;lt;script&amp;gt;alert(1)"), "<")
}
