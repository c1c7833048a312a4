package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	assert.Equal(t, http.StatusConflict, Status(ErrReportNotPending))
	assert.Equal(t, http.StatusConflict, Status(fmt.Errorf("adjudicate: %w", ErrReportNotPending)))
	assert.Equal(t, http.StatusInternalServerError, Status(fmt.Errorf("boom")))
}

func TestGetUniqueContraintError(t *testing.T) {
	assert.Nil(t, GetUniqueContraintError(nil))
	assert.Equal(t, ErrDuplicateEmail, GetUniqueContraintError(ErrDuplicateEmail))

	e := GetUniqueContraintError(fmt.Errorf("UNIQUE constraint failed: users.email"))
	assert.Equal(t, http.StatusConflict, e.Status)

	assert.Equal(t, ErrInternalServerError, GetUniqueContraintError(fmt.Errorf("connection reset")))
}
