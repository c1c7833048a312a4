package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	JSON(c, "created", http.StatusCreated, gin.H{"id": "r1"}, nil)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "created", body["message"])
	assert.Equal(t, "Created", body["status"])
	assert.Equal(t, "", body["errors"])
	assert.Equal(t, map[string]interface{}{"id": "r1"}, body["data"])
	assert.NotEmpty(t, body["timestamp"])

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	JSON(c, "", http.StatusConflict, nil, errors.New("report has already been reviewed"))
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "report has already been reviewed", body["errors"])
	assert.Nil(t, body["data"])
}
