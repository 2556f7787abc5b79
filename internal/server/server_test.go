package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/nestcut/nestcut/internal/export"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func postNest(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	router := NewRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/nest", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	router := NewRouter()
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}

func TestNest(t *testing.T) {
	body := `{
		"settings": {"kerf": 3, "allow_rotation": true},
		"boards": [{"material": "MDF", "width": 2440, "height": 1220}],
		"parts": [
			{"id": "side", "material": "MDF", "width": 600, "height": 400, "quantity": 2},
			{"id": "shelf", "material": "MDF", "width": 500, "height": 300}
		]
	}`
	w := postNest(t, body)
	require.Equal(t, http.StatusOK, w.Code)

	var resp export.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Placements, 3)
	assert.Equal(t, 1, resp.Stats.BoardsUsed)
	assert.Empty(t, resp.Unplaced)
	assert.Equal(t, "side-1", resp.Placements[0].PartID)
}

func TestNest_UnplaceableReported(t *testing.T) {
	body := `{
		"boards": [{"material": "Oak", "width": 1000, "height": 1000}],
		"parts": [{"id": "huge", "material": "Oak", "width": 2000, "height": 2000}]
	}`
	w := postNest(t, body)
	require.Equal(t, http.StatusOK, w.Code)

	var resp export.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Placements)
	require.Len(t, resp.Unplaced, 1)
	assert.Equal(t, "huge", resp.Unplaced[0].PartID)
}

func TestNest_InvalidJSON(t *testing.T) {
	w := postNest(t, `{"parts": [`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNest_InvalidPart(t *testing.T) {
	w := postNest(t, `{"parts": [{"id": "a", "width": -5, "height": 10}]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "non-positive")
}

func TestNest_EmptyRequest(t *testing.T) {
	w := postNest(t, `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "no parts")
}
