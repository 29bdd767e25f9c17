package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/emsclinic/ems-backend/internal/repository"
	"github.com/emsclinic/ems-backend/internal/service"
	"github.com/emsclinic/ems-backend/internal/storage"
)

func setupReportRouter(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	repo := repository.New(storage.NewMemoryStore(), zap.NewNop())
	require.NoError(t, repo.Init(context.Background()))

	h := NewReportHandler(service.NewReportService(repo, zap.NewNop()), zap.NewNop())

	router := gin.New()
	router.GET("/reports/patients", h.Patients)
	router.GET("/reports/patients/csv", h.PatientsCSV)
	router.GET("/reports/appointments", h.Appointments)
	return router
}

func TestReportHandler_PatientsCSV_Download(t *testing.T) {
	router := setupReportRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/reports/patients/csv", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "patients_report_")

	body := w.Body.String()
	assert.True(t, strings.HasPrefix(body, "\uFEFF"), "download must start with the UTF-8 BOM")
	assert.Contains(t, body, `"Name","Age","Gender","Insurance","Phone"`)
}

func TestReportHandler_Patients_JSONSummary(t *testing.T) {
	router := setupReportRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/reports/patients", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"genderDistribution"`)
	assert.Contains(t, w.Body.String(), `"ageGroups"`)
}

func TestReportHandler_Appointments(t *testing.T) {
	router := setupReportRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/reports/appointments", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"byStatus"`)
}
