package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snehamhatre1409-sys/Health-Management-System/data"
	"github.com/snehamhatre1409-sys/Health-Management-System/types"
)

func setupRouter(t *testing.T) http.Handler {
	gin.SetMode(gin.TestMode)
	t.Setenv("DATA_DIR", t.TempDir())
	t.Setenv("JWT_SECRET", "test-secret")
	data.InitDatabase()
	return NewRouter().RegisterRoutes()
}

func doRequest(router http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func registerAndLogin(t *testing.T, router http.Handler, username string) string {
	resp := doRequest(router, http.MethodPost, "/api/auth/register", "",
		types.RegisterRequest{Username: username, Password: "password123"})
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = doRequest(router, http.MethodPost, "/api/auth/login", "",
		types.LoginRequest{Username: username, Password: "password123"})
	require.Equal(t, http.StatusOK, resp.Code)

	var auth types.AuthResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &auth))
	require.NotEmpty(t, auth.Token)
	return auth.Token
}

func calculationBody() types.SaveRecordRequest {
	return types.SaveRecordRequest{
		Profile: types.ProfileSnapshot{
			WeightKg:      70,
			HeightM:       1.75,
			AgeYears:      25,
			Sex:           types.SexMale,
			ActivityLevel: types.ActivityModerate,
		},
	}
}

func TestRegisterDuplicate(t *testing.T) {
	router := setupRouter(t)

	resp := doRequest(router, http.MethodPost, "/api/auth/register", "",
		types.RegisterRequest{Username: "admin", Password: "password123"})
	assert.Equal(t, http.StatusCreated, resp.Code)

	resp = doRequest(router, http.MethodPost, "/api/auth/register", "",
		types.RegisterRequest{Username: "admin", Password: "different"})
	assert.Equal(t, http.StatusConflict, resp.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	router := setupRouter(t)
	registerAndLogin(t, router, "admin")

	resp := doRequest(router, http.MethodPost, "/api/auth/login", "",
		types.LoginRequest{Username: "admin", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestCalculateEndpoint(t *testing.T) {
	router := setupRouter(t)

	resp := doRequest(router, http.MethodPost, "/api/metrics/calculate", "",
		types.CalculationRequest{Profile: calculationBody().Profile, Goal: types.GoalLose})
	require.Equal(t, http.StatusOK, resp.Code)

	var metrics types.DerivedMetrics
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &metrics))
	assert.Equal(t, 22.86, metrics.BMI)
	assert.Equal(t, types.BMINormal, metrics.BMIStatus)
	require.NotNil(t, metrics.Macros)
}

func TestCalculateEndpointInvalidProfile(t *testing.T) {
	router := setupRouter(t)

	body := types.CalculationRequest{Profile: calculationBody().Profile}
	body.Profile.WeightKg = 5

	resp := doRequest(router, http.MethodPost, "/api/metrics/calculate", "", body)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestRecordsRequireAuth(t *testing.T) {
	router := setupRouter(t)

	resp := doRequest(router, http.MethodGet, "/api/records", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = doRequest(router, http.MethodGet, "/api/records", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestSaveAndListRecords(t *testing.T) {
	router := setupRouter(t)
	token := registerAndLogin(t, router, "admin")

	resp := doRequest(router, http.MethodPost, "/api/records", token, calculationBody())
	require.Equal(t, http.StatusCreated, resp.Code)

	var saved types.SaveRecordResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &saved))
	assert.Greater(t, saved.RecordID, int64(0))
	require.NotNil(t, saved.Metrics)

	second := calculationBody()
	second.Profile.WeightKg = 71
	resp = doRequest(router, http.MethodPost, "/api/records", token, second)
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = doRequest(router, http.MethodGet, "/api/records", token, nil)
	require.Equal(t, http.StatusOK, resp.Code)

	var records []types.HealthRecord
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &records))
	require.Len(t, records, 2)
	assert.Equal(t, 70.0, records[0].WeightKg)
	assert.Equal(t, 71.0, records[1].WeightKg)
}

func TestSummary(t *testing.T) {
	router := setupRouter(t)
	token := registerAndLogin(t, router, "admin")

	first := calculationBody()
	resp := doRequest(router, http.MethodPost, "/api/records", token, first)
	require.Equal(t, http.StatusCreated, resp.Code)

	second := calculationBody()
	second.Profile.WeightKg = 72
	resp = doRequest(router, http.MethodPost, "/api/records", token, second)
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = doRequest(router, http.MethodGet, "/api/records/summary", token, nil)
	require.Equal(t, http.StatusOK, resp.Code)

	var summary types.SummaryResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &summary))
	assert.Equal(t, 2, summary.RecordCount)
	assert.Equal(t, 71.0, summary.MeanWeightKg)
	require.NotNil(t, summary.Latest)
	assert.Equal(t, 72.0, summary.Latest.WeightKg)
}

func TestExportPDF(t *testing.T) {
	router := setupRouter(t)
	token := registerAndLogin(t, router, "admin")

	// Nothing saved yet
	resp := doRequest(router, http.MethodGet, "/api/records/export/pdf", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = doRequest(router, http.MethodPost, "/api/records", token, calculationBody())
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = doRequest(router, http.MethodGet, "/api/records/export/pdf", token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "application/pdf", resp.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(resp.Body.Bytes(), []byte("%PDF")))
}

func TestExportXLSX(t *testing.T) {
	router := setupRouter(t)
	token := registerAndLogin(t, router, "admin")

	resp := doRequest(router, http.MethodPost, "/api/records", token, calculationBody())
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = doRequest(router, http.MethodGet, "/api/records/export/xlsx", token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.NotEmpty(t, resp.Body.Bytes())
}

func TestWeightTrackingToggle(t *testing.T) {
	router := setupRouter(t)
	token := registerAndLogin(t, router, "admin")

	// Tracking off: saving a record adds no weight entry
	resp := doRequest(router, http.MethodPost, "/api/settings", token,
		types.SettingsRequest{WeightTracking: false})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = doRequest(router, http.MethodPost, "/api/records", token, calculationBody())
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = doRequest(router, http.MethodGet, "/api/weight-tracking", token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	var entries []types.WeightEntry
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &entries))
	assert.Empty(t, entries)

	// Tracking on: the next save mirrors the weight
	resp = doRequest(router, http.MethodPost, "/api/settings", token,
		types.SettingsRequest{WeightTracking: true})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = doRequest(router, http.MethodPost, "/api/records", token, calculationBody())
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = doRequest(router, http.MethodGet, "/api/weight-tracking", token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, 70.0, entries[0].WeightKg)
}
