package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"farecast/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	reg := services.NewModelRegistry(nil)
	reg.Register(services.RandomForest, services.PredictorFunc(func(r services.FeatureRow) (float64, error) {
		return float64(5000 + r.TotalStops*1000), nil
	}))
	services.UseModelRegistry(reg)
	services.InitSearcher(services.NewSearcher(reg, 42, true))

	r := gin.New()
	r.SetHTMLTemplate(Templates())
	r.GET("/", IndexHandler)
	r.POST("/search", FormSearchHandler)
	r.GET("/api/health", HealthHandler)
	r.GET("/api/models", ModelsHandler)
	r.GET("/api/catalog", CatalogHandler)
	r.POST("/api/search", SearchHandler)
	r.POST("/api/search/pdf", DownloadHandler)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func postForm(r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)
	return w
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestSearchHandler(t *testing.T) {
	r := setupRouter(t)

	w := postJSON(r, "/api/search", `{"source":"Delhi","destination":"Cochin","journey_date":"2024-03-15"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res services.SearchResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))

	assert.NotEmpty(t, res.SearchID)
	assert.Equal(t, services.RandomForest, res.Model.Kind)
	assert.Len(t, res.Flights, len(services.Airlines))
	assert.Equal(t, len(services.Airlines), res.Results.Shown)
	for i := 1; i < len(res.Flights); i++ {
		assert.LessOrEqual(t, res.Flights[i-1].Price, res.Flights[i].Price)
	}
}

func TestSearchHandlerErrors(t *testing.T) {
	r := setupRouter(t)

	tests := []struct {
		name   string
		body   string
		status int
		kind   string
	}{
		{"identical endpoints", `{"source":"Delhi","destination":"Delhi"}`, http.StatusBadRequest, "validation"},
		{"missing endpoint", `{"destination":"Cochin"}`, http.StatusBadRequest, "validation"},
		{"no stops", `{"source":"Delhi","destination":"Cochin","stops":[]}`, http.StatusUnprocessableEntity, "config"},
		{"model not loadable", `{"source":"Delhi","destination":"Cochin","model":"neural_net"}`, http.StatusServiceUnavailable, "load"},
		{"inverted price range", `{"source":"Delhi","destination":"Cochin","price_min":9000,"price_max":5000}`, http.StatusBadRequest, "validation"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(r, "/api/search", tt.body)
			assert.Equal(t, tt.status, w.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.kind, body["kind"])
			assert.NotEmpty(t, body["error"])
		})
	}

	w := postJSON(r, "/api/search", `{"source":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCatalogHandler(t *testing.T) {
	r := setupRouter(t)

	w := get(r, "/api/catalog")
	require.Equal(t, http.StatusOK, w.Code)

	var cat services.Catalog
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cat))
	assert.Equal(t, services.Airlines, cat.Airlines)
	assert.Equal(t, services.StopOptions, cat.StopOptions)
}

func TestHealthHandler(t *testing.T) {
	r := setupRouter(t)

	w := get(r, "/api/health")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Status string            `json:"status"`
		Models map[string]string `json:"models"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "loaded", body.Models["random_forest"])
	assert.Equal(t, "not loaded", body.Models["xgboost"])

	w = get(r, "/api/models")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"loaded":true`)
}

func TestIndexHandler(t *testing.T) {
	r := setupRouter(t)

	w := get(r, "/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Flight Price Prediction Portal")
	assert.Contains(t, w.Body.String(), services.SourceSentinel)
}

func searchForm() url.Values {
	return url.Values{
		"model":          {"random_forest"},
		"source":         {"Delhi"},
		"destination":    {"Cochin"},
		"journey_date":   {"2024-03-15"},
		"dep_time":       {"09:00"},
		"arr_time":       {"11:30"},
		"route_segments": {"1"},
		"info_category":  {"No info"},
		"stops":          {"0", "1"},
		"airlines":       {"IndiGo", "Vistara"},
		"price_min":      {"4000"},
		"price_max":      {"12000"},
	}
}

func TestFormSearchHandler(t *testing.T) {
	r := setupRouter(t)

	w := postForm(r, "/search", searchForm())
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Showing 2 of 2 flights using Random Forest (default)")
	assert.NotContains(t, w.Body.String(), `class="error"`)
}

func TestFormSearchHandlerNoStops(t *testing.T) {
	r := setupRouter(t)

	form := searchForm()
	form.Del("stops")

	w := postForm(r, "/search", form)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "select at least one stop count")
}

func TestDownloadHandler(t *testing.T) {
	r := setupRouter(t)

	w := postForm(r, "/api/search/pdf", searchForm())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF"))

	w = postJSON(r, "/api/search/pdf", `{"source":"Delhi","destination":"Delhi"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
}

func TestDownloadHandlerFormErrors(t *testing.T) {
	r := setupRouter(t)

	tests := []struct {
		name     string
		mut      func(url.Values)
		status   int
		expected string
	}{
		{"no stops", func(f url.Values) { f.Del("stops") }, http.StatusUnprocessableEntity, "select at least one stop count"},
		{"identical endpoints", func(f url.Values) { f.Set("destination", "Delhi") }, http.StatusBadRequest, services.MsgIdenticalEndpoints},
		{"bad segments", func(f url.Values) { f.Set("route_segments", "two") }, http.StatusBadRequest, "Invalid form"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := searchForm()
			tt.mut(form)

			w := postForm(r, "/api/search/pdf", form)
			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
			assert.Contains(t, w.Body.String(), "Flight Price Prediction Portal")
			assert.Contains(t, w.Body.String(), tt.expected)
		})
	}
}

func TestSearchErrorStatus(t *testing.T) {
	tests := []struct {
		err    error
		status int
		kind   string
	}{
		{&services.ValidationError{Field: "source"}, http.StatusBadRequest, "validation"},
		{&services.ConfigError{Filter: "airlines"}, http.StatusUnprocessableEntity, "config"},
		{&services.LoadError{Model: "XGBoost"}, http.StatusServiceUnavailable, "load"},
		{&services.PredictionError{Airline: "GoAir"}, http.StatusInternalServerError, "prediction"},
		{assert.AnError, http.StatusInternalServerError, "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			status, kind := searchErrorStatus(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.kind, kind)
		})
	}
}
