package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travel_planner/config"
	"travel_planner/models"
)

func newTestRouter() http.Handler {
	r := chi.NewRouter()
	RegisterRoutes(r, config.Default())
	return r
}

func doJSONRequest(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func decodeEnvelope(t *testing.T, recorder *httptest.ResponseRecorder) (int, map[string]interface{}) {
	t.Helper()
	var envelope struct {
		Code    int                    `json:"code"`
		Message string                 `json:"message"`
		Data    map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	return envelope.Code, envelope.Data
}

func samplePost(id string) models.Post {
	cost := 80.0
	duration := 60
	return models.Post{
		ContentID:   id,
		Platform:    models.PlatformXiaohongshu,
		Title:       "成都吃喝指南",
		Description: "本地人带你逛吃",
		URL:         "https://www.xiaohongshu.com/p/" + id,
		Locations: []models.Location{
			{Name: "宽窄巷子", Type: models.LocationTypeAttraction},
		},
		Activities: []models.Activity{
			{Name: "吃火锅", Category: "restaurant", EstimatedCost: &cost, Duration: &duration},
		},
		Tags: []string{"美食"},
	}
}

func sampleRequirements() models.UserRequirements {
	return models.UserRequirements{
		Duration:    2,
		Travelers:   2,
		TravelStyle: []string{"relaxation"},
		Interests:   []string{"美食"},
	}
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter()
	recorder := doJSONRequest(t, router, http.MethodGet, "/api/health", nil)

	assert.Equal(t, http.StatusOK, recorder.Code)
	code, data := decodeEnvelope(t, recorder)
	assert.Equal(t, models.CodeSuccess, code)
	assert.Equal(t, "ok", data["status"])
}

func TestAnalyzeEndpointSuccess(t *testing.T) {
	router := newTestRouter()
	body := models.AnalyzeRequest{
		Posts: []models.Post{samplePost("p1"), samplePost("p2")},
	}

	recorder := doJSONRequest(t, router, http.MethodPost, "/api/travel/analyze", body)

	assert.Equal(t, http.StatusOK, recorder.Code)
	code, data := decodeEnvelope(t, recorder)
	assert.Equal(t, models.CodeSuccess, code)

	results := data["results"].([]interface{})
	assert.Len(t, results, 2)
	summary := data["summary"].(map[string]interface{})
	assert.EqualValues(t, 2, summary["totalContent"])
	assert.EqualValues(t, 2, summary["successfulAnalyses"])
	assert.EqualValues(t, 0, summary["failedAnalyses"])
}

func TestAnalyzeEndpointPartialFailure(t *testing.T) {
	router := newTestRouter()
	badPost := samplePost("bad")
	badPost.Platform = "WEIBO" // 不支持的平台

	body := models.AnalyzeRequest{
		Posts: []models.Post{samplePost("ok"), badPost},
	}

	recorder := doJSONRequest(t, router, http.MethodPost, "/api/travel/analyze", body)

	// 单条失败不影响整体请求
	assert.Equal(t, http.StatusOK, recorder.Code)
	code, data := decodeEnvelope(t, recorder)
	assert.Equal(t, models.CodeSuccess, code)

	summary := data["summary"].(map[string]interface{})
	assert.EqualValues(t, 1, summary["successfulAnalyses"])
	assert.EqualValues(t, 1, summary["failedAnalyses"])

	results := data["results"].([]interface{})
	require.Len(t, results, 2)
	failed := results[1].(map[string]interface{})
	assert.Nil(t, failed["analysis"])
	assert.NotEmpty(t, failed["error"])
}

func TestAnalyzeEndpointValidationError(t *testing.T) {
	router := newTestRouter()
	body := models.AnalyzeRequest{Posts: []models.Post{}}

	recorder := doJSONRequest(t, router, http.MethodPost, "/api/travel/analyze", body)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	code, _ := decodeEnvelope(t, recorder)
	assert.Equal(t, models.CodeInvalidParams, code)
}

func TestAnalyzeEndpointMalformedJSON(t *testing.T) {
	router := newTestRouter()
	req := httptest.NewRequest(http.MethodPost, "/api/travel/analyze", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestPlanEndpointSuccess(t *testing.T) {
	router := newTestRouter()
	body := models.PlanRequest{
		ExtractedContent: []models.Post{samplePost("p1")},
		UserRequirements: sampleRequirements(),
	}

	recorder := doJSONRequest(t, router, http.MethodPost, "/api/travel/plan", body)

	assert.Equal(t, http.StatusOK, recorder.Code)
	code, data := decodeEnvelope(t, recorder)
	assert.Equal(t, models.CodeSuccess, code)

	plan := data["travelPlan"].(map[string]interface{})
	assert.EqualValues(t, 2, plan["totalDays"])
	days := plan["days"].([]interface{})
	assert.Len(t, days, 2)
	assert.NotEmpty(t, plan["id"])

	metadata := data["metadata"].(map[string]interface{})
	assert.Equal(t, "simple", metadata["planComplexity"])
}

func TestPlanEndpointNoFeasibleItinerary(t *testing.T) {
	router := newTestRouter()
	// 帖子不含任何地点和活动，无法生成行程
	emptyPost := models.Post{
		ContentID:   "empty",
		Platform:    models.PlatformBilibili,
		Title:       "纯闲聊",
		Description: "没有任何旅行信息",
	}
	body := models.PlanRequest{
		ExtractedContent: []models.Post{emptyPost},
		UserRequirements: sampleRequirements(),
	}

	recorder := doJSONRequest(t, router, http.MethodPost, "/api/travel/plan", body)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	code, data := decodeEnvelope(t, recorder)
	assert.Equal(t, models.CodeNoFeasibleItinerary, code)
	// 回显需求便于调用方调整后重试
	assert.Contains(t, data, "requirements")
}

func TestRecommendEndpointSuccess(t *testing.T) {
	router := newTestRouter()
	body := models.RecommendRequest{
		ExtractedContent: []models.Post{samplePost("p1")},
		UserRequirements: sampleRequirements(),
	}

	recorder := doJSONRequest(t, router, http.MethodPost, "/api/travel/recommend", body)

	assert.Equal(t, http.StatusOK, recorder.Code)
	code, data := decodeEnvelope(t, recorder)
	assert.Equal(t, models.CodeSuccess, code)

	recommendations := data["recommendations"].([]interface{})
	assert.NotEmpty(t, recommendations)
	assert.LessOrEqual(t, len(recommendations), 10)
	assert.Contains(t, data, "metadata")
	assert.Contains(t, data, "summary")
}

func TestRecommendEndpointInsufficientCandidates(t *testing.T) {
	router := newTestRouter()
	emptyPost := models.Post{
		ContentID:   "empty",
		Platform:    models.PlatformDouyin,
		Title:       "纯闲聊",
		Description: "没有任何旅行信息",
	}
	body := models.RecommendRequest{
		ExtractedContent: []models.Post{emptyPost},
		UserRequirements: sampleRequirements(),
	}

	recorder := doJSONRequest(t, router, http.MethodPost, "/api/travel/recommend", body)

	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	code, data := decodeEnvelope(t, recorder)
	assert.Equal(t, models.CodeInsufficientCandidates, code)
	assert.EqualValues(t, 1, data["totalContent"])
}

// doExpiredRequest 以已过期的截止时间发起请求，模拟处理超时
func doExpiredRequest(t *testing.T, router http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	ctx, cancel := context.WithDeadline(req.Context(), time.Now().Add(-time.Second))
	defer cancel()
	req = req.WithContext(ctx)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestPlanEndpointTimeout(t *testing.T) {
	router := newTestRouter()
	body := models.PlanRequest{
		ExtractedContent: []models.Post{samplePost("p1")},
		UserRequirements: sampleRequirements(),
	}

	recorder := doExpiredRequest(t, router, "/api/travel/plan", body)

	// 超时应报告为504，而不是被误报为无法生成行程
	assert.Equal(t, http.StatusGatewayTimeout, recorder.Code)
	code, _ := decodeEnvelope(t, recorder)
	assert.Equal(t, models.CodeTimeout, code)
}

func TestRecommendEndpointTimeout(t *testing.T) {
	router := newTestRouter()
	body := models.RecommendRequest{
		ExtractedContent: []models.Post{samplePost("p1")},
		UserRequirements: sampleRequirements(),
	}

	recorder := doExpiredRequest(t, router, "/api/travel/recommend", body)

	// 超时应报告为504，而不是被误报为候选池为空
	assert.Equal(t, http.StatusGatewayTimeout, recorder.Code)
	code, _ := decodeEnvelope(t, recorder)
	assert.Equal(t, models.CodeTimeout, code)
}

func TestPlanEndpointValidationError(t *testing.T) {
	router := newTestRouter()
	body := models.PlanRequest{
		ExtractedContent: []models.Post{samplePost("p1")},
		UserRequirements: models.UserRequirements{
			Duration:    40, // 超过上限
			Travelers:   2,
			TravelStyle: []string{"relaxation"},
		},
	}

	recorder := doJSONRequest(t, router, http.MethodPost, "/api/travel/plan", body)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	code, _ := decodeEnvelope(t, recorder)
	assert.Equal(t, models.CodeInvalidParams, code)
}
