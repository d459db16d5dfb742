package handler

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/repo-detective/internal/api"
	"github.com/naka-gawa/repo-detective/internal/domain"
	"github.com/naka-gawa/repo-detective/internal/usecase"
)

type mockAnalyzer struct {
	mock.Mock
}

func (m *mockAnalyzer) AnalyzeRepository(ctx context.Context, target domain.Target) (*domain.AnalysisResult, error) {
	args := m.Called(ctx, target)
	result, _ := args.Get(0).(*domain.AnalysisResult)
	return result, args.Error(1)
}

func sampleResult() *domain.AnalysisResult {
	return &domain.AnalysisResult{
		ID:            "octocat/Hello-World",
		Name:          "octocat/Hello-World",
		Description:   "My first repository",
		Category:      domain.DefaultCategory,
		Language:      "Go",
		Languages:     []string{"Go"},
		Stars:         80,
		Forks:         9,
		OpenIssues:    3,
		LastUpdated:   "2 days ago",
		Issues:        []string{},
		Improvements:  []string{domain.ImprovementLicense},
		Pricing:       domain.Pricing{Basic: 100, Premium: 200, Enterprise: 400},
		SecurityScore: 59,
		CodeQuality:   41,
		Documentation: 50,
	}
}

func newTestRouter(analyzer RepositoryAnalyzer, credentialed bool) http.Handler {
	logger := log.New(io.Discard, "", 0)
	return NewRouter(RouterConfig{
		Analyze:          NewAnalyzeHandler(analyzer, credentialed, logger),
		Admin:            NewAdminHandler(usecase.NewFixer(logger), logger),
		AdminCredentials: map[string]string{"admin": "s3cret"},
		Logger:           logger,
	})
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body api.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func TestAnalyze_Success(t *testing.T) {
	analyzer := new(mockAnalyzer)
	analyzer.On("AnalyzeRepository", mock.Anything, domain.Target{Owner: "octocat", Repo: "Hello-World"}).
		Return(sampleResult(), nil)

	rec := doRequest(t, newTestRouter(analyzer, true), http.MethodPost, "/api/analyze",
		`{"target": "https://github.com/octocat/Hello-World"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "octocat/Hello-World", body["name"])
	assert.Equal(t, "Go", body["language"])
	assert.EqualValues(t, 80, body["stars"])
	assert.EqualValues(t, 3, body["openIssues"])
	assert.Equal(t, "2 days ago", body["lastUpdated"])
	assert.Equal(t, map[string]interface{}{
		"securityScore": float64(59),
		"codeQuality":   float64(41),
		"documentation": float64(50),
	}, body["scores"])
	assert.Equal(t, []interface{}{domain.ImprovementLicense}, body["improvements"])
	analyzer.AssertExpectations(t)
}

func TestAnalyze_Errors(t *testing.T) {
	testCases := []struct {
		name         string
		method       string
		body         string
		credentialed bool
		analyzerErr  error
		expectedCode int
		expectedMsg  string
	}{
		{
			name:         "non-POST method",
			method:       http.MethodGet,
			credentialed: true,
			expectedCode: http.StatusMethodNotAllowed,
			expectedMsg:  "Method not allowed",
		},
		{
			name:         "invalid json",
			method:       http.MethodPost,
			body:         `{"target":`,
			credentialed: true,
			expectedCode: http.StatusBadRequest,
			expectedMsg:  "Invalid JSON body",
		},
		{
			name:         "missing target",
			method:       http.MethodPost,
			body:         `{}`,
			credentialed: true,
			expectedCode: http.StatusBadRequest,
			expectedMsg:  `Missing "target"`,
		},
		{
			name:         "invalid target",
			method:       http.MethodPost,
			body:         `{"target": "a@b"}`,
			credentialed: true,
			expectedCode: http.StatusBadRequest,
			expectedMsg:  "invalid target",
		},
		{
			name:         "username target",
			method:       http.MethodPost,
			body:         `{"target": "octocat"}`,
			credentialed: true,
			expectedCode: http.StatusBadRequest,
			expectedMsg:  "Use format owner/repo",
		},
		{
			name:         "missing credential",
			method:       http.MethodPost,
			body:         `{"target": "octocat/Hello-World"}`,
			credentialed: false,
			expectedCode: http.StatusInternalServerError,
			expectedMsg:  "GITHUB_TOKEN",
		},
		{
			name:         "repository not found",
			method:       http.MethodPost,
			body:         `{"target": "octocat/Hello-World"}`,
			credentialed: true,
			analyzerErr:  &domain.NotFoundError{Target: "octocat/Hello-World"},
			expectedCode: http.StatusInternalServerError,
			expectedMsg:  "octocat/Hello-World not found",
		},
		{
			name:         "upstream failure",
			method:       http.MethodPost,
			body:         `{"target": "octocat/Hello-World"}`,
			credentialed: true,
			analyzerErr:  &domain.UpstreamError{Target: "octocat/Hello-World", StatusCode: 502, Status: "502 Bad Gateway"},
			expectedCode: http.StatusInternalServerError,
			expectedMsg:  "502 Bad Gateway",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			analyzer := new(mockAnalyzer)
			if tc.analyzerErr != nil {
				analyzer.On("AnalyzeRepository", mock.Anything, mock.Anything).Return(nil, tc.analyzerErr)
			}

			rec := doRequest(t, newTestRouter(analyzer, tc.credentialed), tc.method, "/api/analyze", tc.body)

			assert.Equal(t, tc.expectedCode, rec.Code)
			assert.Contains(t, decodeError(t, rec), tc.expectedMsg)
			if tc.analyzerErr == nil {
				analyzer.AssertNotCalled(t, "AnalyzeRepository", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestHealth(t *testing.T) {
	rec := doRequest(t, newTestRouter(new(mockAnalyzer), false), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestAdminFixes(t *testing.T) {
	router := newTestRouter(new(mockAnalyzer), true)

	t.Run("requires credentials", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPost, "/api/admin/fixes", `{"repository": "o/r"}`)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("reports the fix as not implemented", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/admin/fixes",
			strings.NewReader(`{"repository": "o/r", "improvements": ["Add a LICENSE file"]}`))
		req.SetBasicAuth("admin", "s3cret")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var result usecase.FixResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.False(t, result.Success)
		assert.Empty(t, result.AppliedFixes)
		assert.Equal(t, []string{usecase.ErrFixNotImplemented}, result.Errors)
	})

	t.Run("rejects invalid repository", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/admin/fixes", strings.NewReader(`{"repository": "nope"}`))
		req.SetBasicAuth("admin", "s3cret")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("not mounted without credentials", func(t *testing.T) {
		logger := log.New(io.Discard, "", 0)
		bare := NewRouter(RouterConfig{
			Analyze: NewAnalyzeHandler(new(mockAnalyzer), true, logger),
			Logger:  logger,
		})
		rec := doRequest(t, bare, http.MethodPost, "/api/admin/fixes", `{}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
