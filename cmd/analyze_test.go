package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/repo-detective/internal/config"
	"github.com/naka-gawa/repo-detective/internal/domain"
)

func TestAnalyzeCmd_Server(t *testing.T) {
	for _, key := range []string{"GITHUB_TOKEN", "PORT", config.ConfigPathEnv} {
		t.Setenv(key, "")
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"name": "o/r", "language": "Go", "stars": 1,
			"scores": {"securityScore": 50, "codeQuality": 40, "documentation": 30},
			"improvements": ["Add a LICENSE file"]}`)
	}))
	defer server.Close()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"analyze", "o/r", "--server", server.URL})
	require.NoError(t, rootCmd.Execute())

	var results []domain.AnalysisResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "o/r", results[0].Name)
	assert.Equal(t, 30, results[0].Documentation)
	assert.Equal(t, []string{domain.ImprovementLicense}, results[0].Improvements)
}
