package http

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/envcheck"
	"github.com/aretw0/envcheck/pkg/domain"
	"github.com/aretw0/envcheck/pkg/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const schemaYAML = `variables:
  api_url:
    type: string
    description: API endpoint URL
    required: true
    group: API
  debug:
    type: boolean
    default: false
`

func newTestHandler(t *testing.T, env string) (http.Handler, string) {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "env.schema.yml"), []byte(schemaYAML), 0o644))
	if env != "" {
		require.NoError(t, os.WriteFile(filepath.Join(root, ".env"), []byte(env), 0o644))
	}

	metrics := observability.NewMetrics()
	eng, err := envcheck.New(root, envcheck.WithMetrics(metrics))
	require.NoError(t, err)
	return NewHandler(eng, metrics.Handler(), nil), root
}

func do(t *testing.T, h http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestGetHealth(t *testing.T) {
	handler := NewHandler(nil, nil, nil)

	rr := do(t, handler, http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestGetInfo(t *testing.T) {
	handler := NewHandler(nil, nil, nil)

	rr := do(t, handler, http.MethodGet, "/info")
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "envcheck-http", resp["app"])
	assert.NotEmpty(t, resp["version"])
	assert.Equal(t, APIVersion, resp["api_version"])
}

func TestVariables(t *testing.T) {
	handler, _ := newTestHandler(t, "")

	rr := do(t, handler, http.MethodGet, "/variables")
	require.Equal(t, http.StatusOK, rr.Code)

	var vars []domain.Variable
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &vars))
	require.Len(t, vars, 2)
	assert.Equal(t, "API_URL", vars[0].Name)

	rr = do(t, handler, http.MethodGet, "/variables/DEBUG")
	require.Equal(t, http.StatusOK, rr.Code)
	var v variableResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v))
	assert.Equal(t, domain.TypeBoolean, v.Type)
	assert.False(t, v.Required)
	assert.Contains(t, v.Markdown, "**Default:** `false`")

	rr = do(t, handler, http.MethodGet, "/variables/NOPE")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "variable not found")
}

func TestCheckAndReport(t *testing.T) {
	handler, _ := newTestHandler(t, "DEBUG=true\n")

	rr := do(t, handler, http.MethodGet, "/report")
	assert.Equal(t, http.StatusNotFound, rr.Code, "no report before the first check")

	rr = do(t, handler, http.MethodPost, "/check")
	require.Equal(t, http.StatusOK, rr.Code)

	var report domain.Report
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &report))
	require.Len(t, report.Missing, 1)
	assert.Equal(t, "API_URL", report.Missing[0].Name)

	rr = do(t, handler, http.MethodGet, "/report")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = do(t, handler, http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `envcheck_checks_total{result="failed"} 1`)

	rr = do(t, handler, http.MethodGet, "/graph")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "class API_URL missing;")
}

func TestCheck_Reload(t *testing.T) {
	handler, root := newTestHandler(t, "")
	require.NoError(t, os.WriteFile(filepath.Join(root, ".env"), []byte("API_URL=x\n"), 0o644))

	rr := do(t, handler, http.MethodPost, "/check?reload=true")
	require.Equal(t, http.StatusOK, rr.Code)

	var report domain.Report
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &report))
	assert.True(t, report.OK())
}

func TestGetExample(t *testing.T) {
	handler, _ := newTestHandler(t, "")

	rr := do(t, handler, http.MethodGet, "/example")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.HasPrefix(rr.Body.String(), "# API\n# API endpoint URL\nAPI_URL=\n"))
	assert.Contains(t, rr.Body.String(), "#DEBUG=false")
}

func TestSubscribeEvents(t *testing.T) {
	handler, root := newTestHandler(t, "DEBUG=true\n")
	srv := httptest.NewServer(handler)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	scanner := bufio.NewScanner(resp.Body)
	require.True(t, scanner.Scan())
	assert.Equal(t, "event: ping", scanner.Text())

	require.NoError(t, os.WriteFile(filepath.Join(root, ".env"), []byte("API_URL=x\n"), 0o644))

	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: {") {
			continue
		}
		var report domain.Report
		require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &report))
		if report.OK() {
			return
		}
	}
	t.Fatal("expected a passing report event")
}
