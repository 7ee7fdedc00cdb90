package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aretw0/envcheck/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestMetrics_Observe(t *testing.T) {
	m := NewMetrics()

	m.Observe(&domain.Report{
		Variables: 3,
		Missing: []domain.Variable{
			{Name: "apiUrl", Group: "API"},
			{Name: "TOKEN"},
		},
		Unused: []domain.EnvEntry{{Name: "OLD"}},
	}, 10*time.Millisecond)

	body := scrape(t, m)
	assert.Contains(t, body, `envcheck_checks_total{result="failed"} 1`)
	assert.Contains(t, body, `envcheck_missing_variables{group="API"} 1`)
	assert.Contains(t, body, `envcheck_missing_variables{group="Other"} 1`)
	assert.Contains(t, body, "envcheck_unused_variables 1")
	assert.Contains(t, body, "envcheck_declared_variables 3")
	assert.Contains(t, body, "envcheck_check_duration_seconds_count 1")
}

func TestMetrics_ResetBetweenChecks(t *testing.T) {
	m := NewMetrics()
	m.Observe(&domain.Report{Missing: []domain.Variable{{Name: "A", Group: "API"}}}, time.Millisecond)
	m.Observe(&domain.Report{Variables: 1}, time.Millisecond)

	body := scrape(t, m)
	assert.Contains(t, body, `envcheck_checks_total{result="ok"} 1`)
	assert.Contains(t, body, `envcheck_checks_total{result="failed"} 1`)
	assert.NotContains(t, body, `envcheck_missing_variables{group="API"}`)
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	m.Observe(&domain.Report{}, time.Second)
}
