package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/envcheck/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunReportStoreContract runs a suite of tests to verify that a ReportStore
// implementation adheres to the interface contract.
func RunReportStoreContract(t *testing.T, store ReportStore) {
	ctx := context.Background()
	workspace := "contract-test-" + time.Now().Format("20060102150405")

	newReport := func() *domain.Report {
		return &domain.Report{
			Workspace: workspace,
			CheckedAt: time.Now().UTC().Truncate(time.Second),
			EnvFiles:  []string{".env"},
			Variables: 3,
			Missing: []domain.Variable{
				{Name: "apiUrl", Type: domain.TypeString, Description: "API endpoint URL", Group: "API"},
			},
			Unused: []domain.EnvEntry{{Name: "OLD", Line: 2, File: ".env"}},
			Diagnostics: []domain.Diagnostic{{
				Severity: domain.SeverityError,
				Code:     "missing-env-var",
				Message:  "missing required environment variable: apiUrl",
			}},
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		report := newReport()
		require.NoError(t, store.Save(ctx, workspace, report), "Save should not return error")

		loaded, err := store.Load(ctx, workspace)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, workspace, loaded.Workspace)
		assert.True(t, report.CheckedAt.Equal(loaded.CheckedAt))
		assert.Equal(t, report.Missing, loaded.Missing)
		assert.Equal(t, report.Unused, loaded.Unused)
		assert.Equal(t, report.Diagnostics, loaded.Diagnostics)
		assert.False(t, loaded.OK())
	})

	t.Run("Load Returns Copy", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, workspace, newReport()))

		loaded, err := store.Load(ctx, workspace)
		require.NoError(t, err)
		loaded.Missing = nil

		again, err := store.Load(ctx, workspace)
		require.NoError(t, err)
		assert.Len(t, again.Missing, 1, "mutating a loaded report must not change the store")
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, workspace, newReport()))
		fixed := newReport()
		fixed.Missing = nil
		fixed.Diagnostics = nil
		require.NoError(t, store.Save(ctx, workspace, fixed))

		loaded, err := store.Load(ctx, workspace)
		require.NoError(t, err)
		assert.True(t, loaded.OK())
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+workspace)
		assert.ErrorIs(t, err, domain.ErrReportNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, workspace, newReport()))

		require.NoError(t, store.Delete(ctx, workspace), "Delete should not return error")

		_, err := store.Load(ctx, workspace)
		assert.ErrorIs(t, err, domain.ErrReportNotFound, "Load after Delete should return ErrReportNotFound")
	})

	t.Run("List", func(t *testing.T) {
		ws1 := workspace + "-1"
		ws2 := workspace + "-2"
		require.NoError(t, store.Save(ctx, ws1, newReport()))
		require.NoError(t, store.Save(ctx, ws2, newReport()))

		defer func() {
			_ = store.Delete(ctx, ws1)
			_ = store.Delete(ctx, ws2)
		}()

		workspaces, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, workspaces, ws1)
		assert.Contains(t, workspaces, ws2)
	})
}
