package envcheck_test

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/envcheck"
	"github.com/aretw0/envcheck/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatReport(t *testing.T) {
	report := &domain.Report{
		Workspace: "api",
		Variables: 2,
		Missing:   []domain.Variable{{Name: "apiUrl", Description: "API endpoint URL"}},
		Unused:    []domain.EnvEntry{{Name: "OLD", File: ".env", Line: 4}},
	}

	var p envcheck.Runner
	got := envcheck.FormatReport(report, p.Palette)
	assert.Equal(t, "api: 2 variables declared, checked no env file\n"+
		"✘ missing apiUrl (API endpoint URL)\n"+
		"! unused OLD (.env:5)\n"+
		"✘ 1 required variable(s) missing\n", got)
}

func TestRunner_JSON(t *testing.T) {
	root := newWorkspace(t, "apiUrl=https://x\n")
	eng, err := envcheck.New(root)
	require.NoError(t, err)

	var buf bytes.Buffer
	r := &envcheck.Runner{Output: &buf, JSON: true}
	report, err := r.Run(context.Background(), eng)
	require.NoError(t, err)
	assert.True(t, report.OK())

	var decoded domain.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, eng.Name, decoded.Workspace)
	assert.Equal(t, 3, decoded.Variables)
}

func TestRunner_Watch(t *testing.T) {
	root := newWorkspace(t, "debug=true\n")
	eng, err := envcheck.New(root)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var buf bytes.Buffer
	r := &envcheck.Runner{Output: &buf, Watch: true}

	done := make(chan *domain.Report, 1)
	go func() {
		report, _ := r.Run(ctx, eng)
		done <- report
	}()

	// Fix the env file once the watcher is up.
	time.Sleep(300 * time.Millisecond)
	writeFile(t, filepath.Join(root, ".env"), "debug=true\napiUrl=https://x\n")

	require.Eventually(t, func() bool {
		report, err := eng.LastReport(context.Background())
		return err == nil && report.OK()
	}, 2*time.Second, 50*time.Millisecond)

	cancel()
	report := <-done
	require.NotNil(t, report)
	assert.Contains(t, buf.String(), "watching for changes...")
}
