package ports

import (
	"context"

	"github.com/aretw0/envcheck/pkg/domain"
)

// ReportStore persists check reports, one per workspace.
type ReportStore interface {
	// Save stores the report as the latest one for workspace.
	Save(ctx context.Context, workspace string, report *domain.Report) error

	// Load returns the latest report for workspace.
	// Returns domain.ErrReportNotFound if none was saved.
	Load(ctx context.Context, workspace string) (*domain.Report, error)

	// Delete removes the report for workspace.
	Delete(ctx context.Context, workspace string) error

	// List returns the workspaces that have a report.
	List(ctx context.Context) ([]string, error)
}
