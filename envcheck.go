package envcheck

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/aretw0/envcheck/internal/diagnostics"
	"github.com/aretw0/envcheck/internal/envfile"
	"github.com/aretw0/envcheck/internal/logging"
	"github.com/aretw0/envcheck/internal/presentation/dotenv"
	"github.com/aretw0/envcheck/internal/presentation/graph"
	"github.com/aretw0/envcheck/internal/presentation/hover"
	"github.com/aretw0/envcheck/internal/sources"
	"github.com/aretw0/envcheck/internal/validator"
	"github.com/aretw0/envcheck/internal/workspace"
	"github.com/aretw0/envcheck/pkg/adapters/memory"
	"github.com/aretw0/envcheck/pkg/domain"
	"github.com/aretw0/envcheck/pkg/observability"
	"github.com/aretw0/envcheck/pkg/ports"
	"github.com/aretw0/envcheck/pkg/schema"
)

// lockTTL bounds how long a crashed replica can hold a workspace lock.
const lockTTL = 30 * time.Second

// Engine is the high-level entry point of the library.
// It owns the declarations of one workspace and checks env files against them.
type Engine struct {
	root string
	// Name is the directory name, shown in reports.
	Name      string
	key       string
	override  *domain.WorkspaceConfig
	goSchemas []*schema.Schema
	store     ports.ReportStore
	locker    ports.DistributedLocker
	metrics   *observability.Metrics
	logger    *slog.Logger

	mu       sync.RWMutex
	config   domain.WorkspaceConfig
	schemas  []domain.ParsedSchema
	vars     []domain.Variable
	envFiles []string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithConfig replaces the workspace .envchecker.json.
func WithConfig(cfg domain.WorkspaceConfig) Option {
	return func(e *Engine) {
		e.override = &cfg
	}
}

// WithSchema adds variables declared in Go. They are merged after the
// file-based schemas.
func WithSchema(s *schema.Schema) Option {
	return func(e *Engine) {
		e.goSchemas = append(e.goSchemas, s)
	}
}

// WithReportStore sets where reports are kept (default: in memory).
func WithReportStore(store ports.ReportStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithLocker serializes checks of the workspace across replicas.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(e *Engine) {
		e.locker = locker
	}
}

// WithMetrics records every check on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// New creates an engine for the workspace at root and loads its schemas.
func New(root string, opts ...Option) (*Engine, error) {
	if root == "" {
		root = "."
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to open workspace: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("workspace %s is not a directory", absRoot)
	}

	eng := &Engine{
		root: absRoot,
		Name: filepath.Base(absRoot),
		key:  WorkspaceKey(absRoot),
	}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	eng.logger = eng.logger.With("workspace", eng.Name)
	if eng.store == nil {
		eng.store = memory.NewStore()
	}

	if err := eng.Reload(context.Background()); err != nil {
		return nil, err
	}
	return eng, nil
}

// WorkspaceKey names the reports and the lock of the workspace at the
// absolute path root: its directory name plus a short hash of the path,
// so same-named directories sharing a store stay apart.
func WorkspaceKey(root string) string {
	sum := sha256.Sum256([]byte(filepath.Clean(root)))
	return filepath.Base(root) + "-" + hex.EncodeToString(sum[:4])
}

// Key returns the store and lock key of the workspace.
func (e *Engine) Key() string {
	return e.key
}

// Root returns the absolute workspace directory.
func (e *Engine) Root() string {
	return e.root
}

// Reload re-reads the configuration, rediscovers schema files and env files,
// and re-parses every declaration.
// Schema files that fail to parse are logged and skipped.
func (e *Engine) Reload(ctx context.Context) error {
	cfg := domain.DefaultWorkspaceConfig()
	if e.override != nil {
		cfg = *e.override
	} else {
		loaded, err := workspace.LoadConfig(e.root)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	srcs, err := workspace.DiscoverSchemas(e.root, cfg)
	if err != nil {
		return err
	}

	var parsed []domain.ParsedSchema
	for _, src := range srcs {
		if err := ctx.Err(); err != nil {
			return err
		}
		ps, err := sources.Parse(src)
		if err != nil {
			e.logger.Warn("skipping schema", "path", src.Path, "error", err)
			continue
		}
		if ps == nil {
			continue
		}
		e.logger.Debug("loaded schema", "path", src.Path, "kind", src.Kind, "variables", len(ps.Variables))
		parsed = append(parsed, *ps)
	}

	for i, s := range e.goSchemas {
		parsed = append(parsed, domain.ParsedSchema{
			Source:    domain.SchemaSource{Kind: domain.SourceGo, Path: fmt.Sprintf("go:%d", i)},
			Variables: s.Variables(),
		})
	}

	envFiles, err := workspace.EnvFilePaths(e.root, cfg)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.config = cfg
	e.schemas = parsed
	e.vars = mergeVariables(parsed, e.logger)
	e.envFiles = envFiles
	return nil
}

// mergeVariables flattens schemas; the first declaration of a name wins.
func mergeVariables(parsed []domain.ParsedSchema, logger *slog.Logger) []domain.Variable {
	var out []domain.Variable
	seen := make(map[string]string)
	for _, ps := range parsed {
		for _, v := range ps.Variables {
			if first, ok := seen[v.Name]; ok {
				logger.Debug("duplicate declaration ignored", "variable", v.Name, "path", ps.Source.Path, "first", first)
				continue
			}
			seen[v.Name] = ps.Source.Path
			out = append(out, v)
		}
	}
	return out
}

// Config returns the effective workspace configuration.
func (e *Engine) Config() domain.WorkspaceConfig {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.config
}

// Schemas returns the parsed schemas in discovery order.
func (e *Engine) Schemas() []domain.ParsedSchema {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return slices.Clone(e.schemas)
}

// EnvFiles returns the env files that Check reads, in priority order.
func (e *Engine) EnvFiles() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return slices.Clone(e.envFiles)
}

// Variables returns every declared variable.
func (e *Engine) Variables() []domain.Variable {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return slices.Clone(e.vars)
}

// Variable looks up a declared variable by name.
func (e *Engine) Variable(name string) (domain.Variable, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	for _, v := range e.vars {
		if v.Name == name {
			return v, nil
		}
	}
	return domain.Variable{}, fmt.Errorf("%w: %s", domain.ErrVariableNotFound, name)
}

// Groups returns the declared variables bucketed by display group.
func (e *Engine) Groups() []validator.VarGroup {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return validator.Group(e.vars, e.config.GroupName)
}

// Describe renders the hover markdown for a variable.
func (e *Engine) Describe(name string) (string, error) {
	v, err := e.Variable(name)
	if err != nil {
		return "", err
	}
	return hover.Markdown(v), nil
}

// Example renders a .env.example for every declared variable.
func (e *Engine) Example() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return dotenv.Example(e.vars, dotenv.Options{Rename: e.config.GroupName})
}

// Graph renders the declarations as a Mermaid diagram. A non-nil report
// highlights missing and present variables.
func (e *Engine) Graph(report *domain.Report) string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var overlay *graph.Overlay
	if report != nil {
		overlay = &graph.Overlay{}
		missing := make(map[string]bool, len(report.Missing))
		for _, v := range report.Missing {
			missing[v.Name] = true
			overlay.Missing = append(overlay.Missing, v.Name)
		}
		for _, v := range e.vars {
			if !missing[v.Name] {
				overlay.Present = append(overlay.Present, v.Name)
			}
		}
	}
	return graph.GenerateMermaid(e.vars, e.config.GroupName, overlay)
}

// Check reads the env files, compares them with the declarations, stores
// the report and returns it.
func (e *Engine) Check(ctx context.Context) (*domain.Report, error) {
	if e.locker != nil {
		unlock, err := e.locker.Lock(ctx, e.key, lockTTL)
		if err != nil {
			return nil, fmt.Errorf("failed to lock workspace: %w", err)
		}
		defer func() {
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				e.logger.Warn("failed to release workspace lock", "error", err)
			}
		}()
	}

	start := time.Now()

	e.mu.RLock()
	vars := slices.Clone(e.vars)
	envFiles := slices.Clone(e.envFiles)
	e.mu.RUnlock()

	lists := make([][]domain.EnvEntry, 0, len(envFiles))
	for _, path := range envFiles {
		entries, err := envfile.Parse(path, e.logger)
		if err != nil {
			return nil, err
		}
		lists = append(lists, entries)
	}
	entries := slices.Concat(lists...)

	res := validator.Validate(vars, entries)

	var primary string
	if len(envFiles) > 0 {
		primary = envFiles[0]
	}
	diags := diagnostics.FromResult(res, primary)
	for _, path := range envFiles[min(1, len(envFiles)):] {
		for _, u := range res.Unused {
			if u.File == path {
				diags = append(diags, diagnostics.UnusedVar(u))
			}
		}
	}
	for _, te := range validator.CheckTypes(vars, res.Entries) {
		diags = append(diags, diagnostics.InvalidValue(te.Entry, te.Expected))
	}

	report := &domain.Report{
		Workspace:   e.Name,
		CheckedAt:   time.Now().UTC(),
		EnvFiles:    relativePaths(e.root, envFiles),
		Variables:   len(vars),
		Missing:     res.Missing(),
		Unused:      redact(e.root, res.Unused),
		Diagnostics: diags,
	}
	for i := range report.Diagnostics {
		report.Diagnostics[i].File = relativePath(e.root, report.Diagnostics[i].File)
	}

	if err := e.store.Save(ctx, e.key, report); err != nil {
		return nil, fmt.Errorf("failed to save report: %w", err)
	}
	e.metrics.Observe(report, time.Since(start))

	e.logger.Info("check finished",
		"variables", report.Variables,
		"missing", len(report.Missing),
		"unused", len(report.Unused),
		"env_files", len(envFiles),
	)
	return report, nil
}

// LastReport returns the most recent stored report of the workspace.
func (e *Engine) LastReport(ctx context.Context) (*domain.Report, error) {
	return e.store.Load(ctx, e.key)
}

// AppendMissing adds the missing required variables of the last check to
// the primary env file, creating .env when the workspace has none.
// It returns the file written and how many variables were added.
func (e *Engine) AppendMissing(ctx context.Context) (string, int, error) {
	report, err := e.LastReport(ctx)
	if errors.Is(err, domain.ErrReportNotFound) {
		report, err = e.Check(ctx)
	}
	if err != nil {
		return "", 0, err
	}

	e.mu.RLock()
	path := filepath.Join(e.root, ".env")
	if len(e.envFiles) > 0 {
		path = e.envFiles[0]
	}
	rename := e.config.GroupName
	e.mu.RUnlock()

	if len(report.Missing) == 0 {
		return path, 0, nil
	}

	content, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", 0, fmt.Errorf("failed to read %s: %w", path, err)
	}

	updated := dotenv.AppendTo(string(content), report.Missing, dotenv.Options{Rename: rename})
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		return "", 0, fmt.Errorf("failed to write %s: %w", path, err)
	}

	e.logger.Info("appended missing variables", "path", path, "count", len(report.Missing))
	return path, len(report.Missing), nil
}

// Watch signals whenever a schema file, an env file or the workspace
// config changes. Callers typically Reload and Check on each signal.
func (e *Engine) Watch(ctx context.Context) (<-chan struct{}, error) {
	e.mu.RLock()
	files := slices.Clone(e.envFiles)
	for _, s := range e.schemas {
		if s.Source.Kind != domain.SourceGo {
			files = append(files, s.Source.Path)
		}
	}
	e.mu.RUnlock()

	var w ports.Watchable = workspace.NewWatcher(e.root, files, e.logger)
	return w.Watch(ctx)
}

func relativePath(root, path string) string {
	if path == "" || !filepath.IsAbs(path) {
		return path
	}
	if rel, err := filepath.Rel(root, path); err == nil {
		return filepath.ToSlash(rel)
	}
	return path
}

func relativePaths(root string, paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		out = append(out, relativePath(root, p))
	}
	return out
}

// redact drops values so reports never carry secrets.
func redact(root string, entries []domain.EnvEntry) []domain.EnvEntry {
	out := make([]domain.EnvEntry, len(entries))
	for i, e := range entries {
		e.Value = ""
		e.File = relativePath(root, e.File)
		out[i] = e
	}
	return out
}
