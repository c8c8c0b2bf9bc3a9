package commands

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/felipelastra26/lumin-payroll-calculator/internal/adjustments"
	"github.com/felipelastra26/lumin-payroll-calculator/internal/auditlog"
	"github.com/felipelastra26/lumin-payroll-calculator/internal/config"
	"github.com/felipelastra26/lumin-payroll-calculator/internal/ingest"
	"github.com/felipelastra26/lumin-payroll-calculator/internal/roster"
	"github.com/felipelastra26/lumin-payroll-calculator/internal/source"
)

// project is a loaded payroll.yaml and the directory it lives in.
type project struct {
	root string
	cfg  *config.Config
	log  *slog.Logger
}

func openProject(opts *globalOptions) (*project, error) {
	path, err := filepath.Abs(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	root := filepath.Dir(path)
	if dir := cfg.Source.Directory; dir != "" && !filepath.IsAbs(dir) {
		cfg.Source.Directory = filepath.Join(root, dir)
	}
	log := opts.logger
	if log == nil {
		log = slog.Default()
	}
	return &project{root: root, cfg: cfg, log: log}, nil
}

func (p *project) source() source.Fetcher {
	src := p.cfg.Source
	if src.Directory != "" {
		return source.NewDirClient(src.Directory)
	}
	return source.NewBlobClient(src.AccountURL, src.Container, src.SASToken, &http.Client{})
}

func (p *project) ingestClient() *ingest.Client {
	src := p.cfg.Source
	return ingest.NewClient(p.source(), ingest.Options{
		Workers: src.FetchWorkers,
		Rate:    src.FetchRate,
		Timeout: src.FetchTimeout,
		Logger:  p.log,
	})
}

// roster fetches the active directory and applies the configured pay policies.
func (p *project) roster(ctx context.Context, client *ingest.Client) (*roster.Service, error) {
	employees, err := client.Employees(ctx)
	if err != nil {
		return nil, err
	}
	employees, err = roster.ApplyPolicies(employees, p.cfg)
	if err != nil {
		return nil, err
	}
	return roster.NewService(employees), nil
}

func (p *project) adjustmentsPath() string {
	return filepath.Join(p.root, adjustments.FileName)
}

// audit records entries in the project's audit log. Failures are logged only.
func (p *project) audit(entries ...auditlog.Entry) {
	if err := auditlog.Append(p.root, entries...); err != nil {
		p.log.Warn("writing audit log failed", "err", err)
	}
}
