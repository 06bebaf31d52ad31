package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/abhisek/dqi/internal/surveyapi"
	"go.uber.org/zap"
)

// RowsFetcher returns the export rows of one employee.
type RowsFetcher interface {
	ExportRows(ctx context.Context, empID string) ([]surveyapi.Row, error)
}

// Exporter writes workbooks into a directory.
type Exporter struct {
	dir     string
	fetcher RowsFetcher
	log     *zap.Logger
	now     func() time.Time
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithLogger sets the logger used for skipped employees.
func WithLogger(l *zap.Logger) Option {
	return func(e *Exporter) {
		if l != nil {
			e.log = l
		}
	}
}

// WithClock overrides the clock used to date bulk exports.
func WithClock(now func() time.Time) Option {
	return func(e *Exporter) { e.now = now }
}

// NewExporter creates an Exporter writing into dir.
func NewExporter(dir string, fetcher RowsFetcher, opts ...Option) *Exporter {
	e := &Exporter{
		dir:     dir,
		fetcher: fetcher,
		log:     zap.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Dir returns the output directory.
func (e *Exporter) Dir() string { return e.dir }

// ExportOne fetches one employee's rows and writes them to
// survey_responses_{empID}.xlsx. It returns the written path.
func (e *Exporter) ExportOne(ctx context.Context, empID string) (string, error) {
	rows, err := e.fetcher.ExportRows(ctx, empID)
	if err != nil {
		return "", err
	}
	path := filepath.Join(e.dir, SingleFileName(empID))
	if err := e.save(path, []Sheet{{Name: SingleSheet, Rows: rows}}); err != nil {
		return "", err
	}
	e.log.Info("exported submission", zap.String("emp_id", empID), zap.String("path", path), zap.Int("rows", len(rows)))
	return path, nil
}

// BulkResult reports the outcome of ExportAll.
type BulkResult struct {
	Path     string
	Exported []string
	Skipped  []string
}

// ExportAll writes one sheet per employee into a single dated workbook.
// Employees whose rows cannot be fetched are logged and skipped; only a
// cancelled context or a write failure aborts the export.
func (e *Exporter) ExportAll(ctx context.Context, empIDs []string) (*BulkResult, error) {
	res := &BulkResult{}
	var sheets []Sheet
	used := make(map[string]bool)

	for _, id := range empIDs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rows, err := e.fetcher.ExportRows(ctx, id)
		if err != nil {
			e.log.Warn("skipping employee in bulk export", zap.String("emp_id", id), zap.Error(err))
			res.Skipped = append(res.Skipped, id)
			continue
		}
		name := SheetName(id)
		if used[name] {
			e.log.Warn("duplicate sheet name in bulk export", zap.String("emp_id", id), zap.String("sheet", name))
			res.Skipped = append(res.Skipped, id)
			continue
		}
		used[name] = true
		sheets = append(sheets, Sheet{Name: name, Rows: rows})
		res.Exported = append(res.Exported, id)
	}

	res.Path = filepath.Join(e.dir, BulkFileName(e.now()))
	if err := e.save(res.Path, sheets); err != nil {
		return nil, err
	}
	e.log.Info("bulk export written",
		zap.String("path", res.Path),
		zap.Int("exported", len(res.Exported)),
		zap.Int("skipped", len(res.Skipped)),
	)
	return res, nil
}

func (e *Exporter) save(path string, sheets []Sheet) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}
	f, err := Workbook(sheets)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
