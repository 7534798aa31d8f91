package srvenv

import (
	"context"

	"go.uber.org/zap"

	"github.com/go-sod/avl/internal/database"
	"github.com/go-sod/avl/internal/dataset"
	"github.com/go-sod/avl/internal/footprint"
	"github.com/go-sod/avl/internal/profile"
	"github.com/go-sod/avl/internal/report"
	reportDb "github.com/go-sod/avl/internal/report/database"
	"github.com/go-sod/avl/internal/stress"
)

type Option func(*SrvEnv) *SrvEnv

func New(opts ...Option) *SrvEnv {
	env := &SrvEnv{}
	for _, f := range opts {
		env = f(env)
	}

	return env
}

type SrvEnv struct {
	logger    *zap.SugaredLogger
	database  *database.DB
	format    report.Format
	dataset   dataset.ProvideFn
	profiler  profile.ProvideFn
	footprint footprint.ProvideFn
	stress    stress.ProvideFn
}

func (s *SrvEnv) Logger() *zap.SugaredLogger {
	return s.logger
}

func (s *SrvEnv) ProvideDataset() dataset.ProvideFn {
	return s.dataset
}

func (s *SrvEnv) ProvideProfiler() profile.ProvideFn {
	return s.profiler
}

func (s *SrvEnv) ProvideFootprint() footprint.ProvideFn {
	return s.footprint
}

// ReportFormat is the format runs are rendered in, text unless configured.
func (s *SrvEnv) ReportFormat() report.Format {
	if s.format == "" {
		return report.FormatText
	}
	return s.format
}

func (s *SrvEnv) ProvideStress() stress.ProvideFn {
	return s.stress
}

func (s *SrvEnv) Database() *database.DB {
	return s.database
}

// Runs returns the run report store, nil when the database is disabled.
func (s *SrvEnv) Runs() *reportDb.DB {
	if s.database == nil {
		return nil
	}
	return reportDb.New(s.database)
}

func WithLogger(logger *zap.SugaredLogger) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.logger = logger
		return s
	}
}

func WithDataset(fn dataset.ProvideFn) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.dataset = fn
		return s
	}
}

func WithProfiler(fn profile.ProvideFn) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.profiler = fn
		return s
	}
}

func WithFootprint(fn footprint.ProvideFn) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.footprint = fn
		return s
	}
}

func WithReportFormat(format report.Format) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.format = format
		return s
	}
}

func WithStress(fn stress.ProvideFn) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.stress = fn
		return s
	}
}

func WithDatabase(db *database.DB) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.database = db
		return s
	}
}

func (s *SrvEnv) Close(ctx context.Context) error {
	if s == nil {
		return nil
	}

	if s.logger != nil {
		_ = s.logger.Sync()
	}
	if s.database != nil {
		return s.database.Close(ctx)
	}
	return nil
}
