package setup

import (
	"context"
	"fmt"

	"github.com/kelseyhightower/envconfig"

	"github.com/go-sod/avl/internal/database"
	"github.com/go-sod/avl/internal/dataset"
	"github.com/go-sod/avl/internal/footprint"
	"github.com/go-sod/avl/internal/logging"
	"github.com/go-sod/avl/internal/profile"
	"github.com/go-sod/avl/internal/report"
	"github.com/go-sod/avl/internal/srvenv"
	"github.com/go-sod/avl/internal/stress"
)

type LoggerConfigProvider interface {
	LoggerConfig() (level string, development bool)
}

type DatasetConfigProvider interface {
	DatasetConfig() *dataset.Config
}

type ProfileConfigProvider interface {
	ProfileConfig() *profile.Config
}

type FootprintConfigProvider interface {
	FootprintConfig() *footprint.Config
}

type ReportConfigProvider interface {
	ReportConfig() *report.Config
}

type StressConfigProvider interface {
	StressConfig() *stress.Config
}

type DatabaseConfigProvider interface {
	DatabaseConfig() *database.Config
}

// Setup loads config from the environment, applies overrides in order and
// builds the environment for the providers config implements.
func Setup(ctx context.Context, config interface{}, overrides ...func() error) (*srvenv.SrvEnv, error) {
	var serverEnvOpts []srvenv.Option
	if err := envconfig.Process("", config); err != nil {
		return nil, fmt.Errorf("error loading environment variables: %w", err)
	}
	for _, override := range overrides {
		if err := override(); err != nil {
			return nil, fmt.Errorf("error applying overrides: %w", err)
		}
	}

	if loggerConfigProvider, ok := config.(LoggerConfigProvider); ok {
		level, development := loggerConfigProvider.LoggerConfig()
		logger := logging.NewLogger(level, development)
		ctx = logging.WithLogger(ctx, logger)
		serverEnvOpts = append(serverEnvOpts, srvenv.WithLogger(logger))
	}
	logger := logging.FromContext(ctx)

	if dbConfigProvider, ok := config.(DatabaseConfigProvider); ok && dbConfigProvider.DatabaseConfig().Enabled {
		logger.Debug("Configuring db")
		db, err := database.NewFromEnv(ctx, dbConfigProvider.DatabaseConfig())
		if err != nil {
			return nil, fmt.Errorf("unable to open database: %w", err)
		}
		serverEnvOpts = append(serverEnvOpts, srvenv.WithDatabase(db))
	}

	if datasetConfigProvider, ok := config.(DatasetConfigProvider); ok {
		logger.Debug("Configuring dataset")
		serverEnvOpts = append(serverEnvOpts, srvenv.WithDataset(ProvideDatasetFor(datasetConfigProvider)))
	}

	if profileConfigProvider, ok := config.(ProfileConfigProvider); ok {
		logger.Debug("Configuring profiler")
		serverEnvOpts = append(serverEnvOpts, srvenv.WithProfiler(ProvideProfilerFor(profileConfigProvider)))
	}

	if footprintConfigProvider, ok := config.(FootprintConfigProvider); ok {
		logger.Debug("Configuring footprint meter")
		serverEnvOpts = append(serverEnvOpts, srvenv.WithFootprint(ProvideFootprintFor(footprintConfigProvider)))
	}

	if stressConfigProvider, ok := config.(StressConfigProvider); ok {
		logger.Debug("Configuring stress checker")
		serverEnvOpts = append(serverEnvOpts, srvenv.WithStress(ProvideStressFor(stressConfigProvider)))
	}

	if reportConfigProvider, ok := config.(ReportConfigProvider); ok {
		serverEnvOpts = append(serverEnvOpts, srvenv.WithReportFormat(reportConfigProvider.ReportConfig().Format))
	}

	return srvenv.New(serverEnvOpts...), nil
}

func ProvideDatasetFor(provider DatasetConfigProvider) dataset.ProvideFn {
	cfg := provider.DatasetConfig()
	return func() (*dataset.Generator, error) {
		return dataset.FromConfig(cfg)
	}
}

func ProvideProfilerFor(provider ProfileConfigProvider) profile.ProvideFn {
	cfg := provider.ProfileConfig()
	return func(gen *dataset.Generator, progress profile.ProgressFn) (*profile.Runner, error) {
		return profile.New(
			gen,
			profile.WithTrials(cfg.Trials),
			profile.WithParallelism(cfg.Parallelism),
			profile.WithMeasureFind(cfg.MeasureFind),
			profile.WithProgress(progress),
		)
	}
}

func ProvideFootprintFor(provider FootprintConfigProvider) footprint.ProvideFn {
	cfg := provider.FootprintConfig()
	return func() (*footprint.Meter, error) {
		return footprint.New(cfg.Keys)
	}
}

func ProvideStressFor(provider StressConfigProvider) stress.ProvideFn {
	cfg := provider.StressConfig()
	return func(gen *dataset.Generator, progress stress.ProgressFn) (*stress.Checker, error) {
		return stress.New(
			gen,
			stress.WithRounds(cfg.Rounds),
			stress.WithValidateEvery(cfg.ValidateEvery),
			stress.WithParallelism(cfg.Parallelism),
			stress.WithProgress(progress),
		)
	}
}
