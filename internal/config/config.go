package config

import (
	"github.com/go-sod/avl/internal/database"
	"github.com/go-sod/avl/internal/dataset"
	"github.com/go-sod/avl/internal/footprint"
	"github.com/go-sod/avl/internal/profile"
	"github.com/go-sod/avl/internal/report"
	"github.com/go-sod/avl/internal/setup"
	"github.com/go-sod/avl/internal/stress"
)

var (
	_ setup.LoggerConfigProvider    = (*Config)(nil)
	_ setup.DatasetConfigProvider   = (*Config)(nil)
	_ setup.ProfileConfigProvider   = (*Config)(nil)
	_ setup.FootprintConfigProvider = (*Config)(nil)
	_ setup.StressConfigProvider    = (*Config)(nil)
	_ setup.DatabaseConfigProvider  = (*Config)(nil)
	_ setup.ReportConfigProvider    = (*Config)(nil)
)

type Config struct {
	LogLevel       string `envconfig:"AVL_LOG_LEVEL" default:"info"`
	LogDevelopment bool   `envconfig:"AVL_LOG_DEVELOPMENT" default:"false"`
	Dataset        dataset.Config
	Profile        profile.Config
	Footprint      footprint.Config
	Stress         stress.Config
	Database       database.Config
	Report         report.Config
}

func (c *Config) LoggerConfig() (string, bool) {
	return c.LogLevel, c.LogDevelopment
}

func (c *Config) DatasetConfig() *dataset.Config {
	return &c.Dataset
}

func (c *Config) ProfileConfig() *profile.Config {
	return &c.Profile
}

func (c *Config) FootprintConfig() *footprint.Config {
	return &c.Footprint
}

func (c *Config) StressConfig() *stress.Config {
	return &c.Stress
}

func (c *Config) DatabaseConfig() *database.Config {
	return &c.Database
}

func (c *Config) ReportConfig() *report.Config {
	return &c.Report
}
