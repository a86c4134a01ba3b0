// Package config loads the service configuration from a TOML file and
// builds the process-wide static objects derived from it (accrual
// parameters, the exclusion calendar). Replacing the calendar requires a
// restart: it is constructed once here and injected, never mutated.
package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/shopspring/decimal"
	"github.com/staffhub/vacation-engine/vacation"
)

type Config struct {
	Server struct {
		Port int `toml:"port"`
	} `toml:"server"`

	Database struct {
		// Path to the SQLite file; ":memory:" for an in-memory database.
		Path string `toml:"path"`
	} `toml:"database"`

	Accrual struct {
		DaysPerYear     int    `toml:"days_per_year"`
		DaysInYear      int    `toml:"days_in_year"`
		LegacyDailyRate string `toml:"legacy_daily_rate"`
	} `toml:"accrual"`

	Calendar struct {
		// Holidays never count as vacation days.
		Holidays []string `toml:"holidays"`
		// Extra non-working dates outside the Mon-Fri pattern
		// (bridge days moved next to holidays).
		NonWorking []string `toml:"non_working"`
	} `toml:"calendar"`

	Scheduler struct {
		Enabled       bool   `toml:"enabled"`
		CheckInterval string `toml:"check_interval"`
	} `toml:"scheduler"`

	Logging struct {
		File  string `toml:"file"`
		Level string `toml:"level"`
	} `toml:"logging"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.Server.Port = 8080
	cfg.Database.Path = "vacation.db"
	cfg.Accrual.DaysPerYear = 24
	cfg.Accrual.DaysInYear = 365
	cfg.Accrual.LegacyDailyRate = "0.066"
	cfg.Scheduler.Enabled = true
	cfg.Scheduler.CheckInterval = "1h"
	cfg.Logging.File = "logs/vacation-engine.log"
	cfg.Logging.Level = "info"
	return cfg
}

// Load reads the TOML file at path over the defaults. An empty path
// returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	return cfg, nil
}

// AccrualParams builds the formula-model parameters.
func (c *Config) AccrualParams() vacation.Params {
	return vacation.Params{
		DaysPerYear: decimal.NewFromInt(int64(c.Accrual.DaysPerYear)),
		DaysInYear:  decimal.NewFromInt(int64(c.Accrual.DaysInYear)),
	}
}

// LegacyRate parses the legacy daily increment.
func (c *Config) LegacyRate() (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(c.Accrual.LegacyDailyRate)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse legacy_daily_rate %q: %w", c.Accrual.LegacyDailyRate, err)
	}
	return rate, nil
}

// ExclusionCalendar parses the configured date lists into the injected
// read-only calendar.
func (c *Config) ExclusionCalendar() (*vacation.ExclusionCalendar, error) {
	holidays, err := parseDates(c.Calendar.Holidays)
	if err != nil {
		return nil, fmt.Errorf("calendar.holidays: %w", err)
	}
	nonWorking, err := parseDates(c.Calendar.NonWorking)
	if err != nil {
		return nil, fmt.Errorf("calendar.non_working: %w", err)
	}
	return vacation.NewExclusionCalendar(holidays, nonWorking), nil
}

// CheckInterval parses the scheduler cadence.
func (c *Config) CheckInterval() (time.Duration, error) {
	d, err := time.ParseDuration(c.Scheduler.CheckInterval)
	if err != nil {
		return 0, fmt.Errorf("parse scheduler.check_interval %q: %w", c.Scheduler.CheckInterval, err)
	}
	return d, nil
}

func parseDates(values []string) ([]vacation.Date, error) {
	dates := make([]vacation.Date, 0, len(values))
	for _, v := range values {
		d, err := vacation.ParseDate(v)
		if err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, nil
}
