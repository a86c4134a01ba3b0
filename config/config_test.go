package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffhub/vacation-engine/config"
	"github.com/staffhub/vacation-engine/vacation"
)

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 24, cfg.Accrual.DaysPerYear)
	assert.Equal(t, 365, cfg.Accrual.DaysInYear)
	assert.True(t, cfg.Scheduler.Enabled)

	rate, err := cfg.LegacyRate()
	require.NoError(t, err)
	assert.Equal(t, "0.066", rate.String())

	interval, err := cfg.CheckInterval()
	require.NoError(t, err)
	assert.Equal(t, time.Hour, interval)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[server]
port = 9090

[accrual]
days_per_year = 28

[calendar]
holidays = ["02.06.2025"]
non_working = ["2025-06-04"]

[scheduler]
enabled = false
check_interval = "30m"
`), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 28, cfg.Accrual.DaysPerYear)
	assert.Equal(t, 365, cfg.Accrual.DaysInYear, "untouched keys keep their defaults")
	assert.False(t, cfg.Scheduler.Enabled)

	params := cfg.AccrualParams()
	assert.Equal(t, "28", params.DaysPerYear.String())

	cal, err := cfg.ExclusionCalendar()
	require.NoError(t, err)
	assert.True(t, cal.IsHoliday(vacation.MustDate("02.06.2025")))
	assert.True(t, cal.IsNonWorking(vacation.MustDate("04.06.2025")))

	interval, err := cfg.CheckInterval()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, interval)
}

func TestLoad_BadCalendarDate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[calendar]
holidays = ["notadate"]
`), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	_, err = cfg.ExclusionCalendar()
	require.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}
