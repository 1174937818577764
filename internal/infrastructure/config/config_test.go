package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "saleflow", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.False(t, cfg.Redis.Enabled)
	assert.False(t, cfg.Kafka.Enabled)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.Equal(t, "saleflow.events", cfg.Kafka.Topic)
	assert.False(t, cfg.Modules.IsInstalled(ModuleProcurementJIT))
}

func TestLoad_FileAndEnvironment(t *testing.T) {
	dir := chdirTemp(t)
	content := `
[app]
name = "sales"

[modules]
installed = ["procurement_jit"]

[kafka]
enabled = true
brokers = ["kafka:9092"]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o600))
	t.Setenv("ERP_APP_PORT", "9000")
	t.Setenv("ERP_DATABASE_HOST", "db.local")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sales", cfg.App.Name)
	assert.Equal(t, "9000", cfg.App.Port)
	assert.Equal(t, "db.local", cfg.Database.Host)
	assert.True(t, cfg.Modules.IsInstalled(ModuleProcurementJIT))
	assert.Equal(t, []string{"kafka:9092"}, cfg.Kafka.Brokers)
}

func TestLoad_Validation(t *testing.T) {
	t.Run("idle connections cannot exceed open connections", func(t *testing.T) {
		chdirTemp(t)
		t.Setenv("ERP_DATABASE_MAX_OPEN_CONNS", "10")
		t.Setenv("ERP_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("kafka needs brokers", func(t *testing.T) {
		chdirTemp(t)
		t.Setenv("ERP_KAFKA_ENABLED", "true")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "kafka.brokers")
	})

	t.Run("production needs a database password", func(t *testing.T) {
		chdirTemp(t)
		t.Setenv("ERP_APP_ENV", "production")
		t.Setenv("ERP_DATABASE_SSLMODE", "require")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.password")
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss word", DBName: "sales", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%20word@db:5432/sales?sslmode=disable", d.DSN())
}

func TestLoad_DurationsAndListsFromEnvironment(t *testing.T) {
	chdirTemp(t)
	t.Setenv("ERP_EVENT_POLL_INTERVAL", "250ms")
	t.Setenv("ERP_HTTP_MAX_BODY_BYTES", "2048")
	t.Setenv("ERP_MODULES_INSTALLED", "procurement_jit")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 250*time.Millisecond, cfg.Event.PollInterval)
	assert.Equal(t, int64(2048), cfg.HTTP.MaxBodyBytes)
	assert.True(t, cfg.Event.ProcessorEnabled)
	assert.Equal(t, time.Hour, cfg.Redis.ViewTTL)
	assert.True(t, cfg.Modules.IsInstalled(ModuleProcurementJIT))
}
