package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/survey-pdf-service/internal/config"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// isolate runs the test from an empty directory so no stray .env is picked up.
func isolate(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	for _, k := range []string{"API_KEY", "PDF_ROOT", "DATA_FILE", "PORT", "APP_AUTH_API_KEY", "APP_DOCUMENTS_ROOT", "APP_RECORDS_PATH", "APP_APP_PORT"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestConfigLoad_FromYAMLAndEnv(t *testing.T) {
	isolate(t)
	yaml := `
app:
  name: survey-pdf-service
  port: 18080
  shutdown_timeout: 3s

logger:
  level: warn
  output_target: stderr

documents:
  root: /srv/pdf
  allowed_region: AndhraPradesh

records:
  path: /srv/excel/records.xlsx
  sheet: Sheet2

cors:
  allowed_origins: ["https://portal.example"]
  allow_credentials: false
`
	path := writeTempConfig(t, yaml)
	t.Setenv("APP_AUTH_API_KEY", "s3cret")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 18080, cfg.App.Port)
	assert.Equal(t, 3*time.Second, cfg.App.ShutdownTimeout)
	assert.Equal(t, "warn", cfg.Logger.Level)
	assert.Equal(t, "stderr", cfg.Logger.OutputTarget)
	assert.Equal(t, "s3cret", cfg.Auth.APIKey)
	assert.Equal(t, "/srv/pdf", cfg.Documents.Root)
	assert.Equal(t, "AndhraPradesh", cfg.Documents.AllowedRegion)
	assert.Equal(t, "/srv/excel/records.xlsx", cfg.Records.Path)
	assert.Equal(t, "Sheet2", cfg.Records.Sheet)
	assert.Equal(t, []string{"https://portal.example"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.CORS.AllowCredentials)
}

func TestConfigLoad_EnvOnlyWithLegacyNames(t *testing.T) {
	isolate(t)
	t.Setenv("API_KEY", "legacy-key")
	t.Setenv("PDF_ROOT", "/data/pdf")
	t.Setenv("DATA_FILE", "/data/records.csv")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "legacy-key", cfg.Auth.APIKey)
	assert.Equal(t, "/data/pdf", cfg.Documents.Root)
	assert.Equal(t, "/data/records.csv", cfg.Records.Path)
	assert.Equal(t, "andhrapradesh", cfg.Documents.AllowedRegion)
	assert.Equal(t, 8000, cfg.App.Port)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.True(t, cfg.CORS.AllowCredentials)
}

func TestConfigLoad_CanonicalEnvWinsOverLegacy(t *testing.T) {
	isolate(t)
	t.Setenv("APP_AUTH_API_KEY", "new")
	t.Setenv("API_KEY", "old")
	t.Setenv("APP_DOCUMENTS_ROOT", "/data/pdf")
	t.Setenv("APP_RECORDS_PATH", "/data/r.xlsx")

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "new", cfg.Auth.APIKey)
}

func TestConfigLoad_DotEnv(t *testing.T) {
	isolate(t)
	require.NoError(t, os.WriteFile(".env", []byte("API_KEY=from-dotenv\nPDF_ROOT=/env/pdf\nDATA_FILE=/env/r.xlsx\n"), 0o644))
	t.Cleanup(func() {
		for _, k := range []string{"API_KEY", "PDF_ROOT", "DATA_FILE"} {
			os.Unsetenv(k)
		}
	})

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.Auth.APIKey)
	assert.Equal(t, "/env/pdf", cfg.Documents.Root)
}

func TestConfigLoad_MissingRootFails(t *testing.T) {
	isolate(t)
	t.Setenv("DATA_FILE", "/data/r.xlsx")

	_, err := config.Load("")
	assert.Error(t, err)
}

func TestConfigLoad_MissingRecordsPathFails(t *testing.T) {
	isolate(t)
	t.Setenv("PDF_ROOT", "/data/pdf")

	_, err := config.Load("")
	assert.Error(t, err)
}

func TestConfigLoad_PostgresSourceNeedsNoPath(t *testing.T) {
	isolate(t)
	path := writeTempConfig(t, `
documents:
  root: /data/pdf
records:
  source: postgres
postgres:
  db: surveys
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Records.Source)
	assert.Equal(t, "survey_records", cfg.Records.Table)
}

func TestConfigLoad_PostgresSourceNeedsDB(t *testing.T) {
	isolate(t)
	path := writeTempConfig(t, `
documents:
  root: /data/pdf
records:
  source: postgres
`)
	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestConfigLoad_UnknownSourceFails(t *testing.T) {
	isolate(t)
	path := writeTempConfig(t, `
documents:
  root: /data/pdf
records:
  source: parquet
  path: /data/r.parquet
`)
	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestConfigLoad_MalformedYAMLFails(t *testing.T) {
	isolate(t)
	path := writeTempConfig(t, "app: [unterminated\n")

	_, err := config.Load(path)
	assert.Error(t, err)
}
