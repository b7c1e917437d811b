package providers

import (
	"os"
	"path/filepath"
	"scorekeeper/internal/structures"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *structures.Config {
	return &structures.Config{
		WebServer: structures.Server{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   "/tmp/logs",
		},
		Store: structures.StoreConfig{
			Driver:    "badger",
			Namespace: "scoretrackerapp",
			DataDir:   "/tmp/store",
		},
		Backup: structures.BackupConfig{
			Dir:        "/tmp/backups",
			MaxBackups: 10,
		},
		Guest: structures.GuestConfig{
			ValidFor: 7 * 24 * time.Hour,
		},
	}
}

func TestConfigValidator_ValidConfig(t *testing.T) {
	v := NewCnfValidator(validConfig())
	assert.NoError(t, v.Validate())
}

func TestConfigValidator_EmptyHost(t *testing.T) {
	c := validConfig()
	c.WebServer.Host = ""
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_ZeroPort(t *testing.T) {
	c := validConfig()
	c.WebServer.Port = 0
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_InvalidLogLevel(t *testing.T) {
	c := validConfig()
	c.Logger.Level = "verbose"
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_UnknownDriver(t *testing.T) {
	c := validConfig()
	c.Store.Driver = "mongo"
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_FirestoreNeedsProject(t *testing.T) {
	c := validConfig()
	c.Store.Driver = "firestore"
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())

	c.Store.ProjectID = "scoretrackerapp-16051"
	assert.NoError(t, v.Validate())
}

func TestConfigValidator_ZeroMaxBackups(t *testing.T) {
	c := validConfig()
	c.Backup.MaxBackups = 0
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigValidator_NegativeInterval(t *testing.T) {
	c := validConfig()
	c.Backup.Interval = -time.Second
	v := NewCnfValidator(c)
	assert.Error(t, v.Validate())
}

func TestConfigProvider_DefaultsAndFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
webServer:
  port: 8081
logger:
  dir: ` + dir + `
backup:
  dir: ` + filepath.Join(dir, "backups") + `
  interval: 1h
store:
  dataDir: ` + filepath.Join(dir, "store") + `
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	conf, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path, DebugMode: true})
	require.NoError(t, err)

	assert.Equal(t, AppName, conf.AppName)
	assert.True(t, conf.Debug)
	assert.Equal(t, 8081, conf.WebServer.Port)
	assert.Equal(t, "0.0.0.0", conf.WebServer.Host)
	assert.Equal(t, 10, conf.Backup.MaxBackups)
	assert.Equal(t, time.Hour, conf.Backup.Interval)
	assert.Equal(t, 7*24*time.Hour, conf.Guest.ValidFor)
	assert.Equal(t, "badger", conf.Store.Driver)
}

func TestConfigProvider_DotEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
logger:
  dir: ` + dir + `
store:
  dataDir: ` + filepath.Join(dir, "store") + `
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SCORES_MAX_BACKUPS=3\n"), 0600))
	t.Cleanup(func() { os.Unsetenv("SCORES_MAX_BACKUPS") })

	conf, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path})
	require.NoError(t, err)
	assert.Equal(t, 3, conf.Backup.MaxBackups)
}

func TestConfigProvider_MissingFile(t *testing.T) {
	_, err := NewConfigProvider(&structures.CliFlags{ConfigPath: filepath.Join(t.TempDir(), "absent.yaml")})
	assert.Error(t, err)
}
