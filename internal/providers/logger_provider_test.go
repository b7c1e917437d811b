package providers

import (
	"os"
	"path/filepath"
	"scorekeeper/internal/structures"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLogTypeByRequestType_POST(t *testing.T) {
	assert.Equal(t, TypePost, GetLogTypeByRequestType("POST"))
}

func TestGetLogTypeByRequestType_GET(t *testing.T) {
	assert.Equal(t, TypeGet, GetLogTypeByRequestType("GET"))
}

func TestGetLogTypeByRequestType_Other(t *testing.T) {
	assert.Equal(t, TypeGet, GetLogTypeByRequestType("PUT"))
	assert.Equal(t, TypeGet, GetLogTypeByRequestType("DELETE"))
}

func TestTypeEnum_String(t *testing.T) {
	assert.Equal(t, "app", TypeApp.String())
	assert.Equal(t, "backup", TypeBackup.String())
	assert.Equal(t, "guest", TypeGuest.String())
	assert.Equal(t, "client", TypeClient.String())
}

func TestNewLogProvider_CreatesLogFiles(t *testing.T) {
	dir := t.TempDir()
	conf := &structures.Config{
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   dir,
		},
	}

	logger, err := NewLogProvider(conf)
	require.NoError(t, err)

	logger.Infof(TypeApp, "test message")
	logger.Debugf(TypeGet, "get message")
	logger.Warnf(TypePost, "post message")
	logger.Errorf(TypeClient, "client message %d", 42)
	logger.Close()

	for _, name := range []string{"app.log", "http.log", "client.log"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}

	client, err := os.ReadFile(filepath.Join(dir, "client.log"))
	require.NoError(t, err)
	assert.Contains(t, string(client), "client message 42")
	assert.Contains(t, string(client), `"type":"client"`)

	http, err := os.ReadFile(filepath.Join(dir, "http.log"))
	require.NoError(t, err)
	assert.Contains(t, string(http), "post message")
	assert.NotContains(t, string(http), "get message", "debug is below info level")
}

func TestNewLogProvider_CreatesMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "logs")
	conf := &structures.Config{
		Logger: structures.LoggerConfig{Level: "info", Dir: dir},
	}

	logger, err := NewLogProvider(conf)
	require.NoError(t, err)
	logger.Close()

	_, err = os.Stat(filepath.Join(dir, "app.log"))
	assert.NoError(t, err)
}

func TestNewLogProvider_InvalidDir(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))
	conf := &structures.Config{
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   filepath.Join(blocker, "logs"),
		},
	}

	_, err := NewLogProvider(conf)
	assert.Error(t, err)
}

func TestNewLogProvider_InvalidLevel(t *testing.T) {
	conf := &structures.Config{
		Logger: structures.LoggerConfig{
			Level: "verbose",
			Dir:   t.TempDir(),
		},
	}

	_, err := NewLogProvider(conf)
	assert.Error(t, err)
}
