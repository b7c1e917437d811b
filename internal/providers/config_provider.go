package providers

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"scorekeeper/internal/structures"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const AppName = "ScoreKeeper"

func setConfigDefaults(v *viper.Viper) {
	v.SetDefault("webServer.host", "0.0.0.0")
	v.SetDefault("webServer.port", 3000)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", 0644)
	v.SetDefault("logger.dir", "./logs")
	v.SetDefault("store.driver", "badger")
	v.SetDefault("store.namespace", "scoretrackerapp")
	v.SetDefault("store.dataDir", "./data/store")
	v.SetDefault("backup.dir", "./data/backups")
	v.SetDefault("backup.maxBackups", 10)
	v.SetDefault("backup.interval", time.Duration(0))
	v.SetDefault("guest.validFor", 7*24*time.Hour)
	v.SetDefault("frontend.dir", "./build/web")
	v.SetDefault("cors.allowOrigins", []string{"*"})
}

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	// secrets may live in a .env next to the config; it is optional
	envFile := filepath.Join(filepath.Dir(flags.ConfigPath), ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("unable to load %s: %w", envFile, err)
	}

	v := viper.New()
	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")
	setConfigDefaults(v)

	v.BindEnv("logger.level", "SCORES_LOG_LEVEL")
	v.BindEnv("webServer.port", "SCORES_PORT")
	v.BindEnv("store.driver", "SCORES_STORE_DRIVER")
	v.BindEnv("store.projectId", "SCORES_PROJECT_ID", "GOOGLE_CLOUD_PROJECT")
	v.BindEnv("store.namespace", "SCORES_APP_ID")
	v.BindEnv("store.credentialsFile", "SCORES_CREDENTIALS_FILE", "GOOGLE_APPLICATION_CREDENTIALS")
	v.BindEnv("backup.dir", "SCORES_BACKUP_DIR")
	v.BindEnv("backup.maxBackups", "SCORES_MAX_BACKUPS")
	v.BindEnv("backup.interval", "SCORES_BACKUP_INTERVAL")
	v.BindEnv("guest.publicUrl", "SCORES_PUBLIC_URL")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = AppName
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
