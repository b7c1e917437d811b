package structures

import "time"

type Server struct {
	Host string `mapstructure:"host" yaml:"host" validate:"required"`
	Port int    `mapstructure:"port" yaml:"port" validate:"required|uint|min:1"`
}

type LoggerConfig struct {
	Level string `mapstructure:"level" yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `mapstructure:"mode" yaml:"mode" validate:"required|uint"`
	Dir   string `mapstructure:"dir" yaml:"dir" validate:"required|unixPath"`
}

// StoreConfig selects the document store. Namespace plays the role of the
// application id under which all collections live.
type StoreConfig struct {
	Driver          string `mapstructure:"driver" yaml:"driver" validate:"required|in:badger,firestore"`
	ProjectID       string `mapstructure:"projectId" yaml:"projectId"`
	Namespace       string `mapstructure:"namespace" yaml:"namespace" validate:"required"`
	CredentialsFile string `mapstructure:"credentialsFile" yaml:"credentialsFile"`
	DataDir         string `mapstructure:"dataDir" yaml:"dataDir"`
}

type BackupConfig struct {
	Dir        string        `mapstructure:"dir" yaml:"dir" validate:"required|unixPath"`
	MaxBackups int           `mapstructure:"maxBackups" yaml:"maxBackups" validate:"required|int|min:1"`
	Interval   time.Duration `mapstructure:"interval" yaml:"interval"`
}

type GuestConfig struct {
	ValidFor  time.Duration `mapstructure:"validFor" yaml:"validFor" validate:"required"`
	PublicURL string        `mapstructure:"publicUrl" yaml:"publicUrl"`
}

type FrontendConfig struct {
	Dir string `mapstructure:"dir" yaml:"dir"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
}

type CorsConfig struct {
	AllowOrigins []string `mapstructure:"allowOrigins" yaml:"allowOrigins"`
}

type Config struct {
	AppName   string
	Debug     bool
	Path      string
	WebServer Server         `mapstructure:"webServer" yaml:"webServer"`
	Logger    LoggerConfig   `mapstructure:"logger" yaml:"logger"`
	Store     StoreConfig    `mapstructure:"store" yaml:"store"`
	Backup    BackupConfig   `mapstructure:"backup" yaml:"backup"`
	Guest     GuestConfig    `mapstructure:"guest" yaml:"guest"`
	Frontend  FrontendConfig `mapstructure:"frontend" yaml:"frontend"`
	Metrics   MetricsConfig  `mapstructure:"metrics" yaml:"metrics"`
	Cors      CorsConfig     `mapstructure:"cors" yaml:"cors"`
}
