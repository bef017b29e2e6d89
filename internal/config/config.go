package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Postgres  DBConfig
	Redis     RedisConfig
	S3        S3Config
	Logger    Logger
	Worker    WorkerConfig
	PlaySync  PlaySyncConfig
	Transcode TranscodeConfig
}

type ServerConfig struct {
	AppVersion string
	Port       string
	Mode       string
}

// WorkerConfig drives the transcode polling loop. LockTTL must exceed the
// worst-case download+transcode+upload time so a live worker never loses its
// own lock mid-job; the defaults keep LockTTL (10m) above TranscodeTimeout (5m).
// Nothing enforces that ordering, so keep it in mind when tuning either value.
type WorkerConfig struct {
	WorkerCount      int
	PollInterval     time.Duration
	MaxRetries       int
	LockTTL          time.Duration
	TranscodeTimeout time.Duration
	MaxCPUUsage      float64
}

type PlaySyncConfig struct {
	Interval time.Duration
	LockTTL  time.Duration
}

type TranscodeConfig struct {
	AudioBitrate   string
	SegmentSeconds int
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	PgDriver string
}

type RedisConfig struct {
	RedisAddr     string
	RedisPassword string
	DB            int
	MinIdleConns  int
	PoolSize      int
	PoolTimeout   int
	UseTLS        bool
}

type S3Config struct {
	Endpoint      string
	Region        string
	AccessKey     string
	SecretKey     string
	RawBucket     string
	StreamBucket  string
	PublicBaseURL string
}

type Logger struct {
	Development       bool
	DisableCaller     bool
	DisableStacktrace bool
	Encoding          string
	Level             string
}

func LoadConfig(filename string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigFile(filename)
	v.AddConfigPath(".")
	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFound) {
			return nil, errors.New("config file not found")
		}
		return nil, err
	}
	return v, nil
}

func ParseConfig(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	return &c, nil
}
