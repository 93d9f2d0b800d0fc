// Package config loads runtime settings from configs/config.yml, an optional
// .env file and HEATING_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DeviceSimulated     = "simulated"
	DeviceHomeAssistant = "home_assistant"

	LogFormatConsole = "console"
	LogFormatJSON    = "json"

	envPrefix = "HEATING"
)

type Config struct {
	Port          string              `mapstructure:"port" validate:"required"`
	DB            DBConfig            `mapstructure:"db"`
	Schedule      ScheduleConfig      `mapstructure:"schedule"`
	Reconciler    ReconcilerConfig    `mapstructure:"reconciler"`
	Boost         BoostConfig         `mapstructure:"boost"`
	Device        DeviceConfig        `mapstructure:"device"`
	HomeAssistant HomeAssistantConfig `mapstructure:"home_assistant"`
	MQTT          MQTTConfig          `mapstructure:"mqtt"`
	HTTP          HTTPConfig          `mapstructure:"http"`
	Log           LogConfig           `mapstructure:"log"`
}

type DBConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

type ScheduleConfig struct {
	Path     string `mapstructure:"path" validate:"required"`
	Timezone string `mapstructure:"timezone"`
}

type ReconcilerConfig struct {
	Tick time.Duration `mapstructure:"tick" validate:"gt=0"`
}

type BoostConfig struct {
	Duration time.Duration `mapstructure:"duration" validate:"gt=0"`
}

type DeviceConfig struct {
	Mode     string   `mapstructure:"mode" validate:"oneof=simulated home_assistant"`
	Entities []string `mapstructure:"entities" validate:"min=1,dive,required"`
}

type HomeAssistantConfig struct {
	URL     string        `mapstructure:"url"`
	Token   string        `mapstructure:"token"`
	Timeout time.Duration `mapstructure:"timeout" validate:"gte=0"`
}

// MQTTConfig leaves publishing disabled when Broker is empty.
type MQTTConfig struct {
	Broker   string `mapstructure:"broker"`
	ClientID string `mapstructure:"client_id"`
	Topic    string `mapstructure:"topic"`
}

type HTTPConfig struct {
	CORSOrigins []string `mapstructure:"cors_origins"`
	// RateLimit is requests per minute per client IP; 0 disables it.
	RateLimit int `mapstructure:"rate_limit" validate:"gte=0"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=console json"`
}

// Location resolves Schedule.Timezone; empty means the host's local zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Schedule.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Schedule.Timezone)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("db.path", "heating.db")
	v.SetDefault("schedule.path", "schedule.json")
	v.SetDefault("schedule.timezone", "")
	v.SetDefault("reconciler.tick", 15*time.Second)
	v.SetDefault("boost.duration", 30*time.Minute)
	v.SetDefault("device.mode", DeviceSimulated)
	v.SetDefault("device.entities", []string{"climate.simulated"})
	v.SetDefault("home_assistant.url", "")
	v.SetDefault("home_assistant.token", "")
	v.SetDefault("home_assistant.timeout", 10*time.Second)
	v.SetDefault("mqtt.broker", "")
	v.SetDefault("mqtt.client_id", "heating-scheduler")
	v.SetDefault("mqtt.topic", "heating/scheduler/actions")
	v.SetDefault("http.cors_origins", []string{"*"})
	v.SetDefault("http.rate_limit", 120)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", LogFormatConsole)
}

// Load reads config.yml from the first of paths that has one. A missing file is
// not an error; defaults and environment still apply.
func Load(paths ...string) (*Config, error) {
	// .env is optional.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.SetConfigName("config")
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Plain HA_URL / HA_TOKEN are accepted too.
	_ = v.BindEnv("home_assistant.url", envPrefix+"_HOME_ASSISTANT_URL", "HA_URL")
	_ = v.BindEnv("home_assistant.token", envPrefix+"_HOME_ASSISTANT_TOKEN", "HA_TOKEN")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints and cross-field requirements.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Device.Mode == DeviceHomeAssistant && (c.HomeAssistant.URL == "" || c.HomeAssistant.Token == "") {
		return errors.New("invalid config: home_assistant.url and home_assistant.token are required for device.mode home_assistant")
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid config: schedule.timezone: %w", err)
	}
	return nil
}
