package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the client settings. The zero value is not usable; use NewConfig.
type Config struct {
	AppName string
	Env     string // DEV (local; default), TEST, QA, PROD
	Debug   bool
	Build   string

	API struct {
		BaseURL string
		Timeout time.Duration
	}
	Storage struct {
		Path string // local sqlite file
	}
	PageSize     int
	RollbarToken string
}

func (conf *Config) IsProd() bool { return conf.Env == "PROD" }

// NewConfig loads the configuration from defaults, an optional .env.<env> file
// and environment variables.
func NewConfig() *Config {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("appName", "StudyGo")
	v.SetDefault("apiBaseUrl", "https://shxtj.chaim.top/api/v1")
	v.SetDefault("apiTimeout", 15*time.Second)
	v.SetDefault("storagePath", defaultStoragePath())
	v.SetDefault("pageSize", 20)
	v.SetDefault("rollbarToken", "")
	v.SetDefault("build", "dev")

	env := os.Getenv("ENV")
	if env == "" {
		env = "DEV"
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	conf := &Config{
		AppName:      v.GetString("appName"),
		Env:          env,
		Debug:        v.GetBool("debug"),
		Build:        v.GetString("build"),
		PageSize:     v.GetInt("pageSize"),
		RollbarToken: v.GetString("rollbarToken"),
	}
	conf.API.BaseURL = strings.TrimRight(v.GetString("apiBaseUrl"), "/")
	conf.API.Timeout = v.GetDuration("apiTimeout")
	conf.Storage.Path = v.GetString("storagePath")
	return conf
}

func defaultStoragePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "studygo", "studygo.db")
}
