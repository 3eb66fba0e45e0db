package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

const envPrefix = "JOBKEEPER_"

type Application struct {
	Port        int         `koanf:"port"`
	Database    Database    `koanf:"db"`
	Auth        Auth        `koanf:"auth"`
	Preferences Preferences `koanf:"preferences"`
	Metrics     Metrics     `koanf:"metrics"`
}

type Database struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Pass     string `koanf:"pass"`
	Name     string `koanf:"name"`
	Schema   string `koanf:"schema"`
	MaxConns int32  `koanf:"maxconns"`
	MinConns int32  `koanf:"minconns"`
}

type AuthMode string

const (
	// AuthModeJWT validates bearer tokens issued by the identity provider.
	AuthModeJWT AuthMode = "jwt"
	// AuthModeHeader trusts the X-User-Id header set by an authenticating proxy.
	AuthModeHeader AuthMode = "header"
)

type Auth struct {
	Mode      AuthMode `koanf:"mode"`
	JWTSecret string   `koanf:"jwtsecret"`
	Issuer    string   `koanf:"issuer"`
	Audience  string   `koanf:"audience"`
}

// Preferences holds the fallback display preferences used until an owner stores their own.
type Preferences struct {
	Currency  string        `koanf:"currency"`
	Locale    string        `koanf:"locale"`
	Precision int           `koanf:"precision"`
	CacheSize int           `koanf:"cachesize"`
	CacheTTL  time.Duration `koanf:"cachettl"`
}

type Metrics struct {
	Enabled bool `koanf:"enabled"`
}

func Defaults() Application {
	return Application{
		Port: 8181,
		Database: Database{
			Host:     "localhost",
			Port:     5432,
			User:     "jobkeeper",
			Pass:     "",
			Name:     "jobkeeper",
			Schema:   "public",
			MaxConns: 25,
			MinConns: 5,
		},
		Auth: Auth{
			Mode: AuthModeJWT,
		},
		Preferences: Preferences{
			Currency:  "GBP",
			Locale:    "en-GB",
			Precision: 2,
			CacheSize: 1000,
			CacheTTL:  10 * time.Minute,
		},
		Metrics: Metrics{
			Enabled: true,
		},
	}
}

func Load(path string) (Application, error) {
	if err := godotenv.Load(); err != nil {
		log.Debugf("no .env file loaded: %v", err)
	}

	var k = koanf.New(".")

	err := k.Load(structs.Provider(Defaults(), "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, envPrefix)), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	return app, nil
}
