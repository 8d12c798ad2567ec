package config

import (
	"os"
	"path"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Public Public
}

type Public struct {
	Api       Api       `yaml:"api"`
	Routes    Routes    `yaml:"routes"`
	Cookies   Cookies   `yaml:"cookies"`
	Form      Form      `yaml:"form"`
	Cors      Cors      `yaml:"cors"`
	RateLimit RateLimit `yaml:"rate_limit"`
	Log       Log       `yaml:"log"`
	Port      string    `yaml:"port"`
}

type Api struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"` // zero means no client-side timeout
}

// Routes are the three destinations a submission can navigate to.
type Routes struct {
	Entry   string `yaml:"entry"`   // after sign up
	Admin   string `yaml:"admin"`   // after login with isAdmin
	Default string `yaml:"default"` // after any other login
}

type Cookies struct {
	Secure      bool          `yaml:"secure"`
	TokenMaxAge time.Duration `yaml:"token_max_age"` // used when the token carries no exp claim
}

type Form struct {
	// ClearOnFailure resets typed values after a failed submission too.
	ClearOnFailure *bool `yaml:"clear_on_failure"`
}

type Cors struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// RateLimit bounds auth submissions per client IP. PerMinute <= 0 disables it.
type RateLimit struct {
	PerMinute float64 `yaml:"per_minute"`
	Burst     int     `yaml:"burst"`
}

type Log struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// ShouldClearOnFailure defaults to true when the key is absent.
func (f Form) ShouldClearOnFailure() bool {
	return f.ClearOnFailure == nil || *f.ClearOnFailure
}

func Default() Public {
	return Public{
		Api:       Api{BaseURL: "http://localhost:5000", Timeout: 10 * time.Second},
		Routes:    Routes{Entry: "/", Admin: "/admin", Default: "/book"},
		Cookies:   Cookies{TokenMaxAge: 24 * time.Hour},
		RateLimit: RateLimit{PerMinute: 20, Burst: 5},
		Log:       Log{Level: "info"},
		Port:      "8081",
	}
}

func mustLoadPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}

	err = yaml.Unmarshal(configFile, output)
	if err != nil {
		panic("can't unmarshal config file: " + err.Error())
	}
}

// MustLoad reads public.yaml from configFolder over the defaults and applies
// environment overrides. It panics on unreadable or invalid config.
func MustLoad(configFolder string) *Config {
	public := Default()
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)
	applyEnv(&public)
	mustValidate(public)
	return &Config{Public: public}
}

// FromEnv builds a config without a file, for the terminal client.
func FromEnv() *Config {
	public := Default()
	applyEnv(&public)
	mustValidate(public)
	return &Config{Public: public}
}

func applyEnv(p *Public) {
	if v := os.Getenv("JOURNEYMATE_API_URL"); v != "" {
		p.Api.BaseURL = v
	}
	if v := os.Getenv("PORT"); v != "" {
		p.Port = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		p.Log.Level = v
	}
	if v := os.Getenv("SECURE_COOKIES"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			p.Cookies.Secure = b
		}
	}
}

func mustValidate(p Public) {
	if p.Api.BaseURL == "" {
		panic("api.base_url is required")
	}
	if p.Routes.Entry == "" || p.Routes.Admin == "" || p.Routes.Default == "" {
		panic("routes.entry, routes.admin and routes.default are required")
	}
}
