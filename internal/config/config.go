package config

import "time"

// Config holds all application configuration.
type Config struct {
	Source  Source  `mapstructure:"source"`
	Crawler Crawler `mapstructure:"crawler"`
	Harvest Harvest `mapstructure:"harvest"`
	Storage Storage `mapstructure:"storage"`
	MCP     MCP     `mapstructure:"mcp"`
}

// Source identifies the government site to harvest.
type Source struct {
	RootURL       string `mapstructure:"root_url"`
	AllowedDomain string `mapstructure:"allowed_domain"`
}

// Crawler holds discovery crawl configuration.
type Crawler struct {
	Delay       time.Duration `mapstructure:"delay"`
	Timeout     time.Duration `mapstructure:"timeout"`
	UserAgent   string        `mapstructure:"user_agent"`
	Parallelism int           `mapstructure:"parallelism"`
}

// Harvest holds attachment processing configuration.
type Harvest struct {
	Workers      int           `mapstructure:"workers"`
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
}

// Storage selects and configures the corpus store. Backend is "file"
// or "s3".
type Storage struct {
	Backend         string `mapstructure:"backend"`
	Path            string `mapstructure:"path"`
	Endpoint        string `mapstructure:"endpoint"`
	Bucket          string `mapstructure:"bucket"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

// MCP holds MCP server configuration.
type MCP struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Source: Source{
			RootURL: "https://www.hawkinscountyclerk.com/commission-information/",
			// Derived from the root URL when empty.
			AllowedDomain: "",
		},
		Crawler: Crawler{
			Delay:       1 * time.Second,
			Timeout:     30 * time.Second,
			UserAgent:   "commission-search/1.0",
			Parallelism: 2,
		},
		Harvest: Harvest{
			Workers:      4,
			FetchTimeout: 30 * time.Second,
		},
		Storage: Storage{
			Backend:         "file",
			Path:            "./data",
			Endpoint:        "localhost:9002",
			Bucket:          "commission-search",
			AccessKeyID:     "minioadmin",
			SecretAccessKey: "minioadmin",
			UseSSL:          false,
		},
		MCP: MCP{
			Name:    "commission-search",
			Version: "1.0.0",
		},
	}
}
