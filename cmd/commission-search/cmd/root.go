package cmd

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ews-cloud/hawkins-county-commission-search/internal/config"
)

var (
	cfgFile string
	verbose bool
	cfg     config.Config
)

// GetConfig returns the loaded configuration.
func GetConfig() config.Config {
	return cfg
}

var rootCmd = &cobra.Command{
	Use:   "commission-search",
	Short: "Harvest and search county commission records",
	Long: `commission-search harvests agendas, minutes, and resolutions from a
county commission website, extracts text from the linked PDFs, and
provides full-text search over the assembled corpus.

Commands:
  harvest  Crawl the commission site and rebuild the corpus
  search   Search the harvested corpus
  serve    Start the MCP server for record retrieval`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig, initLogger)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

func initLogger() {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

func initConfig() {
	// Start with defaults
	cfg = config.Defaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath("./config")
		viper.AddConfigPath("/etc/commission-search")
		viper.AddConfigPath(".")
	}

	// Environment variable overrides
	// COMMISSION_SOURCE_ROOT_URL -> source.root_url
	viper.SetEnvPrefix("COMMISSION")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Explicitly bind nested env vars
	viper.BindEnv("source.root_url", "COMMISSION_SOURCE_ROOT_URL")
	viper.BindEnv("source.allowed_domain", "COMMISSION_SOURCE_ALLOWED_DOMAIN")
	viper.BindEnv("crawler.delay", "COMMISSION_CRAWLER_DELAY")
	viper.BindEnv("crawler.timeout", "COMMISSION_CRAWLER_TIMEOUT")
	viper.BindEnv("crawler.user_agent", "COMMISSION_CRAWLER_USER_AGENT")
	viper.BindEnv("harvest.workers", "COMMISSION_HARVEST_WORKERS")
	viper.BindEnv("harvest.fetch_timeout", "COMMISSION_HARVEST_FETCH_TIMEOUT")
	viper.BindEnv("storage.backend", "COMMISSION_STORAGE_BACKEND")
	viper.BindEnv("storage.path", "COMMISSION_STORAGE_PATH")
	viper.BindEnv("storage.endpoint", "COMMISSION_STORAGE_ENDPOINT")
	viper.BindEnv("storage.bucket", "COMMISSION_STORAGE_BUCKET")
	viper.BindEnv("storage.access_key_id", "COMMISSION_STORAGE_ACCESS_KEY_ID")
	viper.BindEnv("storage.secret_access_key", "COMMISSION_STORAGE_SECRET_ACCESS_KEY")
	viper.BindEnv("mcp.name", "COMMISSION_MCP_NAME")
	viper.BindEnv("mcp.version", "COMMISSION_MCP_VERSION")

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Warn("config file error", "error", err)
		}
		// No config file - use defaults + env vars
	}

	// Unmarshal into struct (merges config file with defaults)
	if err := viper.Unmarshal(&cfg); err != nil {
		slog.Warn("failed to parse config", "error", err)
	}
}
