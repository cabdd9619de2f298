package commands

import (
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/canvas-client/internal/auth"
	"github.com/fivetwenty-io/canvas-client/internal/constants"
)

// Config is the effective CLI configuration after flags, environment and
// config file are merged.
type Config struct {
	ConfigFile   string        `json:"config_file"   yaml:"config_file"`
	BaseURL      string        `json:"base_url"      yaml:"base_url"`
	TokenFile    string        `json:"token_file"    yaml:"token_file"`
	TokenPresent bool          `json:"token_present" yaml:"token_present"`
	Output       string        `json:"output"        yaml:"output"`
	Debug        bool          `json:"debug"         yaml:"debug"`
	Candidates   []string      `json:"candidates"    yaml:"candidates"`
	RetryMax     int           `json:"retry_max"     yaml:"retry_max"`
	Timeout      time.Duration `json:"timeout"       yaml:"timeout"`
	UserAgent    string        `json:"user_agent"    yaml:"user_agent"`
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect CLI configuration",
		Long:  "Inspect the canvas CLI configuration. The CLI never writes configuration files.",
	}

	cmd.AddCommand(newConfigShowCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the effective configuration and where the token is read from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			return render(cmd.OutOrStdout(), config, configTable(config))
		},
	}
}

// loadConfig snapshots the effective configuration.
func loadConfig() *Config {
	tokenFile := viper.GetString(KeyTokenFile)
	if tokenFile == "" {
		defaultPath, err := auth.DefaultTokenPath()
		if err == nil {
			tokenFile = defaultPath
		}
	}

	_, statErr := os.Stat(tokenFile)

	return &Config{
		ConfigFile:   viper.ConfigFileUsed(),
		BaseURL:      viper.GetString(KeyBaseURL),
		TokenFile:    tokenFile,
		TokenPresent: tokenFile != "" && statErr == nil,
		Output:       viper.GetString(KeyOutput),
		Debug:        viper.GetBool(KeyDebug),
		Candidates:   viper.GetStringSlice(KeyCandidates),
		RetryMax:     viper.GetInt(KeyRetryMax),
		Timeout:      viper.GetDuration(KeyTimeout),
		UserAgent:    viper.GetString(KeyUserAgent),
	}
}

func configTable(config *Config) func(io.Writer) error {
	return func(w io.Writer) error {
		configFile := config.ConfigFile
		if configFile == "" {
			configFile = constants.NotAvailable
		}

		table := tablewriter.NewWriter(w)
		table.Header("Setting", "Value")
		_ = table.Append("Config File", configFile)
		_ = table.Append("Base URL", config.BaseURL)
		_ = table.Append("Token File", config.TokenFile)
		_ = table.Append("Token Present", strconv.FormatBool(config.TokenPresent))
		_ = table.Append("Output", config.Output)
		_ = table.Append("Debug", strconv.FormatBool(config.Debug))
		_ = table.Append("Candidates", strings.Join(config.Candidates, "\n"))
		_ = table.Append("Retry Max", strconv.Itoa(config.RetryMax))
		_ = table.Append("Timeout", config.Timeout.String())
		_ = table.Append("User Agent", orNA(&config.UserAgent))

		return renderTable(table)
	}
}
