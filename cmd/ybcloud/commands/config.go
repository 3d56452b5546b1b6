package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/ybcloud-client/internal/constants"
	"github.com/fivetwenty-io/ybcloud-client/pkg/ybapi"
	"github.com/fivetwenty-io/ybcloud-client/pkg/ybclient"
)

// Configuration keys.
const (
	keyAPI       = "api"
	keyToken     = "token"
	keyAccount   = "account"
	keyOutput    = "output"
	keyPageSize  = "page_size"
	keyStaleTime = "stale_time"
	keyNATSURL   = "nats_url"
)

// Config represents the CLI configuration.
type Config struct {
	API       string `json:"api,omitempty"        yaml:"api,omitempty"`
	Token     string `json:"token,omitempty"      yaml:"token,omitempty"`
	Account   string `json:"account,omitempty"    yaml:"account,omitempty"`
	Output    string `json:"output"               yaml:"output"`
	PageSize  int    `json:"page_size,omitempty"  yaml:"page_size,omitempty"`
	StaleTime string `json:"stale_time,omitempty" yaml:"stale_time,omitempty"`
	NATSURL   string `json:"nats_url,omitempty"   yaml:"nats_url,omitempty"`
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Manage ybcloud CLI configuration including endpoint, credentials and cache settings",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the current CLI configuration with secrets masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			masked := *config
			masked.Token = maskSecret(config.Token)

			return renderOutput(cmd.OutOrStdout(), masked, func(w io.Writer) error {
				table := tablewriter.NewWriter(w)
				table.Header("Property", "Value")
				_ = table.Append("API", formatConfigValue(masked.API))
				_ = table.Append("Token", formatConfigValue(masked.Token))
				_ = table.Append("Account", formatConfigValue(masked.Account))
				_ = table.Append("Output", formatConfigValue(masked.Output))
				_ = table.Append("Page Size", formatConfigValue(strconv.Itoa(masked.PageSize)))
				_ = table.Append("Stale Time", formatConfigValue(masked.StaleTime))
				_ = table.Append("NATS URL", formatConfigValue(masked.NATSURL))

				return renderTable(table)
			})
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long: `Set a configuration value.

Keys: api, token, account, output, page_size, stale_time, nats_url`,
		Args: cobra.ExactArgs(constants.MinimumArgumentCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			err := setConfigValue(config, args[0], args[1])
			if err != nil {
				return err
			}

			err = saveConfigStruct(config)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s\n", args[0])

			return nil
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Long:  "Remove a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			err := unsetConfigValue(config, args[0])
			if err != nil {
				return err
			}

			err = saveConfigStruct(config)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Unset %s\n", args[0])

			return nil
		},
	}
}

func loadConfig() *Config {
	return &Config{
		API:       viper.GetString(keyAPI),
		Token:     viper.GetString(keyToken),
		Account:   viper.GetString(keyAccount),
		Output:    viper.GetString(keyOutput),
		PageSize:  viper.GetInt(keyPageSize),
		StaleTime: viper.GetString(keyStaleTime),
		NATSURL:   viper.GetString(keyNATSURL),
	}
}

// setConfigValue validates value and stores it under key.
func setConfigValue(config *Config, key, value string) error {
	switch key {
	case keyAPI:
		config.API = value
	case keyToken:
		config.Token = value
	case keyAccount:
		config.Account = value
	case keyOutput:
		if !isValidOutput(value) {
			return fmt.Errorf("%w: %q", constants.ErrInvalidOutput, value)
		}

		config.Output = value
	case keyPageSize:
		size, err := strconv.Atoi(value)
		if err != nil || size < 1 || size > constants.MaxPageSize {
			return fmt.Errorf("%w: %q", constants.ErrInvalidPageSize, value)
		}

		config.PageSize = size
	case keyStaleTime:
		_, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid stale time %q: %w", value, err)
		}

		config.StaleTime = value
	case keyNATSURL:
		config.NATSURL = value
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
	}

	return nil
}

func unsetConfigValue(config *Config, key string) error {
	switch key {
	case keyAPI:
		config.API = ""
	case keyToken:
		config.Token = ""
	case keyAccount:
		config.Account = ""
	case keyOutput:
		config.Output = constants.FormatTable
	case keyPageSize:
		config.PageSize = 0
	case keyStaleTime:
		config.StaleTime = ""
	case keyNATSURL:
		config.NATSURL = ""
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
	}

	return nil
}

func saveConfigStruct(config *Config) error {
	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get user home directory: %w", err)
		}

		configDir := filepath.Join(home, ".ybcloud")

		err = os.MkdirAll(configDir, constants.ConfigDirPerm)
		if err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}

		configFile = filepath.Join(configDir, "config.yml")
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// buildClientConfig maps the CLI configuration onto a client configuration.
func buildClientConfig(config *Config) (*ybapi.Config, error) {
	if config.API == "" {
		return nil, constants.ErrNoAPIConfigured
	}

	clientConfig := &ybapi.Config{
		APIEndpoint: config.API,
		AccessToken: config.Token,
		PageSize:    config.PageSize,
		UserAgent:   constants.DefaultUserAgent,
	}

	if config.StaleTime != "" {
		staleTime, err := time.ParseDuration(config.StaleTime)
		if err != nil {
			return nil, fmt.Errorf("invalid stale time %q: %w", config.StaleTime, err)
		}

		clientConfig.StaleTime = staleTime
	}

	if config.NATSURL != "" {
		clientConfig.Cache = &ybapi.CacheConfig{
			Type: ybapi.CacheTypeNATS,
			NATS: &ybapi.NATSKVConfig{URL: config.NATSURL},
		}
	}

	if viper.GetBool("verbose") {
		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
		logger := ybapi.NewSlogLogger(slog.New(handler))

		chain := ybapi.NewInterceptorChain()
		chain.AddRequestInterceptor(ybapi.LoggingInterceptor(logger))
		chain.AddResponseInterceptor(ybapi.LoggingResponseInterceptor(logger))

		clientConfig.Logger = logger
		clientConfig.Interceptors = chain
	}

	return clientConfig, nil
}

// CreateClient builds an API client from the current configuration.
func CreateClient() (ybapi.Client, error) {
	clientConfig, err := buildClientConfig(loadConfig())
	if err != nil {
		return nil, err
	}

	client, err := ybclient.New(clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

// accountID returns the --account value or the configured account.
func accountID() (string, error) {
	account := viper.GetString(keyAccount)
	if account == "" {
		return "", constants.ErrAccountRequired
	}

	return account, nil
}

func isValidOutput(value string) bool {
	switch value {
	case constants.FormatTable, constants.FormatJSON, constants.FormatYAML:
		return true
	default:
		return false
	}
}

func formatConfigValue(value string) string {
	if value == "" || value == "0" {
		return "-"
	}

	return value
}

func maskSecret(value string) string {
	if value == "" {
		return ""
	}

	return Masked
}
