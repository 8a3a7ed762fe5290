package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/pipedrive-client/internal/constants"
)

// Config represents the persisted CLI configuration.
type Config struct {
	API           string `json:"api,omitempty"            yaml:"api,omitempty"`
	Token         string `json:"token,omitempty"          yaml:"token,omitempty"`
	CompanyDomain string `json:"company_domain,omitempty" yaml:"company_domain,omitempty"`
	Timeout       string `json:"timeout,omitempty"        yaml:"timeout,omitempty"`
	Output        string `json:"output,omitempty"         yaml:"output,omitempty"`
	Verbose       bool   `json:"verbose,omitempty"        yaml:"verbose,omitempty"`
}

// configKeys lists the keys accepted by config set/unset.
func configKeys() []string {
	return []string{"api", "token", "company_domain", "timeout", "output", "verbose"}
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show and change the settings stored in the Pipedrive CLI config file",
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
		Long:  "Display the effective CLI configuration with the token masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			if config.Token != "" {
				config.Token = constants.MaskedSecret
			}

			format, err := outputFormat()
			if err != nil {
				return err
			}

			if format != constants.FormatTable {
				return writeEncoded(cmd.OutOrStdout(), format, config)
			}

			return displayConfigTable(cmd.OutOrStdout(), config)
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set a configuration value. Keys: api, token, company_domain, timeout, output, verbose",
		Args:  cobra.ExactArgs(2),
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

			value := args[1]
			if args[0] == "token" {
				value = constants.MaskedSecret
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s to %s\n", args[0], value)

			return nil
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Long:  "Remove a configuration value from the config file",
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

// loadConfig reads the current configuration from viper.
func loadConfig() *Config {
	return &Config{
		API:           viper.GetString("api"),
		Token:         viper.GetString("token"),
		CompanyDomain: viper.GetString("company_domain"),
		Timeout:       viper.GetString("timeout"),
		Output:        viper.GetString("output"),
		Verbose:       viper.GetBool("verbose"),
	}
}

func setConfigValue(config *Config, key, value string) error {
	switch key {
	case "api":
		config.API = value
	case "token":
		if value == "" {
			return constants.ErrEmptyToken
		}

		config.Token = value
	case "company_domain":
		config.CompanyDomain = value
	case "timeout":
		_, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("%w: %q", constants.ErrInvalidTimeout, value)
		}

		config.Timeout = value
	case "output":
		switch value {
		case constants.FormatTable, constants.FormatJSON, constants.FormatYAML:
			config.Output = value
		default:
			return fmt.Errorf("%w: %s", constants.ErrUnsupportedFormat, value)
		}
	case "verbose":
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid verbose value %q: %w", value, err)
		}

		config.Verbose = enabled
	default:
		return unknownKeyError(key)
	}

	viper.Set(key, value)

	return nil
}

func unsetConfigValue(config *Config, key string) error {
	switch key {
	case "api":
		config.API = ""
	case "token":
		config.Token = ""
	case "company_domain":
		config.CompanyDomain = ""
	case "timeout":
		config.Timeout = ""
	case "output":
		config.Output = ""
	case "verbose":
		config.Verbose = false
	default:
		return unknownKeyError(key)
	}

	viper.Set(key, "")

	return nil
}

func unknownKeyError(key string) error {
	return fmt.Errorf("%w: %s (valid keys: %s)", constants.ErrUnknownConfigKey, key, strings.Join(configKeys(), ", "))
}

// configFilePath returns the config file in use, or the default location.
func configFilePath() (string, error) {
	configFile := viper.ConfigFileUsed()
	if configFile != "" {
		return configFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, constants.ConfigDirName, constants.ConfigFileName+".yml"), nil
}

func saveConfigStruct(config *Config) error {
	configFile, err := configFilePath()
	if err != nil {
		return err
	}

	err = os.MkdirAll(filepath.Dir(configFile), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
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

func displayConfigTable(w io.Writer, config *Config) error {
	table := tablewriter.NewWriter(w)
	table.Header("Property", "Value")

	_ = table.Append([]string{"API", valueOrNA(config.API)})
	_ = table.Append([]string{"Company Domain", valueOrNA(config.CompanyDomain)})
	_ = table.Append([]string{"Token", valueOrNA(config.Token)})
	_ = table.Append([]string{"Timeout", valueOrNA(config.Timeout)})
	_ = table.Append([]string{"Output", valueOrNA(config.Output)})
	_ = table.Append([]string{"Verbose", strconv.FormatBool(config.Verbose)})

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func valueOrNA(value string) string {
	if value == "" {
		return constants.NotAvailable
	}

	return value
}
