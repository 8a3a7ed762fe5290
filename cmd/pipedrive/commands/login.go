package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/fivetwenty-io/pipedrive-client/internal/constants"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var skipVerify bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store a Pipedrive API token",
		Long: `Store a Pipedrive API token in the CLI config file.

The token is taken from --token or PIPEDRIVE_TOKEN, otherwise it is read from
the terminal without echo. It is verified with a read-only request unless
--skip-verify is set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			token := strings.TrimSpace(viper.GetString("token"))
			if !cmd.Flags().Changed("token") && os.Getenv(constants.EnvPrefix+"_TOKEN") == "" {
				prompted, err := promptToken(cmd)
				if err != nil {
					return err
				}

				token = prompted
			}

			if token == "" {
				return constants.ErrEmptyToken
			}

			viper.Set("token", token)

			if !skipVerify {
				client, err := CreateClient()
				if err != nil {
					return err
				}

				_, err = client.DealFields().List(commandContext(cmd))
				if err != nil {
					return fmt.Errorf("failed to verify token: %w", err)
				}
			}

			config := loadConfig()
			config.Token = token

			err := saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Successfully logged in")

			return nil
		},
	}

	cmd.Flags().BoolVar(&skipVerify, "skip-verify", false, "store the token without checking it against the API")

	return cmd
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored API token",
		Long:  "Remove the API token from the CLI config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			config.Token = ""
			viper.Set("token", "")

			err := saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Successfully logged out")

			return nil
		},
	}
}

func promptToken(cmd *cobra.Command) (string, error) {
	fd := int(os.Stdin.Fd()) //nolint:gosec // file descriptors fit in int
	if !term.IsTerminal(fd) {
		return "", constants.ErrNotATerminal
	}

	_, _ = fmt.Fprint(cmd.ErrOrStderr(), "API token: ")

	raw, err := term.ReadPassword(fd)
	_, _ = fmt.Fprintln(cmd.ErrOrStderr())

	if err != nil {
		return "", fmt.Errorf("failed to read token: %w", err)
	}

	return strings.TrimSpace(string(raw)), nil
}
