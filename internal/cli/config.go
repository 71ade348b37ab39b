package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alnah/go-paylink/internal/config"
)

// ConfigCmd creates the config command with subcommands.
// The env parameter provides injectable dependencies for testing.
func ConfigCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage persistent configuration settings.

Configuration is stored in ~/.config/go-paylink/config.
Unset values fall back to environment variables.

Supported settings:
  api-key       API key, sk_test_... or sk_live_... (env: PAYLINK_API_KEY)
  environment   production or sandbox (env: PAYLINK_ENVIRONMENT)
  timeout       Per-request timeout, e.g. 5s (env: PAYLINK_TIMEOUT)
  max-retries   Retries for transient failures (env: PAYLINK_MAX_RETRIES)`,
		Example: `  paylink config set api-key sk_test_abc123
  paylink config set environment sandbox
  paylink config get timeout
  paylink config list`,
	}

	cmd.AddCommand(configSetCmd(env))
	cmd.AddCommand(configGetCmd(env))
	cmd.AddCommand(configListCmd(env))

	return cmd
}

func configSetCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(env, args[0], args[1])
		},
	}
}

func configGetCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Long: `Get a configuration value.

Prints the value to stdout, or nothing if not set. The API key is printed in
full so it can be used in scripts.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigGet(env, args[0])
		},
	}
}

func configListCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all configuration values",
		Long: `List all configuration values.

Shows values from the config file and environment variable fallbacks.
The API key is masked.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigList(env)
		},
	}
}

// runConfigSet handles the "config set" command.
func runConfigSet(env *Env, key, value string) error {
	if err := config.Save(key, value); err != nil {
		return err
	}

	shown := value
	if key == config.KeyAPIKey {
		shown = config.Mask(value)
	}
	_, _ = fmt.Fprintf(env.Stderr, "Set %s = %s\n", key, shown)
	return nil
}

// runConfigGet handles the "config get" command.
func runConfigGet(env *Env, key string) error {
	name, ok := config.EnvName(key)
	if !ok {
		return fmt.Errorf("%w: %q (valid keys: %v)", config.ErrUnknownKey, key, config.Keys())
	}

	value, err := config.Get(key)
	if err != nil {
		return err
	}
	if value == "" {
		value = env.Getenv(name)
	}

	if value != "" {
		_, _ = fmt.Fprintln(env.Stdout, value)
	}
	return nil
}

// runConfigList handles the "config list" command.
func runConfigList(env *Env) error {
	data, err := config.List()
	if err != nil {
		return err
	}

	printed := 0
	for _, key := range config.Keys() {
		value, suffix := data[key], ""
		if value == "" {
			name, _ := config.EnvName(key)
			value, suffix = env.Getenv(name), " (from env)"
		}
		if value == "" {
			continue
		}
		if key == config.KeyAPIKey {
			value = config.Mask(value)
		}
		_, _ = fmt.Fprintf(env.Stdout, "%s=%s%s\n", key, value, suffix)
		printed++
	}

	if printed == 0 {
		_, _ = fmt.Fprintln(env.Stdout, "No configuration set.")
		_, _ = fmt.Fprintln(env.Stdout, "\nAvailable settings:")
		for _, key := range config.Keys() {
			_, _ = fmt.Fprintf(env.Stdout, "  %s\n", key)
		}
	}
	return nil
}
