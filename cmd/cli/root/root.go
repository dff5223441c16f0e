package root

import (
	"fmt"

	"github.com/crucial707/itadmin/cmd/cli/client"
	"github.com/crucial707/itadmin/cmd/cli/config"
	"github.com/spf13/cobra"
)

// RootCmd is the itadmin command tree.
var RootCmd = &cobra.Command{
	Use:           "itadmin",
	Short:         "IT asset admin CLI",
	Long:          "Command line interface for the IT asset admin API.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	RootCmd.PersistentFlags().String("api-url", "", "API base URL (overrides config and ITADMIN_API_URL)")
	RootCmd.PersistentFlags().String("token", "", "bearer token identifying the acting user")
	RootCmd.PersistentFlags().StringP("output", "o", "", "output format: table or json")
}

// Settings loads the CLI config and applies any persistent flags set on cmd.
func Settings(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	if v, ok := flagValue(cmd, "api-url"); ok {
		cfg.APIURL = v
	}
	if v, ok := flagValue(cmd, "token"); ok {
		cfg.Token = v
	}
	if v, ok := flagValue(cmd, "output"); ok {
		cfg.Output = v
	}
	if cfg.Output != "table" && cfg.Output != "json" {
		return cfg, fmt.Errorf("unknown output format %q", cfg.Output)
	}
	return cfg, nil
}

// Client returns an API client built from Settings.
func Client(cmd *cobra.Command) (*client.Client, config.Config, error) {
	cfg, err := Settings(cmd)
	if err != nil {
		return nil, cfg, err
	}
	return client.New(cfg.APIURL, cfg.Token), cfg, nil
}

func flagValue(cmd *cobra.Command, name string) (string, bool) {
	f := cmd.Flags().Lookup(name)
	if f == nil || !f.Changed {
		return "", false
	}
	return f.Value.String(), true
}

func GetRoot() *cobra.Command {
	return RootCmd
}
