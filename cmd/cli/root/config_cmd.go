package root

import (
	"fmt"

	"github.com/crucial707/itadmin/cmd/cli/config"
	"github.com/spf13/cobra"
)

func init() {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change the saved CLI configuration",
	}
	configCmd.AddCommand(configShowCmd(), configSetCmd())
	RootCmd.AddCommand(configCmd)
}

func configShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := Settings(cmd)
			if err != nil {
				return err
			}
			path, _ := config.Path()
			token := "(none)"
			if cfg.Token != "" {
				token = "(set)"
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "config: %s\napi_url: %s\ntoken: %s\noutput: %s\n", path, cfg.APIURL, token, cfg.Output)
			return nil
		},
	}
}

func configSetCmd() *cobra.Command {
	var apiURL, token, output string
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Save api_url, token or output to the config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFile()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("api-url") {
				cfg.APIURL = apiURL
			}
			if cmd.Flags().Changed("token") {
				cfg.Token = token
			}
			if cmd.Flags().Changed("output") {
				if output != "table" && output != "json" {
					return fmt.Errorf("unknown output format %q", output)
				}
				cfg.Output = output
			}
			if err := config.Save(cfg); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Configuration saved.")
			return nil
		},
	}
	cmd.Flags().StringVar(&apiURL, "api-url", "", "API base URL")
	cmd.Flags().StringVar(&token, "token", "", "bearer token (empty clears it)")
	cmd.Flags().StringVar(&output, "output", "", "table or json")
	return cmd
}
