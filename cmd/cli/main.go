package main

import (
	"fmt"
	"os"

	"github.com/crucial707/itadmin/cmd/cli/assets"
	"github.com/crucial707/itadmin/cmd/cli/root"
	"github.com/crucial707/itadmin/cmd/cli/users"
)

func main() {
	rootCmd := root.GetRoot()
	assets.InitAssets(rootCmd)
	users.InitUsers(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
