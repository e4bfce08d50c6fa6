// Package main provides assetctl, a command line client for the asset inventory API.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"asset-tracker/internal/apiclient"
	"asset-tracker/pkg/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	cfgKeyAPIURL  = "api-url"
	cfgKeyTimeout = "timeout"
	cfgKeyLog     = "log-level"
)

// app is the state shared by every subcommand.
type app struct {
	v       *viper.Viper
	client  *apiclient.Client
	jsonOut bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "assetctl",
		Short: "Manage the asset inventory from the command line",
		Long: `assetctl talks to the asset inventory API. It lists, filters and sorts
assets, manages categories and the to-do list, and prints the dashboard.

The API URL comes from --api-url, then ASSETCTL_API_URL, then the build default.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger.Init(cmd.ErrOrStderr(), a.v.GetString(cfgKeyLog))
			a.client = apiclient.New(a.v.GetString(cfgKeyAPIURL), nil)
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.String(cfgKeyAPIURL, apiclient.DefaultBaseURL, "inventory API base URL")
	flags.Duration(cfgKeyTimeout, 30*time.Second, "timeout for the whole command")
	flags.String(cfgKeyLog, "error", "log level for request failures (debug, info, warn, error)")
	flags.BoolVar(&a.jsonOut, "json", false, "output as JSON")

	a.v.SetEnvPrefix("assetctl")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()
	for _, key := range []string{cfgKeyAPIURL, cfgKeyTimeout, cfgKeyLog} {
		_ = a.v.BindPFlag(key, flags.Lookup(key))
	}

	root.AddCommand(
		newAssetsCmd(a),
		newCategoriesCmd(a),
		newDashboardCmd(a),
		newSubscriptionsCmd(a),
		newTodosCmd(a),
	)
	return root
}

// context returns the command context bounded by --timeout.
func (a *app) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if d := a.v.GetDuration(cfgKeyTimeout); d > 0 {
		return context.WithTimeout(ctx, d)
	}
	return context.WithCancel(ctx)
}
