// Package cli wires the cobra command tree for mgn. Commands receive
// their dependencies through App so tests can inject a mock gateway
// and buffer writers instead of a live Host App.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/docxology/metaguildnet/internal/config"
	"github.com/docxology/metaguildnet/internal/domain"
	"github.com/docxology/metaguildnet/internal/guildnet"
)

// App carries the resolved configuration and shared dependencies for
// every command. Gateway is lazily constructed on first use; tests
// pre-populate it with a MockGateway.
type App struct {
	Config  *config.AppConfig
	Gateway domain.Gateway
	Out     io.Writer
	ErrOut  io.Writer

	cfgFile string
	apiURL  string
	token   string
	cluster string
	format  string
	verbose bool
}

// NewApp returns an App writing to the standard streams.
func NewApp() *App {
	return &App{Out: os.Stdout, ErrOut: os.Stderr}
}

// gateway returns the Host App client, building it from config on
// first call.
func (a *App) gateway() domain.Gateway {
	if a.Gateway == nil {
		opts := []guildnet.Option{}
		if a.verbose {
			opts = append(opts, guildnet.WithLogf(func(format string, args ...any) {
				fmt.Fprintf(a.ErrOut, format+"\n", args...)
			}))
		}
		a.Gateway = guildnet.New(a.Config.ClientConfig(), opts...)
	}
	return a.Gateway
}

// clusterID resolves the target cluster: flag, then config default.
func (a *App) clusterID() (string, error) {
	if a.cluster != "" {
		return a.cluster, nil
	}
	if a.Config.Defaults.Cluster != "" {
		return a.Config.Defaults.Cluster, nil
	}
	return "", fmt.Errorf("no cluster selected: pass --cluster or set defaults.cluster in config")
}

// setup resolves configuration before any command runs. Resolution is
// layered: defaults, config file, environment, then flags.
func (a *App) setup(cmd *cobra.Command, args []string) error {
	if a.Config == nil {
		var err error
		if a.cfgFile != "" {
			a.Config, err = config.LoadConfigFrom(a.cfgFile)
		} else {
			a.Config, err = config.LoadConfig()
		}
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	}

	if v := viper.GetString("api-url"); v != "" {
		a.Config.API.BaseURL = v
	}
	if v := viper.GetString("token"); v != "" {
		a.Config.API.Token = v
	}
	if v := viper.GetString("format"); v != "" {
		a.Config.Defaults.Format = v
	}
	a.format = a.Config.Defaults.Format
	return nil
}

// NewRootCmd builds the full command tree.
func NewRootCmd(a *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "mgn",
		Short: "Operator tooling for the GuildNet Host App",
		Long: `mgn manages GuildNet deployments: clusters, workspaces and
databases through the Host App API, plus installation, verification
and a live terminal dashboard.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default ~/.metaguildnet/config.yaml)")
	pf.StringVar(&a.apiURL, "api-url", "", "Host App base URL")
	pf.StringVar(&a.token, "token", "", "API bearer token")
	pf.StringVarP(&a.cluster, "cluster", "c", "", "target cluster ID")
	pf.StringVarP(&a.format, "format", "o", "", "output format: table, json or yaml")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "verbose diagnostics")

	viper.SetEnvPrefix("MGN")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	_ = viper.BindPFlag("api-url", pf.Lookup("api-url"))
	_ = viper.BindPFlag("token", pf.Lookup("token"))
	_ = viper.BindPFlag("format", pf.Lookup("format"))
	_ = viper.BindPFlag("verbose", pf.Lookup("verbose"))

	root.AddCommand(
		newClusterCmd(a),
		newWorkspaceCmd(a),
		newDBCmd(a),
		newInstallCmd(a),
		newVerifyCmd(a),
		newVizCmd(a),
		newRunCmd(a),
		newReportCmd(a),
		newVersionCmd(a),
	)
	root.CompletionOptions.DisableDefaultCmd = true
	return root
}

// Execute runs the CLI and maps errors to an exit code.
func Execute() int {
	a := NewApp()
	root := NewRootCmd(a)
	if err := root.Execute(); err != nil {
		reportError(os.Stderr, err)
		return 1
	}
	return 0
}

// reportError prints an error with its classification and, for
// connection failures, a recovery hint.
func reportError(w io.Writer, err error) {
	switch {
	case domain.IsTransport(err):
		fmt.Fprintf(w, "Error: %v\n", err)
		fmt.Fprintln(w, "The Host App is unreachable. Check that it is running, or run 'mgn install'.")
	case domain.IsUnauthorized(err):
		fmt.Fprintf(w, "Error: %v\n", err)
		fmt.Fprintln(w, "Check your API token (MGN_API_TOKEN or api.token in config).")
	default:
		fmt.Fprintf(w, "Error: %v\n", err)
	}
}
