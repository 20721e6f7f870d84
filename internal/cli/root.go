// Package cli provides the command-line interface for the taskdeck client.
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/taskdeck/backend/internal/client"
	"github.com/taskdeck/backend/internal/config"
)

type options struct {
	configPath string
	standalone bool
	apiBaseURL string
	storePath  string
	yes        bool
}

func NewRootCommand(version string) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "taskdeck",
		Short: "To-do list client",
		Long: `taskdeck manages a to-do list either against the taskdeck server
or fully standalone with a local JSON store.

When the server is unreachable the server-backed mode keeps working from the
last fetched copy; changes made while offline are replaced by the server's
state on the next successful sync.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "config file path")
	pf.BoolVar(&opts.standalone, "standalone", false, "work against the local store only, no server")
	pf.StringVar(&opts.apiBaseURL, "api", "", "API base URL (server-backed mode)")
	pf.StringVar(&opts.storePath, "store", "", "local task store path")
	pf.BoolVarP(&opts.yes, "yes", "y", false, "skip confirmation prompts")

	root.AddCommand(
		newAddCommand(opts),
		newListCommand(opts),
		newToggleCommand(opts),
		newEditCommand(opts),
		newRemoveCommand(opts),
		newClearCommand(opts),
		newStatsCommand(opts),
		newExportCommand(opts),
		newImportCommand(opts),
	)

	return root
}

func (o *options) clientConfig() (config.ClientConfig, error) {
	var cfg *config.Config
	if o.configPath != "" {
		loaded, err := config.Load(o.configPath)
		if err != nil {
			return config.ClientConfig{}, err
		}
		cfg = loaded
	} else {
		cfg = config.Default()
	}

	cc := cfg.Client
	if o.standalone {
		cc.Standalone = true
	}
	if o.apiBaseURL != "" {
		cc.APIBaseURL = o.apiBaseURL
	}
	if o.storePath != "" {
		cc.StorePath = o.storePath
	}
	return cc, nil
}

// newController wires a controller for the chosen variant. Notifications go
// to stderr so command output stays scriptable.
func (o *options) newController() (*client.Controller, error) {
	cc, err := o.clientConfig()
	if err != nil {
		return nil, err
	}

	notify := func(level client.Level, message string) {
		fmt.Fprintf(os.Stderr, "[%s] %s\n", level, message)
	}

	store := client.NewStore(cc.StorePath)
	if cc.Standalone {
		backend, err := client.NewLocalBackend(store)
		if err != nil {
			return nil, err
		}
		return client.NewController(client.ControllerConfig{
			Backend:  backend,
			Notifier: notify,
		}), nil
	}

	return client.NewController(client.ControllerConfig{
		Backend:  client.NewAPIBackend(cc.APIBaseURL),
		Cache:    store,
		Notifier: notify,
	}), nil
}

// confirmPending resolves the controller's pending confirmation, either by
// prompting or, with --yes, immediately.
func confirmPending(cmd *cobra.Command, ctrl *client.Controller, skipPrompt bool) error {
	message, ok := ctrl.PendingConfirm()
	if !ok {
		return nil
	}
	if skipPrompt {
		return ctrl.Confirm(cmd.Context())
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N]: ", message)
	reader := bufio.NewReader(cmd.InOrStdin())
	answer, _ := reader.ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))
	if answer == "y" || answer == "yes" {
		return ctrl.Confirm(cmd.Context())
	}

	ctrl.DismissConfirm()
	fmt.Fprintln(cmd.OutOrStdout(), "cancelled")
	return nil
}
