package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/axondata/go-eye"
)

// globalFlags are shared by every subcommand
type globalFlags struct {
	eyePath  string
	shell    string
	logLevel string
	timeout  time.Duration
	interval time.Duration
}

// targetFlags address an application, group or process
type targetFlags struct {
	application string
	group       string
	process     string
	config      string
}

func (t *targetFlags) params() eye.Params {
	return eye.Params{
		Application: t.application,
		Group:       t.group,
		Process:     t.process,
		Config:      t.config,
	}
}

func (t *targetFlags) register(cmd *cobra.Command, withConfig bool) {
	cmd.Flags().StringVarP(&t.application, "application", "a", "", "eye application name")
	cmd.Flags().StringVarP(&t.group, "group", "g", "", "process group (default group when empty)")
	cmd.Flags().StringVarP(&t.process, "process", "p", "", "process name")
	if withConfig {
		cmd.Flags().StringVarP(&t.config, "config", "c", "", "eye config file to load first")
	}
}

func defaultEyePath() string {
	if p := os.Getenv("EYE_BIN"); p != "" {
		return p
	}
	return eye.DefaultEyePath
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:           "eyectl",
		Short:         "Control an eye process supervisor",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&g.eyePath, "eye", defaultEyePath(), "eye executable (env EYE_BIN)")
	root.PersistentFlags().StringVar(&g.shell, "shell", eye.DefaultShell, "shell used to run eye")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	root.PersistentFlags().DurationVar(&g.timeout, "timeout", 0, "overall timeout (0 waits forever)")
	root.PersistentFlags().DurationVar(&g.interval, "interval", eye.DefaultPollInterval, "status poll interval for wait and watch")

	root.AddCommand(
		newStartCmd(g),
		newStopCmd(g),
		newStatusCmd(g),
		newListCmd(g),
		newDestroyCmd(g),
		newLoadCmd(g),
		newWaitCmd(g),
		newWatchCmd(g),
		newVersionCmd(),
	)

	return root
}

// setup builds the client and the command context from the global flags
func (g *globalFlags) setup(cmd *cobra.Command) (*eye.Client, context.Context, context.CancelFunc, error) {
	logger := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		Prefix:          "eyectl",
		ReportTimestamp: true,
	})
	level, err := log.ParseLevel(g.logLevel)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("invalid --log-level %q: %w", g.logLevel, err)
	}
	logger.SetLevel(level)

	client := eye.New(
		eye.WithEyePath(g.eyePath),
		eye.WithShell(g.shell),
		eye.WithLogger(logger),
		eye.WithPollInterval(g.interval),
	)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if g.timeout > 0 {
		ctx, cancel := context.WithTimeout(ctx, g.timeout)
		return client, ctx, cancel, nil
	}
	ctx, cancel := context.WithCancel(ctx)
	return client, ctx, cancel, nil
}

func newStartCmd(g *globalFlags) *cobra.Command {
	t := &targetFlags{}
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Load an optional config and start an application",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, ctx, cancel, err := g.setup(cmd)
			if err != nil {
				return err
			}
			defer cancel()
			return client.Start(ctx, t.params())
		},
	}
	t.register(cmd, true)
	return cmd
}

func newStopCmd(g *globalFlags) *cobra.Command {
	t := &targetFlags{}
	cmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop a process",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, ctx, cancel, err := g.setup(cmd)
			if err != nil {
				return err
			}
			defer cancel()
			return client.Stop(ctx, t.params())
		},
	}
	t.register(cmd, false)
	return cmd
}

func newStatusCmd(g *globalFlags) *cobra.Command {
	t := &targetFlags{}
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Print the state of a process (unknown when eye does not know it)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, ctx, cancel, err := g.setup(cmd)
			if err != nil {
				return err
			}
			defer cancel()
			state, err := client.Status(ctx, t.params())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), state)
			return nil
		},
	}
	t.register(cmd, false)
	return cmd
}

func newListCmd(g *globalFlags) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List loaded applications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, ctx, cancel, err := g.setup(cmd)
			if err != nil {
				return err
			}
			defer cancel()
			apps := client.ListApps(ctx)
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				return enc.Encode(apps)
			}
			for _, app := range apps {
				fmt.Fprintln(cmd.OutOrStdout(), app)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print a JSON array")
	return cmd
}

func newDestroyCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "destroy",
		Short: "Shut the eye daemon down (succeeds if it is not running)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, ctx, cancel, err := g.setup(cmd)
			if err != nil {
				return err
			}
			defer cancel()
			return client.Destroy(ctx)
		},
	}
}

func newLoadCmd(g *globalFlags) *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "load CONFIG",
		Short: "Load an eye config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, ctx, cancel, err := g.setup(cmd)
			if err != nil {
				return err
			}
			defer cancel()
			if err := client.Load(ctx, args[0]); err != nil {
				return err
			}
			if !watch {
				return nil
			}

			events, stop, err := client.WatchConfig(ctx, args[0])
			if err != nil {
				return err
			}
			defer func() { _ = stop() }()

			for ev := range events {
				if ev.Err != nil {
					client.Logger.Error("reload failed", "config", ev.Config, "err", ev.Err)
					continue
				}
				client.Logger.Info("reloaded", "config", ev.Config)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep running and reload when the file changes")
	return cmd
}

func newWaitCmd(g *globalFlags) *cobra.Command {
	t := &targetFlags{}
	var states []string
	cmd := &cobra.Command{
		Use:   "wait",
		Short: "Block until a process reaches one of the given states",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, ctx, cancel, err := g.setup(cmd)
			if err != nil {
				return err
			}
			defer cancel()
			state, err := client.Wait(ctx, t.params(), states...)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), state)
			return nil
		},
	}
	t.register(cmd, false)
	cmd.Flags().StringSliceVarP(&states, "state", "s", []string{"up"}, "target states")
	return cmd
}

func newWatchCmd(g *globalFlags) *cobra.Command {
	t := &targetFlags{}
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print a line each time a process changes state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, ctx, cancel, err := g.setup(cmd)
			if err != nil {
				return err
			}
			defer cancel()
			events, stop, err := client.Watch(ctx, t.params())
			if err != nil {
				return err
			}
			defer func() { _ = stop() }()

			for ev := range events {
				if ev.Err != nil {
					client.Logger.Debug("eye report unavailable", "err", ev.Err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", time.Now().Format(time.RFC3339), ev.State)
			}
			return nil
		},
	}
	t.register(cmd, false)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the library version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			v := eye.GetVersion()
			fmt.Fprintf(cmd.OutOrStdout(), "eyectl %s (%s)\n", v.Version, v.Protocol)
		},
	}
}
