package main

import (
	"fmt"
	"net"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/spherefocus/config"
	"github.com/lixenwraith/spherefocus/network"
	"github.com/lixenwraith/spherefocus/parameter"
)

type rootOptions struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "spherefocus",
		Short:         "Spatial window layout on a ring of columns",
		Long:          `spherefocus arranges windows on a ring of columns around a virtual camera that turns toward the focused column. The run command hosts the layout on a simulated terminal desktop.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", config.DefaultPath(), "config file")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newRunCmd(opts))
	root.AddCommand(newSendCmd())
	root.AddCommand(newConfigCmd(opts))
	return root
}

// load reads the config file and applies --verbose
func (o *rootOptions) load() (config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return cfg, err
	}
	if o.verbose {
		cfg.Log.Level = log.DebugLevel.String()
	}
	return cfg, nil
}

func newSendCmd() *cobra.Command {
	var (
		dir    string
		action string
		addr   string
	)

	cmd := &cobra.Command{
		Use:   "send <command>",
		Short: "Send a command to a running instance over UDP",
		Long: `Send one JSON datagram to a running instance.

Commands: focus_next, focus_prev, move_focus --dir left|right|up|down, place --action new_column_left|new_column_right|split_top|split_bottom`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := network.Request{Cmd: args[0], Dir: dir, Action: action}
			if err := network.Send(cmd.Context(), addr, req); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "sent %s to %s\n", req.Cmd, addr)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "direction for move_focus")
	cmd.Flags().StringVar(&action, "action", "", "placement for place")
	cmd.Flags().StringVar(&addr, "addr", net.JoinHostPort("127.0.0.1", strconv.Itoa(parameter.CommandPort)), "target address")
	return cmd
}

func newConfigCmd(opts *rootOptions) *cobra.Command {
	var (
		defaults bool
		save     bool
	)

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if !defaults {
				var err error
				if cfg, err = opts.load(); err != nil {
					return err
				}
			}
			if save {
				if err := config.Save(opts.configPath, cfg); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", opts.configPath)
				return nil
			}
			return cfg.Write(cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&defaults, "default", false, "print built-in defaults, ignoring the config file")
	cmd.Flags().BoolVar(&save, "save", false, "write the configuration to the --config path instead of printing it")
	return cmd
}
