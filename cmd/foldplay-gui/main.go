// Command foldplay-gui is the desktop window front-end.
package main

import (
	"context"
	"fmt"
	"os"

	fyneapp "fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"

	"github.com/llehouerou/foldplay/internal/gui"
	"github.com/llehouerou/foldplay/internal/session"
)

const appID = "io.github.llehouerou.foldplay"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts session.Options

	cmd := &cobra.Command{
		Use:           "foldplay-gui [folder]",
		Short:         "Play the audio files of a folder in a desktop window",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, args []string) error {
			var folder string
			if len(args) == 1 {
				folder = args[0]
			}
			if err := run(opts, folder); err != nil {
				fmt.Fprintln(os.Stderr, "Error:", err)
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigFile, "config", "c", "", "extra config file, merged last")
	cmd.Flags().BoolVarP(&opts.Shuffle, "shuffle", "s", false, "start with shuffle on")
	cmd.Flags().BoolVarP(&opts.Repeat, "repeat", "r", false, "start with repeat on")
	return cmd
}

func run(opts session.Options, folder string) error {
	opts.CaptureStderr = true
	s, err := session.Open(opts)
	if err != nil {
		return err
	}
	defer s.Close()

	w := gui.New(fyneapp.NewWithID(appID), s.Controller, gui.Options{
		TickInterval: s.Config.TickInterval,
		Logger:       s.Logger,
	})
	w.Run(context.Background(), s.StartFolder(folder))
	return nil
}
