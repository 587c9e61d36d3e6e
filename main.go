package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/llehouerou/foldplay/internal/app"
	"github.com/llehouerou/foldplay/internal/session"
	"github.com/llehouerou/foldplay/internal/stderr"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts session.Options

	cmd := &cobra.Command{
		Use:   "foldplay [folder]",
		Short: "Play the audio files of a folder",
		Long: "foldplay lists the mp3, wav, ogg and flac files of a folder and plays them in order,\n" +
			"with shuffle, repeat and a progress bar. Without a folder argument it loads\n" +
			"default_folder from the config, or opens a folder picker.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, args []string) error {
			var folder string
			if len(args) == 1 {
				folder = args[0]
			}
			return run(opts, folder)
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
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	defer s.Close()

	m := app.New(s.Controller, app.Options{
		StartFolder:  s.StartFolder(folder),
		TickInterval: s.Config.TickInterval,
		Watch:        s.WatchFunc(),
		Logger:       s.Logger,
	})

	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if fm, ok := final.(app.Model); ok {
		fm.Close()
	}
	if err != nil {
		s.Logger.WithError(err).Error("TUI exited with error")
		// stderr is still captured until the session closes
		stderr.WriteOriginal(fmt.Sprintf("Error: %v\n", err))
		return err
	}
	return nil
}
