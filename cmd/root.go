// Package cmd holds the metafolder command tree.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"github.com/lumipallolabs/metafolder/internal/canvas"
	"github.com/lumipallolabs/metafolder/internal/config"
	"github.com/lumipallolabs/metafolder/internal/core"
	"github.com/lumipallolabs/metafolder/internal/logging"
	"github.com/lumipallolabs/metafolder/internal/opener"
	"github.com/lumipallolabs/metafolder/internal/presets"
	"github.com/lumipallolabs/metafolder/internal/recent"
	"github.com/lumipallolabs/metafolder/internal/ui"
)

// NewRootCmd builds the command tree. Running it without a subcommand
// opens the interactive view.
func NewRootCmd(version string) *cobra.Command {
	var cfg *config.Config
	v := config.New()

	rootCmd := &cobra.Command{
		Use:   "metafolder [path]",
		Short: "Arrange the contents of a folder freely on a canvas",
		Long: `metafolder shows a folder as a canvas of icons you can place anywhere.
Positions and looks are kept per folder in a hidden .metafolder file.

With no path, the last opened folder is shown.`,
		Args:          cobra.MaximumNArgs(1),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(v)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			cfg = loaded
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cfg, args, version)
		},
	}

	rootCmd.PersistentFlags().String("data-dir", "", "directory for history and presets (default ~/.metafolder)")
	_ = v.BindPFlag("data_dir", rootCmd.PersistentFlags().Lookup("data-dir"))

	cfgFn := func() *config.Config { return cfg }
	rootCmd.AddCommand(newLayoutCmd())
	rootCmd.AddCommand(newPresetCmd(cfgFn))
	rootCmd.AddCommand(newVersionCmd(version))

	return rootCmd
}

func runView(cfg *config.Config, args []string, version string) error {
	history := recent.NewManager(cfg.DataDir)
	if err := history.Load(); err != nil {
		logging.Core.Warnf("cannot load history: %v", err)
	}

	start := history.StartFolder()
	if len(args) == 1 {
		start = args[0]
	}

	surf := canvas.New(cfg.CellSize)
	ctrl := core.NewController(*cfg, surf, opener.Open, core.WithRecent(history))
	defer ctrl.Stop()

	store := presets.NewStore(presets.DefaultDir(cfg.DataDir))

	p := tea.NewProgram(
		ui.NewApp(ctrl, surf, store, start, version),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}

// folderArg resolves the optional folder argument, defaulting to the
// working directory
func folderArg(args []string) (string, error) {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}
	path, err := homedir.Expand(path)
	if err != nil {
		return "", err
	}
	if path, err = filepath.Abs(path); err != nil {
		return "", err
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s", core.ErrNotDirectory, path)
	}
	return path, nil
}
