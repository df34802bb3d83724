package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lumipallolabs/metafolder/internal/config"
	"github.com/lumipallolabs/metafolder/internal/presets"
	"github.com/lumipallolabs/metafolder/internal/settings"
)

func newPresetCmd(cfg func() *config.Config) *cobra.Command {
	store := func() *presets.Store {
		return presets.NewStore(presets.DefaultDir(cfg().DataDir))
	}

	cmd := &cobra.Command{
		Use:   "preset",
		Short: "Manage named looks that can be applied to any folder",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List saved presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range store().List() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "save <name> [path]",
		Short: "Save the look of a folder under a name",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			folder, err := folderArg(args[1:])
			if err != nil {
				return err
			}
			layout, err := settings.NewStore().Load(folder)
			if err != nil {
				return err
			}
			if err := store().Save(presets.FromLayout(args[0], layout)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "apply <name> [path]",
		Short: "Apply a saved look to a folder",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			folder, err := folderArg(args[1:])
			if err != nil {
				return err
			}
			p, err := store().Get(args[0])
			if err != nil {
				return err
			}
			if err := settings.NewStore().Update(folder, p.ApplyTo); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "applied %s to %s\n", args[0], folder)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a saved preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return store().Delete(args[0])
		},
	})

	return cmd
}
