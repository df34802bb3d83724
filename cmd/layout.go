package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lumipallolabs/metafolder/internal/settings"
)

func newLayoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Inspect or reset a folder's saved layout",
	}
	cmd.AddCommand(newLayoutShowCmd(), newLayoutResetCmd())
	return cmd
}

func newLayoutShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [path]",
		Short: "Print the layout stored for a folder",
		Long: `Print the layout stored for a folder as JSON. Fields the folder never
set show their defaults.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			folder, err := folderArg(args)
			if err != nil {
				return err
			}
			layout, err := settings.NewStore().Load(folder)
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(layout, "", "  ")
			if err != nil {
				return fmt.Errorf("encode layout: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}

func newLayoutResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset [path]",
		Short: "Forget every position and look stored for a folder",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			folder, err := folderArg(args)
			if err != nil {
				return err
			}
			store := settings.NewStore()
			if err := store.Save(folder, settings.Default()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "reset %s\n", store.Path(folder))
			return nil
		},
	}
}
