package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLogsCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "List and undo upload batches",
	}
	cmd.AddCommand(newLogsListCmd(root), newLogsUndoCmd(root), newLogsPurgeCmd(root))
	return cmd
}

func newLogsListCmd(root *rootOptions) *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored upload logs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch kind {
			case "", "master", "checkups":
			default:
				return fmt.Errorf("invalid --kind %q: want master or checkups", kind)
			}

			a, err := newApp(root)
			if err != nil {
				return err
			}
			defer a.close()

			list, err := a.svc.UploadLog.List(cmd.Context(), kind)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), list)
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "Only master or checkups logs")
	return cmd
}

func newLogsUndoCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "undo <log-name>...",
		Short: "Delete the checkups inserted by the named batches",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(root)
			if err != nil {
				return err
			}
			defer a.close()

			results, err := a.svc.UploadLog.UndoMany(cmd.Context(), args)
			if err != nil {
				return err
			}
			if err := printJSON(cmd.OutOrStdout(), results); err != nil {
				return err
			}
			for _, r := range results {
				if r.Error != "" {
					return fmt.Errorf("undo %s: %s", r.Name, r.Error)
				}
			}
			return nil
		},
	}
}

func newLogsPurgeCmd(root *rootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Undo every checkup batch and remove its log",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("purge deletes every uploaded checkup; pass --yes to confirm")
			}

			a, err := newApp(root)
			if err != nil {
				return err
			}
			defer a.close()

			res, err := a.svc.UploadLog.PurgeCheckupLogs(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the purge")
	return cmd
}
