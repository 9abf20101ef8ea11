package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"mini-mcu/internal/ingest"
	"mini-mcu/internal/service"
)

func newImportCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a master or checkup workbook",
	}
	cmd.AddCommand(newImportMasterCmd(root), newImportCheckupsCmd(root))
	return cmd
}

func newImportMasterCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "master <file.xlsx>",
		Short: "Reconcile a master workbook into the employee directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(root)
			if err != nil {
				return err
			}
			defer a.close()

			file, closeFile, err := openUpload(args[0], root.actor)
			if err != nil {
				return err
			}
			defer closeFile()

			res, err := a.svc.MasterUpload.Upload(cmd.Context(), file)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
}

func newImportCheckupsCmd(root *rootOptions) *cobra.Command {
	var variantName string

	cmd := &cobra.Command{
		Use:   "checkups <file.xlsx>",
		Short: "Insert the rows of a checkup workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			variant, err := ingest.ParseVariant(variantName)
			if err != nil {
				return fmt.Errorf("invalid --variant: %w", err)
			}

			a, err := newApp(root)
			if err != nil {
				return err
			}
			defer a.close()

			file, closeFile, err := openUpload(args[0], root.actor)
			if err != nil {
				return err
			}
			defer closeFile()

			res, err := a.svc.CheckupUpload.Upload(cmd.Context(), file, variant)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().StringVar(&variantName, "variant", string(ingest.VariantAuto), "Workbook layout: auto, standard or anthropometric")
	return cmd
}

func openUpload(path, actor string) (service.UploadFile, func(), error) {
	f, err := os.Open(path)
	if err != nil {
		return service.UploadFile{}, nil, err
	}
	return service.UploadFile{
		Name:   filepath.Base(path),
		Reader: f,
		Actor:  actor,
	}, func() { f.Close() }, nil
}
