package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/poflow/internal/archive"
	"github.com/MrJamesThe3rd/poflow/internal/document"
	"github.com/MrJamesThe3rd/poflow/internal/purchaseorder"
)

var archiveOut string

var archiveCmd = &cobra.Command{
	Use:   "archive <po-number>...",
	Short: "Render the active revision of each PO and store the PDF in the archive",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		archiver := a.Archiver
		if archiveOut != "" {
			archiver = archive.New(archive.NewFS(archiveOut), archive.WithLogger(a.Log))
		}

		if !archiver.Enabled() {
			return fmt.Errorf("archiving is disabled: set ARCHIVE_ENABLED or pass --out")
		}

		ctx := cmd.Context()

		for _, arg := range args {
			number, err := strconv.ParseInt(arg, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid po number %q: %w", arg, err)
			}

			pos, err := a.PurchaseOrders.List(ctx, purchaseorder.ListFilter{PONumber: &number})
			if err != nil {
				return err
			}

			if len(pos) == 0 {
				return fmt.Errorf("PO %06d: %w", number, purchaseorder.ErrNotFound)
			}

			detail, err := a.PurchaseOrders.Get(ctx, pos[0].ID)
			if err != nil {
				return err
			}

			data, err := a.Renderer.Render(detail)
			if err != nil {
				return err
			}

			loc := archiver.Save(ctx, document.Subdir(detail), document.Filename(detail.PurchaseOrder), data)
			if loc == "" {
				return fmt.Errorf("PO %06d: archive write failed", number)
			}

			fmt.Fprintln(cmd.OutOrStdout(), loc)
		}

		return nil
	},
}

func init() {
	archiveCmd.Flags().StringVar(&archiveOut, "out", "", "write to this directory instead of the configured archive")
}
