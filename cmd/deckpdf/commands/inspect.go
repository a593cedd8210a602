package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	deckpdf "github.com/porticus-lab/go-deck-pdf"
)

// inspect <file>: print page count and dimensions of a PDF.
func inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file.pdf>",
		Short: "Show page count and page sizes of a PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			info, err := deckpdf.Inspect(data)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "File:  %s\n", args[0])
			fmt.Fprintf(out, "Pages: %d\n", info.Pages)
			if len(info.Dims) > 0 {
				fmt.Fprintln(out)
				fmt.Fprintln(out, "Page dimensions:")
				for i, d := range info.Dims {
					fmt.Fprintf(out, "  Page %d: %.0f x %.0f pt\n", i+1, d.Width, d.Height)
				}
			}
			return nil
		},
	}
}
