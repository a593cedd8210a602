package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/porticus-lab/go-deck-pdf/internal/assets"
)

// assets <manifest>: copy the files a deck needs into ./assets.
func assetsCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "assets <manifest.json>",
		Short: "Retrieve deck assets from local or remote sources",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := assets.LoadManifest(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if assets.HasRemote(entries) {
				keys, err := assets.AgentKeys(ctx)
				if err != nil {
					logger.Warn("assets: could not list SSH keys, ssh-agent may not be running", "output", keys)
				} else {
					logger.Info("assets: SSH keys available for scp", "keys", keys)
				}
			}

			sum := assets.NewRetriever(dir, logger).Run(ctx, entries)
			fmt.Fprintln(cmd.OutOrStdout(), sum)
			if sum.Failed > 0 {
				return fmt.Errorf("%d of %d entries failed", sum.Failed, len(entries))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "assets", "destination root")
	return cmd
}
