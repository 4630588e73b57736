package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newResolveCmd(root *rootOptions) *cobra.Command {
	var accept, from string

	cmd := &cobra.Command{
		Use:   "resolve <logical>",
		Short: "Print the template file a logical name resolves to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, _, cleanup, err := root.build(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			path, ok, err := r.Resolve(cmd.Context(), args[0], from, accept)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no template for %q", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&accept, "accept", "", "Accept header used to choose between candidates")
	cmd.Flags().StringVar(&from, "from", "", "directory to search instead of the views directory")
	return cmd
}
