package cli

import (
	"context"
	"errors"

	"github.com/reallyasi9/nthperm/internal/server"
	"github.com/spf13/cobra"
)

func (c *CLI) newServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve permutation lookups over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = c.cfg.Addr
			}
			err := server.New(loggerFromContext(cmd.Context())).ListenAndServe(cmd.Context(), addr)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen `address`")
	return cmd
}
