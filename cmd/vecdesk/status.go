package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	logpkg "github.com/kailas-cloud/vecdesk/internal/logger"
)

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check that the store and the query vectorizer respond",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			h, err := a.client.Health(cmd.Context())
			if err != nil {
				return err
			}
			if err := printJSON(cmd, h); err != nil {
				return err
			}
			if h.Status != "ok" {
				logpkg.FromContext(cmd.Context()).Warn("Store not healthy",
					zap.String("endpoint", a.client.CurrentEndpoint()),
					zap.String("status", h.Status),
					zap.Any("errors", h.Errors),
				)
				return fmt.Errorf("%s is %s", a.client.CurrentEndpoint(), h.Status)
			}
			return nil
		},
	}
}
