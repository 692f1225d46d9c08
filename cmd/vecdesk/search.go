package main

import (
	"github.com/spf13/cobra"

	"github.com/kailas-cloud/vecdesk"
)

func newSearchCmd(a *app) *cobra.Command {
	var (
		searchType string
		limit      int
		properties []string
		alpha      float64
	)
	cmd := &cobra.Command{
		Use:   "search <collection> <query>",
		Short: "Run a bm25, vector or hybrid search",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := vecdesk.SearchRequest{
				Collection: args[0],
				Query:      args[1],
				Type:       vecdesk.SearchType(searchType),
				Limit:      limit,
				Properties: properties,
			}
			if cmd.Flags().Changed("alpha") {
				req.Alpha = &alpha
			}
			rows, err := a.client.Search(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(cmd, rows)
		},
	}
	cmd.Flags().StringVarP(&searchType, "type", "t", string(vecdesk.SearchHybrid), "bm25, vector or hybrid")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum results (default from config)")
	cmd.Flags().StringSliceVarP(&properties, "properties", "p", nil, "properties to match on (bm25, hybrid)")
	cmd.Flags().Float64Var(&alpha, "alpha", 0.5, "hybrid weight: 0 keyword only, 1 vector only")
	return cmd
}
