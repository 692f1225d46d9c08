package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/vecdesk"
	logpkg "github.com/kailas-cloud/vecdesk/internal/logger"
)

func newObjectsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "objects",
		Aliases: []string{"object", "obj"},
		Short:   "Page through and edit the objects of a collection",
	}
	cmd.AddCommand(
		newObjectsPageCmd(a),
		newObjectsGetCmd(a),
		newObjectsCreateCmd(a),
		newObjectsUpdateCmd(a),
		newObjectsDeleteCmd(a),
	)
	return cmd
}

func newObjectsPageCmd(a *app) *cobra.Command {
	var (
		properties []string
		sortBy     string
		limit      int
		offset     int
	)
	cmd := &cobra.Command{
		Use:   "page <collection>",
		Short: "Print one page of objects",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sort, err := parseSortFlag(sortBy)
			if err != nil {
				return err
			}
			rows, err := a.client.GetPage(cmd.Context(), args[0], properties, sort, limit, offset)
			if err != nil {
				return err
			}
			return printJSON(cmd, rows)
		},
	}
	cmd.Flags().StringSliceVarP(&properties, "properties", "p", nil, "properties to fetch (comma-separated)")
	cmd.Flags().StringVar(&sortBy, "sort", "", "sort as property[:asc|desc]")
	cmd.Flags().IntVar(&limit, "limit", 25, "page size")
	cmd.Flags().IntVar(&offset, "offset", 0, "objects to skip")
	return cmd
}

// parseSortFlag reads "property" or "property:desc".
func parseSortFlag(raw string) (*vecdesk.Sort, error) {
	if raw == "" {
		return nil, nil
	}
	prop, order, _ := strings.Cut(raw, ":")
	if prop == "" {
		return nil, fmt.Errorf("--sort %q: property is required", raw)
	}
	return &vecdesk.Sort{Property: prop, Order: order}, nil
}

func newObjectsGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <collection> <id>",
		Short: "Print the properties of one object",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkID(args[1]); err != nil {
				return err
			}
			props, found, err := a.client.GetObjectByID(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("object %s not found in %s", args[1], args[0])
			}
			return printJSON(cmd, props)
		},
	}
}

func newObjectsCreateCmd(a *app) *cobra.Command {
	var data string
	cmd := &cobra.Command{
		Use:   "create <collection> --data '{...}'",
		Short: "Create an object and print its id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			props, err := readProperties(cmd, data)
			if err != nil {
				return err
			}
			id, err := a.client.CreateObject(cmd.Context(), args[0], props)
			if err != nil {
				return err
			}
			return printJSON(cmd, map[string]string{"id": id})
		},
	}
	cmd.Flags().StringVarP(&data, "data", "d", "", "properties as a JSON object, @file or @- for stdin")
	_ = cmd.MarkFlagRequired("data")
	return cmd
}

func newObjectsUpdateCmd(a *app) *cobra.Command {
	var data string
	cmd := &cobra.Command{
		Use:   "update <collection> <id> --data '{...}'",
		Short: "Merge properties into an object",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkID(args[1]); err != nil {
				return err
			}
			props, err := readProperties(cmd, data)
			if err != nil {
				return err
			}
			return a.client.UpdateObject(cmd.Context(), args[0], args[1], props)
		},
	}
	cmd.Flags().StringVarP(&data, "data", "d", "", "properties as a JSON object, @file or @- for stdin")
	_ = cmd.MarkFlagRequired("data")
	return cmd
}

func newObjectsDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <collection> <id>...",
		Short: "Delete objects one by one, stopping at the first failure",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := args[1:]
			for _, id := range ids {
				if err := checkID(id); err != nil {
					return err
				}
			}
			err := a.client.DeleteObjects(cmd.Context(), args[0], ids)
			var de *vecdesk.DeleteError
			if errors.As(err, &de) {
				logpkg.FromContext(cmd.Context()).Warn("Delete stopped early",
					zap.String("collection", args[0]),
					zap.String("failed", de.ID),
					zap.Int("deleted", len(de.Deleted)),
					zap.Int("requested", len(ids)),
				)
				_ = printJSON(cmd, map[string]any{"deleted": de.Deleted, "failed": de.ID})
			}
			return err
		},
	}
}

// checkID rejects identities the store could never have assigned.
func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("invalid object id %q: %w", id, err)
	}
	return nil
}
