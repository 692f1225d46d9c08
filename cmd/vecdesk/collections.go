package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/vecdesk"
)

func newCollectionsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "collections",
		Aliases: []string{"collection", "col"},
		Short:   "List, create and delete collections",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List collections with their object counts",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				cols, err := a.client.ListCollections(cmd.Context())
				if err != nil {
					return err
				}
				return printJSON(cmd, cols)
			},
		},
		newCollectionsCreateCmd(a),
		&cobra.Command{
			Use:   "delete <name>",
			Short: "Delete a collection and all its objects",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.client.DeleteCollection(cmd.Context(), args[0])
			},
		},
	)
	return cmd
}

func newCollectionsCreateCmd(a *app) *cobra.Command {
	var (
		description string
		properties  []string
	)
	cmd := &cobra.Command{
		Use:   "create <name> --property name:type ...",
		Short: "Create a collection",
		Long: "Create a collection. The first letter of the name is upper-cased.\n" +
			"Types: string, text, int, number, boolean, date, each optionally suffixed with [].\n" +
			"Unknown types are stored as text.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schema := vecdesk.CollectionSchema{Name: args[0], Description: description}
			for _, raw := range properties {
				p, err := parsePropertyFlag(raw)
				if err != nil {
					return err
				}
				schema.Properties = append(schema.Properties, p)
			}
			return a.client.CreateCollection(cmd.Context(), schema)
		},
	}
	cmd.Flags().StringVar(&description, "description", "", "collection description")
	cmd.Flags().StringArrayVarP(&properties, "property", "p", nil, "property as name:type (repeatable)")
	return cmd
}

// parsePropertyFlag reads "name:type"; a missing type means text.
func parsePropertyFlag(raw string) (vecdesk.PropertySchema, error) {
	name, dataType, _ := strings.Cut(raw, ":")
	name = strings.TrimSpace(name)
	if name == "" {
		return vecdesk.PropertySchema{}, fmt.Errorf("property %q: name is required", raw)
	}
	if dataType = strings.TrimSpace(dataType); dataType == "" {
		dataType = "text"
	}
	return vecdesk.PropertySchema{Name: name, DataType: dataType}, nil
}
