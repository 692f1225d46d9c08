package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	return nil
}

// readProperties decodes a JSON object from the --data flag, or from the
// file it names when prefixed with "@" ("-" reads stdin).
func readProperties(cmd *cobra.Command, raw string) (map[string]any, error) {
	var data []byte
	switch {
	case raw == "@-":
		var err error
		if data, err = io.ReadAll(cmd.InOrStdin()); err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
	case strings.HasPrefix(raw, "@"):
		var err error
		if data, err = os.ReadFile(raw[1:]); err != nil {
			return nil, fmt.Errorf("reading %s: %w", raw[1:], err)
		}
	default:
		data = []byte(raw)
	}

	var props map[string]any
	if err := json.Unmarshal(data, &props); err != nil {
		return nil, fmt.Errorf("--data must be a JSON object: %w", err)
	}
	if props == nil {
		return nil, errors.New("--data must be a JSON object")
	}
	return props, nil
}
