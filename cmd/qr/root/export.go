package root

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"questrank/internal/engine"
)

func newExportCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print the full state as JSON or YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := openService(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			data, err := encodeExport(svc.State(), format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "o", "json", "Output format (json|yaml)")
	return cmd
}

// encodeExport renders the snapshot with its persisted field names.
func encodeExport(st engine.AppState, format string) ([]byte, error) {
	payload, err := engine.EncodeState(st)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(format) {
	case "json":
		var doc any
		if err := json.Unmarshal(payload, &doc); err != nil {
			return nil, err
		}
		out, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(out, '\n'), nil
	case "yaml", "yml":
		var doc any
		if err := yaml.Unmarshal(payload, &doc); err != nil {
			return nil, fmt.Errorf("export yaml: %w", err)
		}
		return yaml.Marshal(doc)
	default:
		return nil, fmt.Errorf("unknown format %q (json|yaml)", format)
	}
}
