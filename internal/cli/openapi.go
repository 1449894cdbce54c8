package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Gobd/presence/internal/config"
	"github.com/Gobd/presence/internal/server"
)

func newOpenAPICommand(configPath *string) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "openapi",
		Short: "Print the OpenAPI document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			doc := server.Document(cfg)
			if err := doc.Validate(cmd.Context()); err != nil {
				return fmt.Errorf("invalid OpenAPI document: %w", err)
			}

			var out []byte
			switch format {
			case "json":
				out, err = json.MarshalIndent(doc, "", "  ")
			case "yaml":
				out, err = yaml.Marshal(doc)
			default:
				return fmt.Errorf("unknown format %q (want json or yaml)", format)
			}
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(append(out, '\n'))
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json or yaml")
	return cmd
}
