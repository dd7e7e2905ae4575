// Init command runs the Layout Initializer against the configured database
// using the configured schema file.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/localmirror/gqlmirror/internal/schemafile"
	gmirror "github.com/localmirror/gqlmirror/pkg/mirror"
)

var flagSchemaFile string

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the relational mirror from a schema file",
	Long: `Init decomposes the declared schema and brings the configured
database into the resulting relational layout. It is safe to run again
with an unchanged schema file.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringVar(&flagSchemaFile, "schema-file", "", "path to the schema YAML file (default: config's schema_file)")
}

func runInit(cmd *cobra.Command, args []string) error {
	schemaPath := flagSchemaFile
	if schemaPath == "" {
		schemaPath = loadedConfig.SchemaFile
	}
	if schemaPath == "" {
		return fmt.Errorf("no schema file given: pass --schema-file or set schema_file in config.yaml")
	}

	sch, err := schemafile.Load(schemaPath)
	if err != nil {
		return fmt.Errorf("load schema file: %w", err)
	}

	conn, err := openDB()
	if err != nil {
		return err
	}

	if err := gmirror.Initialize(cmd.Context(), conn, sch); err != nil {
		return fmt.Errorf("initialize mirror: %w", err)
	}

	return printResult(map[string]any{"status": "initialized"}, "mirror initialized successfully")
}
