// Inspect commands read back the structural counts and stored data of an
// initialized mirror. Opening the mirror runs the Layout Initializer, so a
// database that has not been initialized yet gets its layout created first;
// the read commands themselves never write.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/localmirror/gqlmirror/internal/schemafile"
	gmirror "github.com/localmirror/gqlmirror/pkg/mirror"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Inspect an initialized mirror",
}

var inspectCountsCmd = &cobra.Command{
	Use:   "counts",
	Short: "Print the total object count and per-type object counts",
	Args:  cobra.NoArgs,
	RunE:  runInspectCounts,
}

var inspectObjectCmd = &cobra.Command{
	Use:   "object <type> <id>",
	Short: "Print one object's primitive fields and resolved links",
	Args:  cobra.ExactArgs(2),
	RunE:  runInspectObject,
}

var inspectConnectionCmd = &cobra.Command{
	Use:   "connection <type> <id> <field>",
	Short: "Print one connection field's pagination state and ordered entries",
	Args:  cobra.ExactArgs(3),
	RunE:  runInspectConnection,
}

func init() {
	inspectCmd.PersistentFlags().StringVar(&flagSchemaFile, "schema-file", "", "path to the schema YAML file (default: config's schema_file)")
	inspectCmd.AddCommand(inspectCountsCmd)
	inspectCmd.AddCommand(inspectObjectCmd)
	inspectCmd.AddCommand(inspectConnectionCmd)
}

func openHandle(cmd *cobra.Command) (*gmirror.Handle, error) {
	schemaPath := flagSchemaFile
	if schemaPath == "" {
		schemaPath = loadedConfig.SchemaFile
	}
	if schemaPath == "" {
		return nil, fmt.Errorf("no schema file given: pass --schema-file or set schema_file in config.yaml")
	}

	sch, err := schemafile.Load(schemaPath)
	if err != nil {
		return nil, fmt.Errorf("load schema file: %w", err)
	}

	conn, err := openDB()
	if err != nil {
		return nil, err
	}

	h, err := gmirror.Open(cmd.Context(), conn, sch)
	if err != nil {
		return nil, fmt.Errorf("open mirror: %w", err)
	}
	return h, nil
}

func runInspectCounts(cmd *cobra.Command, args []string) error {
	h, err := openHandle(cmd)
	if err != nil {
		return err
	}

	total, err := h.ObjectCount(cmd.Context())
	if err != nil {
		return fmt.Errorf("count objects: %w", err)
	}
	byType, err := h.TypeCounts(cmd.Context())
	if err != nil {
		return fmt.Errorf("count objects by type: %w", err)
	}

	result := map[string]any{"total": total, "by_type": byType}
	return printResult(result, fmt.Sprintf("%d objects total: %v", total, byType))
}

func runInspectObject(cmd *cobra.Command, args []string) error {
	typeName, id := args[0], args[1]

	h, err := openHandle(cmd)
	if err != nil {
		return err
	}

	data, err := h.OwnData(cmd.Context(), typeName, id)
	if err != nil {
		return fmt.Errorf("read object: %w", err)
	}

	return printResult(data, fmt.Sprintf("%+v", data))
}

func runInspectConnection(cmd *cobra.Command, args []string) error {
	typeName, id, field := args[0], args[1], args[2]

	h, err := openHandle(cmd)
	if err != nil {
		return err
	}

	page, err := h.Connection(cmd.Context(), typeName, id, field)
	if err != nil {
		return fmt.Errorf("read connection: %w", err)
	}

	return printResult(page, fmt.Sprintf("%+v", page))
}
