// Package schemafile loads a declared GraphQL schema from a YAML file into
// a pkg/schema.Schema, preserving the declaration order the file gives.
package schemafile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/localmirror/gqlmirror/pkg/schema"
)

// document is the YAML shape this package accepts: an ordered list of type
// declarations, each either an object (with an ordered field list) or a
// union (with an ordered clause list).
type document struct {
	Types []typeEntry `yaml:"types"`
}

type typeEntry struct {
	Name    string       `yaml:"name"`
	Kind    string       `yaml:"kind"`
	Fields  []fieldEntry `yaml:"fields,omitempty"`
	Clauses []string     `yaml:"clauses,omitempty"`
}

type fieldEntry struct {
	Name   string `yaml:"name"`
	Kind   string `yaml:"kind"`
	Target string `yaml:"target,omitempty"`
}

// Load reads the YAML schema file at path and decodes it into a
// *schema.Schema. Field and type order in the returned Schema matches their
// order in the file.
func Load(path string) (*schema.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schemafile: reading %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML schema data into a *schema.Schema.
func Parse(data []byte) (*schema.Schema, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("schemafile: parsing yaml: %w", err)
	}

	sch := schema.NewSchema()
	for _, te := range doc.Types {
		decl, err := decodeTypeDecl(te)
		if err != nil {
			return nil, err
		}
		if err := sch.Add(te.Name, decl); err != nil {
			return nil, fmt.Errorf("schemafile: %w", err)
		}
	}
	return sch, nil
}

func decodeTypeDecl(te typeEntry) (schema.TypeDecl, error) {
	switch te.Kind {
	case "object":
		fields := make([]schema.Field, 0, len(te.Fields))
		for _, fe := range te.Fields {
			field, err := decodeField(te.Name, fe)
			if err != nil {
				return schema.TypeDecl{}, err
			}
			fields = append(fields, field)
		}
		return schema.NewObjectType(fields...), nil
	case "union":
		return schema.NewUnionType(te.Clauses...), nil
	default:
		return schema.TypeDecl{}, fmt.Errorf("schemafile: type %q has unknown kind %q", te.Name, te.Kind)
	}
}

func decodeField(typeName string, fe fieldEntry) (schema.Field, error) {
	switch fe.Kind {
	case "id":
		return schema.NewIDField(fe.Name), nil
	case "primitive":
		return schema.NewPrimitiveField(fe.Name), nil
	case "node":
		return schema.NewNodeField(fe.Name, fe.Target), nil
	case "connection":
		return schema.NewConnectionField(fe.Name, fe.Target), nil
	default:
		return schema.Field{}, fmt.Errorf("schemafile: type %q field %q has unknown kind %q", typeName, fe.Name, fe.Kind)
	}
}
