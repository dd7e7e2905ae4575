package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"golang.org/x/text/unicode/norm"
)

// canonicalBlob is the stable serialization of {formatVersion, schema} used
// by the Layout Initializer's compatibility check. It must be byte-identical
// for two Schema values that declare the same types/fields in the same
// order, and must differ for any semantic difference.
//
// Object keys come from Go struct fields (fixed declaration order) and from
// the ordered Names()/Fields slices already carried by Schema — there are
// no Go maps on the encode path, so encoding/json's own (incidental, and
// lower-level, UTF-8 byte) key ordering never comes into play. Type and
// field identifiers are NFC-normalized before encoding so that two schemas
// differing only in Unicode representation of the same identifier collapse
// to one blob, matching the spirit of RFC 8785 canonical JSON without
// pulling in a full generic canonicalizer for a fixed, typed shape.
type canonicalTypeDecl struct {
	Kind    string           `json:"kind"`
	Fields  []canonicalField `json:"fields,omitempty"`
	Clauses []string         `json:"clauses,omitempty"`
}

type canonicalField struct {
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	Target string `json:"target,omitempty"`
}

type canonicalSchema struct {
	FormatVersion string                     `json:"formatVersion"`
	Types         []canonicalSchemaTypeEntry `json:"schema"`
}

type canonicalSchemaTypeEntry struct {
	Name string             `json:"name"`
	Decl canonicalTypeDecl `json:"decl"`
}

func normalize(s string) string {
	return norm.NFC.String(s)
}

// CanonicalBlob computes the canonical-JSON metadata blob for {formatVersion,
// schema}, sorted by type name so the blob is independent of declaration
// order (declaration order still drives DDL generation via Decompose; it
// must not leak into the compatibility token, or reordering a schema's type
// declarations without changing its meaning would falsely trigger a
// mismatch error).
func CanonicalBlob(formatVersion string, s *Schema) (string, error) {
	names := s.Names()
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Strings(sorted)

	out := canonicalSchema{FormatVersion: normalize(formatVersion)}
	for _, name := range sorted {
		decl, ok := s.Get(name)
		if !ok {
			return "", fmt.Errorf("schema: type %q vanished during canonicalization", name)
		}
		out.Types = append(out.Types, canonicalSchemaTypeEntry{
			Name: normalize(name),
			Decl: canonicalizeTypeDecl(decl),
		})
	}

	buf, err := marshalNoEscape(out)
	if err != nil {
		return "", fmt.Errorf("schema: canonicalizing blob: %w", err)
	}
	return string(buf), nil
}

func canonicalizeTypeDecl(decl TypeDecl) canonicalTypeDecl {
	out := canonicalTypeDecl{Kind: decl.Kind.String()}
	for _, f := range decl.Fields {
		out.Fields = append(out.Fields, canonicalField{
			Name:   normalize(f.Name),
			Kind:   f.Kind.String(),
			Target: normalize(f.Target),
		})
	}
	for _, c := range decl.Clauses {
		out.Clauses = append(out.Clauses, normalize(c))
	}
	return out
}

// marshalNoEscape marshals v without HTML-escaping '<', '>', and '&', which
// encoding/json.Marshal does by default — that escaping is insignificant
// for our purposes but would otherwise make the blob depend on an
// implementation detail unrelated to schema content.
func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	// json.Encoder.Encode appends a trailing newline; the blob must have no
	// insignificant whitespace.
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
