// Copyright (c) 2025 Archmagece
// SPDX-License-Identifier: MIT

package config

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/launchpad-schema.json
var schemaFS embed.FS

// validateSchema checks the raw decoded document against an embedded
// JSON Schema before any struct-level validation runs, the same
// belt-and-suspenders pattern as pkg/synclone/schema_validator.go's
// embedded bulk-clone-schema.json: it catches structurally malformed
// documents (wrong types, unknown top-level keys) with a clearer error
// than a failed struct decode would produce.
func validateSchema(doc map[string]interface{}) error {
	schemaBytes, err := schemaFS.ReadFile("schemas/launchpad-schema.json")
	if err != nil {
		return err
	}

	// Round-trip through encoding/json so the schema validator sees plain
	// JSON values. A document with a map whose keys aren't strings cannot
	// be encoded and is rejected here.
	docJSON, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("document is not representable as JSON: %w", err)
	}

	schemaLoader := gojsonschema.NewBytesLoader(schemaBytes)
	docLoader := gojsonschema.NewBytesLoader(docJSON)

	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("document does not match schema: %s", strings.Join(msgs, "; "))
	}
	return nil
}
