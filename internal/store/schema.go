package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// ErrInvalidSnapshot is matched by every snapshot validation failure.
var ErrInvalidSnapshot = errors.New("invalid snapshot")

// InvalidSnapshotError reports why stored snapshot JSON was rejected.
type InvalidSnapshotError struct {
	Err error
}

func (e *InvalidSnapshotError) Error() string {
	return fmt.Sprintf("invalid snapshot: %v", e.Err)
}

func (e *InvalidSnapshotError) Unwrap() error { return e.Err }

func (e *InvalidSnapshotError) Is(target error) bool { return target == ErrInvalidSnapshot }

const snapshotSchemaURL = "schema://quickspeak/snapshot.json"

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func nullable(t string) []any { return []any{t, "null"} }

// snapshotSchema describes the persisted SnapshotData layout.
func snapshotSchema() map[string]any {
	str := map[string]any{"type": "string"}
	boolean := map[string]any{"type": "boolean"}
	nonNegInt := map[string]any{"type": "integer", "minimum": 0}

	language := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name":         str,
			"country_code": map[string]any{"type": "string", "minLength": 2},
			"native":       boolean,
		},
		"required": []any{"name", "country_code"},
	}
	saved := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"speaker_id":  nonNegInt,
			"name":        str,
			"language":    str,
			"flag":        str,
			"avatar_seed": str,
		},
		"required": []any{"speaker_id", "name"},
	}
	message := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id":           map[string]any{"type": "integer", "minimum": 1},
			"sender_id":    map[string]any{"type": "string", "minLength": 1},
			"content":      str,
			"timestamp_ms": map[string]any{"type": "integer"},
		},
		"required": []any{"id", "sender_id", "content"},
	}
	chat := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id":              map[string]any{"type": "string", "minLength": 1},
			"speaker_id":      nonNegInt,
			"speaker_name":    str,
			"messages":        map[string]any{"type": nullable("array"), "items": message},
			"last_message_ms": map[string]any{"type": "integer"},
			"has_unread":      boolean,
		},
		"required": []any{"id", "speaker_id"},
	}
	achievement := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id":          map[string]any{"type": "string", "minLength": 1},
			"title":       str,
			"unlocked":    boolean,
			"unlocked_ms": map[string]any{"type": nullable("integer")},
		},
		"required": []any{"id"},
	}
	user := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"profile": map[string]any{"type": "object"},
			"settings": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"theme_mode":   map[string]any{"type": "string", "enum": []any{"system", "manual"}},
					"speech_speed": map[string]any{"type": "number", "minimum": 0.5, "maximum": 2.0},
				},
			},
			"stats":        map[string]any{"type": "object"},
			"achievements": map[string]any{"type": nullable("array"), "items": achievement},
		},
		"required": []any{"profile", "settings", "stats"},
	}

	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"version":        map[string]any{"type": "integer", "minimum": 1},
			"app_version":    str,
			"languages":      map[string]any{"type": nullable("array"), "items": language},
			"saved_speakers": map[string]any{"type": nullable("array"), "items": saved},
			"chats":          map[string]any{"type": nullable("array"), "items": chat},
			"user":           user,
		},
		"required": []any{"version"},
	}
}

// getCompiledSchema compiles the snapshot schema once.
func getCompiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The jsonschema library expects a parsed JSON value (any), not raw bytes.
		// Marshal then unmarshal to get a clean any representation.
		defBytes, err := json.Marshal(snapshotSchema())
		if err != nil {
			compileErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		var defParsed any
		if err := json.Unmarshal(defBytes, &defParsed); err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(snapshotSchemaURL, defParsed); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(snapshotSchemaURL)
	})
	return compiledSchema, compileErr
}

// validateSnapshot checks raw snapshot JSON against the schema.
func validateSnapshot(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return &InvalidSnapshotError{Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	compiled, err := getCompiledSchema()
	if err != nil {
		return fmt.Errorf("compile snapshot schema: %w", err)
	}

	if err := compiled.Validate(parsed); err != nil {
		return &InvalidSnapshotError{Err: fmt.Errorf("schema validation failed: %w", err)}
	}
	return nil
}
