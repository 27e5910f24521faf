package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// compileCUE loads and compiles a CUE file at the given path.
func compileCUE(path string) (cue.Value, error) {
	if filepath.Ext(path) != ".cue" {
		return cue.Value{}, errors.New("unsupported config format: expected .cue")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cue.Value{}, fmt.Errorf("failed to read config: %w", err)
	}
	return compileBytes(data)
}

func compileBytes(data []byte) (cue.Value, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data)
	if err := v.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("invalid config: %v", err)
	}
	return v, nil
}

func requireStringField(v cue.Value, name string) (string, error) {
	f := v.LookupPath(cue.ParsePath(name))
	if !f.Exists() {
		return "", fmt.Errorf("missing required field: %s", name)
	}
	if f.Kind() != cue.StringKind {
		return "", fmt.Errorf("invalid type for field: %s (expected string)", name)
	}
	var s string
	if err := f.Decode(&s); err != nil {
		return "", fmt.Errorf("invalid value for %s: %v", name, err)
	}
	return s, nil
}

// optString decodes v.path into dst when it is a string and reports whether
// it did.
func optString(v cue.Value, path string, dst *string) bool {
	f := v.LookupPath(cue.ParsePath(path))
	if !f.Exists() || f.Kind() != cue.StringKind {
		return false
	}
	return f.Decode(dst) == nil
}

func optInt(v cue.Value, path string, dst *int) bool {
	f := v.LookupPath(cue.ParsePath(path))
	if !f.Exists() || f.Kind() != cue.IntKind {
		return false
	}
	return f.Decode(dst) == nil
}

func optBool(v cue.Value, path string, dst *bool) bool {
	f := v.LookupPath(cue.ParsePath(path))
	if !f.Exists() || f.Kind() != cue.BoolKind {
		return false
	}
	return f.Decode(dst) == nil
}
