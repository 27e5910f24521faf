// Package metafile writes canonical YAML sidecars describing generated files.
package metafile

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// Ext replaces the extension of the described file.
	Ext = ".meta.yaml"
	// ContentType is the MIME type of a sidecar.
	ContentType = "application/yaml"
)

// PathFor returns the sidecar path for output, e.g. "Files/a.csv" ->
// "Files/a.meta.yaml".
func PathFor(output string) string {
	return strings.TrimSuffix(output, filepath.Ext(output)) + Ext
}

// Marshal returns canonical YAML bytes: "output" first, then "meta" with keys
// sorted at every level.
func Marshal(output string, meta map[string]any) ([]byte, error) {
	top := &yaml.Node{Kind: yaml.MappingNode}
	top.Content = append(top.Content, scalarNode("output"), scalarFrom(filepath.ToSlash(output)))
	top.Content = append(top.Content, scalarNode("meta"), canonicalNode(meta))

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(top); err != nil {
		_ = enc.Close()
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	out := bytes.TrimRight(buf.Bytes(), "\n")
	out = append(out, '\n')
	return out, nil
}

// Write writes the sidecar for output and returns its path.
func Write(output string, meta map[string]any) (string, error) {
	path := PathFor(output)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	b, err := Marshal(filepath.Base(output), meta)
	if err != nil {
		return "", err
	}
	return path, os.WriteFile(path, b, 0o644)
}

func scalarNode(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}

func scalarFrom(v any) *yaml.Node {
	n := &yaml.Node{}
	_ = n.Encode(v)
	return n
}

func canonicalNode(v any) *yaml.Node {
	switch x := v.(type) {
	case nil:
		return &yaml.Node{Kind: yaml.MappingNode}
	case map[string]any:
		return canonicalMapNode(x)
	case []string:
		n := &yaml.Node{Kind: yaml.SequenceNode}
		for _, it := range x {
			n.Content = append(n.Content, scalarFrom(it))
		}
		return n
	case []any:
		n := &yaml.Node{Kind: yaml.SequenceNode}
		for _, it := range x {
			n.Content = append(n.Content, canonicalNode(it))
		}
		return n
	default:
		return scalarFrom(x)
	}
}

func canonicalMapNode(m map[string]any) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		n.Content = append(n.Content, scalarNode(k), canonicalNode(m[k]))
	}
	return n
}
