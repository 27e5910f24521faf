// Package config reads batch job files (.cue) and environment settings.
package config

import (
	"fmt"

	"cuelang.org/go/cue"
)

const (
	ErrorsFailFast  = "fail-fast"
	ErrorsKeepGoing = "keep-going"
)

// Batch is a parsed batch job file. A file may describe table jobs, QR jobs
// or both; each command reads its own list.
type Batch struct {
	ConfigVersion string
	OutDir        string
	Workers       int
	ErrorsMode    string
	Sidecar       bool
	HTTP          HTTP
	Lua           Lua
	Tables        []TableJob
	Codes         []CodeJob
}

// HTTP holds optional fetch settings.
type HTTP struct {
	UserAgent    string
	TimeoutMs    int
	HasTimeoutMs bool
}

// Lua holds optional row scripts.
type Lua struct {
	Filter    string
	Map       string
	TimeoutMs int
}

// TableJob describes one table download.
type TableJob struct {
	URL      string
	Name     string
	Selector string
	Format   string
}

// CodeJob describes one QR code.
type CodeJob struct {
	Payload string
	Name    string
	Format  string
	Scale   int
}

// ParseBatch compiles the CUE file at path and extracts a Batch.
// configVersion is required and must be supported.
func ParseBatch(path string) (Batch, error) {
	v, err := compileCUE(path)
	if err != nil {
		return Batch{}, err
	}
	return parseBatchValue(v)
}

// ParseBatchBytes is ParseBatch over in-memory CUE source.
func ParseBatchBytes(data []byte) (Batch, error) {
	v, err := compileBytes(data)
	if err != nil {
		return Batch{}, err
	}
	return parseBatchValue(v)
}

func parseBatchValue(v cue.Value) (Batch, error) {
	version, err := requireStringField(v, "configVersion")
	if err != nil {
		return Batch{}, err
	}
	if err := checkConfigVersion(version); err != nil {
		return Batch{}, err
	}
	b := Batch{ConfigVersion: version, ErrorsMode: ErrorsFailFast}
	optString(v, "outDir", &b.OutDir)
	optInt(v, "workers", &b.Workers)
	optBool(v, "sidecar", &b.Sidecar)
	if optString(v, "errors.mode", &b.ErrorsMode) {
		if b.ErrorsMode != ErrorsFailFast && b.ErrorsMode != ErrorsKeepGoing {
			return Batch{}, fmt.Errorf("invalid errors.mode: %q (expected %s or %s)", b.ErrorsMode, ErrorsFailFast, ErrorsKeepGoing)
		}
	}
	b.HTTP = parseHTTPSection(v)
	b.Lua = parseLuaSection(v)

	if b.Tables, err = parseTableJobs(v); err != nil {
		return Batch{}, err
	}
	if b.Codes, err = parseCodeJobs(v); err != nil {
		return Batch{}, err
	}
	return b, nil
}

func parseHTTPSection(v cue.Value) HTTP {
	var h HTTP
	optString(v, "http.userAgent", &h.UserAgent)
	h.HasTimeoutMs = optInt(v, "http.timeoutMs", &h.TimeoutMs)
	return h
}

func parseLuaSection(v cue.Value) Lua {
	var l Lua
	optString(v, "lua.filter", &l.Filter)
	optString(v, "lua.map", &l.Map)
	optInt(v, "lua.timeoutMs", &l.TimeoutMs)
	return l
}

func parseTableJobs(v cue.Value) ([]TableJob, error) {
	var jobs []TableJob
	err := eachListItem(v, "tables", func(i int, item cue.Value) error {
		var j TableJob
		if !optString(item, "url", &j.URL) || j.URL == "" {
			return fmt.Errorf("tables[%d]: missing required field: url", i)
		}
		optString(item, "name", &j.Name)
		optString(item, "selector", &j.Selector)
		optString(item, "format", &j.Format)
		// selector: 2 is as natural as selector: "2"
		var idx int
		if optInt(item, "selector", &idx) {
			j.Selector = fmt.Sprint(idx)
		}
		jobs = append(jobs, j)
		return nil
	})
	return jobs, err
}

func parseCodeJobs(v cue.Value) ([]CodeJob, error) {
	var jobs []CodeJob
	err := eachListItem(v, "codes", func(i int, item cue.Value) error {
		var j CodeJob
		if !optString(item, "payload", &j.Payload) || j.Payload == "" {
			return fmt.Errorf("codes[%d]: missing required field: payload", i)
		}
		optString(item, "name", &j.Name)
		optString(item, "format", &j.Format)
		optInt(item, "scale", &j.Scale)
		jobs = append(jobs, j)
		return nil
	})
	return jobs, err
}

func eachListItem(v cue.Value, path string, fn func(int, cue.Value) error) error {
	lv := v.LookupPath(cue.ParsePath(path))
	if !lv.Exists() {
		return nil
	}
	if lv.Kind() != cue.ListKind {
		return fmt.Errorf("invalid type for field: %s (expected list)", path)
	}
	it, err := lv.List()
	if err != nil {
		return fmt.Errorf("invalid value for %s: %v", path, err)
	}
	for i := 0; it.Next(); i++ {
		if err := fn(i, it.Value()); err != nil {
			return err
		}
	}
	return nil
}
