package script

import (
	"context"
	"fmt"
	"time"

	lua "github.com/yuin/gopher-lua"
)

const (
	filterStage = "lua-filter"
	mapStage    = "lua-map"
)

// Rows runs an optional filter and an optional map script over table rows.
//
// Both scripts see the globals row (header -> cell), cells (array), index
// (1-based) and headers. The filter keeps rows for which it returns a truthy
// value. The map returns an array of cells, a table keyed by header, or nil to
// drop the row.
type Rows struct {
	Filter  string
	Map     string
	Timeout time.Duration
}

// NewRows builds a Rows; timeoutMs <= 0 uses the default per-row limit.
func NewRows(filter, mapCode string, timeoutMs int) *Rows {
	if timeoutMs <= 0 {
		timeoutMs = defaultTimeoutMs
	}
	return &Rows{Filter: filter, Map: mapCode, Timeout: time.Duration(timeoutMs) * time.Millisecond}
}

// Enabled reports whether any script is set.
func (r *Rows) Enabled() bool { return r != nil && (r.Filter != "" || r.Map != "") }

// ApplyFilter returns the rows the filter keeps.
func (r *Rows) ApplyFilter(ctx context.Context, headers []string, rows [][]string) ([][]string, error) {
	if r == nil || r.Filter == "" {
		return rows, nil
	}
	out := make([][]string, 0, len(rows))
	accept := func(int, lua.LValue) error { return nil }
	err := r.each(ctx, filterStage, r.Filter, headers, rows, accept, func(i int, ret lua.LValue) {
		if lua.LVAsBool(ret) {
			out = append(out, rows[i])
		}
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ApplyMap rewrites every row with the map script. Results are aligned to
// len(headers).
func (r *Rows) ApplyMap(ctx context.Context, headers []string, rows [][]string) ([][]string, error) {
	if r == nil || r.Map == "" {
		return rows, nil
	}
	out := make([][]string, 0, len(rows))
	err := r.each(ctx, mapStage, r.Map, headers, rows, func(i int, ret lua.LValue) error {
		switch ret.Type() {
		case lua.LTNil, lua.LTTable:
			return nil
		default:
			return fmt.Errorf("%s: row %d: expected table or nil, got %s", mapStage, i+1, ret.Type())
		}
	}, func(_ int, ret lua.LValue) {
		if tbl, ok := ret.(*lua.LTable); ok {
			out = append(out, tableToCells(tbl, headers))
		}
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// each compiles code once and calls it for every row under a per-row
// timeout. check may reject a result; keep consumes accepted ones.
func (r *Rows) each(ctx context.Context, stage, code string, headers []string, rows [][]string, check func(int, lua.LValue) error, keep func(int, lua.LValue)) error {
	L := newSandboxState()
	defer L.Close()

	fn, err := compileSnippet(L, code)
	if err != nil {
		return fmt.Errorf("%s: %v", stage, err)
	}
	L.SetGlobal("headers", toLValue(L, headers))

	for i, cells := range rows {
		L.SetGlobal("row", toLValue(L, rowByHeader(headers, cells)))
		L.SetGlobal("cells", toLValue(L, cells))
		L.SetGlobal("index", toLValue(L, i+1))

		ret, err := r.call(ctx, L, fn)
		if err != nil {
			if isTimeoutError(err) {
				return fmt.Errorf("%s: row %d: %s", stage, i+1, sandboxTimeoutViolation)
			}
			return fmt.Errorf("%s: row %d: %v", stage, i+1, err)
		}
		if err := check(i, ret); err != nil {
			return err
		}
		keep(i, ret)
	}
	return nil
}

func (r *Rows) call(ctx context.Context, L *lua.LState, fn *lua.LFunction) (lua.LValue, error) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = defaultTimeoutMs * time.Millisecond
	}
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	L.SetContext(cctx)
	defer L.RemoveContext()

	L.Push(fn)
	if err := L.PCall(0, 1, nil); err != nil {
		return lua.LNil, err
	}
	ret := L.Get(-1)
	L.Pop(1)
	return ret, nil
}

// rowByHeader maps header names to cells; the first column wins on duplicate
// headers.
func rowByHeader(headers, cells []string) map[string]string {
	m := make(map[string]string, len(headers))
	for i, h := range headers {
		if _, dup := m[h]; dup {
			continue
		}
		if i < len(cells) {
			m[h] = cells[i]
		} else {
			m[h] = ""
		}
	}
	return m
}

// tableToCells reads an array result positionally, otherwise by header name.
func tableToCells(tbl *lua.LTable, headers []string) []string {
	out := make([]string, len(headers))
	if tbl.Len() > 0 {
		for i := range out {
			out[i] = cellString(tbl.RawGetInt(i + 1))
		}
		return out
	}
	for i, h := range headers {
		out[i] = cellString(tbl.RawGetString(h))
	}
	return out
}
