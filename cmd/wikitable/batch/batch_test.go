package batch

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flarebyte/papyrus/cmd/wikitable/run"
	"github.com/flarebyte/papyrus/internal/config"
	"github.com/flarebyte/papyrus/internal/stage"
)

const lakesPage = `<html><body>
<table class="wikitable"><caption>Lakes</caption>
<tr><th>Lake</th><th>Area</th></tr>
<tr><td>Superior</td><td>82100</td></tr>
<tr><td>Victoria</td><td>68870</td></tr>
</table></body></html>`

func lakesServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/wiki/Lakes" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(lakesPage))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func parse(t *testing.T, src string) config.Batch {
	t.Helper()
	b, err := config.ParseBatchBytes([]byte(src))
	require.NoError(t, err)
	return b
}

func TestRun_WritesEveryJob(t *testing.T) {
	srv := lakesServer(t)
	dir := t.TempDir()
	b := parse(t, `{
  configVersion: "1"
  workers: 2
  tables: [
    { url: "`+srv.URL+`/wiki/Lakes", name: "lakes", selector: "lakes" },
    { url: "`+srv.URL+`/wiki/Lakes", selector: 0, format: "xlsx" },
  ]
}`)
	b.OutDir = dir

	var out bytes.Buffer
	require.NoError(t, Run(t.Context(), &out, b, stage.Deps{}))

	var sum Summary
	require.NoError(t, json.Unmarshal(out.Bytes(), &sum))
	assert.Equal(t, 2, sum.Succeeded)
	assert.Equal(t, 0, sum.Failed)
	require.Len(t, sum.Saved, 2)
	assert.Equal(t, "lakes", sum.Saved[0].Job)
	assert.Equal(t, 2, sum.Saved[0].Rows)

	csv, err := os.ReadFile(filepath.Join(dir, "lakes.csv"))
	require.NoError(t, err)
	assert.Equal(t, "Lake,Area\nSuperior,82100\nVictoria,68870\n", string(csv))
	assert.FileExists(t, filepath.Join(dir, "wikitable-2.xlsx"))
}

func TestRun_KeepGoingPartialFailure(t *testing.T) {
	srv := lakesServer(t)
	b := parse(t, `{
  configVersion: "1"
  errors: mode: "keep-going"
  tables: [
    { url: "`+srv.URL+`/wiki/Lakes", name: "ok" },
    { url: "`+srv.URL+`/wiki/Nope", name: "missing" },
  ]
}`)
	b.OutDir = t.TempDir()

	var out bytes.Buffer
	require.NoError(t, Run(t.Context(), &out, b, stage.Deps{}))

	var sum Summary
	require.NoError(t, json.Unmarshal(out.Bytes(), &sum))
	assert.Equal(t, 1, sum.Succeeded)
	require.Len(t, sum.Errors, 1)
	assert.Equal(t, "missing", sum.Errors[0].Job)
	assert.Equal(t, "fetch-html", sum.Errors[0].Stage)
}

func TestRun_KeepGoingAllFailedExitsNonZero(t *testing.T) {
	srv := lakesServer(t)
	b := parse(t, `{
  configVersion: "1"
  errors: mode: "keep-going"
  tables: [{ url: "`+srv.URL+`/wiki/Nope", name: "missing" }]
}`)
	b.OutDir = t.TempDir()

	err := Run(t.Context(), &bytes.Buffer{}, b, stage.Deps{})
	require.Error(t, err)
	ec, ok := err.(interface{ ExitCode() int })
	require.True(t, ok)
	assert.Equal(t, 1, ec.ExitCode())
}

func TestRun_FailFastPrintsPartialSummary(t *testing.T) {
	srv := lakesServer(t)
	b := parse(t, `{
  configVersion: "1"
  workers: 1
  tables: [
    { url: "`+srv.URL+`/wiki/Lakes", name: "first" },
    { url: "`+srv.URL+`/wiki/Nope", name: "missing" },
    { url: "`+srv.URL+`/wiki/Lakes", name: "never" },
  ]
}`)
	b.OutDir = t.TempDir()

	var out bytes.Buffer
	err := Run(t.Context(), &out, b, stage.Deps{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing: fetch-html: ")

	var sum Summary
	require.NoError(t, json.Unmarshal(out.Bytes(), &sum))
	assert.Equal(t, 1, sum.Succeeded)
	assert.Equal(t, 1, sum.Failed)
	assert.Equal(t, 1, sum.Skipped)
	require.Len(t, sum.Errors, 1)
	assert.Equal(t, "missing", sum.Errors[0].Job)
	assert.NoFileExists(t, filepath.Join(b.OutDir, "never.csv"))
}

func TestApply_ConfigOverridesSettings(t *testing.T) {
	s := &run.Settings{UserAgent: "cli-agent", TimeoutMs: 1000}
	b := config.Batch{
		HTTP:    config.HTTP{UserAgent: "cfg-agent"},
		Lua:     config.Lua{Filter: "true"},
		Sidecar: true,
	}
	deps := Apply(b, s, stage.Deps{})
	require.NotNil(t, deps.Fetcher)
	assert.Equal(t, "cfg-agent", deps.Fetcher.UserAgent)
	assert.Equal(t, "true", deps.Scripts.Filter)
	assert.True(t, deps.Sidecar)
}
