package stage

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/flarebyte/papyrus/internal/script"
	"github.com/flarebyte/papyrus/internal/storage"
	"github.com/flarebyte/papyrus/internal/storage/mocks"
	"github.com/flarebyte/papyrus/internal/wikitable"
)

const pipelinePage = `<html><body>
<table class="wikitable"><caption>Moons</caption>
<tr><th>Moon</th><th>Planet</th></tr>
<tr><td>Io</td><td>Jupiter[3]</td></tr>
<tr><td>Titan</td><td>Saturn</td></tr>
<tr><td>Phobos, the larger</td><td>Mars</td></tr>
</table>
</body></html>`

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func fixedNow() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

func TestTablePipeline_WritesCSVAndSidecar(t *testing.T) {
	srv := serve(t, http.StatusOK, pipelinePage)
	dir := t.TempDir()
	job := Job{URL: srv.URL, Name: "moons", Selector: "moons", Format: wikitable.FormatCSV, OutDir: dir}

	out, err := RunAll(context.Background(), TablePipeline, NewEnvelope(job, "run-1"), Deps{Sidecar: true, Now: fixedNow})
	if err != nil {
		t.Fatalf("pipeline: %v", err)
	}
	if out.Output != filepath.Join(dir, "moons.csv") {
		t.Fatalf("unexpected output path: %s", out.Output)
	}
	b, err := os.ReadFile(out.Output)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	want := "Moon,Planet\nIo,Jupiter\nTitan,Saturn\n\"Phobos, the larger\",Mars\n"
	if string(b) != want {
		t.Fatalf("unexpected csv\nwant: %q\n got: %q", want, string(b))
	}
	side, err := os.ReadFile(filepath.Join(dir, "moons.meta.yaml"))
	if err != nil {
		t.Fatalf("sidecar: %v", err)
	}
	for _, frag := range []string{"output: moons.csv", "runId: run-1", "generatedAt: \"2026-01-02T03:04:05Z\"", "caption: Moons", "rows: 3"} {
		if !strings.Contains(string(side), frag) {
			t.Fatalf("sidecar missing %q:\n%s", frag, side)
		}
	}
	if out.Stage != publishOutputStage {
		t.Fatalf("unexpected last stage: %s", out.Stage)
	}
}

func TestTablePipeline_LuaAndPublish(t *testing.T) {
	srv := serve(t, http.StatusOK, pipelinePage)
	dir := t.TempDir()
	job := Job{URL: srv.URL, Selector: "0", Format: wikitable.FormatCSV, OutDir: dir}

	st := &mocks.MockStorage{}
	st.On("Put", mock.Anything, "tables/wikitable.csv", mock.Anything, mock.MatchedBy(func(o storage.PutObjectOptions) bool {
		return o.ContentType == "text/csv; charset=utf-8" && o.Metadata["run-id"] == "run-2"
	})).Return(storage.ObjectInfo{Key: "tables/wikitable.csv"}, nil)

	deps := Deps{
		Scripts:       script.NewRows(`row.Planet ~= "Mars"`, `{ string.upper(row.Moon), row.Planet }`, 0),
		Storage:       st,
		StoragePrefix: "tables",
	}
	out, err := RunAll(context.Background(), TablePipeline, NewEnvelope(job, "run-2"), deps)
	if err != nil {
		t.Fatalf("pipeline: %v", err)
	}
	b, err := os.ReadFile(out.Output)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(b) != "Moon,Planet\nIO,Jupiter\nTITAN,Saturn\n" {
		t.Fatalf("unexpected csv: %q", string(b))
	}
	if len(out.Published) != 1 || out.Published[0] != "tables/wikitable.csv" {
		t.Fatalf("unexpected published keys: %v", out.Published)
	}
	st.AssertExpectations(t)
}

func TestTablePipeline_NoTables(t *testing.T) {
	srv := serve(t, http.StatusOK, `<html><body><table><tr><td>x</td></tr></table></body></html>`)
	dir := t.TempDir()
	job := Job{URL: srv.URL, Format: wikitable.FormatCSV, OutDir: dir}
	_, err := RunAll(context.Background(), TablePipeline, NewEnvelope(job, "r"), Deps{})
	if !errors.Is(err, wikitable.ErrNoTables) {
		t.Fatalf("expected ErrNoTables, got %v", err)
	}
	if entries, _ := os.ReadDir(dir); len(entries) != 0 {
		t.Fatalf("expected no files, got %d", len(entries))
	}
}

func TestTablePipeline_HTTPFailure(t *testing.T) {
	srv := serve(t, http.StatusInternalServerError, "boom")
	job := Job{URL: srv.URL, Format: wikitable.FormatCSV, OutDir: t.TempDir()}
	_, err := RunAll(context.Background(), TablePipeline, NewEnvelope(job, "r"), Deps{})
	var se *wikitable.StatusError
	if !errors.As(err, &se) || se.Code != http.StatusInternalServerError {
		t.Fatalf("expected StatusError, got %v", err)
	}
	je := NewJobError("job-1", err)
	if je.Stage != fetchHTMLStage || !strings.Contains(je.Message, "500") {
		t.Fatalf("unexpected job error: %+v", je)
	}
}

func TestRun_UnknownStage(t *testing.T) {
	_, err := Run(context.Background(), "nope", Envelope{}, Deps{})
	if err == nil || err.Error() != "unknown stage: nope" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestError_NoDoubledStagePrefix(t *testing.T) {
	e := &Error{Stage: luaMapStage, Err: errors.New("lua-map: row 2:\n  bad")}
	if e.Error() != "lua-map: row 2: bad" {
		t.Fatalf("unexpected message: %q", e.Error())
	}
	je := NewJobError("j", e)
	if je.Message != "row 2: bad" {
		t.Fatalf("unexpected job message: %q", je.Message)
	}
}

func TestSortJobErrors(t *testing.T) {
	errs := []JobError{{Job: "b", Message: "x"}, {Job: "a", Stage: "s2"}, {Job: "a", Stage: "s1"}}
	SortJobErrors(errs)
	if errs[0].Stage != "s1" || errs[1].Stage != "s2" || errs[2].Job != "b" {
		t.Fatalf("unexpected order: %+v", errs)
	}
}

func TestOutputPath(t *testing.T) {
	got := OutputPath(Job{OutDir: "Files", Format: wikitable.FormatXLSX})
	if got != filepath.Join("Files", "wikitable.xlsx") {
		t.Fatalf("unexpected path: %s", got)
	}
}
