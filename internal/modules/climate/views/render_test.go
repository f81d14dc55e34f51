package views

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"testing/fstest"
)

func TestLoadTemplates_success(t *testing.T) {
	err := LoadTemplates()
	if err != nil {
		t.Fatalf("LoadTemplates() = %v; want nil", err)
	}
	if indexTmpl == nil {
		t.Fatal("LoadTemplates() left indexTmpl nil")
	}
}

func TestLoadTemplates_failure_sub(t *testing.T) {
	// Empty FS has no "templates" directory; ParseFS finds no files.
	emptyFS := fstest.MapFS{}
	err := loadTemplatesFromFS(emptyFS, "templates")
	if err == nil {
		t.Fatal("loadTemplatesFromFS(emptyFS, \"templates\") = nil; want error")
	}
}

func TestLoadTemplates_failure_parse(t *testing.T) {
	badFS := fstest.MapFS{
		"templates/index.html": {Data: []byte("{{ .")},
	}
	err := loadTemplatesFromFS(badFS, "templates")
	if err == nil {
		t.Fatal("loadTemplatesFromFS(badFS, \"templates\") = nil; want error")
	}
}

func TestRenderIndex_notLoaded(t *testing.T) {
	prev := indexTmpl
	indexTmpl = nil
	t.Cleanup(func() { indexTmpl = prev })

	var buf bytes.Buffer
	err := RenderIndex(&buf, &IndexData{})
	if err == nil {
		t.Fatal("RenderIndex() = nil; want error when templates not loaded")
	}
	if !strings.Contains(err.Error(), "not loaded") {
		t.Errorf("err = %q; want message containing \"not loaded\"", err.Error())
	}
}

func TestRenderIndex_listsRoutes(t *testing.T) {
	if err := LoadTemplates(); err != nil {
		t.Fatalf("LoadTemplates(): %v", err)
	}

	var buf bytes.Buffer
	if err := RenderIndex(&buf, &IndexData{Title: "Hawaii Climate App", Routes: APIRoutes}); err != nil {
		t.Fatalf("RenderIndex() = %v; want nil", err)
	}
	out := buf.String()
	for _, want := range []string{
		"<!DOCTYPE html>",
		"Welcome to the Hawaii Climate App!",
		"Available Routes:",
		"/api/v1.0/precipitation<br/>",
		"/api/v1.0/stations<br/>",
		"/api/v1.0/tobs<br/>",
		"/api/v1.0/start/&lt;start_date&gt; (ie: /api/v1.0/start/2016-09-01)",
		"/api/v1.0/start_end/&lt;start_date&gt;_&lt;end_date&gt; (ie: /api/v1.0/start_end/2010-10-10_2010-12-24)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q; got %q", want, out)
		}
	}
}

func TestRenderIndex_writeError(t *testing.T) {
	if err := LoadTemplates(); err != nil {
		t.Fatalf("LoadTemplates(): %v", err)
	}

	w := &failingWriter{err: io.ErrClosedPipe}
	err := RenderIndex(w, &IndexData{Title: "x", Routes: APIRoutes})
	if err != io.ErrClosedPipe {
		t.Errorf("RenderIndex() = %v; want %v", err, io.ErrClosedPipe)
	}
}

type failingWriter struct{ err error }

func (f *failingWriter) Write([]byte) (int, error) { return 0, f.err }
