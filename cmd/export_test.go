package cmd

import (
	"archive/zip"
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSiteServer(t *testing.T) *httptest.Server {
	t.Helper()

	var srv *httptest.Server
	mux := http.NewServeMux()

	mux.HandleFunc("/novel/demo/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = fmt.Fprint(w, `<html><body data-cat="42"><p class="text-lg font-bold">Demo Novel</p></body></html>`)
	})
	mux.HandleFunc("/wp-json/fiction/v1/chapters", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprintf(w, `[{"post_title":"One","permalink":"%[1]s/demo/1/"},{"post_title":"Two","permalink":"%[1]s/demo/2/"}]`, srv.URL)
	})
	mux.HandleFunc("/demo/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = fmt.Fprintf(w, `<div class="contenta"><p>Body of %s</p></div>`, r.URL.Path)
	})

	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return srv
}

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestExportCommand(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("APPDATA", "")
	srv := newSiteServer(t)
	dir := t.TempDir()

	out, err := runRoot(t, "export", "/novel/demo/", "--ignore-config", "--site", srv.URL,
		"--output", dir, "--format", "zip", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "Found 2 chapters on the site.")
	assert.Contains(t, out, "Dry-run: 2 chapters selected, output "+filepath.Join(dir, "Demo Novel.zip"))
	assert.Contains(t, out, srv.URL+"/demo/2/")

	out, err = runRoot(t, "export", "/novel/demo/", "--ignore-config", "--site", srv.URL,
		"--output", dir, "--format", "zip", "--dry-run=false", "--range", "2-2")
	require.NoError(t, err)
	assert.Contains(t, out, "Export Summary:")
	assert.Contains(t, out, "Chapters: 1\n")
	assert.NotContains(t, out, "Found 2 chapters")

	r, err := zip.OpenReader(filepath.Join(dir, "Demo Novel.zip"))
	require.NoError(t, err)
	defer r.Close()

	var names []string
	for _, f := range r.File {
		names = append(names, f.Name)
	}
	assert.Equal(t, "0002_two.html,info.yaml", strings.Join(names, ","))
}
