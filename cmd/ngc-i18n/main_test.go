package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"ngc-i18n/packages/core/src/cache"
	"ngc-i18n/packages/core/src/config"
	"ngc-i18n/packages/core/src/render3/i18n"
	"ngc-i18n/packages/core/src/render3/interfaces"
)

const bundleJSON = `{
  "locale": "fr",
  "translations": {
    "greeting": "Bonjour \uFFFD0\uFFFD !",
    "a.b": "dotted",
    "count": 3
  }
}`

func TestLoadBundleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fr.json")
	if err := os.WriteFile(path, []byte(bundleJSON), 0o600); err != nil {
		t.Fatal(err)
	}
	bundle, err := LoadBundle(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}

	if got := bundle.Locale(); got != "fr" {
		t.Errorf("Locale() = %q, want fr", got)
	}
	if got, err := bundle.Message("greeting"); err != nil || got != "Bonjour "+i18n.Marker+"0"+i18n.Marker+" !" {
		t.Errorf("Message(greeting) = %q, %v", got, err)
	}
	if got, err := bundle.Message("a.b"); err != nil || got != "dotted" {
		t.Errorf("Message(a.b) = %q, %v", got, err)
	}
	if _, err := bundle.Message("count"); err == nil {
		t.Error("Message(count) accepted a number")
	}
	if _, err := bundle.Message("missing"); err == nil {
		t.Error("Message(missing) returned no error")
	}
	if diff := cmp.Diff([]string{"greeting", "a.b", "count"}, bundle.IDs()); diff != "" {
		t.Errorf("IDs() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadBundleHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/fr.json" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(bundleJSON))
	}))
	defer srv.Close()

	bundle, err := LoadBundle(context.Background(), srv.URL+"/fr.json")
	if err != nil {
		t.Fatal(err)
	}
	if got := bundle.Locale(); got != "fr" {
		t.Errorf("Locale() = %q, want fr", got)
	}
	if _, err := LoadBundle(context.Background(), srv.URL+"/de.json"); err == nil {
		t.Error("LoadBundle() of a missing bundle returned no error")
	}
}

func TestLoadBundleInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`{"translations": `), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadBundle(context.Background(), path); err == nil {
		t.Error("LoadBundle() accepted invalid JSON")
	}
}

func TestParseAssignments(t *testing.T) {
	got, err := parseAssignments([]string{"0=a", "2=b=c", "1="})
	if err != nil {
		t.Fatal(err)
	}
	want := map[int]string{0: "a", 1: "", 2: "b=c"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("parseAssignments() mismatch (-want +got):\n%s", diff)
	}
	if maxKey(got) != 2 || maxKey(nil) != -1 {
		t.Errorf("maxKey() = %d, %d", maxKey(got), maxKey(nil))
	}

	for _, bad := range []string{"x", "a=1", "-1=x"} {
		if _, err := parseAssignments([]string{bad}); err == nil {
			t.Errorf("parseAssignments(%q) returned no error", bad)
		}
	}
}

func TestRunCompileText(t *testing.T) {
	settings := config.Settings{Decls: 2, ParentIndex: -1, Format: "text"}
	var out bytes.Buffer
	err := runCompile(context.Background(), &out, nil, settings, "Hello "+i18n.Marker+"0"+i18n.Marker, i18n.RootTemplate)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"create:", "update:", "lView[24]"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output does not contain %q:\n%s", want, out.String())
		}
	}
}

func TestRunCompileJSONCache(t *testing.T) {
	ctx := context.Background()
	store, err := cache.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	settings := config.Settings{Decls: 2, ParentIndex: -1, Format: "json"}
	message := "{" + i18n.Marker + "0" + i18n.Marker + ", select, other {x}}"

	var first, second bytes.Buffer
	if err := runCompile(ctx, &first, store, settings, message, i18n.RootTemplate); err != nil {
		t.Fatal(err)
	}
	if err := runCompile(ctx, &second, store, settings, message, i18n.RootTemplate); err != nil {
		t.Fatal(err)
	}
	if n, err := store.Count(ctx); err != nil || n != 1 {
		t.Errorf("Count() = %d, %v, want 1", n, err)
	}
	if first.String() != second.String() {
		t.Errorf("cached output differs:\n%s\nvs\n%s", first.String(), second.String())
	}
	if !strings.Contains(first.String(), `"icus"`) {
		t.Errorf("output has no ICUs:\n%s", first.String())
	}

	settings.ParentIndex = interfaces.HeaderOffset + 1
	var nested bytes.Buffer
	if err := runCompile(ctx, &nested, store, settings, message, i18n.RootTemplate); err != nil {
		t.Fatal(err)
	}
	if n, err := store.Count(ctx); err != nil || n != 2 {
		t.Errorf("Count() after a parent change = %d, %v, want 2", n, err)
	}
	if nested.String() == first.String() {
		t.Error("a different parent index was served from the cache")
	}
}

func TestRunCompileError(t *testing.T) {
	settings := config.Settings{Decls: 2, ParentIndex: -1, Format: "text"}
	err := runCompile(context.Background(), &bytes.Buffer{}, nil, settings, "a"+i18n.Marker+"#1"+i18n.Marker, i18n.RootTemplate)
	if err == nil {
		t.Fatal("runCompile() accepted an unclosed placeholder")
	}
}

func TestRunCompileRejectsNegativeDecls(t *testing.T) {
	for _, format := range []string{"text", "json"} {
		settings := config.Settings{Decls: -1, ParentIndex: -1, Format: format}
		if err := runCompile(context.Background(), &bytes.Buffer{}, nil, settings, "a", i18n.RootTemplate); err == nil {
			t.Errorf("runCompile() with %s output accepted a negative declaration count", format)
		}
	}
}

func TestIndent(t *testing.T) {
	if got := indent(""); got != "  (none)" {
		t.Errorf("indent(\"\") = %q", got)
	}
	if got, want := indent("a\nb\n"), "  a\n  b"; got != want {
		t.Errorf("indent() = %q, want %q", got, want)
	}
}
