package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--env", "test"}, args...))
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, _, err := run(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "searchai ") {
		t.Errorf("output = %q", out)
	}
}

func TestSearchCommand_DryRun(t *testing.T) {
	out, _, err := run(t, "search", "housing",
		"--zip", "94103", "--radius", "10", "--cause", "housing", "--dry-run")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	want := `{"query":"housing","location":{"zip":"94103","radius_miles":10},` +
		`"filters":{"cause":["housing"]},"sort":"relevance","page":1,"limit":12}`
	if strings.TrimSpace(out) != want {
		t.Errorf("dry run:\ngot:  %s\nwant: %s", out, want)
	}
}

func TestSearchCommand_RejectsUnknownFlags(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"search", "--cause", "astrology", "--dry-run"}, `unknown cause "astrology"`},
		{[]string{"search", "--sort", "price", "--dry-run"}, `unknown sort order "price"`},
		{[]string{"search", "--page", "0", "--dry-run"}, "--page must be >= 1"},
	}
	for _, tt := range tests {
		_, _, err := run(t, tt.args...)
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%v: err = %v, want %q", tt.args, err, tt.want)
		}
	}
}

func TestSearchCommand_PrintsCards(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"results":[{"name":"Food Bank","location":{"city":"Austin"},"ratings":{"avg_rating":5}}]}`)
	}))
	defer upstream.Close()

	out, _, err := run(t, "--base-url", upstream.URL, "search", "food")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if !strings.Contains(out, "Food Bank  ★ 5\n") || !strings.Contains(out, "📍 Austin") {
		t.Errorf("output:\n%s", out)
	}
}

func TestSearchCommand_ErrorState(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, "server error")
	}))
	defer upstream.Close()

	_, errOut, err := run(t, "--base-url", upstream.URL, "search", "food")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(errOut, "500") || !strings.Contains(errOut, "server error") {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestRoot_InvalidBaseURL(t *testing.T) {
	_, _, err := run(t, "--base-url", "not a url", "search", "--dry-run")
	if err == nil || !strings.Contains(err.Error(), "invalid --base-url") {
		t.Errorf("err = %v", err)
	}
}
