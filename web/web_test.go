package web

import (
	"bytes"
	"errors"
	"io"
	"log"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/lemonberrylabs/truthtable/pkg/engine"
	"github.com/lemonberrylabs/truthtable/pkg/store"
	"github.com/lemonberrylabs/truthtable/pkg/types"
)

func setupTestApp(t *testing.T) (*fiber.App, *store.Store) {
	t.Helper()
	s := store.New()
	h := New(s, engine.New(5))
	app := fiber.New()
	h.Register(app)
	return app, s
}

func get(t *testing.T, app *fiber.App, path string) (int, string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", path, nil), -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func TestDashboardEmpty(t *testing.T) {
	app, _ := setupTestApp(t)

	code, html := get(t, app, "/ui")
	if code != 200 {
		t.Fatalf("expected 200, got %d: %s", code, html)
	}
	if !strings.Contains(html, "Dashboard") {
		t.Error("expected Dashboard in response")
	}
	if !strings.Contains(html, "No expressions evaluated yet") {
		t.Error("expected empty state message")
	}
	if !strings.Contains(html, "Up to 5 variables") {
		t.Error("expected variable limit in footer")
	}
}

func TestEvaluateRedirectsToTable(t *testing.T) {
	app, s := setupTestApp(t)

	form := url.Values{"expression": {"(a AND b)"}}
	req := httptest.NewRequest("POST", "/ui/evaluate", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 303 {
		t.Fatalf("expected 303, got %d", resp.StatusCode)
	}

	list := s.List()
	if len(list) != 1 {
		t.Fatalf("expected 1 evaluation, got %d", len(list))
	}
	loc := resp.Header.Get("Location")
	if loc != "/ui/tables/"+list[0].ID {
		t.Fatalf("unexpected redirect %q", loc)
	}

	code, html := get(t, app, loc)
	if code != 200 {
		t.Fatalf("expected 200, got %d: %s", code, html)
	}
	if !strings.Contains(html, "<th>(a AND b)</th>") {
		t.Error("expected canonical header")
	}
	if n := strings.Count(html, `<td class="true">True</td>`); n != 5 {
		t.Errorf("expected 5 True cells, got %d", n)
	}
}

func TestFailedEvaluationPage(t *testing.T) {
	app, s := setupTestApp(t)

	res, err := engine.New(5).Evaluate("(a AND)")
	ev := s.Record("(a AND)", res, err)

	code, html := get(t, app, "/ui/tables/"+ev.ID)
	if code != 200 {
		t.Fatalf("expected 200, got %d", code)
	}
	if !strings.Contains(html, "FAILED") {
		t.Error("expected FAILED state")
	}
	if !strings.Contains(html, "rule: binary-operand") {
		t.Error("expected failed rule")
	}
	if strings.Contains(html, "<table>") {
		t.Error("failed evaluation must not render a table")
	}
}

func TestDashboardWithHistory(t *testing.T) {
	app, s := setupTestApp(t)
	e := engine.New(5)
	for _, text := range []string{"NOT a", "ab"} {
		res, err := e.Evaluate(text)
		s.Record(text, res, err)
	}

	_, html := get(t, app, "/ui")
	if !strings.Contains(html, "1 succeeded, 1 failed") {
		t.Error("expected counts")
	}
	if !strings.Contains(html, "NOT a") {
		t.Error("expected expression in history")
	}
}

func TestTableNotFound(t *testing.T) {
	app, _ := setupTestApp(t)
	code, _ := get(t, app, "/ui/tables/nope")
	if code != 404 {
		t.Fatalf("expected 404, got %d", code)
	}
}

func TestRootRedirect(t *testing.T) {
	app, _ := setupTestApp(t)
	resp, err := app.Test(httptest.NewRequest("GET", "/", nil), -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != 302 {
		t.Fatalf("expected 302, got %d", resp.StatusCode)
	}
}

func TestLogInternal(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(prev) })

	tests := []struct {
		name   string
		err    error
		logged bool
	}{
		{"nil", nil, false},
		{"syntax", types.NewSyntaxError(types.RuleUnbalanced, "parentheses are not balanced"), false},
		{"limit", types.NewVariableLimitError(5), false},
		{"internal", types.NewInternalError("build: unexpected final stack of %d entries", 2), true},
		{"untagged", errors.New("boom"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			logInternal(tt.err)
			got := strings.Contains(buf.String(), "internal error:")
			if got != tt.logged {
				t.Errorf("logged = %v, want %v (output %q)", got, tt.logged, buf.String())
			}
		})
	}
}
