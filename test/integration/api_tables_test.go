package integration

import (
	"io"
	"net/http"
	"strings"
	"testing"
)

func TestAPI_CreateAndGetTable(t *testing.T) {
	ev := createTable(t, "(a -> b)")
	id, _ := ev["id"].(string)
	if id == "" {
		t.Fatalf("no id in response: %v", ev)
	}
	defer deleteTable(t, id)

	if ev["state"] != "SUCCEEDED" {
		t.Errorf("expected SUCCEEDED, got %v", ev["state"])
	}

	code, got := getJSON(t, "tables/"+id)
	if code != http.StatusOK {
		t.Fatalf("get: status %d", code)
	}
	table, _ := got["table"].(map[string]interface{})
	rows, _ := table["rows"].([]interface{})
	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}
	want := []bool{true, false, true, true}
	for i, r := range rows {
		if r.(map[string]interface{})["result"] != want[i] {
			t.Errorf("row %d: expected %v, got %v", i, want[i], r)
		}
	}
}

func TestAPI_TableText(t *testing.T) {
	ev := createTable(t, "NOT a")
	id := ev["id"].(string)
	defer deleteTable(t, id)

	resp, err := http.Get(apiURL("tables/" + id + "/text?width=9"))
	if err != nil {
		t.Fatalf("HTTP error: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	lines := strings.Split(strings.TrimRight(string(body), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d:\n%s", len(lines), body)
	}
	if len(lines[0]) != 18 {
		t.Errorf("expected two 9-wide columns, got %q", lines[0])
	}
}

func TestAPI_SyntaxError(t *testing.T) {
	code, body := postJSON(t, "tables", map[string]string{"expression": "(a AND b"})
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	if errorField(body, "status") != "INVALID_ARGUMENT" {
		t.Errorf("unexpected status: %v", body)
	}
	if errorField(body, "rule") != "unbalanced" {
		t.Errorf("expected unbalanced rule, got %v", errorField(body, "rule"))
	}
}

func TestAPI_VariableLimit(t *testing.T) {
	code, body := postJSON(t, "tables", map[string]string{
		"expression": "(((a AND b) OR (c AND d)) -> (e OR f))",
	})
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	if errorField(body, "status") != "OUT_OF_RANGE" {
		t.Errorf("unexpected status: %v", body)
	}
}

func TestAPI_Validate(t *testing.T) {
	code, body := postJSON(t, "expressions:validate", map[string]string{"expression": "NOT NOT a"})
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if body["valid"] != true || body["canonical"] != "a" {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestAPI_GetMissing(t *testing.T) {
	code, body := getJSON(t, "tables/does-not-exist")
	if code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %v", code, body)
	}
}
