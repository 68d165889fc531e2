package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	t.Setenv("DATA_SOURCE", "bundled")
	root := newRoot()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		t.Fatalf("%v: %v\n%s", args, err, out.String())
	}
	return out.String()
}

func TestOfficesSorted(t *testing.T) {
	lines := strings.Split(strings.TrimSpace(run(t, "offices")), "\n")
	if len(lines) == 0 {
		t.Fatal("no offices")
	}
	for i := 1; i < len(lines); i++ {
		if lines[i-1] >= lines[i] {
			t.Errorf("not strictly sorted: %q >= %q", lines[i-1], lines[i])
		}
	}
}

func TestGatesJSONOnlyPositioned(t *testing.T) {
	var ms []struct {
		Lat    float64 `json:"lat"`
		Lon    float64 `json:"lon"`
		MapURL string  `json:"map_url"`
	}
	if err := json.Unmarshal([]byte(run(t, "gates", "--json")), &ms); err != nil {
		t.Fatal(err)
	}
	if len(ms) == 0 {
		t.Fatal("expected markers")
	}
	for _, m := range ms {
		if m.Lat == 0 || m.Lon == 0 || !strings.HasPrefix(m.MapURL, "https://www.google.com/maps?q=") {
			t.Errorf("bad marker %+v", m)
		}
	}
}

func TestColorDefault(t *testing.T) {
	if got := strings.TrimSpace(run(t, "color", "ไม่มีจังหวัดนี้")); got != "#cccccc" {
		t.Errorf("color = %q", got)
	}
}
