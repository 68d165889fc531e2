package palette

import (
	"strings"
	"testing"
)

const sample = `
offices:
  - name: O1
    provinces:
      - name: ProvA
        projects:
          - name: J1
            color: "#F28E2B"
          - name: J2
            color: "#111111"
      - name: ProvEmpty
  - name: O2
    provinces:
      - name: ProvA
        projects:
          - name: J3
            color: "#222222"
      - name: ProvB
        projects:
          - name: J4
            color: "not-a-color"
          - name: J5
            color: "#333"
`

func mustTable(t *testing.T) *Table {
	t.Helper()
	tb, err := Decode(strings.NewReader(sample), "yaml")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return tb
}

func TestColorForProvince(t *testing.T) {
	tb := mustTable(t)
	cases := []struct {
		name string
		want string
	}{
		{"ProvA", "#f28e2b"},
		{"ProvB", DefaultColor},
		{"ProvEmpty", DefaultColor},
		{"UnknownProvince", DefaultColor},
		{"", DefaultColor},
	}
	for _, c := range cases {
		if got := tb.ColorForProvince(c.name); got != c.want {
			t.Errorf("ColorForProvince(%q) = %q, want %q", c.name, got, c.want)
		}
	}
}

func TestColorForUnknownAnyTable(t *testing.T) {
	var nilTable *Table
	for _, tb := range []*Table{nilTable, {}, mustTable(t)} {
		if got := tb.ColorForProvince("UnknownProvince"); got != DefaultColor {
			t.Errorf("got %q, want %q", got, DefaultColor)
		}
		if got := tb.ColorForProject("UnknownProject"); got != DefaultColor {
			t.Errorf("got %q, want %q", got, DefaultColor)
		}
	}
}

func TestColorForProject(t *testing.T) {
	tb := mustTable(t)
	if got := tb.ColorForProject("J3"); got != "#222222" {
		t.Errorf("J3 = %q", got)
	}
	if got := tb.ColorForProject("J4"); got != DefaultColor {
		t.Errorf("invalid color should fall back, got %q", got)
	}
}

func TestOfficeForProvinceFirstMatch(t *testing.T) {
	tb := mustTable(t)
	if o, ok := tb.OfficeForProvince("ProvA"); !ok || o != "O1" {
		t.Errorf("OfficeForProvince(ProvA) = %q, %v", o, ok)
	}
	if _, ok := tb.OfficeForProvince("nope"); ok {
		t.Error("unexpected match")
	}
}

func TestEntriesRoundTrip(t *testing.T) {
	tb := mustTable(t)
	back := FromEntries(tb.Entries())
	for _, name := range []string{"ProvA", "ProvB", "ProvEmpty", "UnknownProvince"} {
		if a, b := tb.ColorForProvince(name), back.ColorForProvince(name); a != b {
			t.Errorf("%s: %q != %q", name, a, b)
		}
	}
}

func TestEntriesKeepProvinceWithoutProjects(t *testing.T) {
	const shadowed = `
offices:
  - name: O1
    provinces:
      - name: ProvX
  - name: O2
    provinces:
      - name: ProvX
        projects:
          - name: J
            color: "#222222"
`
	tb, err := Decode(strings.NewReader(shadowed), "yaml")
	if err != nil {
		t.Fatal(err)
	}
	back := FromEntries(tb.Entries())
	for _, x := range []*Table{tb, back} {
		if got := x.ColorForProvince("ProvX"); got != DefaultColor {
			t.Errorf("ColorForProvince(ProvX) = %q, want %q", got, DefaultColor)
		}
		if o, _ := x.OfficeForProvince("ProvX"); o != "O1" {
			t.Errorf("OfficeForProvince(ProvX) = %q, want O1", o)
		}
	}
}

func TestColorForProvinceUsesFirstProjectOnly(t *testing.T) {
	tb := mustTable(t)
	// ProvB 的首个项目颜色非法，不应取第二个项目的 #333
	if got := tb.ColorForProvince("ProvB"); got != DefaultColor {
		t.Errorf("ProvB = %q, want %q", got, DefaultColor)
	}
	if got := tb.ColorForProvince("ProvA"); got != "#f28e2b" {
		t.Errorf("ProvA = %q", got)
	}
}

func TestBundled(t *testing.T) {
	tb, err := Bundled()
	if err != nil {
		t.Fatalf("Bundled: %v", err)
	}
	if got := tb.ColorForProvince("สมุทรสาคร"); got != "#ffcc00" {
		t.Errorf("bundled สมุทรสาคร = %q", got)
	}
}
