package filter

import (
	"reflect"
	"sort"
	"testing"

	"gatemap/internal/gate"
)

func g(name, office, project string, lat, lon *float64) gate.Gate {
	return gate.Gate{Name: name, Office: office, Project: project, Lat: lat, Lon: lon}
}

func fixture() []gate.Gate {
	c := gate.Coord
	return []gate.Gate{
		g("G1", "O1", "P1", c(14.0), c(100.0)),
		g("G2", "O1", "P2", c(14.1), c(100.1)),
		g("G3", "O2", "P1", c(13.9), c(100.2)),
		g("G4", "O2", "P3", nil, nil),
		g("G5", "O3", "P4", c(13.5), c(100.5)),
		g("G6", "O1", "P1", c(14.2), nil),
	}
}

func names(gs []gate.Gate) []string {
	out := []string{}
	for _, x := range gs {
		out = append(out, x.Name)
	}
	return out
}

func subset(a, b []gate.Gate) bool {
	in := map[string]bool{}
	for _, x := range b {
		in[x.Name] = true
	}
	for _, x := range a {
		if !in[x.Name] {
			return false
		}
	}
	return true
}

func TestScenarioMissingCoordinates(t *testing.T) {
	gates := []gate.Gate{
		{Name: "Gate A", Office: "OfficeX", Project: "ProvA", Lat: gate.Coord(14.0), Lon: gate.Coord(100.0)},
		{Name: "Gate B", Office: "OfficeY", Project: "ProvB"},
	}
	if got := names(SelectGates(gates, All, All)); !reflect.DeepEqual(got, []string{"Gate A"}) {
		t.Errorf("all/all = %v, want [Gate A]", got)
	}
	got := SelectGates(gates, "OfficeY", All)
	if got == nil || len(got) != 0 {
		t.Errorf("OfficeY/all = %v, want empty non-nil slice", got)
	}
}

func TestSelectGatesSubsetProperties(t *testing.T) {
	gs := fixture()
	offices := append([]string{All, "missing"}, DistinctOffices(gs)...)
	projects := append([]string{All, "missing"}, DistinctProvincesForOffice(gs, All)...)
	for _, o := range offices {
		for _, p := range projects {
			both := SelectGates(gs, o, p)
			if !subset(both, SelectGates(gs, All, p)) {
				t.Errorf("(%s,%s) not within (all,%s)", o, p, p)
			}
			if !subset(both, SelectGates(gs, o, All)) {
				t.Errorf("(%s,%s) not within (%s,all)", o, p, o)
			}
			if !subset(both, gs) {
				t.Errorf("(%s,%s) not within input", o, p)
			}
			if again := SelectGates(gs, o, p); !reflect.DeepEqual(both, again) {
				t.Errorf("(%s,%s) not idempotent", o, p)
			}
		}
	}
}

func TestSelectAllDropsOnlyUnpositioned(t *testing.T) {
	gs := fixture()
	got := names(SelectGates(gs, All, All))
	want := []string{"G1", "G2", "G3", "G5"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSelectGatesCombined(t *testing.T) {
	gs := fixture()
	cases := []struct {
		office, project string
		want            []string
	}{
		{"O1", All, []string{"G1", "G2"}},
		{All, "P1", []string{"G1", "G3"}},
		{"O2", "P1", []string{"G3"}},
		{"O2", "P3", []string{}},
		{"O3", "P1", []string{}},
	}
	for _, c := range cases {
		if got := names(SelectGates(gs, c.office, c.project)); !reflect.DeepEqual(got, c.want) {
			t.Errorf("SelectGates(%s,%s) = %v, want %v", c.office, c.project, got, c.want)
		}
	}
}

func TestSelectGatesDoesNotMutateInput(t *testing.T) {
	gs := fixture()
	before := names(gs)
	_ = SelectGates(gs, "O1", All)
	if !reflect.DeepEqual(before, names(gs)) {
		t.Error("input slice changed")
	}
}

func TestDistinctSortedNoDuplicates(t *testing.T) {
	gs := fixture()
	gs = append(gs, g("G7", "", "", nil, nil))
	check := func(label string, xs []string) {
		t.Helper()
		if !sort.StringsAreSorted(xs) {
			t.Errorf("%s not sorted: %v", label, xs)
		}
		seen := map[string]bool{}
		for _, x := range xs {
			if seen[x] {
				t.Errorf("%s duplicate %q", label, x)
			}
			if x == "" {
				t.Errorf("%s contains empty value", label)
			}
			seen[x] = true
		}
	}
	offices := DistinctOffices(gs)
	check("offices", offices)
	if !reflect.DeepEqual(offices, []string{"O1", "O2", "O3"}) {
		t.Errorf("offices = %v", offices)
	}
	all := DistinctProvincesForOffice(gs, All)
	check("projects(all)", all)
	if !reflect.DeepEqual(all, []string{"P1", "P2", "P3", "P4"}) {
		t.Errorf("projects(all) = %v", all)
	}
	o2 := DistinctProvincesForOffice(gs, "O2")
	check("projects(O2)", o2)
	if !reflect.DeepEqual(o2, []string{"P1", "P3"}) {
		t.Errorf("projects(O2) = %v", o2)
	}
	if got := DistinctProvincesForOffice(gs, "none"); len(got) != 0 {
		t.Errorf("unknown office projects = %v", got)
	}
}
