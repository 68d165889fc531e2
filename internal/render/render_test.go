package render

import (
	"strings"
	"testing"

	"gatemap/internal/gate"
	"gatemap/internal/palette"
)

func TestMapURL(t *testing.T) {
	if got, want := MapURL(14.0, 100.5), "https://www.google.com/maps?q=14,100.5"; got != want {
		t.Errorf("MapURL = %q, want %q", got, want)
	}
	if got, want := MapURL(13.7915, 100.3921), "https://www.google.com/maps?q=13.7915,100.3921"; got != want {
		t.Errorf("MapURL = %q, want %q", got, want)
	}
}

func TestMarkerForAndPopup(t *testing.T) {
	tb := palette.FromEntries([]palette.Entry{{Office: "O", Province: "P", Project: "J", Color: "#ABCDEF"}})
	g := gate.Gate{Name: "Gate <A>", Office: "O", Project: "J", River: "R&R", Lat: gate.Coord(14), Lon: gate.Coord(100)}
	m, ok := MarkerFor(g, tb)
	if !ok {
		t.Fatal("expected marker")
	}
	if m.Label != "Gate <A>" || m.Color != "#abcdef" {
		t.Errorf("unexpected marker %+v", m)
	}
	for _, want := range []string{"Gate &lt;A&gt;", "โครงการ: J", "แม่น้ำ: R&amp;R", m.MapURL} {
		if !strings.Contains(m.Popup, want) {
			t.Errorf("popup %q missing %q", m.Popup, want)
		}
	}
	if _, ok := MarkerFor(gate.Gate{Name: "B"}, tb); ok {
		t.Error("gate without position should not produce a marker")
	}
}

func TestMarkersSkipsUnpositioned(t *testing.T) {
	gs := []gate.Gate{
		{Name: "A", Lat: gate.Coord(14), Lon: gate.Coord(100)},
		{Name: "B"},
	}
	ms := Markers(gs, nil)
	if len(ms) != 1 || ms[0].Label != "A" || ms[0].Color != "" {
		t.Errorf("Markers = %+v", ms)
	}
}

func TestLayerReplaceLeavesNoStaleMarkers(t *testing.T) {
	s := NewMemorySurface()
	l := NewLayer(s)
	first := []Marker{{Label: "a"}, {Label: "b"}, {Label: "c"}}
	if n := l.Replace(first); n != 3 {
		t.Fatalf("Replace = %d", n)
	}
	l.Replace([]Marker{{Label: "d"}})
	vis := s.Visible()
	if len(vis) != 1 || vis[0].Label != "d" {
		t.Errorf("visible after replace = %+v", vis)
	}
	if l.Len() != 1 {
		t.Errorf("layer len = %d", l.Len())
	}
	l.Replace(nil)
	if len(s.Visible()) != 0 {
		t.Errorf("empty replace should clear, got %+v", s.Visible())
	}
}
