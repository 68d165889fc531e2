package dataset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gatemap/internal/config"
	"gatemap/internal/gate"
	"gatemap/internal/palette"
)

type fakeReader struct {
	gates []gate.Gate
	table *palette.Table
	err   error
}

func (f fakeReader) LoadGates(context.Context) ([]gate.Gate, error) { return f.gates, f.err }
func (f fakeReader) LoadPalette(context.Context) (*palette.Table, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.table, nil
}

func TestBundledIsUsable(t *testing.T) {
	d, err := Load(context.Background(), config.Config{DataSource: "bundled"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(d.Gates) == 0 || d.Palette == nil || len(d.Palette.Offices) == 0 {
		t.Fatalf("bundled dataset empty: %d gates", len(d.Gates))
	}
	if d.Version == "" || d.Version != d.Fingerprint() {
		t.Errorf("version = %q", d.Version)
	}
}

func TestFileOverridesAndFallback(t *testing.T) {
	dir := t.TempDir()
	gp := filepath.Join(dir, "gates.yaml")
	if err := os.WriteFile(gp, []byte("- name: G\n  office: O\n  province: P\n  lat: 14\n  lon: 100\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	c := config.Config{DataSource: "file", GatesPath: gp, OfficesPath: filepath.Join(dir, "missing.yaml")}
	d, err := Load(context.Background(), c, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(d.Gates) != 1 || d.Gates[0].Project != "P" {
		t.Errorf("gates = %+v", d.Gates)
	}
	b, _ := Bundled()
	if d.Version == b.Fingerprint() {
		t.Error("different gate lists should not share a version")
	}
	bundled, _ := palette.Bundled()
	if len(d.Palette.Offices) != len(bundled.Offices) {
		t.Error("unreadable offices file should fall back to bundled table")
	}
}

func TestDBSource(t *testing.T) {
	gs := []gate.Gate{{Name: "DB", Office: "O", Project: "P"}}
	tb := palette.FromEntries([]palette.Entry{{Office: "O", Province: "P", Project: "P", Color: "#ABCDEF"}})
	d, err := Load(context.Background(), config.Config{DataSource: "db"}, fakeReader{gates: gs, table: tb})
	if err != nil {
		t.Fatal(err)
	}
	if len(d.Gates) != 1 || d.Palette.ColorForProvince("P") != "#abcdef" {
		t.Errorf("dataset = %+v", d)
	}

	d, err = Load(context.Background(), config.Config{DataSource: "db"}, fakeReader{err: errors.New("down")})
	if err != nil {
		t.Fatal(err)
	}
	if len(d.Gates) == 0 {
		t.Error("db failure should keep bundled gates")
	}

	if _, err := Load(context.Background(), config.Config{DataSource: "db"}, nil); err == nil {
		t.Error("db source without reader should fail")
	}
}
