package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBuildPostgresDSNFromEnv(t *testing.T) {
	for _, k := range []string{"PG_HOST", "PG_PORT", "PG_USER", "PG_PASSWORD", "PG_DB", "PG_SSLMODE"} {
		t.Setenv(k, "")
	}
	if got, want := BuildPostgresDSNFromEnv(), "postgres://postgres@localhost:5432/gatemap?sslmode=disable"; got != want {
		t.Errorf("dsn = %q, want %q", got, want)
	}
	t.Setenv("PG_PASSWORD", "pw")
	t.Setenv("PG_HOST", "db")
	if got, want := BuildPostgresDSNFromEnv(), "postgres://postgres:pw@db:5432/gatemap?sslmode=disable"; got != want {
		t.Errorf("dsn = %q, want %q", got, want)
	}
}

func TestEnsureSelfSignedCert(t *testing.T) {
	dir := t.TempDir()
	cert := filepath.Join(dir, "certs", "server.crt")
	key := filepath.Join(dir, "certs", "server.key")
	if err := EnsureSelfSignedCert(cert, key, "gatemap.local"); err != nil {
		t.Fatalf("EnsureSelfSignedCert: %v", err)
	}
	st, err := os.Stat(cert)
	if err != nil {
		t.Fatal(err)
	}
	if err := EnsureSelfSignedCert(cert, key, "gatemap.local"); err != nil {
		t.Fatal(err)
	}
	st2, _ := os.Stat(cert)
	if !st2.ModTime().Equal(st.ModTime()) {
		t.Error("existing certificate should be kept")
	}
}
