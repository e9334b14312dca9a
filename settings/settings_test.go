package settings

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveDefaultThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "match.toml")

	if err := SaveDefault(path); err != nil {
		t.Fatalf("save default: %v", err)
	}
	m, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if m != DefaultMatch() {
		t.Fatalf("round trip changed the settings: %+v", m)
	}
}

func TestSaveDefaultRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "match.toml")
	if err := os.WriteFile(path, []byte("RoundsToWin = 3\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := SaveDefault(path); err == nil {
		t.Fatal("expected a refusal to overwrite an existing file")
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "match.toml")
	if err := os.WriteFile(path, []byte("RoundsToWin = 3\n"), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if m.RoundsToWin != 3 {
		t.Fatalf("expected the override, got %d", m.RoundsToWin)
	}
	if m.RoundTimeMillis != DefaultMatch().RoundTimeMillis {
		t.Fatal("unset keys should keep their defaults")
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
