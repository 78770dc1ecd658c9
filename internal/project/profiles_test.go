package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/metafin/gpro/internal/model"
)

func mdfProfile() model.GCodeProfile {
	s := model.DefaultGenerationSettings()
	s.MaxX = 48
	s.MaxY = 48
	return model.GCodeProfile{Name: "MDF 0.75in 2-flute", IsBuiltIn: false, Settings: s}
}

func TestSaveAndLoadCustomProfiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profiles.json")

	p1 := mdfProfile()
	p2 := mdfProfile()
	p2.Name = "Acrylic 0.25in 1-flute"
	p2.Settings.SpindleWarmupSeconds = 5
	profiles := []model.GCodeProfile{p1, p2}

	if err := SaveCustomProfiles(path, profiles); err != nil {
		t.Fatalf("SaveCustomProfiles: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("profiles file was not created")
	}

	loaded, err := LoadCustomProfiles(path)
	if err != nil {
		t.Fatalf("LoadCustomProfiles: %v", err)
	}

	if len(loaded) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(loaded))
	}
	if loaded[0].Name != "MDF 0.75in 2-flute" {
		t.Errorf("expected name MDF 0.75in 2-flute, got %s", loaded[0].Name)
	}
	if loaded[1].Settings.SpindleWarmupSeconds != 5 {
		t.Errorf("expected SpindleWarmupSeconds=5, got %d", loaded[1].Settings.SpindleWarmupSeconds)
	}
	if loaded[0].IsBuiltIn {
		t.Error("loaded profile should not be marked as built-in")
	}
}

func TestLoadCustomProfilesNonExistent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent.json")

	profiles, err := LoadCustomProfiles(path)
	if err != nil {
		t.Fatalf("expected no error for nonexistent file, got: %v", err)
	}
	if len(profiles) != 0 {
		t.Fatalf("expected 0 profiles for nonexistent file, got %d", len(profiles))
	}
}

func TestLoadCustomProfilesInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")

	if err := os.WriteFile(path, []byte("not valid json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadCustomProfiles(path); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestExportAndImportProfile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "exported.json")

	original := mdfProfile()
	original.IsBuiltIn = true // should be stripped on export

	if err := ExportProfile(path, original); err != nil {
		t.Fatalf("ExportProfile: %v", err)
	}

	imported, err := ImportProfile(path)
	if err != nil {
		t.Fatalf("ImportProfile: %v", err)
	}

	if imported.Name != original.Name {
		t.Errorf("expected name %s, got %s", original.Name, imported.Name)
	}
	if imported.IsBuiltIn {
		t.Error("imported profile should not be marked as built-in")
	}
	if imported.Settings.MaxX != 48 {
		t.Errorf("expected MaxX=48, got %f", imported.Settings.MaxX)
	}
}

func TestImportProfileNoName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "noname.json")

	if err := os.WriteFile(path, []byte(`{"settings":{"safety_height":0.5}}`), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := ImportProfile(path); err == nil {
		t.Fatal("expected error for profile without name")
	}
}

func TestSaveCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "dir")
	path := filepath.Join(dir, "profiles.json")

	if err := SaveCustomProfiles(path, []model.GCodeProfile{}); err != nil {
		t.Fatalf("SaveCustomProfiles should create directories: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("file was not created in nested directory")
	}
}
