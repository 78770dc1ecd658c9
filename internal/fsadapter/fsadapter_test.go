package fsadapter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/metafin/gpro/internal/model"
)

func sampleResult() model.GenerationResult {
	return model.GenerationResult{
		MainProgram:          "G20 G90\nM98 (-C:\\jobs\\panel\\1000.nc) L3\nM30",
		Subroutines:          map[int]string{1000: "G91\nG01 Z-0.1 F10.0\nG90\nM99\n%"},
		SanitizedProjectName: "panel",
		Warnings:             []string{"feed rate below recommended minimum"},
	}
}

func sampleProject() model.Project {
	return model.Project{
		Name:       "panel",
		Type:       model.ProjectDrill,
		MaterialID: "mdf-18mm",
		Tool:       model.Tool{Kind: model.ToolDrill, Diameter: 0.25},
	}
}

func TestWriteJobCreatesMainProgramSubroutinesAndConfig(t *testing.T) {
	dir := t.TempDir()
	result := sampleResult()

	jobDir, err := WriteJob(dir, sampleProject(), model.CutParameters{SpindleSpeed: 18000, FeedRate: 120, PlungeRate: 30}, result)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if jobDir != filepath.Join(dir, "panel") {
		t.Errorf("unexpected job directory: %s", jobDir)
	}

	main, err := os.ReadFile(filepath.Join(jobDir, "main.tap"))
	if err != nil {
		t.Fatalf("main.tap not written: %v", err)
	}
	if string(main) != result.MainProgram {
		t.Errorf("main.tap contents mismatch")
	}

	sub, err := os.ReadFile(filepath.Join(jobDir, "1000.nc"))
	if err != nil {
		t.Fatalf("1000.nc not written: %v", err)
	}
	if string(sub) != result.Subroutines[1000] {
		t.Errorf("subroutine contents mismatch")
	}

	config, err := os.ReadFile(filepath.Join(jobDir, "config.txt"))
	if err != nil {
		t.Fatalf("config.txt not written: %v", err)
	}
	configText := string(config)
	if !strings.Contains(configText, "Job: panel") {
		t.Errorf("config.txt missing job name: %s", configText)
	}
	if !strings.Contains(configText, "1000.nc  (3 calls)") {
		t.Errorf("config.txt missing invocation count: %s", configText)
	}
	if !strings.Contains(configText, "feed rate below recommended minimum") {
		t.Errorf("config.txt missing warning: %s", configText)
	}
}

func TestPackageJobProducesZipContainingMainProgram(t *testing.T) {
	dir := t.TempDir()
	result := sampleResult()
	if _, err := WriteJob(dir, sampleProject(), model.CutParameters{}, result); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	zipPath, err := PackageJob(dir, result.SanitizedProjectName)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	info, err := os.Stat(zipPath)
	if err != nil {
		t.Fatalf("zip file not created: %v", err)
	}
	if info.Size() == 0 {
		t.Error("expected non-empty zip archive")
	}
}

func TestPackageJobMissingDirectoryReturnsError(t *testing.T) {
	dir := t.TempDir()
	if _, err := PackageJob(dir, "nonexistent"); err == nil {
		t.Fatal("expected an error for a missing job directory")
	}
}
