package project

import (
	"path/filepath"
	"testing"

	"github.com/metafin/gpro/internal/model"
)

func cabinetTemplate(name string) model.ProjectTemplate {
	return model.ProjectTemplate{
		Name:       name,
		Type:       model.ProjectCut,
		MaterialID: "mdf-0.75",
		Material:   model.Stock{Kind: model.StockSheet, Thickness: 0.75},
		Tool:       model.Tool{Kind: model.ToolEndMill2Flute, Diameter: 0.25},
	}
}

func TestSaveAndLoadTemplates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "templates.json")

	store := model.NewTemplateStore()
	store.Add(cabinetTemplate("Cabinet"))

	if err := SaveTemplates(path, store); err != nil {
		t.Fatalf("SaveTemplates error: %v", err)
	}

	loaded, err := LoadTemplates(path)
	if err != nil {
		t.Fatalf("LoadTemplates error: %v", err)
	}

	if len(loaded.Templates) != 1 {
		t.Fatalf("expected 1 template, got %d", len(loaded.Templates))
	}
	if loaded.Templates[0].Name != "Cabinet" {
		t.Errorf("expected 'Cabinet', got %q", loaded.Templates[0].Name)
	}
	if loaded.Templates[0].Tool.Diameter != 0.25 {
		t.Errorf("expected tool diameter 0.25, got %f", loaded.Templates[0].Tool.Diameter)
	}

	proj := model.NewProjectFromTemplate(loaded.Templates[0])
	if proj.JobID == "" {
		t.Error("expected NewProjectFromTemplate to stamp a JobID")
	}
	if proj.MaterialID != "mdf-0.75" {
		t.Errorf("expected MaterialID mdf-0.75, got %q", proj.MaterialID)
	}
}

func TestLoadTemplatesNotFound(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.json")

	store, err := LoadTemplates(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if len(store.Templates) != 0 {
		t.Errorf("expected empty store, got %d templates", len(store.Templates))
	}
}

func TestSaveAndLoadTemplatesMultiple(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "templates.json")

	store := model.NewTemplateStore()
	store.Add(cabinetTemplate("T1"))
	store.Add(cabinetTemplate("T2"))
	store.Add(cabinetTemplate("T3"))

	if err := SaveTemplates(path, store); err != nil {
		t.Fatalf("SaveTemplates error: %v", err)
	}

	loaded, err := LoadTemplates(path)
	if err != nil {
		t.Fatalf("LoadTemplates error: %v", err)
	}
	if len(loaded.Templates) != 3 {
		t.Fatalf("expected 3 templates, got %d", len(loaded.Templates))
	}
}
