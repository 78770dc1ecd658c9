// Command gpro is the CLI front end: it loads a project (or seeds one from
// a stored template), its generation settings (defaulted from the machine
// config, a named profile, or a settings file), and its cut-parameter
// table from disk, optionally merges in bulk geometry imported from a
// CSV/Excel/DXF file, runs planner.Generate, and writes the result to
// base_path the way an operator would hand it off to Mach3. It replaces
// the teacher's Fyne desktop app (cmd/cnc-calculator) with a scriptable
// front end, since interactive editing is out of scope.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/metafin/gpro/internal/export"
	"github.com/metafin/gpro/internal/fsadapter"
	"github.com/metafin/gpro/internal/gcode"
	"github.com/metafin/gpro/internal/importer"
	"github.com/metafin/gpro/internal/model"
	"github.com/metafin/gpro/internal/planner"
	"github.com/metafin/gpro/internal/project"
)

func main() {
	projectPath := flag.String("project", "", "path to a project JSON file (required unless -template is given)")
	templateName := flag.String("template", "", "name of a stored project template to start from instead of -project")
	importPath := flag.String("import", "", "path to a CSV/Excel/DXF file whose points or paths are merged into the project's operations")
	settingsPath := flag.String("settings", "", "path to a GenerationSettings JSON file (defaults to the machine config's default_settings)")
	profileName := flag.String("profile", "", "name of a saved g-code profile to use for settings instead of the machine config default")
	configPath := flag.String("config", project.DefaultConfigPath(), "path to the machine configuration file")
	cutParamsPath := flag.String("cutparams", "", "path to a cut-parameter table JSON file (required)")
	outDir := flag.String("out", ".", "base directory to write main.tap/subroutines/config.txt under")
	writePDF := flag.Bool("pdf", false, "also write a setup-sheet.pdf")
	writeLabels := flag.Bool("labels", false, "also write subroutine-labels.pdf")
	writeZip := flag.Bool("zip", false, "also package the job directory into a .zip")
	backupPath := flag.String("backup", "", "export the machine config to a backup JSON file and exit")
	verbose := flag.Bool("verbose", false, "log progress to stderr")
	flag.Parse()

	config, err := project.LoadAppConfig(*configPath)
	if err != nil {
		log.Fatalf("gpro: %v", err)
	}

	if *backupPath != "" {
		if err := project.ExportAllData(*backupPath, config); err != nil {
			log.Fatalf("gpro: %v", err)
		}
		if *verbose {
			log.Printf("wrote backup to %s", *backupPath)
		}
		return
	}

	if *projectPath == "" && *templateName == "" {
		flag.Usage()
		log.Fatalf("gpro: one of -project or -template is required")
	}
	if *cutParamsPath == "" {
		flag.Usage()
		log.Fatalf("gpro: -cutparams is required")
	}

	var proj model.Project
	if *projectPath != "" {
		proj, err = loadProject(*projectPath)
		if err != nil {
			log.Fatalf("gpro: %v", err)
		}
	} else {
		proj, err = projectFromTemplate(*templateName)
		if err != nil {
			log.Fatalf("gpro: %v", err)
		}
	}
	if *verbose {
		log.Printf("loaded project %q (%s)", proj.Name, proj.Type)
	}

	if *importPath != "" {
		warnings, err := mergeImport(&proj, *importPath)
		if err != nil {
			log.Fatalf("gpro: %v", err)
		}
		if *verbose {
			for _, w := range warnings {
				log.Printf("import warning: %s", w)
			}
			log.Printf("merged operations from %s", *importPath)
		}
	}

	settings := config.DefaultSettings
	if *profileName != "" {
		settings, err = profileSettings(*profileName)
		if err != nil {
			log.Fatalf("gpro: %v", err)
		}
	}
	if *settingsPath != "" {
		settings, err = loadSettings(*settingsPath)
		if err != nil {
			log.Fatalf("gpro: %v", err)
		}
	}
	if settings.GCodeBasePath == "" {
		settings.GCodeBasePath = *outDir
	}

	cutParams, err := loadCutParameterTable(*cutParamsPath)
	if err != nil {
		log.Fatalf("gpro: %v", err)
	}
	if *verbose {
		log.Printf("loaded %d cut-parameter entries", len(cutParams))
	}

	result, errs := planner.Generate(context.Background(), proj, settings, cutParams)
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e)
		}
		log.Fatalf("gpro: generation failed with %d error(s)", len(errs))
	}
	if *verbose {
		for _, w := range result.Warnings {
			log.Printf("warning: %s", w)
		}
	}

	jobDir, err := fsadapter.WriteJob(*outDir, proj, resolvedParams(cutParams, proj), result)
	if err != nil {
		log.Fatalf("gpro: %v", err)
	}
	if *verbose {
		log.Printf("wrote job to %s", jobDir)
	}

	if *projectPath != "" {
		config = project.RememberProject(config, *projectPath)
		if err := project.SaveAppConfig(*configPath, config); err != nil {
			log.Fatalf("gpro: %v", err)
		}
	}

	if *writeZip {
		zipPath, err := fsadapter.PackageJob(*outDir, result.SanitizedProjectName)
		if err != nil {
			log.Fatalf("gpro: %v", err)
		}
		if *verbose {
			log.Printf("packaged %s", zipPath)
		}
	}

	if *writePDF {
		params := resolvedParams(cutParams, proj)
		pdfPath := filepath.Join(jobDir, "setup-sheet.pdf")
		if err := export.ExportSetupSheet(pdfPath, proj, params, settings, result, invocationsFor(result)); err != nil {
			log.Fatalf("gpro: %v", err)
		}
		if *verbose {
			log.Printf("wrote %s", pdfPath)
		}
	}

	if *writeLabels {
		labelsPath := jobDir + "/subroutine-labels.pdf"
		if err := export.ExportSubroutineLabels(labelsPath, proj.Name, settings.GCodeBasePath, result, invocationsFor(result)); err != nil {
			log.Fatalf("gpro: %v", err)
		}
		if *verbose {
			log.Printf("wrote %s", labelsPath)
		}
	}
}

func loadProject(path string) (model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to read project file: %w", err)
	}
	var proj model.Project
	if err := json.Unmarshal(data, &proj); err != nil {
		return model.Project{}, fmt.Errorf("failed to parse project file: %w", err)
	}
	return proj, nil
}

func loadSettings(path string) (model.GenerationSettings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.GenerationSettings{}, fmt.Errorf("failed to read settings file: %w", err)
	}
	settings := model.DefaultGenerationSettings()
	if err := json.Unmarshal(data, &settings); err != nil {
		return model.GenerationSettings{}, fmt.Errorf("failed to parse settings file: %w", err)
	}
	return settings, nil
}

// projectFromTemplate looks name up in the default template store and
// seeds a fresh project from it, in place of -project for a shop that
// keeps its stock/tool combinations as reusable templates rather than
// re-describing them in every project file.
func projectFromTemplate(name string) (model.Project, error) {
	store, err := project.LoadDefaultTemplates()
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to load templates: %w", err)
	}
	for _, t := range store.Templates {
		if t.Name == name {
			return model.NewProjectFromTemplate(t), nil
		}
	}
	return model.Project{}, fmt.Errorf("no template named %q", name)
}

// profileSettings looks name up in the custom g-code profile store saved
// at the default path.
func profileSettings(name string) (model.GenerationSettings, error) {
	profiles, err := project.LoadCustomProfilesFromDefault()
	if err != nil {
		return model.GenerationSettings{}, fmt.Errorf("failed to load profiles: %w", err)
	}
	for _, p := range profiles {
		if p.Name == name {
			return p.Settings, nil
		}
	}
	return model.GenerationSettings{}, fmt.Errorf("no g-code profile named %q", name)
}

// mergeImport reads path (dispatching on extension to CSV, Excel, or DXF
// import) and appends the recovered points or paths onto proj's
// operations, matching whichever family proj.Type expects: drill points
// for a drill project, circles and line/arc paths for a cut project.
func mergeImport(proj *model.Project, path string) ([]string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return mergeDrillImport(proj, importer.ImportCSV(path))
	case ".xlsx", ".xls":
		return mergeDrillImport(proj, importer.ImportExcel(path))
	case ".dxf":
		return mergeDXFImport(proj, importer.ImportDXF(path))
	default:
		return nil, fmt.Errorf("unsupported import file extension %q", ext)
	}
}

func mergeDrillImport(proj *model.Project, result importer.ImportResult) ([]string, error) {
	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("import failed: %s", strings.Join(result.Errors, "; "))
	}
	if proj.Type != model.ProjectDrill {
		return nil, fmt.Errorf("imported drill points require a drill project, got %s", proj.Type)
	}
	for _, p := range result.Points {
		proj.Operations.DrillHoles = append(proj.Operations.DrillHoles, p)
	}
	return result.Warnings, nil
}

func mergeDXFImport(proj *model.Project, result importer.DXFResult) ([]string, error) {
	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("import failed: %s", strings.Join(result.Errors, "; "))
	}
	if proj.Type != model.ProjectCut {
		return nil, fmt.Errorf("imported DXF geometry requires a cut project, got %s", proj.Type)
	}
	for _, c := range result.Circles {
		proj.Operations.CircularCuts = append(proj.Operations.CircularCuts, c)
	}
	proj.Operations.LineCuts = append(proj.Operations.LineCuts, result.Lines...)
	return result.Warnings, nil
}

// cutParameterEntry is the wire shape of one cut-parameter table row; a
// flat JSON array of these is easier to hand-author than a JSON object
// keyed by a composite struct, which encoding/json cannot do directly.
type cutParameterEntry struct {
	MaterialID   string   `json:"material_id"`
	ToolKind     string   `json:"tool_kind"`
	Diameter     float64  `json:"diameter"`
	SpindleSpeed int      `json:"spindle_speed"`
	FeedRate     float64  `json:"feed_rate"`
	PlungeRate   float64  `json:"plunge_rate"`
	PeckingDepth *float64 `json:"pecking_depth,omitempty"`
	PassDepth    *float64 `json:"pass_depth,omitempty"`
}

func loadCutParameterTable(path string) (model.CutParameterTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read cut-parameter file: %w", err)
	}
	var entries []cutParameterEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse cut-parameter file: %w", err)
	}

	table := make(model.CutParameterTable, len(entries))
	for _, e := range entries {
		key := model.CutParameterKey{
			MaterialID: e.MaterialID,
			ToolKind:   model.ToolKind(e.ToolKind),
			Diameter:   e.Diameter,
		}
		table[key] = model.CutParameters{
			SpindleSpeed: e.SpindleSpeed,
			FeedRate:     e.FeedRate,
			PlungeRate:   e.PlungeRate,
			PeckingDepth: e.PeckingDepth,
			PassDepth:    e.PassDepth,
		}
	}
	return table, nil
}

// resolvedParams looks up the cut parameters the CLI's setup-sheet and
// label exports should describe, mirroring the lookup planner.Generate
// performs internally. Generation has already succeeded by the time this
// is called, so the lookup is guaranteed to hit.
func resolvedParams(table model.CutParameterTable, proj model.Project) model.CutParameters {
	key := model.CutParameterKey{MaterialID: proj.MaterialID, ToolKind: proj.Tool.Kind, Diameter: proj.Tool.Diameter}
	params, _ := table.Lookup(key)
	return params
}

func invocationsFor(result model.GenerationResult) map[int]int {
	return gcode.CountInvocations(result.MainProgram)
}
