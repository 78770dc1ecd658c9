package model

// MachineConfig is the persisted, machine-wide configuration for the CLI:
// the working defaults a new project starts from, plus operator-facing
// bookkeeping (recent project paths) that never affects generation itself.
// It is the adapted equivalent of the teacher's model.AppConfig, pointed at
// GenerationSettings instead of a kerf width and UI theme.
type MachineConfig struct {
	DefaultSettings GenerationSettings `json:"default_settings"`
	RecentProjects  []string           `json:"recent_projects"`
}

// DefaultMachineConfig returns the configuration a fresh install starts
// from: the package-level generation defaults and an empty recent list.
func DefaultMachineConfig() MachineConfig {
	return MachineConfig{
		DefaultSettings: DefaultGenerationSettings(),
		RecentProjects:  []string{},
	}
}

// GCodeProfile is a named, reusable GenerationSettings preset — e.g. "MDF
// 0.75in, 2-flute" — so an operator building several similar jobs does not
// retype machine and lead-in settings each time. IsBuiltIn marks profiles
// shipped with the module; it is always cleared on import so a shared
// profile can never silently overwrite a built-in one.
type GCodeProfile struct {
	Name      string             `json:"name"`
	IsBuiltIn bool               `json:"is_built_in"`
	Settings  GenerationSettings `json:"settings"`
}

// ProjectTemplate is a reusable starting point for a new project: stock,
// tool, and tube-void settings, but no operations — those are always
// specific to the job being cut.
type ProjectTemplate struct {
	Name            string          `json:"name"`
	Type            ProjectType     `json:"project_type"`
	MaterialID      string          `json:"material_id"`
	Material        Stock           `json:"material"`
	Tool            Tool            `json:"tool"`
	TubeVoidSkip    bool            `json:"tube_void_skip"`
	TubeOrientation TubeOrientation `json:"tube_orientation"`
}

// NewProjectFromTemplate seeds a fresh Project from t, stamping a new JobID
// and leaving Operations empty for the caller to populate.
func NewProjectFromTemplate(t ProjectTemplate) Project {
	p := NewProject(t.Name, t.Type)
	p.MaterialID = t.MaterialID
	p.Material = t.Material
	p.Tool = t.Tool
	p.TubeVoidSkip = t.TubeVoidSkip
	p.TubeOrientation = t.TubeOrientation
	return p
}

// TemplateStore is the persisted collection of project templates.
type TemplateStore struct {
	Templates []ProjectTemplate `json:"templates"`
}

// NewTemplateStore returns an empty store.
func NewTemplateStore() TemplateStore {
	return TemplateStore{Templates: []ProjectTemplate{}}
}

// Add appends t to the store.
func (s *TemplateStore) Add(t ProjectTemplate) {
	s.Templates = append(s.Templates, t)
}
