package model

// GenerationSettings is the process-wide configuration the core consumes,
// combining the "machine" and "general" configuration inputs of the
// external interface: machine travel limits and subroutine support, plus
// the defaults every cut and drill operation falls back to when it does
// not override them itself.
type GenerationSettings struct {
	// Machine.
	MaxX                 float64 `json:"max_x"`
	MaxY                 float64 `json:"max_y"`
	SupportsSubroutines  bool    `json:"supports_subroutines"`
	SupportsCannedCycles bool    `json:"supports_canned_cycles"`
	GCodeBasePath        string  `json:"gcode_base_path"`

	// General.
	SafetyHeight          float64           `json:"safety_height"`
	TravelHeight          float64           `json:"travel_height"`
	SpindleWarmupSeconds  int               `json:"spindle_warmup_seconds"`
	CircleLeadInType      LeadInRequestType `json:"circle_lead_in_type"`
	HexagonLeadInType     LeadInRequestType `json:"hexagon_lead_in_type"`
	LineLeadInType        LeadInRequestType `json:"line_lead_in_type"`
	RampAngleDegrees      float64           `json:"ramp_angle"`
	HelixPitch            float64           `json:"helix_pitch"`
	FirstPassFeedFactor   float64           `json:"first_pass_feed_factor"`
	MaxStepdownFactor     float64           `json:"max_stepdown_factor"`
	CornerSlowdownEnabled bool              `json:"corner_slowdown_enabled"`
	CornerFeedFactor      float64           `json:"corner_feed_factor"`
	ArcSlowdownEnabled    bool              `json:"arc_slowdown_enabled"`
	ArcFeedFactor         float64           `json:"arc_feed_factor"`
	AllowNegativeCoordinates bool           `json:"allow_negative_coordinates"`

	// CutThroughBuffer is added to material depth for cut (non-drill)
	// projects to guarantee full separation on the final pass. It is a
	// flat user-supplied constant; the appropriate value depends on
	// material deflection and is never derived from other settings.
	CutThroughBuffer float64 `json:"cut_through_buffer"`
}

// DefaultGenerationSettings returns reasonable defaults matching the
// values original_source documents as fallbacks throughout lead_in.py,
// corner_detection.py, and gcode_generator.py.
func DefaultGenerationSettings() GenerationSettings {
	return GenerationSettings{
		SafetyHeight:          0.5,
		TravelHeight:          0.1,
		SpindleWarmupSeconds:  2,
		SupportsSubroutines:   true,
		CircleLeadInType:      LeadInRequestHelical,
		HexagonLeadInType:     LeadInRequestHelical,
		LineLeadInType:        LeadInRequestRamp,
		RampAngleDegrees:      3.0,
		HelixPitch:            0.04,
		FirstPassFeedFactor:   0.7,
		MaxStepdownFactor:     0.5,
		CornerSlowdownEnabled: true,
		CornerFeedFactor:      0.5,
		ArcSlowdownEnabled:    true,
		ArcFeedFactor:         0.8,
		CutThroughBuffer:      0,
	}
}

// CutParameters are the speeds and feeds derived from a
// (material, tool kind, tool diameter) lookup. Exactly one of
// PeckingDepth (drills) or PassDepth (end mills) is populated.
type CutParameters struct {
	SpindleSpeed int
	FeedRate     float64
	PlungeRate   float64
	PeckingDepth *float64
	PassDepth    *float64
}

// CutParameterKey identifies one entry of the cut-parameter lookup table.
type CutParameterKey struct {
	MaterialID string
	ToolKind   ToolKind
	Diameter   float64
}

// CutParameterTable is the mapping from (material_id, tool_kind, diameter)
// to cut parameters. A missing entry is a validation error, never a
// silent default.
type CutParameterTable map[CutParameterKey]CutParameters

// Lookup returns the cut parameters for key, and whether they were found.
func (t CutParameterTable) Lookup(key CutParameterKey) (CutParameters, bool) {
	p, ok := t[key]
	return p, ok
}
