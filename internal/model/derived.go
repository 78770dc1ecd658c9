package model

// ExpandedOperations holds the four operation lists after every pattern
// has been flattened to singletons by the pattern expander.
type ExpandedOperations struct {
	DrillPoints   []Point2D
	CircularCuts  []ExpandedCircle
	HexagonalCuts []ExpandedHexagon
	LineCuts      []LineCut // line cuts pass through unexpanded
}

// ExpandedCircle is one circular cut after pattern expansion: a singleton
// carrying its original diameter, compensation, and lead-in settings.
type ExpandedCircle struct {
	CenterX, CenterY float64
	Diameter         float64
	Compensation     CompensationMode
	LeadIn           LeadInSettings
	HoldTimeMillis   int
}

// ExpandedHexagon mirrors ExpandedCircle with FlatToFlat in place of Diameter.
type ExpandedHexagon struct {
	CenterX, CenterY float64
	FlatToFlat       float64
	Compensation     CompensationMode
	LeadIn           LeadInSettings
	HoldTimeMillis   int
}

// MoveKind is the kind of motion a Move describes.
type MoveKind string

const (
	MoveLinear     MoveKind = "linear"
	MoveArc        MoveKind = "arc"
	MoveFullCircle MoveKind = "full_circle"
)

// Move is one step of a cutting path: a destination plus, for arcs, the
// data needed to resolve direction and center offsets.
type Move struct {
	X, Y             float64
	Kind             MoveKind
	ArcCenterX       float64
	ArcCenterY       float64
	ArcDirection     ArcDirectionHint
	IOffset, JOffset float64 // for full_circle moves only
	CornerFeedFactor float64 // in (0, 1]; 1 = no slowdown
}

// LeadInKind is the resolved entry strategy a LeadIn value describes,
// after the lead-in resolver has checked geometric feasibility.
type LeadInKind string

const (
	LeadInNone    LeadInKind = "none"
	LeadInRamp    LeadInKind = "ramp"
	LeadInHelical LeadInKind = "helical"
)

// ProfileTransition is how a helical lead-in joins the profile once its
// descent is complete.
type ProfileTransition string

const (
	TransitionArc    ProfileTransition = "arc"
	TransitionLinear ProfileTransition = "linear"
)

// LeadIn is the resolved entry strategy for one cut: None, Ramp, or
// Helical. Only the fields relevant to Kind are meaningful.
type LeadIn struct {
	Kind LeadInKind

	ApproachAngle UserAngle

	// Ramp.
	LeadInPoint Point2D
	// Distance is how far LeadInPoint sits from the profile start along
	// the ramp direction. The emitter works in relative moves, so this
	// scalar is what it actually needs; LeadInPoint is the absolute
	// position used to draw the toolpath and to return to on lead-out.
	Distance float64

	// Helical.
	HelixCenter             Point2D
	HelixRadius             float64
	HelixPitch              float64
	ProfileTransition       ProfileTransition
	ProfileTransitionTarget Point2D
}

// ShapeKind identifies which of the three closed-profile families a
// PathConfig was built for; the emitter and planner share one pipeline
// across all three, but a few formatting decisions (subroutine sharing)
// still need to know which.
type ShapeKind string

const (
	ShapeCircle  ShapeKind = "circle"
	ShapeHexagon ShapeKind = "hexagon"
	ShapeLine    ShapeKind = "line"
)

// PathConfig is the complete description of one profile cut, independent
// of which shape produced it: the moves, where the profile starts, how it
// is entered, and whether it is closed.
type PathConfig struct {
	Moves               []Move
	ProfileStart        Point2D
	LeadIn              LeadIn
	IsClosed            bool
	ApplyCornerSlowdown bool
	Shape               ShapeKind
}

// Subroutine is one parameterless subprogram: a number drawn from its
// operation family's range, and its instruction lines.
type Subroutine struct {
	Number int
	Body   []string
}

// GenerationResult is the complete output of one generation run.
type GenerationResult struct {
	MainProgram          string
	Subroutines          map[int]string // number -> newline-joined body
	SanitizedProjectName string
	Warnings             []string
}
