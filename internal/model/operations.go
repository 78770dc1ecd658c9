package model

import (
	"encoding/json"
	"fmt"
)

// CompensationMode selects how a closed profile's path is offset from the
// tool center to the feature edge.
type CompensationMode string

const (
	CompensationNone     CompensationMode = "none"
	CompensationInterior CompensationMode = "interior"
	CompensationExterior CompensationMode = "exterior"
)

// LeadInMode selects whether a cut's lead-in settings come from the
// process-wide default (auto) or are fixed per-operation (manual).
type LeadInMode string

const (
	LeadInModeAuto   LeadInMode = "auto"
	LeadInModeManual LeadInMode = "manual"
)

// LeadInRequestType is the kind of entry strategy an operation or the
// process-wide settings ask for, before the lead-in resolver checks
// whether it is geometrically possible.
type LeadInRequestType string

const (
	LeadInRequestNone    LeadInRequestType = "none"
	LeadInRequestRamp    LeadInRequestType = "ramp"
	LeadInRequestHelical LeadInRequestType = "helical"
)

// LeadInSettings carries the per-operation lead-in overrides shared by
// circular, hexagonal, and line cuts. ApproachAngle is a pointer so a
// deliberate 0° (top, per the user angle convention) can be told apart
// from "the operator never set one" — hexagon and line lead-ins fall back
// to a shape-specific default direction only in the latter case.
type LeadInSettings struct {
	Mode           LeadInMode        `json:"lead_in_mode"`
	Type           LeadInRequestType `json:"lead_in_type"`
	ApproachAngle  *UserAngle        `json:"lead_in_approach_angle,omitempty"`
	HoldTimeMillis int               `json:"hold_time_ms,omitempty"`
}

// Angle returns the configured approach angle, defaulting to 0 (top) when
// none was supplied.
func (s LeadInSettings) Angle() UserAngle {
	if s.ApproachAngle == nil {
		return 0
	}
	return *s.ApproachAngle
}

// HasAngle reports whether an operation supplied an explicit approach
// angle, as opposed to relying on the shape's default lead-in direction.
func (s LeadInSettings) HasAngle() bool {
	return s.ApproachAngle != nil
}

// --- Drill operations -------------------------------------------------

// DrillOperation is a tagged union over the three ways a drill operation
// can be specified. Concrete implementations are SingleDrill,
// LinearDrillPattern, and GridDrillPattern. Construction from untyped data
// (JSON) rejects unrecognized type tags rather than falling through to a
// default, per the exhaustive-dispatch design this module follows.
type DrillOperation interface {
	isDrillOperation()
}

type SingleDrill struct {
	X, Y float64
}

func (SingleDrill) isDrillOperation() {}

type LinearDrillPattern struct {
	StartX, StartY float64
	Axis           string // "x" or "y", case-insensitive
	Spacing        float64
	Count          int
}

func (LinearDrillPattern) isDrillOperation() {}

type GridDrillPattern struct {
	StartX, StartY         float64
	XSpacing, YSpacing     float64
	XCount, YCount         int
}

func (GridDrillPattern) isDrillOperation() {}

type drillOperationWire struct {
	Type     string  `json:"type"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	StartX   float64 `json:"start_x"`
	StartY   float64 `json:"start_y"`
	Axis     string  `json:"axis"`
	Spacing  float64 `json:"spacing"`
	Count    int     `json:"count"`
	XSpacing float64 `json:"x_spacing"`
	YSpacing float64 `json:"y_spacing"`
	XCount   int     `json:"x_count"`
	YCount   int     `json:"y_count"`
}

// UnmarshalDrillOperation decodes a single JSON drill-operation object,
// dispatching on its "type" field. An unrecognized or missing type is a
// construction-time error.
func UnmarshalDrillOperation(data []byte) (DrillOperation, error) {
	var w drillOperationWire
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("drill operation: %w", err)
	}
	switch w.Type {
	case "", "single":
		return SingleDrill{X: w.X, Y: w.Y}, nil
	case "pattern_linear":
		return LinearDrillPattern{
			StartX: w.StartX, StartY: w.StartY,
			Axis: w.Axis, Spacing: w.Spacing, Count: w.Count,
		}, nil
	case "pattern_grid":
		return GridDrillPattern{
			StartX: w.StartX, StartY: w.StartY,
			XSpacing: w.XSpacing, YSpacing: w.YSpacing,
			XCount: w.XCount, YCount: w.YCount,
		}, nil
	default:
		return nil, fmt.Errorf("drill operation: unknown type %q", w.Type)
	}
}

// --- Circular cuts ------------------------------------------------------

// CircularCutOperation is a tagged union over a single circle or a linear
// pattern of circles sharing diameter, compensation, and lead-in settings.
type CircularCutOperation interface {
	isCircularCutOperation()
}

type SingleCircle struct {
	CenterX, CenterY float64
	Diameter         float64
	Compensation     CompensationMode
	LeadIn           LeadInSettings
}

func (SingleCircle) isCircularCutOperation() {}

type LinearCirclePattern struct {
	StartCenterX, StartCenterY float64
	Axis                       string
	Spacing                    float64
	Count                      int
	Diameter                   float64
	Compensation               CompensationMode
	LeadIn                     LeadInSettings
}

func (LinearCirclePattern) isCircularCutOperation() {}

type circularCutWire struct {
	Type         string           `json:"type"`
	CenterX      float64          `json:"center_x"`
	CenterY      float64          `json:"center_y"`
	StartCenterX float64          `json:"start_center_x"`
	StartCenterY float64          `json:"start_center_y"`
	Axis         string           `json:"axis"`
	Spacing      float64          `json:"spacing"`
	Count        int              `json:"count"`
	Diameter     float64          `json:"diameter"`
	Compensation CompensationMode `json:"compensation"`
	LeadInSettings
}

// UnmarshalCircularCutOperation decodes a single JSON circular-cut object.
func UnmarshalCircularCutOperation(data []byte) (CircularCutOperation, error) {
	var w circularCutWire
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("circular cut: %w", err)
	}
	comp := w.Compensation
	if comp == "" {
		comp = CompensationInterior
	}
	switch w.Type {
	case "", "single":
		return SingleCircle{
			CenterX: w.CenterX, CenterY: w.CenterY,
			Diameter: w.Diameter, Compensation: comp,
			LeadIn: w.LeadInSettings,
		}, nil
	case "pattern_linear":
		return LinearCirclePattern{
			StartCenterX: w.StartCenterX, StartCenterY: w.StartCenterY,
			Axis: w.Axis, Spacing: w.Spacing, Count: w.Count,
			Diameter: w.Diameter, Compensation: comp,
			LeadIn: w.LeadInSettings,
		}, nil
	default:
		return nil, fmt.Errorf("circular cut: unknown type %q", w.Type)
	}
}

// --- Hexagonal cuts -------------------------------------------------------

// HexagonalCutOperation mirrors CircularCutOperation, with FlatToFlat
// instead of Diameter.
type HexagonalCutOperation interface {
	isHexagonalCutOperation()
}

type SingleHexagon struct {
	CenterX, CenterY float64
	FlatToFlat       float64
	Compensation     CompensationMode
	LeadIn           LeadInSettings
}

func (SingleHexagon) isHexagonalCutOperation() {}

type LinearHexagonPattern struct {
	StartCenterX, StartCenterY float64
	Axis                       string
	Spacing                    float64
	Count                      int
	FlatToFlat                 float64
	Compensation               CompensationMode
	LeadIn                     LeadInSettings
}

func (LinearHexagonPattern) isHexagonalCutOperation() {}

type hexagonalCutWire struct {
	Type         string           `json:"type"`
	CenterX      float64          `json:"center_x"`
	CenterY      float64          `json:"center_y"`
	StartCenterX float64          `json:"start_center_x"`
	StartCenterY float64          `json:"start_center_y"`
	Axis         string           `json:"axis"`
	Spacing      float64          `json:"spacing"`
	Count        int              `json:"count"`
	FlatToFlat   float64          `json:"flat_to_flat"`
	Compensation CompensationMode `json:"compensation"`
	LeadInSettings
}

// UnmarshalHexagonalCutOperation decodes a single JSON hexagonal-cut object.
func UnmarshalHexagonalCutOperation(data []byte) (HexagonalCutOperation, error) {
	var w hexagonalCutWire
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("hexagonal cut: %w", err)
	}
	comp := w.Compensation
	if comp == "" {
		comp = CompensationInterior
	}
	switch w.Type {
	case "", "single":
		return SingleHexagon{
			CenterX: w.CenterX, CenterY: w.CenterY,
			FlatToFlat: w.FlatToFlat, Compensation: comp,
			LeadIn: w.LeadInSettings,
		}, nil
	case "pattern_linear":
		return LinearHexagonPattern{
			StartCenterX: w.StartCenterX, StartCenterY: w.StartCenterY,
			Axis: w.Axis, Spacing: w.Spacing, Count: w.Count,
			FlatToFlat: w.FlatToFlat, Compensation: comp,
			LeadIn: w.LeadInSettings,
		}, nil
	default:
		return nil, fmt.Errorf("hexagonal cut: unknown type %q", w.Type)
	}
}

// --- Line cuts ------------------------------------------------------------

// SegmentType is the kind of path segment arriving at a LinePoint.
type SegmentType string

const (
	SegmentStraight SegmentType = "straight"
	SegmentArc      SegmentType = "arc"
)

// ArcDirectionHint is a user-supplied override for which way an arc
// segment turns; empty/"auto" lets the emitter choose the geometric
// default (see internal/arcmath).
type ArcDirectionHint string

const (
	ArcDirectionAuto ArcDirectionHint = ""
	ArcDirectionCW   ArcDirectionHint = "cw"
	ArcDirectionCCW  ArcDirectionHint = "ccw"
)

// LinePoint is one point of a line-cut path. The first point in a path
// has no meaningful Segment/arc fields; they describe the segment arriving
// at this point from the previous one.
type LinePoint struct {
	X, Y         float64
	Segment      SegmentType
	ArcCenterX   float64
	ArcCenterY   float64
	ArcDirection ArcDirectionHint
}

// LineCut is an ordered polyline/arc path cut as one profile.
type LineCut struct {
	Points       []LinePoint
	Compensation CompensationMode
	LeadIn       LeadInSettings
}

type linePointWire struct {
	X            float64          `json:"x"`
	Y            float64          `json:"y"`
	LineType     SegmentType      `json:"line_type"`
	ArcCenterX   float64          `json:"arc_center_x"`
	ArcCenterY   float64          `json:"arc_center_y"`
	ArcDirection ArcDirectionHint `json:"arc_direction"`
}

type lineCutWire struct {
	Points       []linePointWire  `json:"points"`
	Compensation CompensationMode `json:"compensation"`
	LeadInSettings
}

// UnmarshalLineCut decodes a single JSON line-cut object.
func UnmarshalLineCut(data []byte) (LineCut, error) {
	var w lineCutWire
	if err := json.Unmarshal(data, &w); err != nil {
		return LineCut{}, fmt.Errorf("line cut: %w", err)
	}
	points := make([]LinePoint, len(w.Points))
	for i, p := range w.Points {
		segment := p.LineType
		if segment == "" {
			segment = SegmentStraight
		}
		points[i] = LinePoint{
			X: p.X, Y: p.Y, Segment: segment,
			ArcCenterX: p.ArcCenterX, ArcCenterY: p.ArcCenterY,
			ArcDirection: p.ArcDirection,
		}
	}
	comp := w.Compensation
	if comp == "" {
		comp = CompensationNone
	}
	return LineCut{Points: points, Compensation: comp, LeadIn: w.LeadInSettings}, nil
}

// Operations collects a project's four parallel operation lists.
type Operations struct {
	DrillHoles    []DrillOperation
	CircularCuts  []CircularCutOperation
	HexagonalCuts []HexagonalCutOperation
	LineCuts      []LineCut
}

type operationsWire struct {
	DrillHoles    []json.RawMessage `json:"drill_holes"`
	CircularCuts  []json.RawMessage `json:"circular_cuts"`
	HexagonalCuts []json.RawMessage `json:"hexagonal_cuts"`
	LineCuts      []json.RawMessage `json:"line_cuts"`
}

// UnmarshalOperations decodes a project's "operations" object, dispatching
// each element of each list through its family's constructor.
func UnmarshalOperations(data []byte) (Operations, error) {
	var w operationsWire
	if err := json.Unmarshal(data, &w); err != nil {
		return Operations{}, fmt.Errorf("operations: %w", err)
	}
	var ops Operations
	for _, raw := range w.DrillHoles {
		op, err := UnmarshalDrillOperation(raw)
		if err != nil {
			return Operations{}, err
		}
		ops.DrillHoles = append(ops.DrillHoles, op)
	}
	for _, raw := range w.CircularCuts {
		op, err := UnmarshalCircularCutOperation(raw)
		if err != nil {
			return Operations{}, err
		}
		ops.CircularCuts = append(ops.CircularCuts, op)
	}
	for _, raw := range w.HexagonalCuts {
		op, err := UnmarshalHexagonalCutOperation(raw)
		if err != nil {
			return Operations{}, err
		}
		ops.HexagonalCuts = append(ops.HexagonalCuts, op)
	}
	for _, raw := range w.LineCuts {
		op, err := UnmarshalLineCut(raw)
		if err != nil {
			return Operations{}, err
		}
		ops.LineCuts = append(ops.LineCuts, op)
	}
	return ops, nil
}
