package model

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// ProjectType selects which tool kind and which operation lists a
// generation run consumes.
type ProjectType string

const (
	ProjectDrill ProjectType = "drill"
	ProjectCut   ProjectType = "cut"
)

// Project is the complete, immutable input to one generation run.
type Project struct {
	JobID      string
	Name       string
	Type       ProjectType
	MaterialID string
	Material   Stock
	Tool       Tool
	Operations Operations

	TubeVoidSkip    bool
	WorkingLength   float64
	TubeOrientation TubeOrientation
}

// NewProject stamps a fresh JobID onto a project value, following the
// teacher's uuid.New().String() convention for externally-visible
// identifiers (here left untruncated; the full ID is written to the
// exported job's config.txt).
func NewProject(name string, projectType ProjectType) Project {
	return Project{
		JobID: uuid.New().String(),
		Name:  name,
		Type:  projectType,
	}
}

type projectWire struct {
	Name            string          `json:"name"`
	Type            ProjectType     `json:"project_type"`
	MaterialID      string          `json:"material_id"`
	Material        Stock           `json:"material"`
	Tool            Tool            `json:"tool"`
	Operations      json.RawMessage `json:"operations"`
	TubeVoidSkip    bool            `json:"tube_void_skip"`
	WorkingLength   float64         `json:"working_length"`
	TubeOrientation TubeOrientation `json:"tube_orientation"`
}

// UnmarshalJSON decodes a project from its external JSON representation,
// stamping a fresh JobID since one is never part of the wire format.
func (p *Project) UnmarshalJSON(data []byte) error {
	var w projectWire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("project: %w", err)
	}
	ops, err := UnmarshalOperations(w.Operations)
	if err != nil {
		return err
	}
	*p = Project{
		JobID:           uuid.New().String(),
		Name:            w.Name,
		Type:            w.Type,
		MaterialID:      w.MaterialID,
		Material:        w.Material,
		Tool:            w.Tool,
		Operations:      ops,
		TubeVoidSkip:    w.TubeVoidSkip,
		WorkingLength:   w.WorkingLength,
		TubeOrientation: w.TubeOrientation,
	}
	return nil
}
