package importer

import (
	"strings"
	"testing"
)

func TestDetectColumnsRecognizesHeaderAliases(t *testing.T) {
	mapping, ok := DetectColumns([]string{"Hole", "Pos X", "Pos Y"})
	if !ok {
		t.Fatal("expected header row to be detected")
	}
	if mapping.Label != 0 || mapping.X != 1 || mapping.Y != 2 {
		t.Errorf("unexpected mapping: %+v", mapping)
	}
}

func TestDetectColumnsFallsBackToPositional(t *testing.T) {
	mapping, ok := DetectColumns([]string{"A1", "1.0", "2.0"})
	if ok {
		t.Fatal("expected no header detected for a plain data row")
	}
	if mapping.Label != 0 || mapping.X != 1 || mapping.Y != 2 {
		t.Errorf("unexpected positional mapping: %+v", mapping)
	}
}

func TestImportCSVFromReaderParsesPoints(t *testing.T) {
	csv := "label,x,y\nA,1.0,2.0\nB,3.5,-1.25\n"
	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(result.Points))
	}
	if result.Points[0].X != 1.0 || result.Points[0].Y != 2.0 {
		t.Errorf("unexpected first point: %+v", result.Points[0])
	}
	if result.Points[1].X != 3.5 || result.Points[1].Y != -1.25 {
		t.Errorf("unexpected second point: %+v", result.Points[1])
	}
	if result.Labels[0] != "A" || result.Labels[1] != "B" {
		t.Errorf("unexpected labels: %v", result.Labels)
	}
}

func TestImportCSVFromReaderSkipsBlankRows(t *testing.T) {
	csv := "x,y\n1,1\n\n2,2\n"
	result := ImportCSVFromReader(strings.NewReader(csv), ',')
	if len(result.Points) != 2 {
		t.Fatalf("expected blank row to be skipped, got %d points", len(result.Points))
	}
}

func TestImportCSVFromReaderReportsMissingValue(t *testing.T) {
	csv := "x,y\n1,\n"
	result := ImportCSVFromReader(strings.NewReader(csv), ',')
	if len(result.Errors) != 1 {
		t.Fatalf("expected one error for the missing Y value, got %v", result.Errors)
	}
	if len(result.Points) != 0 {
		t.Errorf("expected no points parsed, got %d", len(result.Points))
	}
}

func TestImportCSVFromReaderMissingRequiredHeaderIsAnError(t *testing.T) {
	csv := "label,depth\nA,0.5\n"
	result := ImportCSVFromReader(strings.NewReader(csv), ',')
	if len(result.Errors) == 0 {
		t.Fatal("expected an error when X/Y columns cannot be found")
	}
}

func TestDetectCSVDelimiterPrefersSemicolon(t *testing.T) {
	data := []byte("x;y\n1;2\n3;4\n")
	if got := DetectCSVDelimiter(data); got != ';' {
		t.Errorf("expected semicolon delimiter, got %q", got)
	}
}
