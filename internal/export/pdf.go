// Package export renders a human-readable setup sheet and QR-coded
// subroutine labels for a completed generation, adapted from the
// teacher's cut-list PDF renderer (internal/export/pdf.go) onto
// GenerationResult instead of OptimizeResult.
package export

import (
	"fmt"
	"sort"

	"github.com/go-pdf/fpdf"
	"github.com/metafin/gpro/internal/model"
)

// Page layout constants (Letter portrait, in mm).
const (
	pageWidth    = 215.9
	pageHeight   = 279.4
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
)

// ExportSetupSheet renders a one-job traveler document: material and tool
// summary, cut parameters, per-shape operation counts, the subroutine
// table (number, file, invocation count), and any generation warnings.
// It is the PDF twin of the plain-text config.txt the file adapter writes
// alongside main.tap.
func ExportSetupSheet(path string, proj model.Project, params model.CutParameters, settings model.GenerationSettings, result model.GenerationResult, invocations map[int]int) error {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(true, marginBottom)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 8, fmt.Sprintf("Setup Sheet: %s", proj.Name), "", 1, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.4)
	pdf.Line(marginLeft, marginTop+10, pageWidth-marginRight, marginTop+10)

	y := marginTop + 16
	y = writeKeyValueSection(pdf, "Material & Tool", materialToolRows(proj), y)
	y += 4
	y = writeKeyValueSection(pdf, "Cut Parameters", cutParameterRows(proj, params), y)
	y += 4
	y = writeKeyValueSection(pdf, "Operations", operationCountRows(proj), y)
	y += 4

	y = writeSubroutineTable(pdf, result, invocations, y)

	if len(result.Warnings) > 0 {
		y += 6
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(180, 90, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(0, 6, "Warnings", "", 1, "L", false, 0, "")
		y += 6

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		for _, w := range result.Warnings {
			pdf.SetXY(marginLeft+4, y)
			pdf.MultiCell(pageWidth-marginLeft-marginRight-4, 4.5, "- "+w, "", "L", false)
			y = pdf.GetY()
		}
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, fmt.Sprintf("gpro setup sheet \xb7 %s", result.SanitizedProjectName), "", 0, "C", false, 0, "")

	return pdf.OutputFileAndClose(path)
}

func materialToolRows(proj model.Project) [][2]string {
	rows := [][2]string{
		{"Project type", string(proj.Type)},
		{"Material ID", proj.MaterialID},
	}
	switch proj.Material.Kind {
	case model.StockSheet:
		rows = append(rows, [2]string{"Stock", fmt.Sprintf("sheet, %.4f thick", proj.Material.Thickness)})
	case model.StockTube:
		rows = append(rows, [2]string{"Stock", fmt.Sprintf("tube, %.4f x %.4f, wall %.4f",
			proj.Material.OuterWidth, proj.Material.OuterHeight, proj.Material.WallThickness)})
		rows = append(rows, [2]string{"Tube orientation", string(proj.TubeOrientation)})
		rows = append(rows, [2]string{"Void skip", fmt.Sprintf("%v", proj.TubeVoidSkip)})
	}
	rows = append(rows, [2]string{"Tool", fmt.Sprintf("%s, %.4f diameter", proj.Tool.Kind, proj.Tool.Diameter)})
	if proj.Tool.TipCompensation > 0 {
		rows = append(rows, [2]string{"Tip compensation", fmt.Sprintf("%.4f", proj.Tool.TipCompensation)})
	}
	return rows
}

func cutParameterRows(proj model.Project, params model.CutParameters) [][2]string {
	rows := [][2]string{
		{"Spindle speed", fmt.Sprintf("%d RPM", params.SpindleSpeed)},
		{"Feed rate", fmt.Sprintf("%.1f /min", params.FeedRate)},
		{"Plunge rate", fmt.Sprintf("%.1f /min", params.PlungeRate)},
	}
	if proj.Type == model.ProjectDrill && params.PeckingDepth != nil {
		rows = append(rows, [2]string{"Pecking depth", fmt.Sprintf("%.4f", *params.PeckingDepth)})
	}
	if proj.Type == model.ProjectCut && params.PassDepth != nil {
		rows = append(rows, [2]string{"Pass depth", fmt.Sprintf("%.4f", *params.PassDepth)})
	}
	return rows
}

func operationCountRows(proj model.Project) [][2]string {
	return [][2]string{
		{"Drill operations", fmt.Sprintf("%d", len(proj.Operations.DrillHoles))},
		{"Circular cuts", fmt.Sprintf("%d", len(proj.Operations.CircularCuts))},
		{"Hexagonal cuts", fmt.Sprintf("%d", len(proj.Operations.HexagonalCuts))},
		{"Line cuts", fmt.Sprintf("%d", len(proj.Operations.LineCuts))},
	}
}

// writeKeyValueSection renders a titled two-column block and returns the Y
// position immediately below it.
func writeKeyValueSection(pdf *fpdf.Fpdf, title string, rows [][2]string, y float64) float64 {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(0, 6, title, "", 1, "L", false, 0, "")
	y += 7

	pdf.SetFont("Helvetica", "", 9)
	for _, row := range rows {
		pdf.SetXY(marginLeft+4, y)
		pdf.CellFormat(55, 5, row[0]+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(0, 5, row[1], "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		y += 5
	}
	return y
}

// writeSubroutineTable renders the subroutine number/file/invocation-count
// table in ascending subroutine-number order.
func writeSubroutineTable(pdf *fpdf.Fpdf, result model.GenerationResult, invocations map[int]int, y float64) float64 {
	if len(result.Subroutines) == 0 {
		return y
	}

	numbers := make([]int, 0, len(result.Subroutines))
	for n := range result.Subroutines {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(0, 6, "Subroutines", "", 1, "L", false, 0, "")
	y += 7

	colWidths := []float64{30, 90, 40}
	headers := []string{"Number", "File", "Calls"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	x := marginLeft
	for i, h := range headers {
		pdf.SetXY(x, y)
		pdf.CellFormat(colWidths[i], 6, h, "1", 0, "C", true, 0, "")
		x += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, n := range numbers {
		x = marginLeft
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		row := []string{
			fmt.Sprintf("%d", n),
			fmt.Sprintf("%d.nc", n),
			fmt.Sprintf("%d", invocations[n]),
		}
		for j, cell := range row {
			pdf.SetXY(x, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			x += colWidths[j]
		}
		y += 6
	}
	return y
}
