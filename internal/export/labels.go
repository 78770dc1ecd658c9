package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/go-pdf/fpdf"
	"github.com/metafin/gpro/internal/gcode"
	"github.com/metafin/gpro/internal/model"
	qrcode "github.com/skip2/go-qrcode"
)

// SubroutineLabelInfo is the data encoded into each subroutine's QR code,
// for an operator to scan and verify the file a M98 call will invoke
// before running the job.
type SubroutineLabelInfo struct {
	JobName     string `json:"job"`
	Number      int    `json:"subroutine"`
	Path        string `json:"path"`
	Invocations int    `json:"invocations"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
const (
	labelMarginTop  = 12.7
	labelMarginLeft = 4.8
	labelWidth      = 66.7
	labelHeight     = 25.4
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 18.0
	labelPadding    = 2.0
)

// ExportSubroutineLabels generates a PDF of QR-coded labels, one per
// subroutine in result, for attaching to the traveler or the fixture so
// an operator can scan to confirm the absolute path a subroutine call
// resolves to before running the job.
func ExportSubroutineLabels(path string, jobName, basePath string, result model.GenerationResult, invocations map[int]int) error {
	if len(result.Subroutines) == 0 {
		return fmt.Errorf("no subroutines to generate labels for")
	}

	numbers := make([]int, 0, len(result.Subroutines))
	for n := range result.Subroutines {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, n := range numbers {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}
		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		info := SubroutineLabelInfo{
			JobName:     jobName,
			Number:      n,
			Path:        gcode.BuildSubroutinePath(basePath, result.SanitizedProjectName, n),
			Invocations: invocations[n],
		}
		if err := renderSubroutineLabel(pdf, x, y, info); err != nil {
			return fmt.Errorf("failed to render label for subroutine %d: %w", n, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderSubroutineLabel draws a single label at the given position.
func renderSubroutineLabel(pdf *fpdf.Fpdf, x, y float64, info SubroutineLabelInfo) error {
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%s_%d", info.JobName, info.Number)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	pdf.CellFormat(textW, 4.5, fmt.Sprintf("Sub %d", info.Number), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	pdf.CellFormat(textW, 3.5, fmt.Sprintf("%d calls", info.Invocations), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	jobLabel := info.JobName
	if pdf.GetStringWidth(jobLabel) > textW {
		for len(jobLabel) > 0 && pdf.GetStringWidth(jobLabel+"...") > textW {
			jobLabel = jobLabel[:len(jobLabel)-1]
		}
		jobLabel += "..."
	}
	pdf.CellFormat(textW, 3, jobLabel, "", 0, "L", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	return nil
}
