// Package export writes the per-officer report table as CSV, XLSX or PDF.
// Every format uses the same two columns: Officer Name, Total Hours.
package export

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/gocarina/gocsv"
	"github.com/xuri/excelize/v2"

	"github.com/synchub/attendance/internal/core/domain"
)

// ErrUnsupportedFormat is returned for formats other than csv, xlsx and pdf.
var ErrUnsupportedFormat = errors.New("unsupported export format")

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
	FormatPDF  = "pdf"
)

var headers = []string{"Officer Name", "Total Hours"}

// Row is one line of the exported table.
type Row struct {
	OfficerName string `csv:"Officer Name"`
	TotalHours  string `csv:"Total Hours"`
}

// Rows converts officer summaries into export rows with two-decimal hours.
func Rows(officers []domain.OfficerSummary) []Row {
	rows := make([]Row, 0, len(officers))
	for _, o := range officers {
		rows = append(rows, Row{
			OfficerName: o.Name,
			TotalHours:  strconv.FormatFloat(o.TotalHours, 'f', 2, 64),
		})
	}
	return rows
}

// ContentType returns the MIME type for format.
func ContentType(format string) (string, error) {
	switch format {
	case FormatCSV:
		return "text/csv; charset=utf-8", nil
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil
	case FormatPDF:
		return "application/pdf", nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// Filename builds the download name, e.g. time_report_2025-10-01_2025-10-31.csv.
func Filename(format, startDate, endDate string) string {
	parts := []string{"time_report"}
	if startDate != "" {
		parts = append(parts, startDate)
	}
	if endDate != "" {
		parts = append(parts, endDate)
	}
	return strings.Join(parts, "_") + "." + format
}

// Write encodes the report in format. title is used by formats that carry one.
func Write(w io.Writer, format, title string, officers []domain.OfficerSummary) error {
	rows := Rows(officers)
	switch format {
	case FormatCSV:
		return writeCSV(w, rows)
	case FormatXLSX:
		return writeXLSX(w, rows)
	case FormatPDF:
		return writePDF(w, title, rows)
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

func writeCSV(w io.Writer, rows []Row) error {
	if len(rows) == 0 {
		// gocsv emits nothing for an empty slice; keep the header row.
		_, err := io.WriteString(w, strings.Join(headers, ",")+"\n")
		return err
	}
	return gocsv.Marshal(rows, w)
}

func writeXLSX(w io.Writer, rows []Row) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Time Report"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("xlsx: %w", err)
	}
	for i, h := range headers {
		if err := f.SetCellValue(sheet, fmt.Sprintf("%c1", 'A'+i), h); err != nil {
			return fmt.Errorf("xlsx: %w", err)
		}
	}
	for idx, r := range rows {
		row := idx + 2
		hours, _ := strconv.ParseFloat(r.TotalHours, 64)
		if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", row), r.OfficerName); err != nil {
			return fmt.Errorf("xlsx: %w", err)
		}
		if err := f.SetCellValue(sheet, fmt.Sprintf("B%d", row), hours); err != nil {
			return fmt.Errorf("xlsx: %w", err)
		}
	}
	_ = f.SetColWidth(sheet, "A", "A", 30)
	_ = f.SetColWidth(sheet, "B", "B", 14)

	return f.Write(w)
}

func writePDF(w io.Writer, title string, rows []Row) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, title, "", 1, "L", false, 0, "")
	pdf.Ln(4)

	widths := []float64{120, 50}
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 11)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	for _, r := range rows {
		pdf.CellFormat(widths[0], 7, tr(r.OfficerName), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 7, r.TotalHours, "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("pdf: %w", err)
	}
	return pdf.Output(w)
}
