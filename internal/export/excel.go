package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"shareit/internal/models"
)

const sheetName = "Bookings"

// BookingSource is what the exporter needs from the database.
type BookingSource interface {
	GetBookingsBetween(ctx context.Context, from, to time.Time) ([]models.BookingDetail, error)
}

// Exporter writes booking reports as xlsx files.
type Exporter struct {
	source BookingSource
	dir    string
	logger zerolog.Logger
}

func NewExporter(source BookingSource, dir string, logger *zerolog.Logger) *Exporter {
	return &Exporter{
		source: source,
		dir:    dir,
		logger: logger.With().Str("component", "export").Logger(),
	}
}

// BookingsReport exports every booking overlapping the period and returns the
// written file path.
func (e *Exporter) BookingsReport(ctx context.Context, from, to time.Time) (string, error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("error creating export directory: %w", err)
	}

	bookings, err := e.source.GetBookingsBetween(ctx, from, to)
	if err != nil {
		return "", fmt.Errorf("error getting bookings: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return "", fmt.Errorf("error creating sheet: %w", err)
	}
	f.SetActiveSheet(index)

	_ = f.SetCellValue(sheetName, "A1", fmt.Sprintf("Period: %s - %s",
		from.Format("02.01.2006"), to.Format("02.01.2006")))

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	_ = f.SetCellStyle(sheetName, "A1", "A1", titleStyle)
	_ = f.MergeCell(sheetName, "A1", "G1")

	writeHeaders(f)
	writeRows(f, bookings)

	_ = f.SetColWidth(sheetName, "A", "A", 8)
	_ = f.SetColWidth(sheetName, "B", "C", 25)
	_ = f.SetColWidth(sheetName, "D", "E", 20)
	_ = f.SetColWidth(sheetName, "F", "G", 14)

	_ = f.DeleteSheet("Sheet1")

	fileName := fmt.Sprintf("bookings_%s_to_%s.xlsx",
		from.Format("2006-01-02"), to.Format("2006-01-02"))
	filePath := filepath.Join(e.dir, fileName)

	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("error saving file: %w", err)
	}

	e.logger.Info().Str("file_path", filePath).Int("bookings", len(bookings)).Msg("Excel report created")
	return filePath, nil
}

func writeHeaders(f *excelize.File) {
	headers := []string{"ID", "Item", "Booker", "Start", "End", "Status", "Owner ID"}

	style, _ := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})

	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		_ = f.SetCellValue(sheetName, cell, header)
		_ = f.SetCellStyle(sheetName, cell, cell, style)
	}
}

func writeRows(f *excelize.File, bookings []models.BookingDetail) {
	for i, b := range bookings {
		row := i + 3
		_ = f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), b.ID)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), b.Item.Name)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), fmt.Sprintf("%s (%s)", b.Booker.Name, b.Booker.Email))
		_ = f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), b.Start.Format("02.01.2006 15:04"))
		_ = f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), b.End.Format("02.01.2006 15:04"))
		_ = f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), b.Status)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), b.Item.OwnerID)

		if styleID, err := statusStyle(f, b.Status); err == nil {
			cell := fmt.Sprintf("F%d", row)
			_ = f.SetCellStyle(sheetName, cell, cell, styleID)
		}
	}
}

func statusStyle(f *excelize.File, status string) (int, error) {
	var color string
	switch status {
	case models.StatusApproved:
		color = "#C6EFCE"
	case models.StatusWaiting:
		color = "#FFEB9C"
	case models.StatusRejected:
		color = "#FFC7CE"
	default:
		color = "#FFFFFF"
	}
	return f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
}
