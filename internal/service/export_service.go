package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/campushub/timetable-api/internal/dto"
	"github.com/campushub/timetable-api/pkg/export"
	appErrors "github.com/campushub/timetable-api/pkg/errors"
)

// Export formats.
const (
	FormatCSV = "csv"
	FormatPDF = "pdf"
)

type exportSource interface {
	ExportRows(ctx context.Context, scheduleID int64) ([]dto.ExportRow, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportFile is a rendered export ready to stream.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders a schedule's placed sections as CSV or PDF.
type ExportService struct {
	source exportSource
	csv    csvRenderer
	pdf    pdfRenderer
	title  string
	logger *zap.Logger
}

// NewExportService constructs an export service.
func NewExportService(source exportSource, title string, logger *zap.Logger, csv csvRenderer, pdf pdfRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if title == "" {
		title = "Timetable"
	}
	return &ExportService{source: source, csv: csv, pdf: pdf, title: title, logger: logger}
}

var exportHeaders = []string{"course_code", "course_name", "instructor", "day", "room", "start_time", "end_time", "duration", "format"}

// Export renders the schedule in the requested format.
func (s *ExportService) Export(ctx context.Context, scheduleID int64, format string) (*ExportFile, error) {
	rows, err := s.source.ExportRows(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	dataset := export.Dataset{Headers: exportHeaders, Rows: make([]map[string]string, 0, len(rows))}
	for _, row := range rows {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"course_code": row.CourseCode,
			"course_name": row.CourseName,
			"instructor":  row.Instructor,
			"day":         row.Day,
			"room":        row.Room,
			"start_time":  row.StartTime,
			"end_time":    row.EndTime,
			"duration":    fmt.Sprintf("%.2f", row.Duration),
			"format":      row.Format,
		})
	}

	switch format {
	case FormatCSV, "":
		data, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render csv export")
		}
		return &ExportFile{
			Filename:    fmt.Sprintf("schedule-%d.csv", scheduleID),
			ContentType: "text/csv",
			Data:        data,
		}, nil
	case FormatPDF:
		data, err := s.pdf.Render(dataset, fmt.Sprintf("%s - schedule %d", s.title, scheduleID))
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render pdf export")
		}
		return &ExportFile{
			Filename:    fmt.Sprintf("schedule-%d.pdf", scheduleID),
			ContentType: "application/pdf",
			Data:        data,
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}
