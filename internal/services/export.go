package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/justsurfingit/jobs-tracker/internal/models"
	"github.com/xuri/excelize/v2"
)

type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatXLSX ExportFormat = "xlsx"
)

var jobsHeader = []string{"Position", "Company", "City", "Application Date", "Status", "Job Link"}

func ParseExportFormat(s string) (ExportFormat, error) {
	switch ExportFormat(s) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("%w: format must be csv or xlsx", ErrValidation)
}

func (f ExportFormat) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// ExportFileName is JobsTracker_Export_<YYYY-MM-DD>.<ext>, dated in UTC.
func ExportFileName(f ExportFormat, now time.Time) string {
	return fmt.Sprintf("JobsTracker_Export_%s.%s", now.UTC().Format("2006-01-02"), f)
}

func Export(w io.Writer, f ExportFormat, s *Summary) error {
	if f == FormatXLSX {
		return ExportXLSX(w, s)
	}
	return ExportCSV(w, s)
}

func summaryRows(s *Summary) [][]interface{} {
	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Total Applications", s.Total},
	}
	for _, st := range models.Statuses {
		rows = append(rows, []interface{}{st.Label(), s.Counts[st]})
	}
	return rows
}

func jobsHeaderRow() []interface{} {
	row := make([]interface{}, len(jobsHeader))
	for i, h := range jobsHeader {
		row[i] = h
	}
	return row
}

func jobRow(job models.Job) []interface{} {
	return []interface{}{job.Position, job.Company, job.City, job.ApplicationDate, string(job.Status), job.JobLink}
}

// ExportCSV writes the summary section, a blank line, then the jobs section.
func ExportCSV(w io.Writer, s *Summary) error {
	cw := csv.NewWriter(w)
	write := func(rows ...[]interface{}) error {
		for _, row := range rows {
			record := make([]string, len(row))
			for i, v := range row {
				record[i] = fmt.Sprint(v)
			}
			if err := cw.Write(record); err != nil {
				return fmt.Errorf("failed to write csv row: %w", err)
			}
		}
		return nil
	}

	if err := write([]interface{}{"Summary"}); err != nil {
		return err
	}
	if err := write(summaryRows(s)...); err != nil {
		return err
	}
	// Blank separator line between the two sections.
	cw.Flush()
	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}

	if err := write([]interface{}{"Jobs"}, jobsHeaderRow()); err != nil {
		return err
	}
	for _, job := range s.Jobs {
		if err := write(jobRow(job)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportXLSX writes a workbook with a Summary and a Jobs sheet.
func ExportXLSX(w io.Writer, s *Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", "Summary"); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet("Jobs"); err != nil {
		return fmt.Errorf("failed to create jobs sheet: %w", err)
	}

	for i, row := range summaryRows(s) {
		if err := setRow(f, "Summary", i+1, row); err != nil {
			return err
		}
	}
	if err := setRow(f, "Jobs", 1, jobsHeaderRow()); err != nil {
		return err
	}
	for i, job := range s.Jobs {
		if err := setRow(f, "Jobs", i+2, jobRow(job)); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
	return nil
}
