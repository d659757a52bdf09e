package attendance

import (
	"bytes"
	"context"
	"fmt"

	attendanceerrors "go-hr-portal/internal/attendance/errors"
	"go-hr-portal/internal/shared/apperror"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const exportSheet = "Attendance"

var exportHeaders = []string{
	"Date", "Employee", "Department", "Status", "Clock In", "Clock Out",
	"Working Hours", "Overtime Hours", "Source", "Notes",
}

// ExportXLSX renders the filtered records as a single-sheet workbook. A
// degraded read is reported as unavailable rather than as an empty file.
func (s *service) ExportXLSX(ctx context.Context, companyID string, filter AttendanceFilter) (*bytes.Buffer, error) {
	result, err := s.Query(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	if result.Degraded {
		return nil, apperror.ErrServiceUnavailable
	}

	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, exportError(s.logger, err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, exportError(s.logger, err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, exportError(s.logger, err)
	}

	for i, h := range exportHeaders {
		ref, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(exportSheet, ref, h)
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
	_ = f.SetCellStyle(exportSheet, "A1", lastHeader, headerStyle)
	_ = f.SetColWidth(exportSheet, "A", "A", 12)
	_ = f.SetColWidth(exportSheet, "B", "C", 24)
	_ = f.SetColWidth(exportSheet, "E", "F", 22)

	for r, item := range result.Items {
		row := []any{
			item.AttendanceDate,
			item.EmployeeName,
			item.Department,
			item.Status,
			deref(item.ClockIn),
			deref(item.ClockOut),
			item.WorkingHours,
			item.OvertimeHours,
			item.Source,
			deref(item.Notes),
		}
		start, _ := excelize.CoordinatesToCellName(1, r+2)
		if err := f.SetSheetRow(exportSheet, start, &row); err != nil {
			return nil, exportError(s.logger, err)
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, exportError(s.logger, err)
	}

	s.logger.Info("attendance exported",
		zap.String("company_id", companyID),
		zap.Int("rows", len(result.Items)),
	)
	return buf, nil
}

func ExportFilename(filter AttendanceFilter) string {
	if filter.Date != "" {
		return fmt.Sprintf("attendance_%s.xlsx", filter.Date)
	}
	return "attendance.xlsx"
}

func exportError(logger *zap.Logger, err error) error {
	logger.Error("attendance export failed", zap.Error(err))
	return apperror.Wrap(err, attendanceerrors.ErrExportFailed.Code, attendanceerrors.ErrExportFailed.Message, attendanceerrors.ErrExportFailed.HTTPStatus)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
