package employee

import (
	"bytes"
	"context"
	"fmt"

	"ems/inner/common"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const (
	// ExportLimit верхняя граница строк в выгрузке
	ExportLimit = 5000
	exportSheet = "Employees"
)

var exportHeader = []any{
	"ID", "First name", "Last name", "Email", "Role", "Department", "Manager",
	"Employment type", "Status", "Location", "Hire date", "Salary",
}

// ExportEmployees выгружает в xlsx сотрудников по тем же фильтрам, что и список
func (svc *Service) ExportEmployees(ctx context.Context, criteria Criteria, order Order) ([]byte, error) {
	predicate := criteria.Predicate()
	rows, err := svc.repo.FetchPage(ctx, predicate, PageRequest{Limit: ExportLimit}, order)
	if err != nil {
		svc.logger.Error("Failed to fetch employees for export", zap.Error(err))
		return nil, fmt.Errorf("error fetching employees for export: %w", common.TranslateDbError(err, "employee"))
	}

	content, err := buildWorkbook(rows)
	if err != nil {
		svc.logger.Error("Failed to build employee workbook", zap.Error(err))
		return nil, fmt.Errorf("error building employee workbook: %w", err)
	}

	svc.logger.Info("Employees exported",
		zap.Int("rows", len(rows)),
		zap.Int("predicates", predicate.Len()))
	return content, nil
}

func buildWorkbook(rows []Row) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	sw, err := f.NewStreamWriter(exportSheet)
	if err != nil {
		return nil, err
	}
	if err = sw.SetColWidth(1, len(exportHeader), 18); err != nil {
		return nil, err
	}
	if err = sw.SetRow("A1", exportHeader, excelize.RowOpts{StyleID: headerStyle}); err != nil {
		return nil, err
	}

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err = sw.SetRow(cell, exportRow(rows[i].toResponse())); err != nil {
			return nil, err
		}
	}
	if err = sw.Flush(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if _, err = f.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func exportRow(r Response) []any {
	return []any{
		r.Id, r.FirstName, r.LastName, r.Email, r.RoleTitle,
		deref(r.DepartmentName), deref(r.ManagerName),
		r.EmploymentType, r.Status, deref(r.Location), deref(r.HireDate), deref(r.Salary),
	}
}

// deref пустая ячейка вместо nil
func deref[T any](value *T) any {
	if value == nil {
		return ""
	}
	return *value
}
