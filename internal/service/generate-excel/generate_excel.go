package generate_excel

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/PareasySys/sysquote-sub002/internal/calendar"
	"github.com/PareasySys/sysquote-sub002/internal/service/schedule"
)

const (
	maxSheetName = 31
	// первые колонки: ресурс, позиция, часы; дальше по колонке на день
	fixedColumns = 3
)

type GanttCalculator interface {
	Compute(ctx context.Context, quoteID uuid.UUID, override schedule.Override) (*schedule.Result, error)
}

type GenerateExcelService struct {
	calc GanttCalculator
}

func NewGenerateService(calc GanttCalculator) *GenerateExcelService {
	return &GenerateExcelService{calc: calc}
}

func (g *GenerateExcelService) GenerateExcel(ctx context.Context, quoteID uuid.UUID, override schedule.Override) ([]byte, error) {
	const op = "service.generate_excel.GenerateExcel"

	res, err := g.calc.Compute(ctx, quoteID, override)
	if err != nil {
		return nil, fmt.Errorf("%s: compute gantt: %w", op, err)
	}

	f, err := BuildWorkbook(res)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%s: write workbook: %w", op, err)
	}

	return buf.Bytes(), nil
}

type styles struct {
	header   int
	weekend  int
	resource int
	busy     int
	skipped  int
}

// BuildWorkbook раскладывает расчёт по листам: один лист на план, в порядке PlanOrder.
func BuildWorkbook(res *schedule.Result) (*excelize.File, error) {
	f := excelize.NewFile()

	st, err := newStyles(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	used := make(map[string]bool)
	for i, planID := range res.PlanOrder {
		plan, ok := res.Plans[planID]
		if !ok {
			continue
		}

		sheet := sheetName(plan, used)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				f.Close()
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			f.Close()
			return nil, fmt.Errorf("new sheet %q: %w", sheet, err)
		}

		if err := writePlan(f, sheet, plan, res.Policy, st); err != nil {
			f.Close()
			return nil, fmt.Errorf("sheet %q: %w", sheet, err)
		}
	}

	return f, nil
}

func newStyles(f *excelize.File) (styles, error) {
	var (
		st  styles
		err error
	)

	st.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border:    []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return st, fmt.Errorf("header style: %w", err)
	}

	st.weekend, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "9C0006"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"FFC7CE"}, Pattern: 1},
	})
	if err != nil {
		return st, fmt.Errorf("weekend style: %w", err)
	}

	st.resource, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"F2F2F2"}, Pattern: 1},
	})
	if err != nil {
		return st, fmt.Errorf("resource style: %w", err)
	}

	st.busy, err = f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"9BC2E6"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return st, fmt.Errorf("busy style: %w", err)
	}

	st.skipped, err = f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"D9D9D9"}, Pattern: 1},
	})
	if err != nil {
		return st, fmt.Errorf("skipped style: %w", err)
	}

	return st, nil
}

func writePlan(f *excelize.File, sheet string, plan schedule.PlanGanttData, policy schedule.WeekendPolicy, st styles) error {
	headers := []string{"Ресурс", "Позиция", "Часы"}
	for i, name := range headers {
		if err := f.SetCellValue(sheet, cellName(i+1, 1), name); err != nil {
			return err
		}
	}

	for day := 1; day <= plan.TotalDays; day++ {
		col := fixedColumns + day
		if err := f.SetCellValue(sheet, cellName(col, 1), day); err != nil {
			return err
		}
		style := st.header
		if !calendar.IsWorkingDay(day, policy.WorkSaturday, policy.WorkSunday) {
			style = st.weekend
		}
		if err := f.SetCellStyle(sheet, cellName(col, 1), cellName(col, 1), style); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(sheet, "A1", cellName(fixedColumns, 1), st.header); err != nil {
		return err
	}

	row := 2
	for _, res := range plan.Resources {
		f.SetCellValue(sheet, cellName(1, row), res.ResourceName)
		f.SetCellValue(sheet, cellName(3, row), res.TotalHours)
		if err := f.SetCellStyle(sheet, cellName(1, row), cellName(fixedColumns, row), st.resource); err != nil {
			return err
		}
		row++

		for _, task := range res.Tasks {
			f.SetCellValue(sheet, cellName(2, row), task.ItemName)
			f.SetCellValue(sheet, cellName(3, row), task.Hours)

			for i, hours := range task.HoursPerDay {
				cell := cellName(fixedColumns+task.StartDay+i, row)
				style := st.skipped
				if hours > 0 {
					f.SetCellValue(sheet, cell, hours)
					style = st.busy
				}
				if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
					return err
				}
			}
			row++
		}
	}

	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		XSplit:      fixedColumns,
		YSplit:      1,
		TopLeftCell: cellName(fixedColumns+1, 2),
	}); err != nil {
		return err
	}

	f.SetColWidth(sheet, "A", "B", 24)
	f.SetColWidth(sheet, "C", "C", 8)
	if plan.TotalDays > 0 {
		first, _ := excelize.ColumnNumberToName(fixedColumns + 1)
		last, _ := excelize.ColumnNumberToName(fixedColumns + plan.TotalDays)
		f.SetColWidth(sheet, first, last, 4)
	}

	return nil
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

// sheetName приводит имя плана к ограничениям Excel и делает его уникальным.
func sheetName(plan schedule.PlanGanttData, used map[string]bool) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, strings.TrimSpace(plan.PlanName))
	if name == "" {
		name = fmt.Sprintf("План %d", plan.PlanID)
	}
	name = truncate(name, maxSheetName)

	// Excel сравнивает имена листов без учёта регистра
	if !used[strings.ToLower(name)] {
		used[strings.ToLower(name)] = true
		return name
	}

	for n := 2; ; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		candidate := truncate(name, maxSheetName-len([]rune(suffix))) + suffix
		if !used[strings.ToLower(candidate)] {
			used[strings.ToLower(candidate)] = true
			return candidate
		}
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
