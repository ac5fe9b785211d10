package excel

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/nurpe/wasteops-rental/internal/model"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate renders a dispatch schedule: one summary sheet plus a sheet per
// vehicle group.
func (g *Generator) Generate(schedule model.Schedule) ([]byte, error) {
	file := excelize.NewFile()

	summarySheet := "Summary"
	file.SetSheetName("Sheet1", summarySheet)
	if err := g.writeSummary(file, summarySheet, schedule); err != nil {
		return nil, err
	}

	usedNames := map[string]struct{}{summarySheet: {}}
	for _, group := range schedule.Groups {
		sheetName := buildSheetName(group.Label, group.CarID, usedNames)
		usedNames[sheetName] = struct{}{}

		file.NewSheet(sheetName)
		if err := g.writeGroup(file, sheetName, schedule, group); err != nil {
			return nil, err
		}
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeSummary(file *excelize.File, sheet string, schedule model.Schedule) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Period start")
	set("B1", formatDate(schedule.PeriodStart))
	set("A2", "Period end")
	set("B2", formatDate(schedule.PeriodEnd))
	set("A3", "Total jobs")
	set("B3", schedule.TotalJobs)

	tableRow := 5
	set(fmt.Sprintf("A%d", tableRow), "Vehicle")
	set(fmt.Sprintf("B%d", tableRow), "Jobs")

	for i, group := range schedule.Groups {
		row := tableRow + 1 + i
		set(fmt.Sprintf("A%d", row), group.Label)
		set(fmt.Sprintf("B%d", row), len(group.Jobs))
	}

	_ = file.SetColWidth(sheet, "A", "A", 40)
	_ = file.SetColWidth(sheet, "B", "B", 12)
	return nil
}

func (g *Generator) writeGroup(file *excelize.File, sheet string, schedule model.Schedule, group model.ScheduleGroup) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Vehicle")
	set("B1", group.Label)
	set("A2", "Period start")
	set("B2", formatDate(schedule.PeriodStart))
	set("A3", "Period end")
	set("B3", formatDate(schedule.PeriodEnd))
	set("A4", "Jobs")
	set("B4", len(group.Jobs))

	tableRow := 6
	headers := []string{
		"Date",
		"Customer",
		"Waste type",
		"Status",
		"Comment",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, tableRow)
		set(cell, header)
	}

	for i, job := range group.Jobs {
		row := tableRow + 1 + i
		set(fmt.Sprintf("A%d", row), formatDateTime(job.Date))
		set(fmt.Sprintf("B%d", row), customerName(job))
		set(fmt.Sprintf("C%d", row), string(job.Type))
		set(fmt.Sprintf("D%d", row), string(job.Status))
		set(fmt.Sprintf("E%d", row), job.Comment)
	}

	_ = file.SetColWidth(sheet, "A", "A", 20)
	_ = file.SetColWidth(sheet, "B", "B", 32)
	_ = file.SetColWidth(sheet, "C", "D", 16)
	_ = file.SetColWidth(sheet, "E", "E", 40)
	return nil
}

func customerName(job model.Job) string {
	if job.Agreement != nil && job.Agreement.Customer != nil {
		return job.Agreement.Customer.Name
	}
	return ""
}

func buildSheetName(label string, id uuid.UUID, used map[string]struct{}) string {
	base := strings.TrimSpace(label)
	if base == "" {
		base = id.String()
	}
	base = sanitizeSheetName(base)

	if len(base) > 31 {
		base = base[:31]
	}

	nameCandidate := base
	counter := 2
	for {
		if _, exists := used[nameCandidate]; !exists {
			return nameCandidate
		}
		suffix := fmt.Sprintf("-%d", counter)
		trimmed := base
		if len(trimmed)+len(suffix) > 31 {
			trimmed = trimmed[:31-len(suffix)]
		}
		nameCandidate = trimmed + suffix
		counter++
	}
}

func sanitizeSheetName(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "Sheet"
	}

	replacer := strings.NewReplacer(
		"[", "-",
		"]", "-",
		":", "-",
		"*", "-",
		"?", "-",
		"/", "-",
		"\\", "-",
	)
	value = replacer.Replace(value)
	value = strings.TrimSpace(value)
	if value == "" {
		return "Sheet"
	}
	return value
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04")
}
