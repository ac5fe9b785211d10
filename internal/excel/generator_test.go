package excel

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/nurpe/wasteops-rental/internal/model"
)

func TestGenerator_Generate(t *testing.T) {
	carID := uuid.New()
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	schedule := model.Schedule{
		PeriodStart: from,
		PeriodEnd:   to,
		TotalJobs:   2,
		Groups: []model.ScheduleGroup{
			{
				CarID: uuid.Nil,
				Label: "Unassigned",
				Jobs: []model.Job{
					{ID: uuid.New(), Type: model.WasteHousehold, Status: model.JobUnassigned, Date: from},
				},
			},
			{
				CarID: carID,
				Label: "AB 11111 (Volvo FMX)",
				Jobs: []model.Job{
					{
						ID:     uuid.New(),
						CarID:  &carID,
						Type:   model.WasteConstruction,
						Status: model.JobAssigned,
						Date:   from.AddDate(0, 0, 4),
						Agreement: &model.Agreement{
							Customer: &model.Customer{Name: "Berg AS"},
						},
					},
				},
			},
		},
	}

	content, err := NewGenerator().Generate(schedule)
	require.NoError(t, err)
	require.NotEmpty(t, content)

	file, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer file.Close()

	sheets := file.GetSheetList()
	assert.Contains(t, sheets, "Summary")
	assert.Contains(t, sheets, "Unassigned")
	assert.Contains(t, sheets, "AB 11111 (Volvo FMX)")

	total, err := file.GetCellValue("Summary", "B3")
	require.NoError(t, err)
	assert.Equal(t, "2", total)

	customer, err := file.GetCellValue("AB 11111 (Volvo FMX)", "B7")
	require.NoError(t, err)
	assert.Equal(t, "Berg AS", customer)
}

func TestBuildSheetName(t *testing.T) {
	used := map[string]struct{}{}

	name := buildSheetName("AB 11111 (Volvo FMX)", uuid.New(), used)
	assert.Equal(t, "AB 11111 (Volvo FMX)", name)
	used[name] = struct{}{}

	// Duplicates get a numeric suffix.
	dup := buildSheetName("AB 11111 (Volvo FMX)", uuid.New(), used)
	assert.Equal(t, "AB 11111 (Volvo FMX)-2", dup)

	// Invalid characters are replaced and long names truncated to the
	// workbook limit.
	long := buildSheetName("A/B[C]D:E*F?G\\H very long sheet label here", uuid.New(), used)
	assert.LessOrEqual(t, len(long), 31)
	assert.NotContains(t, long, "/")
	assert.NotContains(t, long, "[")

	id := uuid.New()
	fallback := buildSheetName("", id, map[string]struct{}{})
	assert.NotEmpty(t, fallback)
}
