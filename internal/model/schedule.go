package model

import (
	"time"

	"github.com/google/uuid"
)

// Schedule is the export projection of a period's jobs, grouped per car with
// one extra group for unassigned work. It mirrors the dispatch board's
// column layout.
type Schedule struct {
	PeriodStart time.Time
	PeriodEnd   time.Time
	TotalJobs   int
	Groups      []ScheduleGroup
}

type ScheduleGroup struct {
	CarID uuid.UUID // uuid.Nil for the unassigned group
	Label string
	Jobs  []Job
}

// BuildSchedule groups jobs under their cars. Jobs without a car land in the
// leading "Unassigned" group unless completed.
func BuildSchedule(cars []Car, jobs []Job, from, to time.Time) Schedule {
	groups := make([]ScheduleGroup, 0, len(cars)+1)
	groups = append(groups, ScheduleGroup{CarID: uuid.Nil, Label: "Unassigned"})
	index := map[uuid.UUID]int{uuid.Nil: 0}

	for _, car := range cars {
		label := car.Regnr
		if car.Model != "" {
			label = car.Regnr + " (" + car.Model + ")"
		}
		groups = append(groups, ScheduleGroup{CarID: car.ID, Label: label})
		index[car.ID] = len(groups) - 1
	}

	total := 0
	for _, job := range jobs {
		if job.Assigned() {
			if pos, ok := index[*job.CarID]; ok {
				groups[pos].Jobs = append(groups[pos].Jobs, job)
				total++
			}
			continue
		}
		if job.Status == JobCompleted {
			continue
		}
		groups[0].Jobs = append(groups[0].Jobs, job)
		total++
	}

	return Schedule{
		PeriodStart: from,
		PeriodEnd:   to,
		TotalJobs:   total,
		Groups:      groups,
	}
}
