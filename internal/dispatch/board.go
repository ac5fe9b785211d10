package dispatch

import (
	"github.com/google/uuid"

	"github.com/nurpe/wasteops-rental/internal/model"
)

// UnassignedLabel names the synthetic column holding jobs without a car.
const UnassignedLabel = "Unassigned"

// Column is one lane on the board. The unassigned lane uses uuid.Nil as its
// id; every other lane is keyed by a car id.
type Column struct {
	ID    uuid.UUID
	Label string
}

// Board is the in-memory projection of a tenant's jobs over its cars. Drag
// moves mutate card state provisionally; nothing is persisted until the
// controller commits the drop.
type Board struct {
	Columns []Column
	Cards   []model.Job
}

// NewBoard projects the given cars and jobs into columns and cards. The
// unassigned column always comes first.
func NewBoard(cars []model.Car, jobs []model.Job) *Board {
	columns := make([]Column, 0, len(cars)+1)
	columns = append(columns, Column{ID: uuid.Nil, Label: UnassignedLabel})
	for _, car := range cars {
		label := car.Regnr
		if car.Model != "" {
			label = car.Regnr + " (" + car.Model + ")"
		}
		columns = append(columns, Column{ID: car.ID, Label: label})
	}

	cards := make([]model.Job, len(jobs))
	copy(cards, jobs)

	return &Board{Columns: columns, Cards: cards}
}

// ColumnCards returns the cards belonging to a column. A card belongs to a
// car column when its car id matches; it belongs to the unassigned column
// when it has no car and is not completed.
func (b *Board) ColumnCards(columnID uuid.UUID) []model.Job {
	var cards []model.Job
	for _, card := range b.Cards {
		if cardInColumn(card, columnID) {
			cards = append(cards, card)
		}
	}
	return cards
}

func cardInColumn(card model.Job, columnID uuid.UUID) bool {
	if card.Assigned() {
		return *card.CarID == columnID
	}
	return columnID == uuid.Nil && card.Status != model.JobCompleted
}

// CardColumn returns the column the card currently sits in: the car id, or
// uuid.Nil for the unassigned lane.
func (b *Board) CardColumn(jobID uuid.UUID) (uuid.UUID, bool) {
	idx := b.cardIndex(jobID)
	if idx < 0 {
		return uuid.Nil, false
	}
	card := b.Cards[idx]
	if card.Assigned() {
		return *card.CarID, true
	}
	return uuid.Nil, true
}

// MoveOverCard drops the dragged card onto another card: the dragged job
// provisionally takes the target's car and is reordered adjacent to it.
func (b *Board) MoveOverCard(dragID, overID uuid.UUID) bool {
	if dragID == overID {
		return false
	}
	dragIdx := b.cardIndex(dragID)
	overIdx := b.cardIndex(overID)
	if dragIdx < 0 || overIdx < 0 {
		return false
	}

	card := b.Cards[dragIdx]
	over := b.Cards[overIdx]
	if over.Assigned() {
		carID := *over.CarID
		card.CarID = &carID
	} else {
		card.CarID = nil
	}

	b.Cards = append(b.Cards[:dragIdx], b.Cards[dragIdx+1:]...)
	overIdx = b.cardIndex(overID)
	b.Cards = append(b.Cards[:overIdx], append([]model.Job{card}, b.Cards[overIdx:]...)...)
	return true
}

// MoveOverColumn drops the dragged card onto empty column space. The
// uuid.Nil column is the unassigned sentinel and clears the car.
func (b *Board) MoveOverColumn(dragID, columnID uuid.UUID) bool {
	dragIdx := b.cardIndex(dragID)
	if dragIdx < 0 {
		return false
	}
	if columnID != uuid.Nil && !b.hasColumn(columnID) {
		return false
	}

	if columnID == uuid.Nil {
		b.Cards[dragIdx].CarID = nil
	} else {
		carID := columnID
		b.Cards[dragIdx].CarID = &carID
	}
	return true
}

// MoveColumn reorders the column display order. Purely cosmetic, never
// persisted.
func (b *Board) MoveColumn(dragID, overID uuid.UUID) bool {
	if dragID == overID {
		return false
	}
	dragIdx := b.columnIndex(dragID)
	overIdx := b.columnIndex(overID)
	if dragIdx < 0 || overIdx < 0 {
		return false
	}

	column := b.Columns[dragIdx]
	b.Columns = append(b.Columns[:dragIdx], b.Columns[dragIdx+1:]...)
	overIdx = b.columnIndex(overID)
	b.Columns = append(b.Columns[:overIdx], append([]Column{column}, b.Columns[overIdx:]...)...)
	return true
}

// Snapshot copies the current card state so a failed commit can be rolled
// back to the last known-good projection.
func (b *Board) Snapshot() []model.Job {
	cards := make([]model.Job, len(b.Cards))
	copy(cards, b.Cards)
	return cards
}

// Restore replays a snapshot over the provisional card state.
func (b *Board) Restore(cards []model.Job) {
	b.Cards = make([]model.Job, len(cards))
	copy(b.Cards, cards)
}

// ReplaceCards resynchronizes the projection from a fresh job list.
func (b *Board) ReplaceCards(jobs []model.Job) {
	b.Cards = make([]model.Job, len(jobs))
	copy(b.Cards, jobs)
}

func (b *Board) cardIndex(jobID uuid.UUID) int {
	for i, card := range b.Cards {
		if card.ID == jobID {
			return i
		}
	}
	return -1
}

func (b *Board) columnIndex(columnID uuid.UUID) int {
	for i, column := range b.Columns {
		if column.ID == columnID {
			return i
		}
	}
	return -1
}

func (b *Board) hasColumn(columnID uuid.UUID) bool {
	return b.columnIndex(columnID) >= 0
}
