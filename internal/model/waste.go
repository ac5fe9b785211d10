package model

import "strings"

// WasteCategory classifies what an agreement, container or job deals with.
// Legacy rows may carry free-form labels; those parse to WasteUnknown instead
// of silently becoming new categories.
type WasteCategory string

const (
	WasteHousehold    WasteCategory = "HOUSEHOLD"
	WasteIndustrial   WasteCategory = "INDUSTRIAL"
	WasteConstruction WasteCategory = "CONSTRUCTION"
	WasteOrganic      WasteCategory = "ORGANIC"
	WasteRecycling    WasteCategory = "RECYCLING"
	WasteHazardous    WasteCategory = "HAZARDOUS"
	WasteUnknown      WasteCategory = "UNKNOWN"
)

func ParseWasteCategory(raw string) WasteCategory {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case string(WasteHousehold):
		return WasteHousehold
	case string(WasteIndustrial):
		return WasteIndustrial
	case string(WasteConstruction):
		return WasteConstruction
	case string(WasteOrganic):
		return WasteOrganic
	case string(WasteRecycling):
		return WasteRecycling
	case string(WasteHazardous):
		return WasteHazardous
	default:
		return WasteUnknown
	}
}

func (c WasteCategory) Valid() bool {
	return c != WasteUnknown && c != ""
}
