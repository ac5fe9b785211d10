package http

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
)

// optionalUUID distinguishes an absent field from an explicit null in a
// partial-update payload. A null, empty or "0" value means "clear the
// reference" (the zero sentinel dispatch clients send for unassignment).
type optionalUUID struct {
	Set   bool
	Value *uuid.UUID
}

func (o *optionalUUID) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "0" {
		o.Value = nil
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return err
	}
	o.Value = &id
	return nil
}

// optionalDate carries an absent/null/value date string for partial updates.
type optionalDate struct {
	Set   bool
	Null  bool
	Value string
}

func (o *optionalDate) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Null = true
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}
