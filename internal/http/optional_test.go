package http

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalUUID_Unmarshal(t *testing.T) {
	type payload struct {
		CarID optionalUUID `json:"car_id"`
	}

	var absent payload
	require.NoError(t, json.Unmarshal([]byte(`{}`), &absent))
	assert.False(t, absent.CarID.Set)

	var null payload
	require.NoError(t, json.Unmarshal([]byte(`{"car_id":null}`), &null))
	assert.True(t, null.CarID.Set)
	assert.Nil(t, null.CarID.Value)

	var empty payload
	require.NoError(t, json.Unmarshal([]byte(`{"car_id":""}`), &empty))
	assert.True(t, empty.CarID.Set)
	assert.Nil(t, empty.CarID.Value)

	var zero payload
	require.NoError(t, json.Unmarshal([]byte(`{"car_id":"0"}`), &zero))
	assert.True(t, zero.CarID.Set)
	assert.Nil(t, zero.CarID.Value)

	id := uuid.New()
	var set payload
	require.NoError(t, json.Unmarshal([]byte(`{"car_id":"`+id.String()+`"}`), &set))
	assert.True(t, set.CarID.Set)
	require.NotNil(t, set.CarID.Value)
	assert.Equal(t, id, *set.CarID.Value)

	var bad payload
	assert.Error(t, json.Unmarshal([]byte(`{"car_id":"not-a-uuid"}`), &bad))
}

func TestOptionalDate_Unmarshal(t *testing.T) {
	type payload struct {
		ValidTo optionalDate `json:"valid_to"`
	}

	var absent payload
	require.NoError(t, json.Unmarshal([]byte(`{}`), &absent))
	assert.False(t, absent.ValidTo.Set)

	var null payload
	require.NoError(t, json.Unmarshal([]byte(`{"valid_to":null}`), &null))
	assert.True(t, null.ValidTo.Set)
	assert.True(t, null.ValidTo.Null)

	var set payload
	require.NoError(t, json.Unmarshal([]byte(`{"valid_to":"2026-06-30"}`), &set))
	assert.True(t, set.ValidTo.Set)
	assert.False(t, set.ValidTo.Null)
	assert.Equal(t, "2026-06-30", set.ValidTo.Value)
}
