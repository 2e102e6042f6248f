package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotsCoverFullGrid(t *testing.T) {
	slots := Slots()

	// 65 boundaries fence the 64 bookable quarter-hour intervals.
	require.Len(t, slots, 65)

	assert.Equal(t, 8, slots[0].Hour)
	assert.Equal(t, 0, slots[0].Minute)
	assert.Equal(t, "8:00 AM", slots[0].Label)
	assert.Equal(t, "08:00", slots[0].Key())

	edge := slots[len(slots)-1]
	assert.Equal(t, 24, edge.Hour)

	bookable := BookableSlots()
	require.Len(t, bookable, 64)
	last := bookable[len(bookable)-1]
	assert.Equal(t, 23, last.Hour)
	assert.Equal(t, 45, last.Minute)
	assert.Equal(t, "11:45 PM", last.Label)
	assert.Equal(t, "23:45", last.Key())
}

func TestSlotsAreRestartable(t *testing.T) {
	first := Slots()
	second := Slots()
	assert.Equal(t, first, second)
}

func TestSlotAt(t *testing.T) {
	slot, err := SlotAt(13, 30)
	require.NoError(t, err)
	assert.Equal(t, "1:30 PM", slot.Label)

	_, err = SlotAt(7, 45)
	assert.Error(t, err, "before grid start")

	_, err = SlotAt(24, 0)
	assert.Error(t, err, "the closing edge is not bookable")

	_, err = SlotAt(10, 10)
	assert.Error(t, err, "off-boundary minute")
}

func TestParseSlotKey(t *testing.T) {
	slot, err := ParseSlotKey("09:15")
	require.NoError(t, err)
	assert.Equal(t, 9, slot.Hour)
	assert.Equal(t, 15, slot.Minute)

	_, err = ParseSlotKey("bogus")
	assert.Error(t, err)

	_, err = ParseSlotKey("06:00")
	assert.Error(t, err)
}
