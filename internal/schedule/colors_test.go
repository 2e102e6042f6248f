package schedule

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonhq/scheduler-api/internal/model"
)

func TestPaletteHasTenDistinctColors(t *testing.T) {
	colors := Palette()
	require.Len(t, colors, 10)

	seen := make(map[string]bool)
	for _, c := range colors {
		assert.False(t, seen[c.ID], "duplicate color id %s", c.ID)
		seen[c.ID] = true
		assert.NotEmpty(t, c.Normal.Background)
		assert.NotEmpty(t, c.Light.Background)
	}
}

func TestColorForIsStable(t *testing.T) {
	r := NewColorRegistry()
	staff := uuid.New()

	first := r.ColorFor(staff)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, r.ColorFor(staff), "same id must always map to the same color")
	}
}

func TestAssignUniquePicksFirstFreeColor(t *testing.T) {
	r := NewColorRegistry()

	got := r.AssignUnique(uuid.New(), []string{"rose", "amber"})
	assert.Equal(t, "emerald", got)

	got = r.AssignUnique(uuid.New(), nil)
	assert.Equal(t, "rose", got)
}

func TestAssignUniqueFallsBackToHashPastCapacity(t *testing.T) {
	r := NewColorRegistry()

	all := make([]string, 0, len(Palette()))
	for _, c := range Palette() {
		all = append(all, c.ID)
	}

	staff := uuid.New()
	got := r.AssignUnique(staff, all)
	assert.NotEmpty(t, got, "an eleventh staff member still gets a color")

	// And the fallback memoizes like any other assignment.
	assert.Equal(t, got, r.ColorFor(staff).ID)
}

func TestAssignRosterKeepsExistingColors(t *testing.T) {
	r := NewColorRegistry()
	kept := &model.StaffMember{ID: uuid.New(), Name: "Lena", ColorID: "teal"}
	fresh := &model.StaffMember{ID: uuid.New(), Name: "Jo"}

	r.AssignRoster([]*model.StaffMember{kept, fresh})

	assert.Equal(t, "teal", kept.ColorID)
	assert.NotEmpty(t, fresh.ColorID)
	assert.NotEqual(t, "teal", fresh.ColorID, "newly assigned colors avoid the ones in use")
	assert.Equal(t, "teal", r.ColorFor(kept.ID).ID)
}

func TestInvalidateAllForcesRederivation(t *testing.T) {
	r := NewColorRegistry()
	staff := uuid.New()

	assert.Equal(t, "rose", r.AssignUnique(staff, nil))
	r.InvalidateAll()

	// After a roster change the memo is empty; the id falls back to its hash
	// entry until the next roster assignment.
	got := r.ColorFor(staff)
	assert.NotEmpty(t, got.ID)
}
