package schedule

import (
	"hash/fnv"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/salonhq/scheduler-api/internal/model"
)

// palette is the fixed set of visually distinct staff colors, iterated in
// declared order for unique assignment.
var palette = []model.ColorAssignment{
	{ID: "rose", Normal: model.ColorVariant{Background: "bg-rose-500", Border: "border-rose-600", Text: "text-white"}, Light: model.ColorVariant{Background: "bg-rose-100", Border: "border-rose-300", Text: "text-rose-900"}},
	{ID: "amber", Normal: model.ColorVariant{Background: "bg-amber-500", Border: "border-amber-600", Text: "text-white"}, Light: model.ColorVariant{Background: "bg-amber-100", Border: "border-amber-300", Text: "text-amber-900"}},
	{ID: "emerald", Normal: model.ColorVariant{Background: "bg-emerald-500", Border: "border-emerald-600", Text: "text-white"}, Light: model.ColorVariant{Background: "bg-emerald-100", Border: "border-emerald-300", Text: "text-emerald-900"}},
	{ID: "sky", Normal: model.ColorVariant{Background: "bg-sky-500", Border: "border-sky-600", Text: "text-white"}, Light: model.ColorVariant{Background: "bg-sky-100", Border: "border-sky-300", Text: "text-sky-900"}},
	{ID: "violet", Normal: model.ColorVariant{Background: "bg-violet-500", Border: "border-violet-600", Text: "text-white"}, Light: model.ColorVariant{Background: "bg-violet-100", Border: "border-violet-300", Text: "text-violet-900"}},
	{ID: "fuchsia", Normal: model.ColorVariant{Background: "bg-fuchsia-500", Border: "border-fuchsia-600", Text: "text-white"}, Light: model.ColorVariant{Background: "bg-fuchsia-100", Border: "border-fuchsia-300", Text: "text-fuchsia-900"}},
	{ID: "teal", Normal: model.ColorVariant{Background: "bg-teal-500", Border: "border-teal-600", Text: "text-white"}, Light: model.ColorVariant{Background: "bg-teal-100", Border: "border-teal-300", Text: "text-teal-900"}},
	{ID: "orange", Normal: model.ColorVariant{Background: "bg-orange-500", Border: "border-orange-600", Text: "text-white"}, Light: model.ColorVariant{Background: "bg-orange-100", Border: "border-orange-300", Text: "text-orange-900"}},
	{ID: "indigo", Normal: model.ColorVariant{Background: "bg-indigo-500", Border: "border-indigo-600", Text: "text-white"}, Light: model.ColorVariant{Background: "bg-indigo-100", Border: "border-indigo-300", Text: "text-indigo-900"}},
	{ID: "lime", Normal: model.ColorVariant{Background: "bg-lime-500", Border: "border-lime-600", Text: "text-white"}, Light: model.ColorVariant{Background: "bg-lime-100", Border: "border-lime-300", Text: "text-lime-900"}},
}

// Palette returns the declared color set.
func Palette() []model.ColorAssignment {
	return palette
}

// ColorRegistry assigns collision-free display colors to staff. Memoized per
// staff id; InvalidateAll must be called when the roster changes so colors
// re-derive across all viewers.
type ColorRegistry struct {
	memo *cache.Cache
}

func NewColorRegistry() *ColorRegistry {
	return &ColorRegistry{memo: cache.New(cache.NoExpiration, cache.NoExpiration)}
}

// ColorFor returns a stable assignment for the staff id. Absent an explicit
// assignment it falls back to the deterministic hash entry, so the mapping
// survives reloads without persisted state.
func (r *ColorRegistry) ColorFor(staffID uuid.UUID) model.ColorAssignment {
	key := staffID.String()
	if v, ok := r.memo.Get(key); ok {
		return v.(model.ColorAssignment)
	}
	assigned := palette[hashIndex(key)]
	r.memo.SetDefault(key, assigned)
	return assigned
}

// AssignUnique picks the first palette entry not already taken. Past palette
// capacity it degrades to the hash fallback instead of failing.
func (r *ColorRegistry) AssignUnique(staffID uuid.UUID, takenColorIDs []string) string {
	taken := make(map[string]bool, len(takenColorIDs))
	for _, id := range takenColorIDs {
		taken[id] = true
	}

	key := staffID.String()
	for _, c := range palette {
		if !taken[c.ID] {
			r.memo.SetDefault(key, c)
			return c.ID
		}
	}

	c := palette[hashIndex(key)]
	r.memo.SetDefault(key, c)
	return c.ID
}

// AssignRoster derives assignments for a whole roster: entries that already
// carry a color keep it, the rest get unique colors in roster order.
func (r *ColorRegistry) AssignRoster(roster []*model.StaffMember) {
	var taken []string
	for _, s := range roster {
		if s.ColorID != "" {
			taken = append(taken, s.ColorID)
			if c, ok := byID(s.ColorID); ok {
				r.memo.SetDefault(s.ID.String(), c)
			}
		}
	}
	for _, s := range roster {
		if s.ColorID == "" {
			s.ColorID = r.AssignUnique(s.ID, taken)
			taken = append(taken, s.ColorID)
		}
	}
}

// InvalidateAll clears the memoization cache, forcing re-derivation on the
// next roster fetch.
func (r *ColorRegistry) InvalidateAll() {
	r.memo.Flush()
}

func byID(id string) (model.ColorAssignment, bool) {
	for _, c := range palette {
		if c.ID == id {
			return c, true
		}
	}
	return model.ColorAssignment{}, false
}

func hashIndex(key string) int {
	h := fnv.New32a()
	h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(palette)))
}
