package collection

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rockalpatio/internal/model"
)

type item struct {
	ID  int64
	Cat string
}

func itemCat(i item) string { return i.Cat }

var itemCats = []model.Option{{ID: "a", Label: "A"}, {ID: "b", Label: "B"}, {ID: "c", Label: "C"}}

func randomItems(r *rand.Rand) []item {
	n := r.IntN(30)
	items := make([]item, n)
	for i := range items {
		items[i] = item{ID: int64(i + 1), Cat: itemCats[r.IntN(len(itemCats))].ID}
	}
	return items
}

func TestProjectAllReturnsInputUnchanged(t *testing.T) {
	items := []item{{1, "b"}, {2, "a"}, {3, "b"}}
	for _, all := range []string{All, "todas", ""} {
		assert.Equal(t, items, Project(items, all, itemCat), all)
	}
}

func TestProjectKeepsOnlyMatchingInOrder(t *testing.T) {
	items := []item{{1, "b"}, {2, "a"}, {3, "b"}, {4, "c"}}
	before := append([]item(nil), items...)

	got := Project(items, "b", itemCat)

	assert.Equal(t, []item{{1, "b"}, {3, "b"}}, got)
	assert.Equal(t, before, items, "source must not be modified")
	assert.Empty(t, Project(items, "z", itemCat))
}

func TestProjectionProperties(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for round := 0; round < 200; round++ {
		items := randomItems(r)

		total := 0
		for _, c := range itemCats {
			proj := Project(items, c.ID, itemCat)
			for _, it := range proj {
				require.Equal(t, c.ID, it.Cat)
			}
			// relative order is preserved
			for i := 1; i < len(proj); i++ {
				require.Less(t, proj[i-1].ID, proj[i].ID)
			}
			require.Equal(t, len(proj), Count(items, c.ID, itemCat))
			total += Count(items, c.ID, itemCat)
		}
		require.Equal(t, len(items), total, "categories partition the collection")
		require.Equal(t, len(items), Count(items, All, itemCat))
	}
}

func TestTabs(t *testing.T) {
	items := []item{{1, "b"}, {2, "a"}, {3, "b"}}

	tabs := Tabs(items, itemCats, itemCat, "b")

	assert.Equal(t, []Tab{
		{ID: All, Label: "Todos", Count: 3},
		{ID: "a", Label: "A", Count: 1},
		{ID: "b", Label: "B", Count: 2, Active: true},
		{ID: "c", Label: "C", Count: 0},
	}, tabs)
}
