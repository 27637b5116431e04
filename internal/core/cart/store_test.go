package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddItem(t *testing.T) {
	t.Run("MergesSamePair", func(t *testing.T) {
		s := NewStore()

		s.AddItem("prod-1", "var-m-blue", 2, 40)
		sum := s.AddItem("prod-1", "var-m-blue", 3, 40)

		require.Len(t, sum.Items, 1)
		assert.Equal(t, 5, sum.Items[0].Quantity)
		assert.Equal(t, 5, sum.TotalItems)
		assert.Equal(t, 5, s.TotalItems())
		assert.Equal(t, 200.0, sum.TotalPrice)
	})

	t.Run("AppendsDistinctPairs", func(t *testing.T) {
		s := NewStore()

		s.AddItem("prod-1", "var-m-blue", 1, 40)
		s.AddItem("prod-1", "var-l-blue", 1, 40)
		sum := s.AddItem("prod-2", "", 1, 35)

		require.Len(t, sum.Items, 3)
		assert.Equal(t, 3, sum.TotalItems)
		assert.Equal(t, 115.0, sum.TotalPrice)
	})

	t.Run("ClampsQuantity", func(t *testing.T) {
		s := NewStore()

		sum := s.AddItem("prod-1", "var-m-blue", 0, 40)
		require.Len(t, sum.Items, 1)
		assert.Equal(t, 1, sum.Items[0].Quantity)
	})

	t.Run("KeepsUnitPriceAtTimeOfAdding", func(t *testing.T) {
		s := NewStore()

		s.AddItem("prod-1", "var-m-blue", 1, 40)
		sum := s.AddItem("prod-1", "var-m-blue", 1, 45)

		require.Len(t, sum.Items, 1)
		assert.Equal(t, 40.0, sum.Items[0].UnitPrice)
		assert.Equal(t, 80.0, sum.TotalPrice)
	})
}

func TestRemoveItem(t *testing.T) {
	t.Run("Removes", func(t *testing.T) {
		s := NewStore()
		s.AddItem("prod-1", "var-m-blue", 2, 40)
		s.AddItem("prod-2", "", 1, 35)

		sum := s.RemoveItem("prod-1", "var-m-blue")

		require.Len(t, sum.Items, 1)
		assert.Equal(t, "prod-2", sum.Items[0].ProductID)
		assert.Equal(t, 35.0, sum.TotalPrice)
	})

	t.Run("AbsentIsNoop", func(t *testing.T) {
		s := NewStore()
		s.AddItem("prod-1", "var-m-blue", 2, 40)

		sum := s.RemoveItem("prod-9", "")

		require.Len(t, sum.Items, 1)
		assert.Equal(t, 2, sum.TotalItems)
	})
}

func TestUpdateQuantity(t *testing.T) {
	t.Run("SetsExactly", func(t *testing.T) {
		s := NewStore()
		s.AddItem("prod-1", "var-m-blue", 2, 40)

		sum := s.UpdateQuantity("prod-1", "var-m-blue", 7)

		require.Len(t, sum.Items, 1)
		assert.Equal(t, 7, sum.Items[0].Quantity)
		assert.Equal(t, 280.0, sum.TotalPrice)
	})

	t.Run("ZeroRemoves", func(t *testing.T) {
		s := NewStore()
		s.AddItem("prod-1", "var-m-blue", 2, 40)

		sum := s.UpdateQuantity("prod-1", "var-m-blue", 0)
		assert.Empty(t, sum.Items)
	})

	t.Run("NegativeRemoves", func(t *testing.T) {
		s := NewStore()
		s.AddItem("prod-1", "var-m-blue", 2, 40)

		sum := s.UpdateQuantity("prod-1", "var-m-blue", -3)
		assert.Empty(t, sum.Items)
		assert.Zero(t, sum.TotalItems)
	})
}

func TestItemsSnapshot(t *testing.T) {
	s := NewStore()
	s.AddItem("prod-1", "var-m-blue", 2, 40)

	items := s.Items()
	items[0].Quantity = 99

	assert.Equal(t, 2, s.TotalItems())
}

func TestSessions(t *testing.T) {
	t.Run("LazilyCreates", func(t *testing.T) {
		sessions := NewSessions()

		a := sessions.Get("sess-a")
		b := sessions.Get("sess-b")
		require.NotNil(t, a)
		assert.NotSame(t, a, b)

		a.AddItem("prod-1", "var-m-blue", 1, 40)
		assert.Zero(t, b.TotalItems())
		assert.Same(t, a, sessions.Get("sess-a"))
	})

	t.Run("Drop", func(t *testing.T) {
		sessions := NewSessions()
		sessions.Get("sess-a").AddItem("prod-1", "var-m-blue", 1, 40)

		sessions.Drop("sess-a")
		assert.Zero(t, sessions.Get("sess-a").TotalItems())
	})
}
