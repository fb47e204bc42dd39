package cart

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func line(id int64, name string, price int64) Line {
	return Line{ProductID: id, Name: name, UnitPrice: price}
}

func TestAddItem_MergesSameProduct(t *testing.T) {
	s := NewStore()

	s.AddItem("sess", line(1, "Bonnet", 175), 2)
	s.AddItem("sess", line(1, "Bonnet", 175), 3)

	snap := s.Snapshot("sess")
	assert.Len(t, snap.Lines, 1)
	assert.Equal(t, int64(5), snap.Lines[0].Quantity)
	assert.Equal(t, int64(5), snap.TotalQuantity)
}

func TestAddItem_NonPositiveQuantityIsNoop(t *testing.T) {
	s := NewStore()

	s.AddItem("sess", line(1, "Bonnet", 175), 0)
	s.AddItem("sess", line(1, "Bonnet", 175), -2)

	assert.True(t, s.Snapshot("sess").IsEmpty())
}

func TestAddItem_KeepsInsertionOrder(t *testing.T) {
	s := NewStore()

	s.AddItem("sess", line(3, "C", 10), 1)
	s.AddItem("sess", line(1, "A", 10), 1)
	s.AddItem("sess", line(2, "B", 10), 1)
	s.AddItem("sess", line(1, "A", 10), 1) // 加算しても位置は変わらない

	snap := s.Snapshot("sess")
	assert.Equal(t, []int64{3, 1, 2}, []int64{
		snap.Lines[0].ProductID, snap.Lines[1].ProductID, snap.Lines[2].ProductID,
	})
}

func TestUpdateQuantity_SetsExactValue(t *testing.T) {
	s := NewStore()

	s.AddItem("sess", line(1, "Bonnet", 175), 4)
	s.UpdateQuantity("sess", 1, 2)

	snap := s.Snapshot("sess")
	assert.Equal(t, int64(2), snap.Lines[0].Quantity)
}

func TestUpdateQuantity_ZeroOrNegativeRemovesLine(t *testing.T) {
	s := NewStore()

	s.AddItem("sess", line(1, "Bonnet", 175), 4)
	s.UpdateQuantity("sess", 1, 0)
	assert.True(t, s.Snapshot("sess").IsEmpty())

	s.AddItem("sess", line(1, "Bonnet", 175), 4)
	s.UpdateQuantity("sess", 1, -1)
	assert.True(t, s.Snapshot("sess").IsEmpty())
}

func TestRemoveItem_AbsentIsNoop(t *testing.T) {
	s := NewStore()

	s.AddItem("sess", line(1, "Bonnet", 175), 1)
	s.RemoveItem("sess", 99)

	assert.Len(t, s.Snapshot("sess").Lines, 1)
}

func TestSnapshot_TotalsRecomputed(t *testing.T) {
	s := NewStore()

	s.AddItem("sess", line(1, "Bonnet", 175), 2)
	s.AddItem("sess", line(2, "Scarf", 200), 1)

	snap := s.Snapshot("sess")
	assert.Equal(t, int64(550), snap.TotalAmount)
	assert.Equal(t, int64(3), snap.TotalQuantity)

	s.UpdateQuantity("sess", 2, 3)
	assert.Equal(t, int64(950), s.Snapshot("sess").TotalAmount)

	s.RemoveItem("sess", 1)
	assert.Equal(t, int64(600), s.Snapshot("sess").TotalAmount)
}

func TestSnapshot_IsACopy(t *testing.T) {
	s := NewStore()

	s.AddItem("sess", line(1, "Bonnet", 175), 2)
	snap := s.Snapshot("sess")
	snap.Lines[0].Quantity = 99

	assert.Equal(t, int64(2), s.Snapshot("sess").Lines[0].Quantity)
}

func TestClear_EmptiesOnlyThatSession(t *testing.T) {
	s := NewStore()

	s.AddItem("a", line(1, "Bonnet", 175), 1)
	s.AddItem("b", line(2, "Scarf", 200), 1)

	s.Clear("a")

	assert.True(t, s.Snapshot("a").IsEmpty())
	assert.Len(t, s.Snapshot("b").Lines, 1)
}

func TestStore_UninitializedPanics(t *testing.T) {
	var s Store

	assert.Panics(t, func() {
		s.AddItem("sess", line(1, "Bonnet", 175), 1)
	})
}

func TestStore_ConcurrentSessions(t *testing.T) {
	s := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int64) {
			defer wg.Done()
			id := string(rune('a' + n))
			for j := 0; j < 100; j++ {
				s.AddItem(id, line(n, "P", 10), 1)
			}
		}(int64(i))
	}
	wg.Wait()

	for i := 0; i < 10; i++ {
		id := string(rune('a' + i))
		assert.Equal(t, int64(100), s.Snapshot(id).TotalQuantity)
	}
}
