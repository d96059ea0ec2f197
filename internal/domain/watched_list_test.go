package domain_test

import (
	"testing"

	"github.com/Gaaaybe/Aetherium/internal/domain"

	"github.com/stretchr/testify/assert"
)

func eqString(a, b string) bool { return a == b }

func TestWatchedList(t *testing.T) {
	t.Run("New and removed items against the snapshot", func(t *testing.T) {
		l := domain.NewWatchedList(eqString, "a", "b", "c")
		l.Add("d")
		l.Remove("b")

		assert.Equal(t, []string{"a", "c", "d"}, l.Items())
		assert.Equal(t, []string{"d"}, l.NewItems())
		assert.Equal(t, []string{"b"}, l.RemovedItems())
		assert.True(t, l.Exists("d"))
		assert.False(t, l.Exists("b"))
	})

	t.Run("Unchanged list has no delta", func(t *testing.T) {
		l := domain.NewWatchedList(eqString, "a", "b")
		assert.Empty(t, l.NewItems())
		assert.Empty(t, l.RemovedItems())
	})

	t.Run("Add then remove the same item has no delta", func(t *testing.T) {
		l := domain.NewWatchedList(eqString, "a", "b")
		l.Add("x")
		l.Remove("x")
		assert.Empty(t, l.NewItems())
		assert.Empty(t, l.RemovedItems())
		assert.Equal(t, []string{"a", "b"}, l.Items())
	})

	t.Run("Adding two and removing one leaves one in each", func(t *testing.T) {
		l := domain.NewWatchedList(eqString, "a", "b")
		l.Add("c")
		l.Add("d")
		l.Remove("d")
		l.Remove("a")
		assert.Equal(t, []string{"c"}, l.NewItems())
		assert.Equal(t, []string{"a"}, l.RemovedItems())
		assert.Equal(t, []string{"b", "c"}, l.Items())
	})

	t.Run("Duplicates are consumed one to one", func(t *testing.T) {
		l := domain.NewWatchedList(eqString, "a")
		l.Update([]string{"a", "a"})
		assert.Equal(t, []string{"a"}, l.NewItems())
		assert.Empty(t, l.RemovedItems())

		l.Update(nil)
		assert.Empty(t, l.NewItems())
		assert.Equal(t, []string{"a"}, l.RemovedItems())
	})

	t.Run("Update does not reset the snapshot", func(t *testing.T) {
		l := domain.NewWatchedList(eqString)
		l.Update([]string{"x", "y"})
		assert.Equal(t, []string{"x", "y"}, l.NewItems())
		l.Update([]string{"y"})
		assert.Equal(t, []string{"y"}, l.NewItems())
		assert.Empty(t, l.RemovedItems())
	})

	t.Run("Remove only drops the first match", func(t *testing.T) {
		l := domain.NewWatchedList(eqString, "a", "b", "a")
		l.Remove("a")
		assert.Equal(t, []string{"b", "a"}, l.Items())
	})

	t.Run("Clone is independent", func(t *testing.T) {
		l := domain.NewWatchedList(eqString, "a")
		c := l.Clone()
		c.Add("b")
		assert.Equal(t, []string{"a"}, l.Items())
		assert.Equal(t, []string{"b"}, c.NewItems())
	})

	t.Run("Items returns a copy", func(t *testing.T) {
		l := domain.NewWatchedList(eqString, "a")
		items := l.Items()
		items[0] = "z"
		assert.Equal(t, []string{"a"}, l.Items())
	})
}
