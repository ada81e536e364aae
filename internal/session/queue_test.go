package session

import (
	"testing"

	"github.com/bitmato-studio/bitmato-chess/internal/testutil"
)

func TestQueue_FIFO(t *testing.T) {
	q := NewQueue()
	for _, id := range []string{"a", "b", "c"} {
		testutil.AssertNoError(t, q.Add(id))
	}
	testutil.AssertEqual(t, q.Size(), 3)

	first, second, ok := q.NextPair()
	testutil.AssertTrue(t, ok)
	testutil.AssertEqual(t, []string{first, second}, []string{"a", "b"})

	_, _, ok = q.NextPair()
	testutil.AssertFalse(t, ok, "pair with one player waiting")
	testutil.AssertTrue(t, q.Contains("c"))
}

func TestQueue_Duplicate(t *testing.T) {
	q := NewQueue()
	testutil.AssertNoError(t, q.Add("a"))
	testutil.AssertError(t, q.Add("a"))
	testutil.AssertEqual(t, q.Size(), 1)
}

func TestQueue_Remove(t *testing.T) {
	q := NewQueue()
	q.Add("a")
	q.Add("b")
	q.Add("c")

	testutil.AssertTrue(t, q.Remove("b"))
	testutil.AssertFalse(t, q.Remove("b"))
	testutil.AssertFalse(t, q.Contains("b"))

	first, second, _ := q.NextPair()
	testutil.AssertEqual(t, []string{first, second}, []string{"a", "c"})
}
