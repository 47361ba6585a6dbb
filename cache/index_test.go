package cache

import (
	"bytes"
	"testing"
)

func keysInOrder(ix *index) [][]byte {
	var out [][]byte
	for n := ix.front; n != nil; n = n.next {
		out = append(out, n.key)
	}
	return out
}

func keysInReverse(ix *index) [][]byte {
	var out [][]byte
	for n := ix.back; n != nil; n = n.prev {
		out = append(out, n.key)
	}
	return out
}

func wantOrder(t *testing.T, ix *index, keys ...string) {
	t.Helper()

	fwd := keysInOrder(ix)
	if len(fwd) != len(keys) {
		t.Fatalf("list length: want %d, got %d", len(keys), len(fwd))
	}
	for i, k := range keys {
		if !bytes.Equal(fwd[i], []byte(k)) {
			t.Fatalf("order[%d]: want %q, got %q", i, k, fwd[i])
		}
	}
	// The backward walk must mirror the forward walk.
	rev := keysInReverse(ix)
	if len(rev) != len(fwd) {
		t.Fatalf("reverse length: want %d, got %d", len(fwd), len(rev))
	}
	for i := range rev {
		if !bytes.Equal(rev[i], fwd[len(fwd)-1-i]) {
			t.Fatalf("reverse[%d] mismatch: %q", i, rev[i])
		}
	}
	if ix.count != len(keys) {
		t.Fatalf("count: want %d, got %d", len(keys), ix.count)
	}
}

// Insert appends at the back; duplicates are rejected without change.
func TestIndex_InsertAppendsAndRejectsDuplicates(t *testing.T) {
	t.Parallel()

	ix := newIndex()
	if !ix.insert(&node{key: []byte("a"), size: 2}) {
		t.Fatal("insert a must succeed")
	}
	if !ix.insert(&node{key: []byte("b"), size: 3}) {
		t.Fatal("insert b must succeed")
	}
	if ix.insert(&node{key: []byte("a"), size: 7}) {
		t.Fatal("duplicate insert must fail")
	}
	wantOrder(t, ix, "a", "b")
	if ix.bytes != 5 {
		t.Fatalf("bytes: want 5, got %d", ix.bytes)
	}
}

// Keys are compared by bytes: lookup finds exactly what was inserted.
func TestIndex_LookupByteEquality(t *testing.T) {
	t.Parallel()

	ix := newIndex()
	ix.insert(&node{key: []byte("ab")})
	if ix.lookup([]byte("ab")) == nil {
		t.Fatal("lookup ab must hit")
	}
	if ix.lookup([]byte("a")) != nil || ix.lookup([]byte("abc")) != nil {
		t.Fatal("prefix/superstring must miss")
	}
}

// Removing nodes from every position keeps links and counters intact.
func TestIndex_RemovePositions(t *testing.T) {
	t.Parallel()

	ix := newIndex()
	for _, k := range []string{"a", "b", "c", "d"} {
		ix.insert(&node{key: []byte(k), size: 1})
	}

	ix.remove(ix.lookup([]byte("b"))) // middle
	wantOrder(t, ix, "a", "c", "d")

	ix.remove(ix.lookup([]byte("a"))) // front
	wantOrder(t, ix, "c", "d")

	ix.remove(ix.lookup([]byte("d"))) // back
	wantOrder(t, ix, "c")

	ix.remove(ix.lookup([]byte("c"))) // sole item
	wantOrder(t, ix)
	if ix.front != nil || ix.back != nil || ix.bytes != 0 {
		t.Fatal("empty index must have nil ends and zero bytes")
	}
	if ix.lookup([]byte("c")) != nil {
		t.Fatal("removed key must be absent from the map")
	}
}

// popFront/popBack remove the ends; both are no-ops when empty.
func TestIndex_PopFrontBack(t *testing.T) {
	t.Parallel()

	ix := newIndex()
	ix.popFront() // empty: no-op
	ix.popBack()

	for _, k := range []string{"a", "b", "c"} {
		ix.insert(&node{key: []byte(k)})
	}
	ix.popFront()
	wantOrder(t, ix, "b", "c")
	ix.popBack()
	wantOrder(t, ix, "b")
	ix.popBack()
	wantOrder(t, ix)
}

// moveToFront/moveToBack relink in O(1) and no-op at the target end.
func TestIndex_MoveOps(t *testing.T) {
	t.Parallel()

	ix := newIndex()
	for _, k := range []string{"a", "b", "c"} {
		ix.insert(&node{key: []byte(k)})
	}

	ix.moveToBack(ix.lookup([]byte("a")))
	wantOrder(t, ix, "b", "c", "a")

	ix.moveToBack(ix.lookup([]byte("a"))) // already at back: no-op
	wantOrder(t, ix, "b", "c", "a")

	ix.moveToFront(ix.lookup([]byte("a")))
	wantOrder(t, ix, "a", "b", "c")

	ix.moveToFront(ix.lookup([]byte("a"))) // already at front: no-op
	wantOrder(t, ix, "a", "b", "c")
}

// moveToBack on the sole node must not corrupt the list ends.
func TestIndex_MoveSoleNode(t *testing.T) {
	t.Parallel()

	ix := newIndex()
	ix.insert(&node{key: []byte("a")})
	ix.moveToBack(ix.lookup([]byte("a")))
	ix.moveToFront(ix.lookup([]byte("a")))
	wantOrder(t, ix, "a")
	if ix.front != ix.back {
		t.Fatal("sole node must be both front and back")
	}
}

// clear resets both structures and the counters.
func TestIndex_Clear(t *testing.T) {
	t.Parallel()

	ix := newIndex()
	for _, k := range []string{"a", "b"} {
		ix.insert(&node{key: []byte(k), size: 4})
	}
	ix.clear()
	wantOrder(t, ix)
	if ix.bytes != 0 || ix.count != 0 {
		t.Fatal("clear must reset counters")
	}
	if !ix.insert(&node{key: []byte("a")}) {
		t.Fatal("insert after clear must succeed")
	}
}

// Size contributions of zero are accepted and change nothing.
func TestIndex_ZeroSize(t *testing.T) {
	t.Parallel()

	ix := newIndex()
	ix.insert(&node{key: []byte("a"), size: 0})
	if ix.bytes != 0 {
		t.Fatalf("bytes: want 0, got %d", ix.bytes)
	}
	ix.remove(ix.lookup([]byte("a")))
	if ix.bytes != 0 || ix.count != 0 {
		t.Fatal("counters must stay at zero")
	}
}
