package core

import (
	"reflect"
	"unsafe"

	"github.com/cespare/xxhash/v2"
)

// inlineBagCapacity is the association-list threshold design note §9
// recommends ("O(n) with n < ~8 in practice").
const inlineBagCapacity = 8

type bagEntry struct {
	typ    reflect.Type
	bucket uint64
	value  any
}

// Bag is the request's typed context store (spec.md §3). It starts as a nil
// slice and is lazily allocated on first Insert; Get never allocates.
//
// typ equality is the only thing that decides a match. bucket is a
// precomputed xxhash of the type's PkgPath+Name, compared before typ so a
// miss on a populated bag skips the (more expensive) reflect.Type compare;
// it is a hint, never a correctness mechanism, so a hash collision can only
// cost an extra compare, never return the wrong value.
type Bag struct {
	entries []bagEntry
}

func typeBucket(t reflect.Type) uint64 {
	pkg := t.PkgPath()
	name := t.Name()
	buf := make([]byte, 0, len(pkg)+len(name)+1)
	buf = append(buf, pkg...)
	buf = append(buf, '|')
	buf = append(buf, name...)
	return xxhash.Sum64(buf)
}

// Insert stores value keyed by its concrete type, replacing any prior value
// of that same type.
func Insert[T any](b *Bag, value T) {
	t := reflect.TypeOf(value)
	bucket := typeBucket(t)
	for i := range b.entries {
		if b.entries[i].bucket == bucket && b.entries[i].typ == t {
			b.entries[i].value = value
			return
		}
	}
	b.entries = append(b.entries, bagEntry{typ: t, bucket: bucket, value: value})
}

// Get retrieves the value of type T previously stored with Insert. The bool
// reports whether one was present.
func Get[T any](b *Bag) (T, bool) {
	var zero T
	if b == nil {
		return zero, false
	}
	t := reflect.TypeOf(zero)
	bucket := typeBucket(t)
	for i := range b.entries {
		if b.entries[i].bucket == bucket && b.entries[i].typ == t {
			v, ok := b.entries[i].value.(T)
			return v, ok
		}
	}
	return zero, false
}

// reset drops all entries, keeping the backing array for the next request
// sharing this Bag's slot: the connection loop reuses one Request per
// connection and clears its Bag through Request.reset.
func (b *Bag) reset() {
	b.entries = b.entries[:0]
}

// bytesToString avoids an allocation when a []byte is known never to be
// mutated afterward; used by the header/path views that hand borrowed
// buffer ranges to callers as strings.
func bytesToString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(&b[0], len(b))
}
