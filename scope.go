package main

// Scope is an immutable, prepend-only chain of variable bindings.
//
// Push never modifies the receiver; it returns a longer chain that shares
// the receiver as its tail. A Scope value is therefore its own snapshot:
// two branches started from the same value can push independently without
// seeing each other's bindings. The zero Scope is empty.
type Scope[T any] struct {
	head *binding[T]
}

type binding[T any] struct {
	name  string
	value T
	next  *binding[T]
}

// Push returns a chain with name bound to value in front of s.
// An older binding with the same name is shadowed, not removed.
func (s Scope[T]) Push(name string, value T) Scope[T] {
	return Scope[T]{head: &binding[T]{name: name, value: value, next: s.head}}
}

// Lookup returns the most recent binding for name.
func (s Scope[T]) Lookup(name string) (T, bool) {
	for b := s.head; b != nil; b = b.next {
		if b.name == name {
			return b.value, true
		}
	}
	var zero T
	return zero, false
}

// Snapshot returns a chain that shares every current binding. Pushes on
// the snapshot and on s are invisible to each other.
func (s Scope[T]) Snapshot() Scope[T] {
	return s
}

// Len counts bindings, shadowed ones included.
func (s Scope[T]) Len() int {
	n := 0
	for b := s.head; b != nil; b = b.next {
		n++
	}
	return n
}

// Names lists bound names from most recent to oldest, shadowed ones
// included.
func (s Scope[T]) Names() []string {
	var names []string
	for b := s.head; b != nil; b = b.next {
		names = append(names, b.name)
	}
	return names
}
