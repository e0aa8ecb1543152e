package list

import (
	"fmt"
	"slices"

	"github.com/shelf-ui/shelf/pkg/dom"
)

// Mountable is anything that can be attached to and detached from a
// container node. Mount and Unmount must be safely callable multiple times
// in alternation; a Mountable must not assume it belongs to exactly one
// container over its lifetime. List itself implements Mountable.
type Mountable interface {
	Mount(container *dom.Node)
	Unmount(container *dom.Node)
}

// List renders an ordered sequence of Mountable items into slot nodes under
// a single root node.
//
// Slots are cached by index, not by item identity: a mid-sequence edit
// forces every item at or below the edit point through an unmount/remount
// cycle, reusing slot nodes by their new index. Tail appends and tail
// removals are O(1).
type List[T Mountable] struct {
	root  *dom.Node
	items []T
	slots []*dom.Node
	count int // net Mount calls minus Unmount calls
	opts  config
}

// New creates a List holding the given initial items. The items are not
// mounted until the list itself is first mounted.
func New[T Mountable](initial []T, opts ...Option) *List[T] {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	l := &List[T]{
		root:  dom.NewElement(cfg.rootTag, dom.Class(cfg.rootClass)),
		items: slices.Clone(initial),
		opts:  cfg,
	}
	l.slots = make([]*dom.Node, len(l.items))
	return l
}

// Items returns the live item sequence in render order. The returned slice
// is not a copy; callers must not mutate it.
func (l *List[T]) Items() []T {
	return l.items
}

// Len returns the number of items.
func (l *List[T]) Len() int {
	return len(l.items)
}

// Root returns the list's own root node. Useful for rendering and tests;
// callers must not restructure it.
func (l *List[T]) Root() *dom.Node {
	return l.root
}

// MountCount returns the current net mount reference count.
func (l *List[T]) MountCount() int {
	return l.count
}

// Mount attaches the list's root node into container and increments the
// mount reference count. The root is (re)attached on every call, so a
// mounted list can be moved between parents cheaply. Only the 0→1
// transition mounts the items themselves and fires their enter transitions.
func (l *List[T]) Mount(container *dom.Node) {
	container.AppendChild(l.root)
	l.count++
	if l.count == 1 {
		for i := range l.items {
			l.attach(i, true)
		}
	}
}

// Unmount detaches the list's root node from container and decrements the
// mount reference count. Only the 1→0 transition unmounts the items and
// fires their leave transitions. Unmounting below zero is a programmer
// error.
func (l *List[T]) Unmount(container *dom.Node) {
	if l.count == 0 {
		panic("list: Unmount below zero")
	}
	container.RemoveChild(l.root)
	l.count--
	if l.count == 0 {
		for i := range l.items {
			l.detach(i, true)
		}
	}
}

// Insert places value at index, shifting later items right.
// index == Len() is a tail append and is O(1). A mid-sequence insert takes
// the conservative path: every item at or past index is unmounted in
// descending order, the sequence is spliced, and everything from index to
// the new end is remounted in ascending order, reusing slots by new index.
// An out-of-range index panics.
func (l *List[T]) Insert(index int, value T) {
	if index < 0 || index > len(l.items) {
		panic(fmt.Sprintf("list: Insert index %d out of range [0, %d]", index, len(l.items)))
	}

	if l.count == 0 {
		l.items = slices.Insert(l.items, index, value)
		l.growSlots()
		return
	}

	if index == len(l.items) {
		l.items = append(l.items, value)
		l.growSlots()
		l.attach(index, true)
		return
	}

	for j := len(l.items) - 1; j >= index; j-- {
		l.detach(j, l.opts.remountTransitions)
	}
	l.items = slices.Insert(l.items, index, value)
	l.growSlots()
	for j := index; j < len(l.items); j++ {
		// Only the genuinely new item gets the enter transition unless
		// remount replays are enabled.
		l.attach(j, j == index || l.opts.remountTransitions)
	}
}

// Append adds value at the end of the list. Equivalent to
// Insert(Len(), value).
func (l *List[T]) Append(value T) {
	l.Insert(len(l.items), value)
}

// Remove deletes and returns the item at index. Tail removal is O(1);
// mid-sequence removal follows the same unmount/splice/remount pattern as
// Insert. Stale trailing slots stay cached for reuse. An out-of-range
// index panics.
func (l *List[T]) Remove(index int) T {
	if index < 0 || index >= len(l.items) {
		panic(fmt.Sprintf("list: Remove index %d out of range [0, %d)", index, len(l.items)))
	}
	removed := l.items[index]

	if l.count == 0 {
		l.items = slices.Delete(l.items, index, index+1)
		return removed
	}

	if index == len(l.items)-1 {
		l.detach(index, true)
		l.items = l.items[:index]
		return removed
	}

	for j := len(l.items) - 1; j >= index; j-- {
		l.detach(j, j == index || l.opts.remountTransitions)
	}
	l.items = slices.Delete(l.items, index, index+1)
	for j := index; j < len(l.items); j++ {
		l.attach(j, l.opts.remountTransitions)
	}
	return removed
}

// RemoveValue removes the first item identical to value and reports whether
// anything was removed. Identity is interface equality, so pointer items
// compare by reference. A value not present is a silent no-op.
func (l *List[T]) RemoveValue(value T) bool {
	for i := range l.items {
		if any(l.items[i]) == any(value) {
			l.Remove(i)
			return true
		}
	}
	return false
}

// Clear unmounts every item from index 0 and empties the sequence. The slot
// cache is retained for reuse.
func (l *List[T]) Clear() {
	if l.count > 0 {
		for i := range l.items {
			l.detach(i, true)
		}
	}
	l.items = l.items[:0]
}

// slot returns the cached slot node for index, creating it lazily.
func (l *List[T]) slot(index int) *dom.Node {
	if l.slots[index] == nil {
		l.slots[index] = dom.NewElement(l.opts.slotTag, dom.Class(l.opts.slotClass))
	}
	return l.slots[index]
}

// growSlots keeps the slot cache at least as long as the item sequence.
// Placeholder entries stay nil until first used.
func (l *List[T]) growSlots() {
	for len(l.slots) < len(l.items) {
		l.slots = append(l.slots, nil)
	}
}

// attach mounts the item at index into its slot and appends the slot as the
// last child of the root. With entering set, the enter transition fires:
// the shown class is reset synchronously and re-applied one tick later,
// guarded against the slot having been detached in between.
func (l *List[T]) attach(index int, entering bool) {
	s := l.slot(index)
	l.items[index].Mount(s)
	l.root.AppendChild(s)

	if !l.transitionsOn() {
		return
	}
	if !entering {
		// No replay: land directly in the shown state.
		s.AddClass(l.opts.shownClass)
		return
	}
	s.RemoveClass(l.opts.shownClass)
	shown := l.opts.shownClass
	root := l.root
	l.opts.scheduler.Defer(func() {
		if s.Attached(root) {
			s.AddClass(shown)
		}
	})
}

// detach reverses attach for the item at index. With leaving set, the shown
// class is cleared synchronously before the item unmounts.
func (l *List[T]) detach(index int, leaving bool) {
	s := l.slots[index]
	if s == nil {
		return
	}
	if l.transitionsOn() && leaving {
		s.RemoveClass(l.opts.shownClass)
	}
	l.items[index].Unmount(s)
	l.root.RemoveChild(s)
}

func (l *List[T]) transitionsOn() bool {
	return l.opts.transitions && l.opts.scheduler != nil
}
