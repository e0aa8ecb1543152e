// Package list implements the incremental ordered-list rendering engine.
//
// A List owns an ordered sequence of Mountable items and a parallel,
// index-keyed cache of slot nodes in the dom tree. Structural edits
// (Insert, Remove, Append, Clear) keep the rendered children in sync with
// the item sequence while the list is mounted; while it is unmounted, edits
// are recorded and replayed in one pass on the next mount.
//
// # Reference-counted mounting
//
// Mount and Unmount maintain a net reference count instead of a boolean
// flag. Attaching the list to a second parent, or briefly detaching and
// reattaching it, does not tear down and rebuild the children: only the
// 0→positive and positive→0 transitions perform per-item work. This is what
// lets item-level resources (see package gate) survive a list being moved
// between screens.
//
// # Transitions
//
// When constructed with WithTransitions, a newly attached item's slot gets
// its "shown" class one scheduler tick after attach, so a CSS transition
// observes the pre-transition state first. Removal clears the class
// synchronously. Mid-sequence edits force items below the edit point
// through an unmount/remount cycle; WithoutRemountTransitions suppresses
// the enter animation for those persisted items so only genuinely new
// items animate.
//
// List is goroutine-confined: all methods must run on the single update
// goroutine. None of them are reentrant-safe against themselves.
package list
