package list

import "github.com/shelf-ui/shelf/pkg/sched"

// config holds the List construction options.
type config struct {
	rootTag    string
	slotTag    string
	rootClass  string
	slotClass  string
	shownClass string

	scheduler          *sched.Scheduler
	transitions        bool
	remountTransitions bool
}

// Option configures a List at construction time.
type Option func(*config)

// defaultConfig returns the default List configuration: div containers,
// transitions disabled, remount-replays-enter-transition enabled.
func defaultConfig() config {
	return config{
		rootTag:            "div",
		slotTag:            "div",
		rootClass:          "list",
		slotClass:          "slot",
		shownClass:         "shown",
		transitions:        false,
		remountTransitions: true,
	}
}

// WithTransitions enables enter/leave transition hooks, deferring the
// enter-state flip one tick on the given scheduler.
func WithTransitions(s *sched.Scheduler) Option {
	return func(c *config) {
		c.scheduler = s
		c.transitions = true
	}
}

// WithoutRemountTransitions keeps the forced unmount/remount of persisted
// items during mid-sequence edits from replaying their enter transition.
// Genuinely new items still animate.
func WithoutRemountTransitions() Option {
	return func(c *config) {
		c.remountTransitions = false
	}
}

// WithTags sets the element tags used for the list root and for item slots
// (e.g. "ul" and "li").
func WithTags(root, slot string) Option {
	return func(c *config) {
		c.rootTag = root
		c.slotTag = slot
	}
}

// WithShownClass sets the class toggled by the transition hooks
// (default "shown").
func WithShownClass(name string) Option {
	return func(c *config) {
		c.shownClass = name
	}
}
