// Package dispatch fans completed events out to registered consumers.
//
// A dispatcher holds one primary callback slot, which receives every
// event regardless of type, plus an ordered per-type listener registry.
// Fan-out snapshots the listener list and invokes consumer code outside
// the registry locks, so a listener may subscribe or unsubscribe from
// inside its own invocation. Every invocation is individually panic
// isolated; one faulty consumer cannot stop delivery to the rest.
//
// AddListener returns an opaque Subscription token for exact removal.
// RemoveLast provides the legacy removal behavior for callers that only
// know the event type: the most recently added listener of that type is
// removed, since function values carried across an API boundary cannot
// be compared for identity.
package dispatch
