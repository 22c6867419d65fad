package workflow

import "errors"

// EventSubscriptionPaid fires once per successfully recorded payment.
// Payload shape: {plan, user, payment}.
const EventSubscriptionPaid = "subscription.paid"

// ErrUnknownEvent is returned when an emitter uses an unregistered event name.
var ErrUnknownEvent = errors.New("workflow: unknown event name")

// knownEvents is the closed registry of event names rules may listen on.
// Emission is validated against it so typos fail at the boundary instead
// of silently matching nothing.
var knownEvents = map[string]struct{}{
	EventSubscriptionPaid: {},
}

// KnownEvent reports whether name is a registered event.
func KnownEvent(name string) bool {
	_, ok := knownEvents[name]
	return ok
}
