package scene

import (
	"github.com/zeusync/scenesim/internal/core/events/bus"
	"github.com/zeusync/scenesim/internal/core/observability/log"
	"github.com/zeusync/scenesim/internal/core/systems/physics"
)

// Event types published by Scene.Update when an event bus is attached.
const (
	EventContact       = "scene.contact"
	EventTrigger       = "scene.trigger"
	EventObjectRemoved = "scene.object.removed"
)

// ContactEvent is the payload of EventContact and EventTrigger. A pair is
// reported once per Update even if it touched in several sub-steps.
type ContactEvent struct {
	Scene   string
	SceneID string
	A, B    Handle
	Trigger bool
	// Normal points from A to B; zero for trigger contacts.
	Normal physics.Vector3
}

// ObjectRemovedEvent is the payload of EventObjectRemoved.
type ObjectRemovedEvent struct {
	Scene   string
	SceneID string
	Handle  Handle
	Name    string
}

func (s *Scene) publishContacts() {
	if s.events == nil {
		return
	}
	contacts := s.world.Contacts()
	seen := make(map[physics.Pair]struct{}, len(contacts))
	for _, c := range contacts {
		pair := physics.Pair{A: c.A, B: c.B}
		if _, dup := seen[pair]; dup {
			continue
		}
		seen[pair] = struct{}{}

		typ := EventContact
		if c.Trigger {
			typ = EventTrigger
		}
		s.publish(typ, ContactEvent{Scene: s.name, SceneID: s.id, A: c.A, B: c.B, Trigger: c.Trigger, Normal: c.Normal})
	}
}

func (s *Scene) publish(typ string, payload any) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(bus.NewEvent(typ, s.name, payload)); err != nil {
		s.logger.Warn("event handler failed", log.String("event", typ), log.Error(err))
	}
}

// DispatchCollisions subscribes to b and forwards every contact of scene s to
// both objects' OnCollision. It returns the subscriptions so the caller can
// cancel them.
func DispatchCollisions(b bus.EventBus, s *Scene) ([]bus.Subscription, error) {
	handler := func(e bus.Event) error {
		ev, ok := e.Data().(ContactEvent)
		if !ok || ev.SceneID != s.ID() {
			return nil
		}
		a, okA := s.Object(ev.A)
		other, okB := s.Object(ev.B)
		if !okA || !okB {
			return nil
		}
		a.OnCollision(other)
		other.OnCollision(a)
		return nil
	}

	subs := make([]bus.Subscription, 0, 2)
	for _, typ := range []string{EventContact, EventTrigger} {
		sub, err := b.Subscribe(typ, handler)
		if err != nil {
			for _, prev := range subs {
				_ = prev.Cancel()
			}
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, nil
}
