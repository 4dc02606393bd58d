package ecs

import "testing"

type testEvent struct{ n int }

func (testEvent) Type() EventType { return "test" }

func TestWorld_EntitiesKeepCreationOrder(t *testing.T) {
	w := NewWorld()
	for i := 0; i < 20; i++ {
		e := w.CreateEntity()
		if i%3 != 1 {
			w.TagEntity(e.ID, "bead")
		}
	}

	tagged := w.GetEntitiesWithTag("bead")
	if len(tagged) != 14 || w.EntityCount() != 20 {
		t.Fatalf("got %d tagged of %d entities, want 14 of 20", len(tagged), w.EntityCount())
	}
	for i, e := range tagged {
		if i > 0 && tagged[i-1].ID >= e.ID {
			t.Fatalf("entities out of creation order at %d", i)
		}
	}
}

func TestWorld_Components(t *testing.T) {
	w := NewWorld()
	e := w.CreateEntity()
	w.AddComponent(e.ID, 1, "hello")

	if s, ok := GetTyped[string](w, e.ID, 1); !ok || s != "hello" {
		t.Errorf("GetTyped = %q, %v", s, ok)
	}
	if _, ok := GetTyped[int](w, e.ID, 1); ok {
		t.Error("GetTyped succeeded with the wrong type")
	}
	if got := w.GetEntitiesWithComponent(1); len(got) != 1 || got[0] != e {
		t.Errorf("GetEntitiesWithComponent = %v", got)
	}

	// Adding to a missing entity is ignored.
	w.AddComponent(e.ID+1000, 1, "ghost")
	if _, ok := w.GetComponent(e.ID+1000, 1); ok {
		t.Error("component attached to a missing entity")
	}
}

func TestEventManager_SubscribeUnsubscribe(t *testing.T) {
	em := NewEventManager()
	var first, second int
	sub := em.Subscribe("test", func(e Event) { first += e.(testEvent).n })
	em.Subscribe("test", func(e Event) { second += e.(testEvent).n })

	em.Emit(testEvent{n: 2})
	em.Unsubscribe(sub)
	em.Emit(testEvent{n: 3})

	if first != 2 {
		t.Errorf("first handler total = %d, want 2", first)
	}
	if second != 5 {
		t.Errorf("second handler total = %d, want 5", second)
	}
}

func TestEventManager_UnsubscribeDuringEmit(t *testing.T) {
	em := NewEventManager()
	var calls []string
	var sub Subscription
	sub = em.Subscribe("test", func(Event) {
		calls = append(calls, "once")
		em.Unsubscribe(sub)
	})
	em.Subscribe("test", func(Event) { calls = append(calls, "a") })
	em.Subscribe("test", func(Event) { calls = append(calls, "b") })

	em.Emit(testEvent{})
	em.Emit(testEvent{})

	want := []string{"once", "a", "b", "a", "b"}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Fatalf("calls = %v, want %v", calls, want)
		}
	}
}

func TestWorld_IDsAndTags(t *testing.T) {
	w := NewWorld()
	a := w.CreateEntity()
	b := w.CreateEntity()
	if a.ID != 1 || b.ID != 2 {
		t.Errorf("ids = %d, %d; want 1, 2", a.ID, b.ID)
	}
	if other := NewWorld().CreateEntity(); other.ID != 1 {
		t.Errorf("fresh world started at id %d", other.ID)
	}

	w.TagEntity(a.ID, "bead")
	w.TagEntity(a.ID, "fill")
	w.TagEntity(a.ID, "bead")
	if !a.HasTag("fill") || b.HasTag("fill") {
		t.Error("HasTag mismatch")
	}
	if got := w.GetEntitiesWithTag("bead"); len(got) != 1 || got[0] != a {
		t.Errorf("tagging twice listed the entity twice: %v", got)
	}
}
