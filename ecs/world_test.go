package ecs

import (
	"testing"

	"github.com/milk9111/racer/ecs/component"
)

func TestEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, CreateEntity(w))
			}
			if len(Entities(w)) != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, len(Entities(w)))
			}
			if c.destroyIndex >= 0 {
				if !DestroyEntity(w, ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return true for alive entity")
				}
				if IsAlive(w, ents[c.destroyIndex]) {
					t.Fatalf("entity should not be alive after destruction")
				}
				if DestroyEntity(w, ents[c.destroyIndex]) {
					t.Fatalf("second DestroyEntity should return false")
				}
			}
		})
	}
}

func TestRecycledSlotGetsNewGeneration(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()

	old := CreateEntity(w)
	if err := Add(w, old, h.Kind(), intPtr(1)); err != nil {
		t.Fatal(err)
	}
	DestroyEntity(w, old)

	fresh := CreateEntity(w)
	if fresh.id() != old.id() {
		t.Fatalf("expected slot %d to be reused, got %d", old.id(), fresh.id())
	}
	if fresh == old {
		t.Fatalf("recycled entity must not equal the stale handle")
	}
	if IsAlive(w, old) {
		t.Fatalf("stale handle reported alive")
	}
	if Has(w, fresh, h.Kind()) {
		t.Fatalf("recycled entity inherited a component")
	}
	if err := Add(w, old, h.Kind(), intPtr(2)); err != component.ErrEntityNotAlive {
		t.Fatalf("Add on stale handle: got %v, want ErrEntityNotAlive", err)
	}
}

func intPtr(i int) *int {
	return &i
}

func stringPtr(s string) *string {
	return &s
}

func TestComponents(t *testing.T) {
	w := NewWorld()

	h1 := component.NewComponent[int]()
	h2 := component.NewComponent[string]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)

	tests := []struct {
		name     string
		setup    func() error
		check    func(t *testing.T)
		teardown func() bool
	}{
		{
			name:  "add_int_to_e1",
			setup: func() error { return Add(w, e1, h1.Kind(), intPtr(10)) },
			check: func(t *testing.T) {
				v, ok := Get(w, e1, h1.Kind())
				if !ok || *v != 10 {
					t.Fatalf("expected 10, got %v ok=%v", v, ok)
				}
				if _, ok := Get(w, e2, h1.Kind()); ok {
					t.Fatalf("e2 should not have the int component")
				}
			},
			teardown: func() bool { return Remove(w, e1, h1.Kind()) },
		},
		{
			name: "add_str_to_e1_and_e2",
			setup: func() error {
				if err := Add(w, e1, h2.Kind(), stringPtr("a")); err != nil {
					return err
				}
				return Add(w, e2, h2.Kind(), stringPtr("b"))
			},
			check: func(t *testing.T) {
				if !Has(w, e1, h2.Kind()) || !Has(w, e2, h2.Kind()) {
					t.Fatalf("expected both entities to have string component")
				}
				if Count(w, h2.Kind()) != 2 {
					t.Fatalf("expected count 2, got %d", Count(w, h2.Kind()))
				}
			},
			teardown: func() bool { return Remove(w, e1, h2.Kind()) },
		},
		{
			name:  "replace_value",
			setup: func() error { return Add(w, e2, h1.Kind(), intPtr(3)) },
			check: func(t *testing.T) {
				if err := Add(w, e2, h1.Kind(), intPtr(4)); err != nil {
					t.Fatal(err)
				}
				v, _ := Get(w, e2, h1.Kind())
				if *v != 4 || Count(w, h1.Kind()) != 1 {
					t.Fatalf("expected single replaced value 4, got %d count=%d", *v, Count(w, h1.Kind()))
				}
			},
			teardown: func() bool { return Remove(w, e2, h1.Kind()) },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.setup(); err != nil {
				t.Fatalf("setup failed: %v", err)
			}
			tc.check(t)
			if !tc.teardown() {
				t.Fatalf("teardown failed for %s", tc.name)
			}
		})
	}
}

func TestAddErrors(t *testing.T) {
	w := NewWorld()
	e := CreateEntity(w)
	h := component.NewComponent[int]()

	if err := Add[int](w, e, h.Kind(), nil); err != component.ErrNilComponent {
		t.Fatalf("nil value: got %v", err)
	}
	if err := Add(w, e, component.ComponentKind[int]{}, intPtr(1)); err != component.ErrInvalidComponentKind {
		t.Fatalf("zero kind: got %v", err)
	}
}

func TestDestroyRemovesComponents(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()
	e := CreateEntity(w)
	if err := Add(w, e, h.Kind(), intPtr(1)); err != nil {
		t.Fatal(err)
	}
	DestroyEntity(w, e)
	if Count(w, h.Kind()) != 0 {
		t.Fatalf("component survived its entity")
	}
	if _, ok := First(w, h.Kind()); ok {
		t.Fatalf("First found a component of a dead entity")
	}
}

func TestForEach(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	e3 := CreateEntity(w)

	if err := Add(w, e1, h.Kind(), intPtr(1)); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := Add(w, e3, h.Kind(), intPtr(3)); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	sum := 0
	seen := map[Entity]bool{}
	ForEach(w, h.Kind(), func(e Entity, v *int) {
		seen[e] = true
		sum += *v
	})

	if !seen[e1] || !seen[e3] || seen[e2] {
		t.Fatalf("unexpected ForEach set %v", seen)
	}
	if sum != 4 {
		t.Fatalf("sum %d, want 4", sum)
	}
}

func TestForEachAllowsRemovalDuringIteration(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()
	for i := 0; i < 4; i++ {
		e := CreateEntity(w)
		if err := Add(w, e, h.Kind(), intPtr(i)); err != nil {
			t.Fatal(err)
		}
	}

	visited := 0
	ForEach(w, h.Kind(), func(e Entity, _ *int) {
		visited++
		Remove(w, e, h.Kind())
	})
	if visited != 4 || Count(w, h.Kind()) != 0 {
		t.Fatalf("visited %d, remaining %d", visited, Count(w, h.Kind()))
	}
}

func TestForEachIntersections(t *testing.T) {
	w := NewWorld()
	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	e3 := CreateEntity(w)

	ka := component.NewComponentKind[int]()
	kb := component.NewComponentKind[int]()
	kc := component.NewComponentKind[int]()
	kd := component.NewComponentKind[int]()

	// e2 has all four, e1 has a+b, e3 has b+c+d.
	adds := []struct {
		e Entity
		k component.ComponentKind[int]
	}{
		{e1, ka}, {e1, kb},
		{e2, ka}, {e2, kb}, {e2, kc}, {e2, kd},
		{e3, kb}, {e3, kc}, {e3, kd},
	}
	for i, a := range adds {
		if err := Add(w, a.e, a.k, intPtr(i)); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name string
		run  func() []Entity
		want int
	}{
		{
			name: "two",
			run: func() []Entity {
				var res []Entity
				ForEach2(w, ka, kb, func(e Entity, _, _ *int) { res = append(res, e) })
				return res
			},
			want: 2,
		},
		{
			name: "three",
			run: func() []Entity {
				var res []Entity
				ForEach3(w, kb, kc, kd, func(e Entity, _, _, _ *int) { res = append(res, e) })
				return res
			},
			want: 2,
		},
		{
			name: "four",
			run: func() []Entity {
				var res []Entity
				ForEach4(w, ka, kb, kc, kd, func(e Entity, _, _, _, _ *int) { res = append(res, e) })
				return res
			},
			want: 1,
		},
		{
			name: "missing_store",
			run: func() []Entity {
				var res []Entity
				ForEach2(w, ka, component.NewComponentKind[int](), func(e Entity, _, _ *int) { res = append(res, e) })
				return res
			},
			want: 0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.run(); len(got) != tc.want {
				t.Fatalf("got %d entities %v, want %d", len(got), got, tc.want)
			}
		})
	}

	t.Run("ignores_dead_entities", func(t *testing.T) {
		DestroyEntity(w, e2)
		var res []Entity
		ForEach4(w, ka, kb, kc, kd, func(e Entity, _, _, _, _ *int) { res = append(res, e) })
		if len(res) != 0 {
			t.Fatalf("expected empty result after destroy, got %v", res)
		}
	})
}

func TestQueryAndFirst(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[string]()

	if _, ok := First(w, h.Kind()); ok {
		t.Fatalf("First on empty store should report false")
	}
	if got := Query(w, h.Kind()); len(got) != 0 {
		t.Fatalf("Query on empty store returned %v", got)
	}

	CreateEntity(w)
	e := CreateEntity(w)
	if err := Add(w, e, h.Kind(), stringPtr("track")); err != nil {
		t.Fatal(err)
	}

	first, ok := First(w, h.Kind())
	if !ok || first != e {
		t.Fatalf("First = %v,%v want %v", first, ok, e)
	}
	if got := Query(w, h.Kind()); len(got) != 1 || got[0] != e {
		t.Fatalf("Query = %v", got)
	}
}

type recordSystem struct {
	name string
	log  *[]string
}

func (s *recordSystem) Update(w *World) {
	*s.log = append(*s.log, s.name)
}

type pushSystem struct{}

func (pushSystem) Update(w *World) {
	w.Events().Push(Event{Kind: EventLapCompleted, Data: w.Tick()})
}

type readSystem struct {
	got []Event
}

func (r *readSystem) Update(w *World) {
	r.got = append(r.got, w.Events().Of(EventLapCompleted)...)
}

func TestSchedulerOrderAndPause(t *testing.T) {
	var log []string
	a := &recordSystem{name: "a", log: &log}
	b := &recordSystem{name: "b", log: &log}
	s := NewScheduler(a, nil, b)
	w := NewWorld()

	s.Step(w, 1.0/60)
	s.SetPaused(a, true)
	s.Step(w, 1.0/60)
	s.SetPaused(a, false)
	s.Step(w, 1.0/60)

	want := []string{"a", "b", "b", "a", "b"}
	if len(log) != len(want) {
		t.Fatalf("log %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("log %v, want %v", log, want)
		}
	}
	if len(s.Systems()) != 2 {
		t.Fatalf("nil system should not be scheduled")
	}
	if w.Tick() != 3 || w.DeltaTime() != 1.0/60 {
		t.Fatalf("tick %d dt %v", w.Tick(), w.DeltaTime())
	}
}

func TestEventsLiveForOneTick(t *testing.T) {
	reader := &readSystem{}
	s := NewScheduler(pushSystem{}, reader)
	w := NewWorld()

	s.Step(w, 0.1)
	s.Step(w, 0.1)

	if len(reader.got) != 2 {
		t.Fatalf("reader saw %d events, want one per tick", len(reader.got))
	}
	if reader.got[0].Data.(uint64) != 1 || reader.got[1].Data.(uint64) != 2 {
		t.Fatalf("events %v", reader.got)
	}
	if n := len(w.Events().Drain()); n != 1 {
		t.Fatalf("drain returned %d events", n)
	}
	if w.Events().Peek() != nil {
		t.Fatalf("queue not empty after drain")
	}
}
