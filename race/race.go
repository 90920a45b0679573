package race

import (
	"errors"
	"fmt"
)

var ErrUnknownRacer = errors.New("race: unknown racer")

// RacerID identifies a registered racer. IDs are handed out in registration
// order starting at 1; the zero value is never a valid racer.
type RacerID int

// LapListener is notified every time the racer it is subscribed to crosses
// the finish line.
type LapListener interface {
	LapCompleted()
}

type LapListenerFunc func()

func (f LapListenerFunc) LapCompleted() { f() }

type racer struct {
	id        RacerID
	name      string
	laps      int
	listeners map[int]LapListener
	order     []int
}

// Race owns lap counts and lap observers for every racer in a session.
type Race struct {
	TargetLaps int

	racers  []*racer
	byID    map[RacerID]*racer
	global  map[int]LapListener
	gorder  []int
	nextSub int
	winner  RacerID
}

func New(targetLaps int) *Race {
	return &Race{
		TargetLaps: targetLaps,
		byID:       map[RacerID]*racer{},
		global:     map[int]LapListener{},
	}
}

func (r *Race) Register(name string) RacerID {
	if r.byID == nil {
		r.byID = map[RacerID]*racer{}
	}
	id := RacerID(len(r.racers) + 1)
	rc := &racer{id: id, name: name, listeners: map[int]LapListener{}}
	r.racers = append(r.racers, rc)
	r.byID[id] = rc
	return id
}

func (r *Race) Name(id RacerID) string {
	if rc, ok := r.byID[id]; ok {
		return rc.name
	}
	return ""
}

func (r *Race) Racers() []RacerID {
	out := make([]RacerID, len(r.racers))
	for i, rc := range r.racers {
		out[i] = rc.id
	}
	return out
}

// Subscribe adds a listener for one racer's laps. The returned func removes
// it and is safe to call more than once.
func (r *Race) Subscribe(id RacerID, l LapListener) (func(), error) {
	rc, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRacer, id)
	}
	if l == nil {
		return func() {}, nil
	}
	key := r.nextKey()
	rc.listeners[key] = l
	rc.order = append(rc.order, key)
	return func() { delete(rc.listeners, key) }, nil
}

// SubscribeAll adds a listener notified for every racer's laps.
func (r *Race) SubscribeAll(l LapListener) func() {
	if l == nil {
		return func() {}
	}
	if r.global == nil {
		r.global = map[int]LapListener{}
	}
	key := r.nextKey()
	r.global[key] = l
	r.gorder = append(r.gorder, key)
	return func() { delete(r.global, key) }
}

func (r *Race) nextKey() int {
	r.nextSub++
	return r.nextSub
}

// CompleteLap records a lap for id and notifies its listeners, then the
// global ones, each in subscription order.
func (r *Race) CompleteLap(id RacerID) error {
	rc, ok := r.byID[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownRacer, id)
	}
	rc.laps++
	if r.winner == 0 && r.TargetLaps > 0 && rc.laps >= r.TargetLaps {
		r.winner = id
	}

	rc.order = compact(rc.listeners, rc.order)
	r.gorder = compact(r.global, r.gorder)
	notify(rc.listeners, rc.order)
	notify(r.global, r.gorder)
	return nil
}

func notify(listeners map[int]LapListener, order []int) {
	for _, key := range append([]int(nil), order...) {
		if l, ok := listeners[key]; ok {
			l.LapCompleted()
		}
	}
}

// compact drops keys that were unsubscribed.
func compact(listeners map[int]LapListener, order []int) []int {
	live := order[:0]
	for _, key := range order {
		if _, ok := listeners[key]; ok {
			live = append(live, key)
		}
	}
	return live
}

func (r *Race) Laps(id RacerID) int {
	if rc, ok := r.byID[id]; ok {
		return rc.laps
	}
	return 0
}

// Winner returns the first racer to reach TargetLaps.
func (r *Race) Winner() (RacerID, bool) {
	return r.winner, r.winner != 0
}

// Reset clears lap counts and the winner. Racers and listeners stay.
func (r *Race) Reset() {
	for _, rc := range r.racers {
		rc.laps = 0
	}
	r.winner = 0
}
