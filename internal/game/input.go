package game

// InputKind is one discrete event from an input provider (keyboard,
// websocket client, or test script).
type InputKind int

const (
	InputAngleDelta InputKind = iota
	InputPowerDelta
	InputFire
	InputWeaponNext
	InputWeaponPrev
	InputPause
	InputResume
	InputEscape
)

// InputEvent is a queued input. Amount is used by the delta kinds; held
// keys enqueue rate-limited deltas every tick.
type InputEvent struct {
	Kind   InputKind
	Amount float64
}

// InputQueue buffers input events between ticks. The sim drains it once per
// frame, in arrival order, and clears single-frame state afterwards.
type InputQueue struct {
	events []InputEvent
	paused bool
}

// Push appends an event. Safe to call from the provider at any point in the
// frame; the sim only reads during its input step.
func (q *InputQueue) Push(e InputEvent) {
	q.events = append(q.events, e)
}

// PushAngleHeld enqueues one tick's worth of held angle key (dir ±1).
func (q *InputQueue) PushAngleHeld(dir float64) {
	q.Push(InputEvent{Kind: InputAngleDelta, Amount: dir * angleRatePerTick})
}

// PushPowerHeld enqueues one tick's worth of held power key (dir ±1).
func (q *InputQueue) PushPowerHeld(dir float64) {
	q.Push(InputEvent{Kind: InputPowerDelta, Amount: dir * powerRatePerTick})
}

// Drain returns the queued events and clears the queue.
func (q *InputQueue) Drain() []InputEvent {
	out := q.events
	q.events = nil
	return out
}

// Paused reports whether a pause event is in effect.
func (q *InputQueue) Paused() bool { return q.paused }

func (q *InputQueue) setPaused(p bool) { q.paused = p }
