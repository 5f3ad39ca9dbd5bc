package maze

// Timer is a cancellable deadline measured in simulation ticks. It replaces
// wall-clock callbacks so pausing the simulation also freezes the deadline.
type Timer struct {
	deadline int
	armed    bool
}

// Arm schedules the timer to fire `after` ticks past now, replacing any
// earlier deadline.
func (t *Timer) Arm(now, after int) {
	t.deadline = now + after
	t.armed = true
}

// Cancel disarms the timer.
func (t *Timer) Cancel() {
	t.armed = false
}

// Armed reports whether the timer is waiting to fire.
func (t *Timer) Armed() bool {
	return t.armed
}

// Remaining returns the ticks left until the deadline, or 0 when disarmed.
func (t *Timer) Remaining(now int) int {
	if !t.armed || now >= t.deadline {
		return 0
	}
	return t.deadline - now
}

// Fire reports whether the deadline has been reached, disarming the timer
// when it has. A timer fires at most once per Arm.
func (t *Timer) Fire(now int) bool {
	if !t.armed || now < t.deadline {
		return false
	}
	t.armed = false
	return true
}

// PowerState is the temporary window in which the player eats adversaries.
// It owns two timers: the warning sets AboutToExpire, the expiry ends the
// window.
type PowerState struct {
	Active        bool
	AboutToExpire bool

	warning     Timer
	expiry      Timer
	warnAfter   int
	expireAfter int
}

// NewPowerState creates an inactive power state with the given offsets in
// ticks.
func NewPowerState(warnAfter, expireAfter int) PowerState {
	return PowerState{warnAfter: warnAfter, expireAfter: expireAfter}
}

// Activate starts a fresh window at tick now. Both timers are cancelled
// before being re-armed, so a stale expiry from an earlier activation can
// never end the new window.
func (p *PowerState) Activate(now int) {
	p.warning.Cancel()
	p.expiry.Cancel()

	p.Active = true
	p.AboutToExpire = false
	p.warning.Arm(now, p.warnAfter)
	p.expiry.Arm(now, p.expireAfter)
}

// Advance fires any timer whose deadline is now.
func (p *PowerState) Advance(now int) {
	if p.warning.Fire(now) {
		p.AboutToExpire = true
	}
	if p.expiry.Fire(now) {
		p.Active = false
		p.AboutToExpire = false
	}
}

// Clear ends the window and cancels both timers.
func (p *PowerState) Clear() {
	p.warning.Cancel()
	p.expiry.Cancel()
	p.Active = false
	p.AboutToExpire = false
}

// Remaining returns the ticks left in the window.
func (p *PowerState) Remaining(now int) int {
	return p.expiry.Remaining(now)
}
