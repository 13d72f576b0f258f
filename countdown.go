package main

import (
	"fmt"
	"time"
)

// display cap for the hours number
const maxShownHours = 99

// longest countdown accepted, in seconds; small enough for a 32-bit int
const maxCountdown = 100000 * 3600

// timeValue is what's left on a countdown.  minutes and seconds stay in
// [0,59]; hours is unbounded.
type timeValue struct {
	hours, minutes, seconds int
}

// newTimeValue checks and normalizes a requested countdown, carrying
// seconds and minutes past 59 upward.
func newTimeValue(h, m, s int) (timeValue, error) {
	switch {
	case h < 0:
		return timeValue{}, invalid("hours", "%d is negative", h)
	case m < 0:
		return timeValue{}, invalid("minutes", "%d is negative", m)
	case s < 0:
		return timeValue{}, invalid("seconds", "%d is negative", s)
	case h > maxCountdown/3600:
		return timeValue{}, invalid("hours", "%d is more than %d", h, maxCountdown/3600)
	case m > maxCountdown/60:
		return timeValue{}, invalid("minutes", "%d is more than %d", m, maxCountdown/60)
	case s > maxCountdown:
		return timeValue{}, invalid("seconds", "%d is more than %d", s, maxCountdown)
	}
	total := int64(h)*3600 + int64(m)*60 + int64(s)
	if total > maxCountdown {
		return timeValue{}, invalid("hours", "countdown longer than %d hours", maxCountdown/3600)
	}
	return fromSeconds(int(total)), nil
}

func fromSeconds(total int) timeValue {
	return timeValue{hours: total / 3600, minutes: total % 3600 / 60, seconds: total % 60}
}

func (t timeValue) totalSeconds() int {
	return t.hours*3600 + t.minutes*60 + t.seconds
}

func (t timeValue) duration() time.Duration {
	return time.Duration(t.totalSeconds()) * time.Second
}

func (t timeValue) zero() bool {
	return t.hours == 0 && t.minutes == 0 && t.seconds == 0
}

// period is how long until the next tick; only minutes are shown while
// there are hours left.
func (t timeValue) period() time.Duration {
	if t.hours > 0 {
		return time.Minute
	}
	return time.Second
}

// tick takes one period off.
func (t timeValue) tick() timeValue {
	if t.hours > 0 {
		if t.minutes > 0 {
			t.minutes--
		} else {
			t.hours--
			t.minutes = 59
		}
		return t
	}
	return t.decrement()
}

// decrement takes one second off, borrowing as needed.  Zero stays zero.
func (t timeValue) decrement() timeValue {
	switch {
	case t.seconds > 0:
		t.seconds--
	case t.minutes > 0:
		t.minutes--
		t.seconds = 59
	case t.hours > 0:
		t.hours--
		t.minutes = 59
		t.seconds = 59
	}
	return t
}

// shown is the (left, right) pair for the panel: hours:minutes while hours
// remain, then minutes:seconds.
func (t timeValue) shown() (int, int) {
	if t.hours > 0 {
		h := t.hours
		if h > maxShownHours {
			h = maxShownHours
		}
		return h, t.minutes
	}
	return t.minutes, t.seconds
}

func (t timeValue) String() string {
	return fmt.Sprintf("%d:%02d:%02d", t.hours, t.minutes, t.seconds)
}

// countdownStep is one tick of the engine: the new value, whether it just
// expired, and how long to wait for the next tick.
func countdownStep(t timeValue) (timeValue, bool, time.Duration) {
	next := t.tick()
	if next.zero() {
		return next, true, -1
	}
	return next, false, next.period()
}

// endTime is when a countdown started at now would run out.
func endTime(now time.Time, t timeValue) time.Time {
	return now.Add(t.duration())
}
