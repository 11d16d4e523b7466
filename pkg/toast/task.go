package toast

import (
	"sync/atomic"
	"time"
)

// Clock abstracts time so auto-dismissal can be driven by a fake clock in tests.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is the part of *time.Timer the manager relies on.
type Timer interface {
	Stop() bool
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// SystemClock returns a Clock backed by the time package.
func SystemClock() Clock { return systemClock{} }

// TaskState is the state of a deferred task.
type TaskState int32

const (
	TaskPending TaskState = iota
	TaskCancelled
	TaskFired
)

func (s TaskState) String() string {
	switch s {
	case TaskPending:
		return "pending"
	case TaskCancelled:
		return "cancelled"
	case TaskFired:
		return "fired"
	default:
		return "unknown"
	}
}

// Task is a cancellable deferred call. It leaves the pending state exactly
// once: either Cancel wins and fn never runs, or the timer wins and Cancel
// becomes a no-op.
type Task struct {
	state atomic.Int32
	timer Timer
}

// Schedule runs fn once after d unless the returned task is cancelled first.
func Schedule(clock Clock, d time.Duration, fn func()) *Task {
	t := &Task{}
	t.timer = clock.AfterFunc(d, func() {
		if t.state.CompareAndSwap(int32(TaskPending), int32(TaskFired)) {
			fn()
		}
	})
	return t
}

// Cancel stops the task. It reports whether this call did the cancelling.
func (t *Task) Cancel() bool {
	if t == nil {
		return false
	}
	if !t.state.CompareAndSwap(int32(TaskPending), int32(TaskCancelled)) {
		return false
	}
	if t.timer != nil {
		t.timer.Stop()
	}
	return true
}

// State returns the current task state.
func (t *Task) State() TaskState {
	if t == nil {
		return TaskCancelled
	}
	return TaskState(t.state.Load())
}
