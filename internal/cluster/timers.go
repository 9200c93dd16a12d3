package cluster

import (
	"sync"
	"time"
)

// TimerTable is a table of cancellable debounce timers keyed by
// cluster id. Scheduling for an id cancels the previous timer for that
// id, so only the most recently scheduled callback can fire; a timer
// that was superseded after firing had already begun does nothing.
type TimerTable struct {
	mu     sync.Mutex
	timers map[string]*time.Timer
}

func NewTimerTable() *TimerTable {
	return &TimerTable{timers: make(map[string]*time.Timer)}
}

// Schedule arranges fn to run after d, replacing any pending timer for
// the same id.
func (tt *TimerTable) Schedule(id string, d time.Duration, fn func()) {
	tt.mu.Lock()
	defer tt.mu.Unlock()
	if old, ok := tt.timers[id]; ok {
		old.Stop()
	}
	var tm *time.Timer
	tm = time.AfterFunc(d, func() {
		tt.mu.Lock()
		live := tt.timers[id] == tm
		if live {
			delete(tt.timers, id)
		}
		tt.mu.Unlock()
		if live {
			fn()
		}
	})
	tt.timers[id] = tm
}

// Cancel stops the pending timer for id, if any.
func (tt *TimerTable) Cancel(id string) {
	tt.mu.Lock()
	defer tt.mu.Unlock()
	if tm, ok := tt.timers[id]; ok {
		tm.Stop()
		delete(tt.timers, id)
	}
}

// CancelAll stops every pending timer. Callers discarding cluster
// state must cancel first so no timer fires against discarded data.
func (tt *TimerTable) CancelAll() {
	tt.mu.Lock()
	defer tt.mu.Unlock()
	for id, tm := range tt.timers {
		tm.Stop()
		delete(tt.timers, id)
	}
}
