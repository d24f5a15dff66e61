package watcher

import (
	"sync"
	"time"
)

// Trigger signals that the location may have changed.
type Trigger interface {
	C() <-chan struct{}
	Stop()
}

// Ticker fires at a fixed interval.
type Ticker struct {
	t    *time.Ticker
	c    chan struct{}
	done chan struct{}
	once sync.Once
}

var _ Trigger = (*Ticker)(nil)

// NewTicker returns a Ticker firing every interval.
func NewTicker(interval time.Duration) *Ticker {
	tk := &Ticker{
		t:    time.NewTicker(interval),
		c:    make(chan struct{}, 1),
		done: make(chan struct{}),
	}
	go tk.loop()
	return tk
}

func (tk *Ticker) loop() {
	for {
		select {
		case <-tk.done:
			return
		case <-tk.t.C:
			select {
			case tk.c <- struct{}{}:
			default:
			}
		}
	}
}

// C returns the tick channel.
func (tk *Ticker) C() <-chan struct{} { return tk.c }

// Stop stops the ticker. It is safe to call more than once.
func (tk *Ticker) Stop() {
	tk.once.Do(func() {
		tk.t.Stop()
		close(tk.done)
	})
}

// Events fires when Notify is called, for hosts that observe navigation
// directly. Bursts of notifications coalesce into one pending fire.
type Events struct {
	c    chan struct{}
	done chan struct{}
	once sync.Once
}

var _ Trigger = (*Events)(nil)

// NewEvents returns an idle Events trigger.
func NewEvents() *Events {
	return &Events{c: make(chan struct{}, 1), done: make(chan struct{})}
}

// Notify records that navigation happened. It never blocks.
func (e *Events) Notify() {
	select {
	case <-e.done:
		return
	default:
	}
	select {
	case e.c <- struct{}{}:
	default:
	}
}

// C returns the event channel.
func (e *Events) C() <-chan struct{} { return e.c }

// Stop makes further Notify calls no-ops.
func (e *Events) Stop() { e.once.Do(func() { close(e.done) }) }
