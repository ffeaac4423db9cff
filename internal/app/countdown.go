package app

import (
	"sync"
	"time"
)

// CancelFunc stops a running countdown. It is safe to call more than once.
type CancelFunc func()

// Countdown schedules tick every interval until cancelled.
type Countdown interface {
	Start(interval time.Duration, tick func()) CancelFunc
}

// TickerCountdown drives ticks from a time.Ticker on its own goroutine.
type TickerCountdown struct{}

func (TickerCountdown) Start(interval time.Duration, tick func()) CancelFunc {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				select {
				case <-done:
					return
				default:
				}
				tick()
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(done) })
	}
}
