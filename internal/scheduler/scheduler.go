package scheduler

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/wavefan/wavefan/internal/channels"
	"github.com/wavefan/wavefan/internal/controller"
	"github.com/wavefan/wavefan/internal/ui"
)

// State is the scheduler's position in its tick cycle.
type State int

const (
	// StateIdle waits for the next tick boundary
	StateIdle State = iota
	// StateSampling collects tachometer samples for every sensed channel
	StateSampling
	// StateControlling runs the per-channel control update
	StateControlling
)

// Stats is a read-only snapshot of the scheduler's counters.
type Stats struct {
	Ticks        uint64        `json:"ticks"`
	SkippedTicks uint64        `json:"skippedTicks"`
	LastTickTime time.Duration `json:"lastTickTime"`
}

// Scheduler drives the periodic sample -> control -> output cycle for all
// registered channels. Sampling and controlling always run to completion
// within a tick, suspension only happens at tick boundaries.
type Scheduler interface {
	Run(ctx context.Context) error

	// RunTick synchronously executes one full sample -> control cycle
	RunTick()

	Controller(channelId string) (controller.FanController, bool)
	Snapshots() []controller.Snapshot
	Stats() Stats
}

type scheduler struct {
	mu sync.Mutex

	controllers  map[string]controller.FanController
	channelOrder []string

	tickRate     time.Duration
	sampleWindow time.Duration

	state        State
	ticks        uint64
	skippedTicks uint64
	lastTickTime time.Duration
}

func NewScheduler(controllers map[string]controller.FanController, tickRate time.Duration, sampleWindow time.Duration) Scheduler {
	order := make([]string, 0, len(controllers))
	for id := range controllers {
		order = append(order, id)
	}
	sort.Strings(order)

	return &scheduler{
		controllers:  controllers,
		channelOrder: order,
		tickRate:     tickRate,
		sampleWindow: sampleWindow,
		state:        StateIdle,
	}
}

func (s *scheduler) Run(ctx context.Context) error {
	next := time.Now().Add(s.tickRate)
	timer := time.NewTimer(s.tickRate)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
			s.RunTick()

			now := time.Now()
			var skipped int
			next, skipped = nextDeadline(next, now, s.tickRate)
			if skipped > 0 {
				s.mu.Lock()
				s.skippedTicks += uint64(skipped)
				lastTickTime := s.lastTickTime
				s.mu.Unlock()
				ui.Warning("Tick overran its period (%v > %v), skipping %d tick(s)", lastTickTime, s.tickRate, skipped)
			}
			timer.Reset(next.Sub(now))
		}
	}
}

// nextDeadline advances the tick deadline past now. Missed ticks are
// skipped, never queued: each full tick period between the old deadline
// and now counts as exactly one skipped tick.
func nextDeadline(previous time.Time, now time.Time, tickRate time.Duration) (time.Time, int) {
	next := previous.Add(tickRate)
	skipped := 0
	for !next.After(now) {
		next = next.Add(tickRate)
		skipped++
	}
	return next, skipped
}

func (s *scheduler) RunTick() {
	started := time.Now()

	// Sampling: collect a tachometer sample for every sensed channel.
	// Each window is bounded, so this phase is too.
	s.setState(StateSampling)
	for _, id := range s.channelOrder {
		fanController := s.controllers[id]
		channel, _ := channels.GetChannel(id)
		if channel == nil || !channel.HasSense() {
			continue
		}
		fanController.Sample(s.sampleWindow)
	}

	// Controlling: every control update consumes the sample taken in this
	// same tick, never one from another tick.
	s.setState(StateControlling)
	for _, id := range s.channelOrder {
		err := s.controllers[id].Update()
		if err != nil {
			ui.Warning("Control update for channel '%s' failed: %v", id, err)
		}
	}

	s.setState(StateIdle)

	s.mu.Lock()
	s.ticks++
	s.lastTickTime = time.Since(started)
	s.mu.Unlock()
}

func (s *scheduler) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

func (s *scheduler) Controller(channelId string) (controller.FanController, bool) {
	fanController, ok := s.controllers[channelId]
	return fanController, ok
}

func (s *scheduler) Snapshots() []controller.Snapshot {
	snapshots := make([]controller.Snapshot, 0, len(s.channelOrder))
	for _, id := range s.channelOrder {
		snapshots = append(snapshots, s.controllers[id].Snapshot())
	}
	return snapshots
}

func (s *scheduler) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{
		Ticks:        s.ticks,
		SkippedTicks: s.skippedTicks,
		LastTickTime: s.lastTickTime,
	}
}
