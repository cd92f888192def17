package session

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jonathan/cv-builder/internal/types"
)

// DefaultConfirmDelay is how long a confirmed section stays marked before advancing.
const DefaultConfirmDelay = 800 * time.Millisecond

// CompleteText is the progress text once the last section is confirmed.
const CompleteText = "Resume Complete! 100%"

// ErrInvalidSection is returned for a section index out of range.
var ErrInvalidSection = errors.New("invalid section index")

type confirmation struct {
	timer *time.Timer
}

// Navigator tracks which form section is active and how far the user has progressed.
// Exactly one section is active at a time.
type Navigator struct {
	mu         sync.Mutex
	sections   []string
	delay      time.Duration
	active     int
	step       int
	complete   bool
	confirming map[int]*confirmation
	onAdvance  func(active int, progress types.ProgressView)
}

// NewNavigator starts on the first section at step 1. A non-positive delay
// selects DefaultConfirmDelay.
func NewNavigator(sections []string, delay time.Duration) *Navigator {
	if delay <= 0 {
		delay = DefaultConfirmDelay
	}
	names := make([]string, len(sections))
	copy(names, sections)
	return &Navigator{
		sections:   names,
		delay:      delay,
		step:       1,
		confirming: make(map[int]*confirmation),
	}
}

// OnAdvance registers a callback run after a confirmation settles.
func (n *Navigator) OnAdvance(fn func(active int, progress types.ProgressView)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.onAdvance = fn
}

func (n *Navigator) Sections() []string {
	out := make([]string, len(n.sections))
	copy(out, n.sections)
	return out
}

func (n *Navigator) Active() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.active
}

func (n *Navigator) check(index int) error {
	if index < 0 || index >= len(n.sections) {
		return fmt.Errorf("%w: %d", ErrInvalidSection, index)
	}
	return nil
}

// Select makes index the only active section.
func (n *Navigator) Select(index int) error {
	if err := n.check(index); err != nil {
		return err
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.active = index
	return nil
}

// Confirm marks index as confirmed. After the delay the mark clears and the next
// section becomes active with progress at its step, or, for the last section,
// progress completes. Confirming a section already marked restarts its delay.
func (n *Navigator) Confirm(index int) error {
	if err := n.check(index); err != nil {
		return err
	}
	n.mu.Lock()
	defer n.mu.Unlock()

	if c, ok := n.confirming[index]; ok {
		c.timer.Stop()
	}
	c := &confirmation{}
	c.timer = time.AfterFunc(n.delay, func() { n.settle(index, c) })
	n.confirming[index] = c
	return nil
}

func (n *Navigator) settle(index int, c *confirmation) {
	n.mu.Lock()
	if n.confirming[index] != c {
		n.mu.Unlock()
		return
	}
	delete(n.confirming, index)

	total := len(n.sections)
	if index < total-1 {
		n.active = index + 1
		n.step = index + 2
	} else {
		n.step = total
		n.complete = true
	}
	active, progress, fn := n.active, n.progressLocked(), n.onAdvance
	n.mu.Unlock()

	if fn != nil {
		fn(active, progress)
	}
}

// Confirming returns the indexes currently marked as confirmed, ascending.
func (n *Navigator) Confirming() []int {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]int, 0, len(n.confirming))
	for i := range n.confirming {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

func (n *Navigator) Progress() types.ProgressView {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.progressLocked()
}

func (n *Navigator) progressLocked() types.ProgressView {
	total := len(n.sections)
	if n.complete {
		return types.ProgressView{Step: total, Total: total, Percent: 100, Text: CompleteText, Complete: true}
	}
	var pct float64
	if total > 0 {
		pct = float64(n.step) / float64(total) * 100
	}
	return types.ProgressView{
		Step:    n.step,
		Total:   total,
		Percent: pct,
		Text:    fmt.Sprintf("Step %d of %d", n.step, total),
	}
}

// Stop cancels pending confirmations.
func (n *Navigator) Stop() {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, c := range n.confirming {
		c.timer.Stop()
		delete(n.confirming, i)
	}
}
