// Package check evaluates the contrast of rendered text against its
// background.
//
// Each element passes through up to three stages. The lightweight stage
// compares declared colours exactly. Pairs on a translucent background go
// to the range stage, which bounds the contrast over every possible
// backdrop. When colours are missing or the range is ambiguous, the
// heavyweight stage estimates colours from a screen capture.
package check

import (
	"context"
	"fmt"
	"sync"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/legible/internal/swatch"
)

type state int

const (
	stateStart state = iota
	stateLightweight
	stateRange
	stateHeavyweight
	stateDone
)

func (s state) String() string {
	switch s {
	case stateStart:
		return "start"
	case stateLightweight:
		return "lightweight"
	case stateRange:
		return "range"
	case stateHeavyweight:
		return "heavyweight"
	default:
		return "done"
	}
}

// evaluation accumulates the results of one element as it moves between
// stages.
type evaluation struct {
	results     []Result
	heavyweight bool
}

// Checker runs the text contrast check. It holds no mutable state and is
// safe for concurrent use if its extractor is.
type Checker struct {
	params    Parameters
	extractor swatch.Extractor
	logger    hclog.Logger
}

// New creates a Checker.
func New(params Parameters) (*Checker, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	extractor := params.Extractor
	if extractor == nil {
		var err error
		extractor, err = swatch.NewExtractor(swatch.DefaultOptions())
		if err != nil {
			return nil, fmt.Errorf("creating default extractor: %w", err)
		}
	}

	logger := params.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	return &Checker{params: params, extractor: extractor, logger: logger.Named("check")}, nil
}

// Evaluate returns the results for a single element in the order they were
// produced. No results means the text passed. An error means the element's
// data violated a structural contract, such as a span outside its text.
func (c *Checker) Evaluate(el Element) ([]Result, error) {
	var ev evaluation
	st := stateStart

	for st != stateDone {
		var next state
		var err error
		switch st {
		case stateStart:
			ev, next = c.start(el, ev)
		case stateLightweight:
			ev, next, err = c.lightweight(el, ev)
		case stateRange:
			ev, next, err = c.contrastRange(el, ev)
		case stateHeavyweight:
			ev, next, err = c.heavyweight(el, ev)
		}
		if err != nil {
			return nil, fmt.Errorf("element %d: %s: %w", el.ID(), st, err)
		}

		c.logger.Trace("transition", "element", el.ID(), "from", st, "to", next)
		st = next
	}

	return ev.results, nil
}

func (c *Checker) start(el Element, ev evaluation) (evaluation, state) {
	if r, skip := preconditions(el); skip {
		ev.results = append(ev.results, r)
		return ev, stateDone
	}
	return ev, stateLightweight
}

func (c *Checker) lightweight(el Element, ev evaluation) (evaluation, state, error) {
	results, err := evaluateLightweight(el, c.params)
	if err != nil {
		return ev, stateDone, err
	}

	translucent := false
	for _, r := range results {
		switch {
		case r.ID == ResultBackgroundMustBeOpaque:
			translucent = true
		case r.Type == NotRun:
			ev.heavyweight = true
		}
	}
	ev.results = append(ev.results, results...)

	switch {
	case translucent:
		c.logger.Debug("escalating", "element", el.ID(), "from", stateLightweight, "to", stateRange)
		return ev, stateRange, nil
	case ev.heavyweight:
		c.logger.Debug("escalating", "element", el.ID(), "from", stateLightweight, "to", stateHeavyweight)
		return ev, stateHeavyweight, nil
	default:
		return ev, stateDone, nil
	}
}

// contrastRange replaces each translucent placeholder with its range result.
// Errors are kept in place; warnings are dropped and escalate.
func (c *Checker) contrastRange(el Element, ev evaluation) (evaluation, state, error) {
	kept := make([]Result, 0, len(ev.results))
	for _, r := range ev.results {
		if r.ID != ResultBackgroundMustBeOpaque {
			kept = append(kept, r)
			continue
		}
		rr, ok, err := evaluateContrastRange(el, c.params, r)
		if err != nil {
			return ev, stateDone, err
		}
		if !ok {
			continue
		}
		if rr.Type == Warning {
			ev.heavyweight = true
			continue
		}
		kept = append(kept, rr)
	}
	ev.results = kept

	if ev.heavyweight {
		c.logger.Debug("escalating", "element", el.ID(), "from", stateRange, "to", stateHeavyweight)
		return ev, stateHeavyweight, nil
	}
	return ev, stateDone, nil
}

func (c *Checker) heavyweight(el Element, ev evaluation) (evaluation, state, error) {
	r, ok, err := evaluateHeavyweight(el, c.params, c.extractor)
	if err != nil {
		return ev, stateDone, err
	}
	if ok {
		ev.results = append(ev.results, r)
	}
	return ev, stateDone, nil
}

// Run evaluates elements with up to workers goroutines and returns their
// results concatenated in input order. It stops starting new elements once
// ctx is done.
func (c *Checker) Run(ctx context.Context, elements []Element, workers int) ([]Result, error) {
	if workers < 1 {
		workers = 1
	}

	perElement := make([][]Result, len(elements))
	errs := make([]error, len(elements))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < min(workers, len(elements)); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				perElement[i], errs[i] = c.Evaluate(elements[i])
			}
		}()
	}

	var ctxErr error
dispatch:
	for i := range elements {
		if err := ctx.Err(); err != nil {
			ctxErr = err
			break
		}
		select {
		case <-ctx.Done():
			ctxErr = ctx.Err()
			break dispatch
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if ctxErr != nil {
		return nil, ctxErr
	}

	var results []Result
	for i := range elements {
		if errs[i] != nil {
			return nil, errs[i]
		}
		results = append(results, perElement[i]...)
	}
	return results, nil
}
