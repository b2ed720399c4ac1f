/*
 * FrankyGo - UCI chess engine in GO for learning purposes
 *
 * MIT License
 *
 * Copyright (c) 2018-2020 Frank Kopp
 * Copyright (c) 2026 chessvat contributors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

// Package engine exposes the single operation an embedder actually needs:
// search a position under a budget and get a result back. It is a thin
// facade over internal/search's richer, UCI-shaped Search type - the
// facade translates to and from that type rather than reimplementing
// any part of the search itself.
package engine

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/VarunAgarwalOfficial/chessvat/internal/moveslice"
	"github.com/VarunAgarwalOfficial/chessvat/internal/position"
	"github.com/VarunAgarwalOfficial/chessvat/internal/search"
	. "github.com/VarunAgarwalOfficial/chessvat/internal/types"
)

// Limits bounds a single search. Any field left at its zero value
// (Deadline.IsZero(), MaxNodes == 0, MaxDepth == 0) is treated as
// "unlimited" for that dimension.
type Limits struct {
	MaxDepth int
	MaxNodes uint64
	Deadline time.Time
}

// CancelToken lets a caller request early termination of a running
// search from another goroutine. The zero value is ready to use.
type CancelToken struct {
	once      sync.Once
	cancelled chan struct{}
	initOnce  sync.Once
}

// NewCancelToken returns a token that has not been cancelled.
func NewCancelToken() *CancelToken {
	return &CancelToken{cancelled: make(chan struct{})}
}

func (c *CancelToken) init() {
	c.initOnce.Do(func() {
		if c.cancelled == nil {
			c.cancelled = make(chan struct{})
		}
	})
}

// Cancel requests that the in-flight search stop as soon as possible.
// Safe to call more than once and from any goroutine.
func (c *CancelToken) Cancel() {
	c.init()
	c.once.Do(func() { close(c.cancelled) })
}

// Cancelled reports whether Cancel has been called.
func (c *CancelToken) Cancelled() bool {
	c.init()
	select {
	case <-c.cancelled:
		return true
	default:
		return false
	}
}

// Termination describes why a search stopped.
type Termination int

const (
	// TerminationDepth means the search finished every iteration up to
	// MaxDepth.
	TerminationDepth Termination = iota
	// TerminationNodes means the node budget was exhausted.
	TerminationNodes
	// TerminationDeadline means the wall-clock deadline passed.
	TerminationDeadline
	// TerminationCancelled means the caller's CancelToken was cancelled.
	TerminationCancelled
)

func (t Termination) String() string {
	switch t {
	case TerminationDepth:
		return "depth"
	case TerminationNodes:
		return "nodes"
	case TerminationDeadline:
		return "deadline"
	case TerminationCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// ErrorKind classifies why Engine.Search failed.
type ErrorKind int

const (
	// LimitsError means the caller supplied illegal search limits
	// (MaxDepth < 0; a MaxDepth of 0 means unlimited).
	LimitsError ErrorKind = iota + 1
	// InternalError means an internal invariant was violated mid-search
	// (a corrupted position) - this should not occur, but the facade
	// surfaces it as a failed search rather than letting it crash the
	// caller.
	InternalError
)

func (k ErrorKind) String() string {
	switch k {
	case LimitsError:
		return "LimitsError"
	case InternalError:
		return "InternalError"
	default:
		return "unknown"
	}
}

// EngineError reports a failed Engine.Search call along with the kind of
// failure, so callers can distinguish "you asked for something illegal"
// from "the engine hit an internal invariant violation".
type EngineError struct {
	Kind ErrorKind
	Err  error
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *EngineError) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is an *EngineError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var engineErr *EngineError
	if !errors.As(err, &engineErr) {
		return false
	}
	return engineErr.Kind == kind
}

// SearchResult is everything an embedder needs from a completed search.
type SearchResult struct {
	BestMove     Move
	ScoreCp      Value
	PV           moveslice.MoveSlice
	DepthReached int
	Nodes        uint64
	TimeMs       int64
	TTHitRate    float64
	CutoffRate   float64
	Termination  Termination
}

// Engine owns one internal/search.Search instance and the transposition
// table, book, and history it carries across searches. Create with New;
// do not call Search concurrently on the same Engine - a second call
// while one is in flight blocks until the first completes, matching the
// single-search-at-a-time model internal/search itself enforces.
type Engine struct {
	mu sync.Mutex
	s  *search.Search
}

// New creates an Engine ready to search. Book and transposition table
// are lazily initialized on first use, matching internal/search's own
// initialize() behavior.
func New() *Engine {
	return &Engine{s: search.NewSearch()}
}

// NewGame resets engine state (history, transposition table) for a new
// game, matching search.Search.NewGame.
func (e *Engine) NewGame() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.s.NewGame()
}

// Search runs a single search to completion (or until limits/cancel
// stop it) and returns the best result found. The given position is
// copied; the caller's position is left untouched.
func (e *Engine) Search(pos *position.Position, limits Limits, cancel *CancelToken) (SearchResult, error) {
	// MaxDepth's zero value is the documented "unlimited" sentinel; any
	// negative value is not a legal depth under any interpretation and is
	// rejected rather than silently folded into "unlimited".
	if limits.MaxDepth < 0 {
		return SearchResult{}, &EngineError{
			Kind: LimitsError,
			Err:  fmt.Errorf("MaxDepth must be >= 0 (0 means unlimited), got %d", limits.MaxDepth),
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	sl := search.NewSearchLimits()
	if limits.MaxDepth > 0 {
		sl.Depth = limits.MaxDepth
	}
	if limits.MaxNodes > 0 {
		sl.Nodes = limits.MaxNodes
		sl.TimeControl = false
	}
	if !limits.Deadline.IsZero() {
		d := time.Until(limits.Deadline)
		if d < 0 {
			d = 0
		}
		sl.MoveTime = d
		sl.TimeControl = true
	}
	if limits.MaxDepth == 0 && limits.MaxNodes == 0 && limits.Deadline.IsZero() {
		sl.Infinite = true
	}

	e.s.StartSearch(*pos, *sl)

	done := make(chan struct{})
	go func() {
		e.s.WaitWhileSearching()
		close(done)
	}()

	if cancel != nil {
		cancel.init()
		select {
		case <-done:
		case <-cancel.cancelled:
			e.s.StopSearch()
			<-done
		}
	} else {
		<-done
	}

	if searchErr := e.s.LastError(); searchErr != nil {
		return SearchResult{}, &EngineError{Kind: InternalError, Err: searchErr}
	}

	result := e.s.LastSearchResult()
	stats := e.s.Statistics()

	term := TerminationDepth
	switch {
	case cancel != nil && cancel.Cancelled():
		term = TerminationCancelled
	case limits.MaxNodes > 0 && e.s.NodesVisited() >= limits.MaxNodes:
		term = TerminationNodes
	case !limits.Deadline.IsZero() && !time.Now().Before(limits.Deadline):
		term = TerminationDeadline
	}

	var ttHitRate float64
	if totalProbes := stats.TTHit + stats.TTMiss; totalProbes > 0 {
		ttHitRate = float64(stats.TTHit) / float64(totalProbes)
	}
	var cutoffRate float64
	if nodes := e.s.NodesVisited(); nodes > 0 {
		cutoffRate = float64(stats.BetaCuts) / float64(nodes)
	}

	return SearchResult{
		BestMove:     result.BestMove,
		ScoreCp:      result.BestValue,
		PV:           result.Pv,
		DepthReached: result.SearchDepth,
		Nodes:        e.s.NodesVisited(),
		TimeMs:       result.SearchTime.Milliseconds(),
		TTHitRate:    ttHitRate,
		CutoffRate:   cutoffRate,
		Termination:  term,
	}, nil
}
