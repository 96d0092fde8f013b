// Package gamification implements the TaskPulse behavioral-scoring engine.
// Every component is a pure derivation over caller-supplied records: XP
// calculation, personality clustering, streak evaluation, reward and badge
// generation, challenge generation, progressive unlocks, and motivational
// messaging. Nothing here touches storage; the caller persists what it wants
// to keep.
//
// The only two ambient inputs — the clock and the random source — are
// injected through the Engine so tests run deterministically. Calls are
// side-effect-free and safe to issue concurrently; concurrency control around
// persisting results (e.g. compare-and-swap on total_xp under concurrent task
// completions) is the caller's obligation.
package gamification

import (
	"math/rand"
	"time"
)

// Engine bundles the injectable clock and random source.
// The zero Engine is not usable; construct with NewEngine or
// NewEngineWithSources.
type Engine struct {
	now func() time.Time
	rnd func() float64 // uniform draw in [0, 1)
}

// NewEngine creates an engine backed by the wall clock and math/rand.
func NewEngine() *Engine {
	return NewEngineWithSources(time.Now, rand.Float64)
}

// NewEngineWithSources creates an engine with explicit time and randomness,
// for deterministic tests and replay.
func NewEngineWithSources(now func() time.Time, rnd func() float64) *Engine {
	return &Engine{now: now, rnd: rnd}
}
