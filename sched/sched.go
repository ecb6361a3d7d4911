// Tournament Scheduler
//
// Copyright (c) 2026  The go-ipd Authors
//
// This file is part of go-ipd.
//
// go-ipd is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License,
// version 3, as published by the Free Software Foundation.
//
// go-ipd is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the GNU
// Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public
// License, version 3, along with go-ipd. If not, see
// <http://www.gnu.org/licenses/>

package sched

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"go-ipd"
	"go-ipd/game"
)

// Recorder stores completed matches, e.g. in a database.
type Recorder interface {
	SaveMatch(context.Context, *ipd.Match) error
}

type Tournament struct {
	run       string
	agents    []ipd.Agent
	pairings  []Pairing
	rounds    uint
	reps      uint
	delay     time.Duration
	observers []Observer
	recorder  Recorder
	scores    Scores
}

type Option func(*Tournament)

// WithRounds sets the number of rounds per match.
func WithRounds(n uint) Option { return func(t *Tournament) { t.rounds = n } }

// WithRepetitions sets how often all pairings are played.
func WithRepetitions(n uint) Option { return func(t *Tournament) { t.reps = n } }

// WithDelay pauses after every match.  The pause only slows down the
// progress display and has no influence on the results.
func WithDelay(d time.Duration) Option { return func(t *Tournament) { t.delay = d } }

func WithObserver(o Observer) Option {
	return func(t *Tournament) { t.observers = append(t.observers, o) }
}

func WithRecorder(r Recorder) Option { return func(t *Tournament) { t.recorder = r } }

func WithRunID(id string) Option { return func(t *Tournament) { t.run = id } }

// MakeTournament prepares a round robin tournament between AGENTS.
// Agent names must be unique.
func MakeTournament(agents []ipd.Agent, opts ...Option) (*Tournament, error) {
	seen := make(map[string]struct{}, len(agents))
	for _, a := range agents {
		name := a.Name()
		if _, ok := seen[name]; ok {
			return nil, fmt.Errorf("%q: %w", name, ipd.ErrDuplicateAgent)
		}
		seen[name] = struct{}{}
	}

	t := &Tournament{
		agents:   agents,
		pairings: Pairings(len(agents)),
		rounds:   game.DefaultRounds,
		reps:     1,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.run == "" {
		t.run = uuid.NewString()
	}
	return t, nil
}

func (t *Tournament) String() string { return "Round Robin " + t.run }

// Run identifier, used to tag progress events and recorded matches
func (t *Tournament) Run() string { return t.run }

func (t *Tournament) Pairings() []Pairing { return t.pairings }

// Scores returns the scores accumulated so far.  It must not be used
// while Play is running.
func (t *Tournament) Scores() *Scores { return &t.scores }

// Play runs every pairing REPS times, one match after another, and
// returns the final ranking.  An invalid action aborts the tournament.
// The context is only consulted between matches.
func (t *Tournament) Play(ctx context.Context) ([]Standing, error) {
	var (
		done  uint
		total = TotalMatches(len(t.agents), t.reps)
	)
	log.WithFields(log.Fields{
		"run":     t.run,
		"agents":  len(t.agents),
		"matches": total,
	}).Print("Starting tournament")

	for rep := uint(0); rep < t.reps; rep++ {
		for _, p := range t.pairings {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			m := &ipd.Match{
				Run:        t.run,
				Repetition: rep,
				I:          p.I,
				J:          p.J,
				First:      t.agents[p.I],
				Second:     t.agents[p.J],
				Rounds:     t.rounds,
			}
			if err := game.Play(m); err != nil {
				return nil, fmt.Errorf("match %d (%s): %w", done+1, m, err)
			}

			t.scores.Add(m.First.Name(), m.Result.First)
			t.scores.Add(m.Second.Name(), m.Result.Second)
			done++

			if t.recorder != nil {
				if err := t.recorder.SaveMatch(ctx, m); err != nil {
					log.Print(err)
				}
			}
			ipd.Debug.Printf("%d/%d (%s) -> %d:%d", done, total,
				m, m.Result.First, m.Result.Second)

			if len(t.observers) > 0 {
				prog := t.progress(rep, done)
				for _, o := range t.observers {
					o.Observe(prog)
				}
			}

			if t.delay > 0 && done < total {
				select {
				case <-time.After(t.delay):
				case <-ctx.Done():
					return nil, ctx.Err()
				}
			}
		}
	}

	log.WithField("run", t.run).Printf("Completed %d matches", done)
	return t.scores.Ranking(), nil
}
