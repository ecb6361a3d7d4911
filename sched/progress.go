// Progress Reporting
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
	"go-ipd"
)

type AgentProgress struct {
	Points int `json:"points"`
	// Upper bound for rendering, not the final total
	Estimate int `json:"estimate"`
}

// Progress is emitted after every completed match.
type Progress struct {
	Run        string `json:"run"`
	Repetition uint   `json:"repetition"`
	// Exact counters
	Matches      uint `json:"matches"`
	TotalMatches uint `json:"total_matches"`
	Rounds       uint `json:"rounds"`
	TotalRounds  uint `json:"total_rounds"`
	// Every agent that has played at least once, and the order in
	// which they first played
	Agents map[string]AgentProgress `json:"agents"`
	Order  []string                 `json:"order"`
}

// Observer consumes progress events.  Observe is called synchronously
// from the tournament and must not retain P after returning unless it
// copies it.
type Observer interface {
	Observe(p *Progress)
}

type ObserverFunc func(*Progress)

func (f ObserverFunc) Observe(p *Progress) { f(p) }

// Estimate is the loose bound used for progress rendering: the current
// best score plus what a single match could add to it.
func Estimate(s *Scores, rounds uint) int {
	return s.Max() + int(rounds)*ipd.MaxPayoff
}

func (t *Tournament) progress(rep, matches uint) *Progress {
	var (
		n   = len(t.agents)
		est = Estimate(&t.scores, t.rounds)
		p   = &Progress{
			Run:          t.run,
			Repetition:   rep,
			Matches:      matches,
			TotalMatches: TotalMatches(n, t.reps),
			Rounds:       matches * t.rounds,
			TotalRounds:  TotalRounds(n, t.reps, t.rounds),
			Agents:       make(map[string]AgentProgress, t.scores.Len()),
			Order:        t.scores.Names(),
		}
	)
	for _, name := range p.Order {
		p.Agents[name] = AgentProgress{
			Points:   t.scores.Points(name),
			Estimate: est,
		}
	}
	return p
}

// Copy returns a deep copy of P.
func (p *Progress) Copy() *Progress {
	c := *p
	c.Agents = make(map[string]AgentProgress, len(p.Agents))
	for k, v := range p.Agents {
		c.Agents[k] = v
	}
	c.Order = append([]string(nil), p.Order...)
	return &c
}

// Standings returns the current scores ordered like a final ranking.
func (p *Progress) Standings() []Standing {
	var s Scores
	for _, name := range p.Order {
		s.Add(name, p.Agents[name].Points)
	}
	return s.Ranking()
}
