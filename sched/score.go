// Score Keeping
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

import "sort"

type Standing struct {
	Name   string `json:"name"`
	Points int    `json:"points"`
}

// Scores maps agent names to their accumulated points.  The zero
// value is ready to use.  An agent is listed from the first time it
// contributes points (even if it contributes zero points).
type Scores struct {
	order  []string
	points map[string]int
}

func (s *Scores) Add(name string, points int) {
	if s.points == nil {
		s.points = make(map[string]int)
	}
	if _, ok := s.points[name]; !ok {
		s.order = append(s.order, name)
	}
	s.points[name] += points
}

func (s *Scores) Points(name string) int { return s.points[name] }
func (s *Scores) Len() int               { return len(s.order) }

// Names returns all agents in order of their first contribution.
func (s *Scores) Names() []string {
	return append([]string(nil), s.order...)
}

// Max returns the highest score, or zero if nobody has played yet.
func (s *Scores) Max() (best int) {
	for _, p := range s.points {
		if p > best {
			best = p
		}
	}
	return
}

// Ranking orders all agents by descending score.  Agents with the same
// score are ordered by their first contribution.
func (s *Scores) Ranking() []Standing {
	ranking := make([]Standing, len(s.order))
	for i, name := range s.order {
		ranking[i] = Standing{Name: name, Points: s.points[name]}
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Points > ranking[j].Points
	})
	return ranking
}
