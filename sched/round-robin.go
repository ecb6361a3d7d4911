// Round Robin Pairings
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

import "fmt"

// Pairing schedules a match between the I'th and the J'th agent, where
// I <= J.  I == J is a match of an agent against itself.
type Pairing struct{ I, J int }

func (p Pairing) String() string { return fmt.Sprintf("(%d,%d)", p.I, p.J) }

// Pairings returns every combination (with replacement) of N agents,
// ordered by I and then by J.
func Pairings(n int) []Pairing {
	if n <= 0 {
		return nil
	}

	pairings := make([]Pairing, 0, n*(n+1)/2)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			pairings = append(pairings, Pairing{I: i, J: j})
		}
	}
	return pairings
}

// TotalMatches is the number of matches played by a tournament of N
// agents repeated REPS times.
func TotalMatches(n int, reps uint) uint {
	if n <= 0 {
		return 0
	}
	return reps * uint(n*(n+1)/2)
}

// TotalRounds is the exact number of rounds a tournament will play.
func TotalRounds(n int, reps, rounds uint) uint {
	return TotalMatches(n, reps) * rounds
}
