// Result Report
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
	"fmt"
	"io"

	"go-ipd"
)

func PrintResults(w io.Writer, standings []Standing) {
	fmt.Fprintln(w, "Results:")
	if len(standings) == 0 {
		fmt.Fprintln(w, "No games took place.")
		return
	}
	for _, s := range standings {
		fmt.Fprintf(w, " - %-20s: %d\n", s.Name, s.Points)
	}
}

// PrintMatches writes one line per match, in the order they were
// played.
func PrintMatches(w io.Writer, matches []ipd.Match) {
	fmt.Fprintln(w, "Match Log:")
	fmt.Fprintf(w, "%5s %4s  %-20s %-20s %6s %6s %6s\n",
		"Nr.", "Rep.", "First Agent", "Second Agent", "First", "Second", "Diff.")
	for i, m := range matches {
		fmt.Fprintf(w, "%5d %4d  %-20s %-20s %6d %6d %6d\n",
			i+1, m.Repetition+1,
			m.First.Name(), m.Second.Name(),
			m.Result.First, m.Result.Second,
			m.Result.First-m.Result.Second)
	}
}
