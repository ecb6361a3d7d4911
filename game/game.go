// Match Engine
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

package game

import (
	"go-ipd"
)

// Number of rounds in a match unless configured otherwise
const DefaultRounds = 200

// Round asks both agents for their next action, given the histories
// before the round, and validates the answers.
func Round(first, second ipd.Agent, h1, h2 ipd.History, round uint) (a1, a2 ipd.Action, err error) {
	a1 = first.Decide(h1, h2)
	a2 = second.Decide(h2, h1)

	if !a1.Valid() {
		return a1, a2, &ipd.ActionError{Agent: first.Name(), Round: round, Action: a1}
	}
	if !a2.Valid() {
		return a1, a2, &ipd.ActionError{Agent: second.Name(), Round: round, Action: a2}
	}
	return a1, a2, nil
}

// Play runs all rounds of M and stores the totals in M.Result.  An
// agent returning an invalid action aborts the match with an
// *ipd.ActionError; M.Result is left untouched in that case.
func Play(m *ipd.Match) error {
	var (
		dbg    = ipd.Debug.WithField("match", m.String()).Debugf
		h1     = make(ipd.History, 0, m.Rounds)
		h2     = make(ipd.History, 0, m.Rounds)
		res    ipd.Result
		coops  [2]uint
		rounds = m.Rounds
	)

	for r := uint(1); r <= rounds; r++ {
		// Neither agent may observe the other's current action, so
		// both are queried before anything is appended.
		a1, a2, err := Round(m.First, m.Second, h1, h2, r)
		if err != nil {
			dbg("Round %d: %s", r, err)
			return err
		}

		p1, p2 := ipd.Payoff(a1, a2)
		res.First += p1
		res.Second += p2
		if a1 == ipd.Cooperate {
			coops[0]++
		}
		if a2 == ipd.Cooperate {
			coops[1]++
		}

		h1 = append(h1, a1)
		h2 = append(h2, a2)
	}
	dbg("%s / %s", h1, h2)

	m.Result = res
	m.Coops = coops
	return nil
}
