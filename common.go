// Common Interfaces and constants
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

package ipd

import (
	"fmt"
	"strings"
)

type Action byte

const (
	// The only two legal actions
	Cooperate Action = 'C'
	Defect    Action = 'D'
)

func (a Action) Valid() bool {
	return a == Cooperate || a == Defect
}

func (a Action) String() string {
	switch a {
	case Cooperate:
		return "Cooperate"
	case Defect:
		return "Defect"
	default:
		return fmt.Sprintf("Action(%d)", byte(a))
	}
}

// History is the sequence of actions one agent took during a match.
// It is only ever appended to by the match engine.
type History []Action

func (h History) String() string {
	var b strings.Builder
	for _, a := range h {
		b.WriteByte(byte(a))
	}
	return b.String()
}

// Last returns the most recent action and false if the history is
// empty.
func (h History) Last() (Action, bool) {
	if len(h) == 0 {
		return 0, false
	}
	return h[len(h)-1], true
}

// Agent is a named strategy.  Decide is given the agent's own history
// first and the opponent's history second, both as they were before
// the current round, and must not modify either slice.
type Agent interface {
	Name() string
	Decide(mine, theirs History) Action
}

type agentFunc struct {
	name   string
	decide func(mine, theirs History) Action
}

func (a *agentFunc) Name() string                       { return a.name }
func (a *agentFunc) String() string                     { return a.name }
func (a *agentFunc) Decide(mine, theirs History) Action { return a.decide(mine, theirs) }

// AgentFunc wraps a decision function into an Agent called NAME.
func AgentFunc(name string, decide func(mine, theirs History) Action) Agent {
	return &agentFunc{name: name, decide: decide}
}

type Result struct {
	First  int `json:"first"`
	Second int `json:"second"`
}

type Match struct {
	// Assigned by the match log, zero if no log is kept
	Id         uint64
	Run        string
	Repetition uint
	// Indices of the two agents in the tournament's agent list
	I, J   int
	First  Agent
	Second Agent
	Rounds uint
	Result Result
	// Number of rounds each side cooperated in
	Coops [2]uint
}

func (m *Match) String() string {
	return fmt.Sprintf("%s vs. %s", m.First.Name(), m.Second.Name())
}
