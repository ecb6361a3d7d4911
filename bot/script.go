// Scripted Agent
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

package bot

import (
	"go-ipd"
)

type script struct {
	name    string
	actions []ipd.Action
}

// The n'th round is derived from the length of the own history, so the
// same agent can be used in several matches (or against itself).
func (s *script) Decide(mine, _ ipd.History) ipd.Action {
	return s.actions[len(mine)%len(s.actions)]
}

func (s *script) Name() string   { return s.name }
func (s *script) String() string { return s.name }

// MakeScripted returns an agent that plays ACTIONS in order, starting
// over once the script has been exhausted.  The actions are not
// checked, which allows scripting broken agents.
func MakeScripted(name string, actions ...ipd.Action) ipd.Agent {
	if len(actions) == 0 {
		panic("Empty script")
	}
	return &script{name: name, actions: actions}
}
