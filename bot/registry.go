// Agent Registry
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
	"errors"
	"fmt"

	"go-ipd"
)

var ErrUnknownAgent = errors.New("unknown agent")

type entry struct {
	name  string
	descr string
	make  func() ipd.Agent
}

// Every agent that can be requested by name.  The order is the order
// used by Names.
var registry = []entry{
	{"random", "Cooperate or defect at random", MakeRandom},
	{"tit-for-tat", "Cooperate first, then copy the opponent's last move", MakeTitForTat},
	{"cooperate", "Always cooperate", MakeCooperator},
	{"defect", "Always defect", MakeDefector},
	{"grudger", "Cooperate until the opponent defects once", MakeGrudger},
	{"pavlov", "Win-stay, lose-shift", MakePavlov},
}

// Lookup creates a fresh agent for NAME.
func Lookup(name string) (ipd.Agent, error) {
	for _, e := range registry {
		if e.name == name {
			return e.make(), nil
		}
	}
	return nil, fmt.Errorf("%q: %w", name, ErrUnknownAgent)
}

// LookupAll resolves every name in NAMES, in order.
func LookupAll(names []string) ([]ipd.Agent, error) {
	agents := make([]ipd.Agent, 0, len(names))
	for _, name := range names {
		a, err := Lookup(name)
		if err != nil {
			return nil, err
		}
		agents = append(agents, a)
	}
	return agents, nil
}

func Names() []string {
	names := make([]string, len(registry))
	for i, e := range registry {
		names[i] = e.name
	}
	return names
}

// Describe returns a one line description of the agent NAME.
func Describe(name string) string {
	for _, e := range registry {
		if e.name == name {
			return e.descr
		}
	}
	return ""
}
