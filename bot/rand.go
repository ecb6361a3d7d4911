// Random Agent
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
// License, version 3, along with go-ipd . If not, see
// <http://www.gnu.org/licenses/>

package bot

import (
	"math/rand"
	"time"

	"go-ipd"
)

type random struct {
	name string
	rng  *rand.Rand
}

func (r *random) Decide(_, _ ipd.History) ipd.Action {
	if r.rng.Intn(2) == 0 {
		return ipd.Cooperate
	}
	return ipd.Defect
}

func (r *random) Name() string   { return r.name }
func (r *random) String() string { return r.name }

// MakeRandom returns an agent that picks either action with equal
// probability, ignoring both histories.
func MakeRandom() ipd.Agent {
	return MakeSeededRandom(time.Now().UnixNano())
}

// MakeSeededRandom is like MakeRandom, but deterministic.
func MakeSeededRandom(seed int64) ipd.Agent {
	return &random{
		name: "random",
		rng:  rand.New(rand.NewSource(seed)),
	}
}
