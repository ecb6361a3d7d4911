// Deterministic Agents
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

// Cooperate on the first move, then repeat whatever the opponent did
// in the previous round.
func titForTat(_, theirs ipd.History) ipd.Action {
	if last, ok := theirs.Last(); ok {
		return last
	}
	return ipd.Cooperate
}

func MakeTitForTat() ipd.Agent { return ipd.AgentFunc("tit-for-tat", titForTat) }

func MakeCooperator() ipd.Agent {
	return ipd.AgentFunc("cooperate", func(_, _ ipd.History) ipd.Action {
		return ipd.Cooperate
	})
}

func MakeDefector() ipd.Agent {
	return ipd.AgentFunc("defect", func(_, _ ipd.History) ipd.Action {
		return ipd.Defect
	})
}

// Cooperate until the opponent defects once, then defect forever.
func grudger(_, theirs ipd.History) ipd.Action {
	for _, a := range theirs {
		if a == ipd.Defect {
			return ipd.Defect
		}
	}
	return ipd.Cooperate
}

func MakeGrudger() ipd.Agent { return ipd.AgentFunc("grudger", grudger) }

// Win-stay, lose-shift: repeat the last action after a payoff of 3 or
// 5, switch after 0 or 1.
func pavlov(mine, theirs ipd.History) ipd.Action {
	me, ok := mine.Last()
	if !ok {
		return ipd.Cooperate
	}
	you, _ := theirs.Last()

	if p, _ := ipd.Payoff(me, you); p >= 3 {
		return me
	}
	if me == ipd.Cooperate {
		return ipd.Defect
	}
	return ipd.Cooperate
}

func MakePavlov() ipd.Agent { return ipd.AgentFunc("pavlov", pavlov) }
