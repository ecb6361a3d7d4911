// Payoff Table
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

import "fmt"

// Largest number of points a single agent can earn in one round
const MaxPayoff = 5

// Payoff returns the points awarded to SELF and OTHER for one round.
// Both actions must be valid.
func Payoff(self, other Action) (int, int) {
	switch {
	case self == Cooperate && other == Cooperate:
		return 3, 3
	case self == Cooperate && other == Defect:
		return 0, 5
	case self == Defect && other == Cooperate:
		return 5, 0
	case self == Defect && other == Defect:
		return 1, 1
	}
	panic(fmt.Sprintf("Illegal action pair: %v, %v", self, other))
}
