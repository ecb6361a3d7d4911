// Error values
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
	"errors"
	"fmt"
)

var (
	ErrInvalidAction  = errors.New("invalid action")
	ErrDuplicateAgent = errors.New("duplicate agent name")
)

// ActionError reports an agent that returned something other than
// Cooperate or Defect.
type ActionError struct {
	Agent  string
	Round  uint
	Action Action
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("%s returned %v in round %d: %s",
		e.Agent, e.Action, e.Round, ErrInvalidAction)
}

func (e *ActionError) Unwrap() error { return ErrInvalidAction }
