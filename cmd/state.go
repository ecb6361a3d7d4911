// Shared State
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

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"go-ipd"
	"go-ipd/sched"
)

// Manager is a background service that lives as long as a run.
// Start blocks until the context is cancelled or the service fails.
type Manager interface {
	fmt.Stringer
	Start(context.Context) error
	Shutdown()
}

type Database interface {
	Manager
	sched.Recorder

	QueryMatches(ctx context.Context, run string) ([]ipd.Match, error)
	QueryTotals(ctx context.Context, run string) (map[string]int, error)
}

type State struct {
	Context context.Context
	Kill    context.CancelFunc
	Running bool

	Database  Database
	Observers []sched.Observer
	Managers  []Manager

	group *errgroup.Group
}

// MakeState returns a fresh state that is cancelled on an interrupt.
func MakeState() *State {
	ctx, kill := signal.NotifyContext(context.Background(), os.Interrupt)
	return &State{
		Context: ctx,
		Kill:    kill,
	}
}

func (st *State) Register(m Manager) {
	if st.Running {
		panic(fmt.Sprintf("Late register: %#v", m))
	}

	if db, ok := m.(Database); ok {
		st.Database = db
	}
	if o, ok := m.(sched.Observer); ok {
		st.Observers = append(st.Observers, o)
	}

	st.Managers = append(st.Managers, m)
}

// Start launches all registered managers in the background.  If one
// of them fails, the state is cancelled.
func (st *State) Start() {
	var ctx context.Context
	st.group, ctx = errgroup.WithContext(st.Context)
	st.Context = ctx

	for _, m := range st.Managers {
		m := m
		ipd.Debug.Printf("Starting %s", m)
		st.group.Go(func() error {
			if err := m.Start(ctx); err != nil {
				return fmt.Errorf("%s: %w", m, err)
			}
			return nil
		})
	}
	st.Running = true
}

// Shutdown cancels the state, waits for every manager to return from
// Start and then stops them in reverse order of registration.  The
// first error any of them reported is returned.
func (st *State) Shutdown() error {
	ipd.Debug.Println("Waiting for managers to shutdown...")
	st.Kill()

	// Servers drain their requests before Start returns, and these may
	// still depend on managers registered earlier (e.g. the match log)
	var err error
	if st.group != nil {
		err = st.group.Wait()
		if err != nil {
			log.Print(err)
		}
	}

	for i := len(st.Managers) - 1; i >= 0; i-- {
		m := st.Managers[i]
		ipd.Debug.Printf("Shutting %s down", m)
		m.Shutdown()
	}
	return err
}
