// Configuration Tests
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
	"bytes"
	"context"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()
	assert.Equal(t, uint(200), c.Game.Rounds)
	assert.Equal(t, uint(1), c.Game.Repetitions)
	assert.Equal(t, []string{"random", "tit-for-tat"}, c.Game.Agents)
	assert.False(t, c.Web.Enabled)
	assert.Zero(t, c.PauseDuration())

	// Modifying a copy must not leak into the defaults
	c.Game.Agents[0] = "defect"
	assert.Equal(t, "random", Default().Game.Agents[0])
}

func TestDecode(t *testing.T) {
	c := Default()
	err := c.Decode(strings.NewReader(`
[game]
rounds = 201
repetitions = 5
delay = 250
agents = ["tit-for-tat", "defect", "grudger"]

[web]
enabled = true
`))
	require.NoError(t, err)
	assert.Equal(t, uint(201), c.Game.Rounds)
	assert.Equal(t, uint(5), c.Game.Repetitions)
	assert.Equal(t, 250*time.Millisecond, c.PauseDuration())
	assert.Equal(t, []string{"tit-for-tat", "defect", "grudger"}, c.Game.Agents)
	assert.True(t, c.Web.Enabled)
	// Untouched by the file
	assert.Equal(t, uint(8080), c.Web.Port)
	assert.True(t, c.Database.Enabled)

	assert.Error(t, c.Decode(strings.NewReader(`[game]
rounds = "many"`)))
}

func TestDump(t *testing.T) {
	var buf bytes.Buffer
	orig := Default()
	orig.Game.Repetitions = 5
	require.NoError(t, orig.Dump(&buf))

	c := &Conf{}
	require.NoError(t, c.Decode(&buf))
	assert.Equal(t, orig, c)
}

func TestLoadEnv(t *testing.T) {
	const key = "IPD_LOAD_ENV_TEST"
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))

	dir := t.TempDir()
	name := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(name, []byte(key+"=7\n"), 0o644))
	require.NoError(t, loadEnv(name))
	v, ok := os.LookupEnv(key)
	assert.True(t, ok)
	assert.Equal(t, "7", v)

	// Only the default file is optional
	assert.NoError(t, loadEnv(defenv))
	err := loadEnv(filepath.Join(dir, "missing.env"))
	assert.True(t, errors.Is(err, os.ErrNotExist), "%v", err)
}

func TestEnviron(t *testing.T) {
	env := map[string]string{
		"IPD_ROUNDS":    "10",
		"IPD_AGENTS":    "defect, cooperate,,pavlov",
		"IPD_WEB":       "true",
		"IPD_MATCH_LOG": "false",
		"IPD_DELAY":     "",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	c := Default()
	require.NoError(t, c.Environ(lookup))
	assert.Equal(t, uint(10), c.Game.Rounds)
	assert.Equal(t, uint(1), c.Game.Repetitions)
	assert.Equal(t, []string{"defect", "cooperate", "pavlov"}, c.Game.Agents)
	assert.True(t, c.Web.Enabled)
	assert.False(t, c.Database.Enabled)
	assert.Zero(t, c.Game.Delay)

	env["IPD_REPETITIONS"] = "-1"
	assert.Error(t, c.Environ(lookup))
}

func TestOverride(t *testing.T) {
	before, list := flags, agents

	t.Run("flags", func(t *testing.T) {
		saved, list := flags, agents
		t.Cleanup(func() { flags, agents = saved, list })

		set := flag.NewFlagSet("test", flag.ContinueOnError)
		set.UintVar(&flags.Game.Repetitions, "repetitions", 1, "")
		set.StringVar(&agents, "agents", "", "")
		set.UintVar(&flags.Game.Rounds, "rounds", 200, "")
		require.NoError(t, set.Parse([]string{"-repetitions", "5", "-agents", "defect,random"}))

		c := Default()
		c.Game.Rounds = 3
		c.override(set)
		assert.Equal(t, uint(5), c.Game.Repetitions)
		assert.Equal(t, []string{"defect", "random"}, c.Game.Agents)
		// Not given on the command line
		assert.Equal(t, uint(3), c.Game.Rounds)
	})

	// Other tests read the command line defaults
	assert.Equal(t, before, flags)
	assert.Equal(t, list, agents)
}

type manager struct {
	name    string
	started chan struct{}
	stopped bool
	fail    error
}

func (m *manager) String() string { return m.name }
func (m *manager) Shutdown()      { m.stopped = true }

func (m *manager) Start(ctx context.Context) error {
	close(m.started)
	if m.fail != nil {
		return m.fail
	}
	<-ctx.Done()
	return nil
}

func TestState(t *testing.T) {
	st := MakeState()
	a := &manager{name: "a", started: make(chan struct{})}
	b := &manager{name: "b", started: make(chan struct{})}
	st.Register(a)
	st.Register(b)
	assert.Nil(t, st.Database)
	assert.Empty(t, st.Observers)

	st.Start()
	<-a.started
	<-b.started
	assert.Panics(t, func() { st.Register(&manager{name: "late"}) })

	assert.NoError(t, st.Shutdown())
	assert.True(t, a.stopped)
	assert.True(t, b.stopped)
}

// A manager that still works during the context cancellation
type draining struct {
	manager
	dep    *manager
	closed bool
}

func (d *draining) Start(ctx context.Context) error {
	close(d.started)
	<-ctx.Done()
	time.Sleep(10 * time.Millisecond)
	d.closed = d.dep.stopped
	return nil
}

func TestStateShutdownOrder(t *testing.T) {
	st := MakeState()
	store := &manager{name: "store", started: make(chan struct{})}
	srv := &draining{
		manager: manager{name: "server", started: make(chan struct{})},
		dep:     store,
	}
	st.Register(store)
	st.Register(srv)

	st.Start()
	<-store.started
	<-srv.started

	require.NoError(t, st.Shutdown())
	assert.False(t, srv.closed, "store was stopped before the server returned")
	assert.True(t, store.stopped)
	assert.True(t, srv.stopped)
}

func TestStateFailure(t *testing.T) {
	boom := errors.New("boom")
	st := MakeState()
	st.Register(&manager{name: "broken", started: make(chan struct{}), fail: boom})
	st.Start()

	<-st.Context.Done()
	err := st.Shutdown()
	assert.True(t, errors.Is(err, boom))
}
