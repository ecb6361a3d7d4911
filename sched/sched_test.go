// Tournament Tests
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

package sched

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-ipd"
	"go-ipd/bot"
)

func TestPairings(t *testing.T) {
	assert.Equal(t, []Pairing{
		{0, 0}, {0, 1}, {0, 2},
		{1, 1}, {1, 2},
		{2, 2},
	}, Pairings(3))

	for n := 0; n < 10; n++ {
		ps := Pairings(n)
		assert.Len(t, ps, n*(n+1)/2)
		for _, p := range ps {
			assert.LessOrEqual(t, p.I, p.J)
			assert.Less(t, p.J, n)
		}
	}
	assert.Empty(t, Pairings(-1))
}

func TestTotals(t *testing.T) {
	assert.Equal(t, uint(0), TotalMatches(0, 5))
	assert.Equal(t, uint(15), TotalMatches(2, 5))
	assert.Equal(t, uint(3000), TotalRounds(2, 5, 200))
}

func deterministic() []ipd.Agent {
	return []ipd.Agent{
		bot.MakeTitForTat(),
		bot.MakeDefector(),
		bot.MakeCooperator(),
		bot.MakeGrudger(),
		bot.MakePavlov(),
	}
}

func play(t *testing.T, agents []ipd.Agent, opts ...Option) []Standing {
	t.Helper()
	tourn, err := MakeTournament(agents, opts...)
	require.NoError(t, err)
	res, err := tourn.Play(context.Background())
	require.NoError(t, err)
	return res
}

func TestTwoAgents(t *testing.T) {
	// (c,c) 600+600, (c,d) 0:1000, (d,d) 200+200
	res := play(t, []ipd.Agent{bot.MakeCooperator(), bot.MakeDefector()})
	assert.Equal(t, []Standing{
		{Name: "defect", Points: 1400},
		{Name: "cooperate", Points: 1200},
	}, res)
}

func TestRepetitions(t *testing.T) {
	once := play(t, deterministic())
	five := play(t, deterministic(), WithRepetitions(5))

	require.Len(t, five, len(once))
	for i := range once {
		assert.Equal(t, once[i].Name, five[i].Name)
		assert.Equal(t, 5*once[i].Points, five[i].Points)
	}
}

func TestRanking(t *testing.T) {
	res := play(t, deterministic(), WithRounds(17))
	require.Len(t, res, 5)
	for i := 1; i < len(res); i++ {
		assert.GreaterOrEqual(t, res[i-1].Points, res[i].Points)
	}
}

func TestRankingTies(t *testing.T) {
	// All agents always cooperate, so everyone ends up with the same
	// score and the order of appearance must be kept.
	var agents []ipd.Agent
	for _, name := range []string{"c", "a", "d", "b"} {
		agents = append(agents, bot.MakeScripted(name, ipd.Cooperate))
	}
	res := play(t, agents, WithRounds(10))

	var names []string
	for _, s := range res {
		names = append(names, s.Name)
		assert.Equal(t, res[0].Points, s.Points)
	}
	assert.Equal(t, []string{"c", "a", "d", "b"}, names)
}

func TestEmpty(t *testing.T) {
	var events int
	res := play(t, nil, WithObserver(ObserverFunc(func(*Progress) { events++ })))
	assert.Empty(t, res)
	assert.Zero(t, events)
}

func TestDuplicate(t *testing.T) {
	_, err := MakeTournament([]ipd.Agent{
		bot.MakeTitForTat(),
		bot.MakeDefector(),
		bot.MakeTitForTat(),
	})
	assert.True(t, errors.Is(err, ipd.ErrDuplicateAgent))
}

func TestInvalidAction(t *testing.T) {
	var events int
	tourn, err := MakeTournament([]ipd.Agent{
		bot.MakeCooperator(),
		bot.MakeScripted("broken", ipd.Cooperate, ipd.Action('?')),
	}, WithObserver(ObserverFunc(func(*Progress) { events++ })))
	require.NoError(t, err)

	res, err := tourn.Play(context.Background())
	assert.True(t, errors.Is(err, ipd.ErrInvalidAction))
	assert.Nil(t, res)
	// Only (cooperate, cooperate) was completed
	assert.Equal(t, 1, events)
}

func TestProgress(t *testing.T) {
	var events []*Progress
	agents := []ipd.Agent{bot.MakeCooperator(), bot.MakeDefector()}
	play(t, agents,
		WithRunID("test"),
		WithRepetitions(2),
		WithObserver(ObserverFunc(func(p *Progress) {
			events = append(events, p.Copy())
		})))

	require.Len(t, events, 6)
	for i, p := range events {
		assert.Equal(t, "test", p.Run)
		assert.Equal(t, uint(i+1), p.Matches)
		assert.Equal(t, uint(6), p.TotalMatches)
		assert.Equal(t, uint(i+1)*200, p.Rounds)
		assert.Equal(t, uint(1200), p.TotalRounds)
		assert.Equal(t, uint(i/3), p.Repetition)
	}

	// After (c,c) only the cooperator has played, and it was credited
	// for both sides
	first := events[0]
	assert.Equal(t, []string{"cooperate"}, first.Order)
	assert.Equal(t, AgentProgress{Points: 1200, Estimate: 1200 + 1000}, first.Agents["cooperate"])

	// After (c,d)
	second := events[1]
	assert.Equal(t, []string{"cooperate", "defect"}, second.Order)
	assert.Equal(t, AgentProgress{Points: 1200, Estimate: 1200 + 1000}, second.Agents["cooperate"])
	assert.Equal(t, AgentProgress{Points: 1000, Estimate: 1200 + 1000}, second.Agents["defect"])

	last := events[len(events)-1]
	assert.Equal(t, []Standing{
		{Name: "defect", Points: 2800},
		{Name: "cooperate", Points: 2400},
	}, last.Standings())

	// Scores never decrease
	for i := 1; i < len(events); i++ {
		for name, ap := range events[i-1].Agents {
			assert.GreaterOrEqual(t, events[i].Agents[name].Points, ap.Points)
		}
	}
}

type memory struct{ matches []ipd.Match }

func (m *memory) SaveMatch(_ context.Context, match *ipd.Match) error {
	match.Id = uint64(len(m.matches) + 1)
	m.matches = append(m.matches, *match)
	return nil
}

func TestRecorder(t *testing.T) {
	var mem memory
	tourn, err := MakeTournament(deterministic(), WithRecorder(&mem), WithRounds(20))
	require.NoError(t, err)
	res, err := tourn.Play(context.Background())
	require.NoError(t, err)

	require.Len(t, mem.matches, 15)
	totals := make(map[string]int)
	for i, m := range mem.matches {
		assert.Equal(t, tourn.Run(), m.Run)
		assert.Equal(t, tourn.Pairings()[i], Pairing{m.I, m.J})
		totals[m.First.Name()] += m.Result.First
		totals[m.Second.Name()] += m.Result.Second
	}
	for _, s := range res {
		assert.Equal(t, totals[s.Name], s.Points, s.Name)
		assert.Equal(t, s.Points, tourn.Scores().Points(s.Name))
	}
}

func TestCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var events int
	tourn, err := MakeTournament(deterministic(),
		WithDelay(time.Hour),
		WithObserver(ObserverFunc(func(*Progress) {
			events++
			cancel()
		})))
	require.NoError(t, err)

	_, err = tourn.Play(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 1, events)
}

func TestDelay(t *testing.T) {
	// A single match is also the last one, nothing to wait for
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	tourn, err := MakeTournament([]ipd.Agent{bot.MakeCooperator()},
		WithDelay(time.Hour))
	require.NoError(t, err)
	res, err := tourn.Play(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Standing{{"cooperate", 1200}}, res)

	// Three matches pause twice
	const pause = 20 * time.Millisecond
	tourn, err = MakeTournament([]ipd.Agent{
		bot.MakeCooperator(),
		bot.MakeDefector(),
	}, WithDelay(pause))
	require.NoError(t, err)
	start := time.Now()
	_, err = tourn.Play(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 2*pause)
}

func TestScores(t *testing.T) {
	var s Scores
	assert.Zero(t, s.Max())
	assert.Empty(t, s.Ranking())

	s.Add("b", 0)
	s.Add("a", 3)
	s.Add("b", 3)
	s.Add("c", 1)
	assert.Equal(t, []string{"b", "a", "c"}, s.Names())
	assert.Equal(t, 3, s.Max())
	assert.Equal(t, []Standing{{"b", 3}, {"a", 3}, {"c", 1}}, s.Ranking())
}

func TestPrintResults(t *testing.T) {
	var buf bytes.Buffer
	PrintResults(&buf, []Standing{{"tit-for-tat", 1200}, {"random", 900}})
	assert.Equal(t, "Results:\n"+
		" - tit-for-tat         : 1200\n"+
		" - random              : 900\n", buf.String())

	buf.Reset()
	PrintResults(&buf, nil)
	assert.Contains(t, buf.String(), "No games took place.")

	buf.Reset()
	PrintMatches(&buf, []ipd.Match{{
		First:  bot.MakeCooperator(),
		Second: bot.MakeDefector(),
		Result: ipd.Result{First: 0, Second: 1000},
	}})
	assert.Contains(t, buf.String(), "cooperate")
	assert.Contains(t, buf.String(), "-1000")
}
