// Terminal progress display
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

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"go-ipd/sched"
)

const barWidth = 40

// terminal keeps one bar per agent.  The total of each bar is the
// current estimate and grows during the run.  Without a terminal,
// completed matches are reported line by line instead.
type terminal struct {
	w    io.Writer
	prog *mpb.Progress
	bars map[string]*mpb.Bar
}

func (t *terminal) Observe(p *sched.Progress) {
	if t.prog == nil {
		fmt.Fprintf(t.w, "%d/%d matches\n", p.Matches, p.TotalMatches)
		return
	}

	for _, name := range p.Order {
		ap := p.Agents[name]
		b, ok := t.bars[name]
		if !ok {
			// A zero total keeps the bar from completing on its own
			b = t.prog.AddBar(0,
				mpb.PrependDecorators(decor.Name(name, decor.WCSyncSpaceR)),
				mpb.AppendDecorators(decor.CountersNoUnit("%d / %d", decor.WCSyncWidth)))
			t.bars[name] = b
		}
		b.SetTotal(int64(ap.Estimate), false)
		b.SetCurrent(int64(ap.Points))
	}
}

// Close stops redrawing and leaves the last state on screen.
func (t *terminal) Close() {
	if t.prog == nil {
		return
	}
	for _, b := range t.bars {
		b.Abort(false)
	}
	t.prog.Wait()
}

func makeBars(w io.Writer, opts ...mpb.ContainerOption) *terminal {
	opts = append([]mpb.ContainerOption{
		mpb.WithOutput(w),
		mpb.WithWidth(barWidth),
	}, opts...)
	return &terminal{
		w:    w,
		prog: mpb.New(opts...),
		bars: make(map[string]*mpb.Bar),
	}
}

func makeTerminal(f *os.File) *terminal {
	if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
		return makeBars(f)
	}
	return &terminal{w: f}
}
