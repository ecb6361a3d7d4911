// Dominance graph generation
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
	"fmt"
	"io"
	"os/exec"
	"strings"

	"go-ipd"
)

// WriteGraph prints a Graphviz digraph with an edge from the winner
// to the loser of every match in MS.  Drawn matches and self-pairings
// contribute no edge.
func WriteGraph(w io.Writer, ms []ipd.Match) error {
	seen := make(map[int]struct{})
	node := func(id int, name string) (string, error) {
		node := fmt.Sprintf("n%d", id)
		if _, ok := seen[id]; ok {
			return node, nil
		}
		seen[id] = struct{}{}
		name = strings.ReplaceAll(name, `"`, `\"`)
		_, err := fmt.Fprintf(w, "%s [label=\"%s\"];\n", node, name)
		return node, err
	}

	_, err := fmt.Fprintln(w, `strict digraph dominance { ratio = compress ;`)
	if err != nil {
		return err
	}

	for _, m := range ms {
		if m.I == m.J {
			continue
		}

		var (
			win, loss   int
			wname, lnam string
		)
		switch {
		case m.Result.First > m.Result.Second:
			win, loss = m.I, m.J
			wname, lnam = m.First.Name(), m.Second.Name()
		case m.Result.First < m.Result.Second:
			win, loss = m.J, m.I
			wname, lnam = m.Second.Name(), m.First.Name()
		default:
			continue
		}

		f, err := node(win, wname)
		if err != nil {
			return err
		}
		t, err := node(loss, lnam)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s -> %s;\n", f, t)
		if err != nil {
			return err
		}
	}

	_, err = fmt.Fprintln(w, `}`)
	return err
}

// DrawGraph renders the dominance graph of MS using dot(1), passing
// OPTS on the command line (e.g. "-Tsvg").
func DrawGraph(ctx context.Context, ms []ipd.Match, opts ...string) ([]byte, error) {
	var src, out, errb bytes.Buffer
	if err := WriteGraph(&src, ms); err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, `dot`, opts...)
	cmd.Stdin = &src
	cmd.Stdout = &out
	cmd.Stderr = &errb
	if err := cmd.Run(); err != nil {
		if errb.Len() > 0 {
			return nil, fmt.Errorf("dot: %w: %s", err, strings.TrimSpace(errb.String()))
		}
		return nil, fmt.Errorf("dot: %w", err)
	}
	return out.Bytes(), nil
}
