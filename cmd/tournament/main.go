// Entry point
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
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"go-ipd"
	"go-ipd/bot"
	"go-ipd/cmd"
	"go-ipd/db"
	"go-ipd/sched"
	"go-ipd/web"
)

// Compare the match log with the final ranking
func verify(ctx context.Context, st *cmd.State, run string, res []sched.Standing) error {
	totals, err := st.Database.QueryTotals(ctx, run)
	if err != nil {
		return err
	}

	var errs []error
	if len(totals) != len(res) {
		errs = append(errs, fmt.Errorf("match log knows %d agents, ranking has %d",
			len(totals), len(res)))
	}
	for _, s := range res {
		if totals[s.Name] != s.Points {
			errs = append(errs, fmt.Errorf("match log has %d points for %s, ranking has %d",
				totals[s.Name], s.Name, s.Points))
		}
	}
	return errors.Join(errs...)
}

func writeGraph(name string, ms []ipd.Match) error {
	file, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := cmd.WriteGraph(file, ms); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func main() {
	var (
		matches  = flag.Bool("log", false, "Print a log of all matches")
		list     = flag.Bool("list", false, "List all available agents")
		progress = flag.Bool("progress", true, "Display progress on standard error")
		graph    = flag.String("graph", "", "Write a dominance graph in DOT format to a file")
	)

	flag.Parse()
	if flag.NArg() != 0 {
		fmt.Fprintf(flag.CommandLine.Output(),
			"Too many arguments passed to %s.\nUsage:\n",
			os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	if *list {
		for _, name := range bot.Names() {
			fmt.Printf("%-20s %s\n", name, bot.Describe(name))
		}
		return
	}

	// Create a run state and load configuration
	var conf cmd.Conf
	conf.Load()
	st := cmd.MakeState()

	agents, err := bot.LookupAll(conf.Game.Agents)
	if err != nil {
		log.Fatal(err)
	}

	// Load components
	if conf.Database.Enabled {
		db.Register(st)
	}
	web.Prepare(st, &conf)

	opts := []sched.Option{
		sched.WithRounds(conf.Game.Rounds),
		sched.WithRepetitions(conf.Game.Repetitions),
		sched.WithDelay(conf.PauseDuration()),
	}
	if st.Database != nil {
		opts = append(opts, sched.WithRecorder(st.Database))
	}
	for _, o := range st.Observers {
		opts = append(opts, sched.WithObserver(o))
	}
	var term *terminal
	if *progress {
		term = makeTerminal(os.Stderr)
		opts = append(opts, sched.WithObserver(term))
	}

	// Duplicate names are rejected here, before any match is played
	tourn, err := sched.MakeTournament(agents, opts...)
	if err != nil {
		log.Fatal(err)
	}
	ipd.Debug.Printf("Prepared %s with %d pairings", tourn, len(tourn.Pairings()))

	// Start the tournament
	st.Start()
	res, err := tourn.Play(st.Context)
	if term != nil {
		term.Close()
	}
	if err != nil {
		st.Shutdown()
		log.Fatal(err)
	}

	// Print results
	fmt.Println()
	sched.PrintResults(os.Stdout, res)
	if st.Database != nil {
		if err := verify(st.Context, st, tourn.Run(), res); err != nil {
			log.Error(err)
		}
		if *matches || *graph != "" {
			ms, err := st.Database.QueryMatches(st.Context, tourn.Run())
			if err != nil {
				log.Fatal(err)
			}
			if *matches {
				fmt.Println()
				sched.PrintMatches(os.Stdout, ms)
			}
			if *graph != "" {
				if err := writeGraph(*graph, ms); err != nil {
					log.Print(err)
				}
			}
		}
	} else if *matches || *graph != "" {
		log.Print("The match log has been disabled")
	}

	if conf.Web.Enabled {
		log.Print("Results remain available via HTTP, interrupt to exit")
		<-st.Context.Done()
	}
	if err := st.Shutdown(); err != nil {
		os.Exit(1)
	}
}
