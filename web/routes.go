// Web request handlers
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

package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/exec"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"

	"go-ipd"
	"go-ipd/cmd"
	"go-ipd/sched"
)

const DB_TIMEOUT = 20 * time.Second // arbitrary choice

type standings struct {
	Progress  *sched.Progress  `json:"progress"`
	Standings []sched.Standing `json:"standings"`
}

type match struct {
	Id         uint64     `json:"id"`
	Repetition uint       `json:"repetition"`
	First      string     `json:"first"`
	Second     string     `json:"second"`
	Rounds     uint       `json:"rounds"`
	Result     ipd.Result `json:"result"`
	Coops      [2]uint    `json:"coops"`
}

func (s *web) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", s.index)
	r.Get("/standings", s.standings)
	r.Get("/matches", s.matches)
	r.Get("/graph", s.graph)
	r.Get("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "User-agent: *\nDisallow: /")
	})
	r.Handle("/ws", s.hub)
	return r
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Print(err)
	}
}

// Generate the index page
func (s *web) index(w http.ResponseWriter, r *http.Request) {
	var (
		last = s.hub.Last()
		data standings
	)
	if last != nil {
		data.Progress = last
		data.Standings = last.Standings()
	}

	w.Header().Add("Content-Type", "text/html")
	err := tmpl.ExecuteTemplate(w, "index.tmpl", data)
	if err != nil {
		log.Print(err)
	}
}

func (s *web) standings(w http.ResponseWriter, r *http.Request) {
	var data standings
	if last := s.hub.Last(); last != nil {
		data.Progress = last
		data.Standings = last.Standings()
	}
	writeJSON(w, data)
}

// Query all matches of the requested or the current run
func (s *web) query(w http.ResponseWriter, r *http.Request) ([]ipd.Match, bool) {
	if s.st.Database == nil {
		http.Error(w, "The match log has been disabled", http.StatusNotFound)
		return nil, false
	}

	run := r.URL.Query().Get("run")
	if run == "" {
		if last := s.hub.Last(); last != nil {
			run = last.Run
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), DB_TIMEOUT)
	defer cancel()
	ms, err := s.st.Database.QueryMatches(ctx, run)
	if err != nil {
		log.Print(err)
		http.Error(w, "Failed to query match log", http.StatusInternalServerError)
		return nil, false
	}
	return ms, true
}

func (s *web) matches(w http.ResponseWriter, r *http.Request) {
	ms, ok := s.query(w, r)
	if !ok {
		return
	}

	data := make([]match, len(ms))
	for i, m := range ms {
		data[i] = match{
			Id:         m.Id,
			Repetition: m.Repetition,
			First:      m.First.Name(),
			Second:     m.Second.Name(),
			Rounds:     m.Rounds,
			Result:     m.Result,
			Coops:      m.Coops,
		}
	}
	writeJSON(w, data)
}

func (s *web) graph(w http.ResponseWriter, r *http.Request) {
	ms, ok := s.query(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), DB_TIMEOUT)
	defer cancel()
	data, err := cmd.DrawGraph(ctx, ms, "-Tsvg")
	if errors.Is(err, exec.ErrNotFound) {
		http.Error(w, "Graphviz is not installed", http.StatusNotImplemented)
		return
	} else if err != nil {
		log.Print(err)
		http.Error(w, "Failed to draw graph", http.StatusInternalServerError)
		return
	}

	w.Header().Add("Content-Type", "image/svg+xml")
	w.Write(data)
}
