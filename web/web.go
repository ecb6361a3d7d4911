// Web interface
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
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"go-ipd/cmd"
	"go-ipd/sched"
)

//go:embed *.tmpl
var html embed.FS

var tmpl = template.Must(template.New("").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
	"percent": func(a, b uint) uint {
		if b == 0 {
			return 100
		}
		return 100 * a / b
	},
}).ParseFS(html, "*.tmpl"))

type web struct {
	st     *cmd.State
	hub    *Hub
	router chi.Router
	srv    *http.Server
}

// Observe forwards progress to all connected clients.
func (s *web) Observe(p *sched.Progress) { s.hub.Observe(p) }

func (s *web) Start(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		log.Printf("Listening via HTTP on %s", s.srv.Addr)
		errc <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		stop, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.srv.Shutdown(stop)
	}
}

// WebSocket connections are hijacked and not closed by the server
func (s *web) Shutdown() { s.hub.Close() }

func (*web) String() string { return "Web Server" }

func makeWeb(st *cmd.State, addr string) *web {
	s := &web{st: st, hub: NewHub()}
	s.router = s.routes()
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Prepare registers the web server with ST if enabled in CONF.
func Prepare(st *cmd.State, conf *cmd.Conf) {
	if !conf.Web.Enabled {
		return
	}
	st.Register(makeWeb(st, fmt.Sprintf(":%d", conf.Web.Port)))
}
