// Match Log
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

package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	log "github.com/sirupsen/logrus"

	"go-ipd"
	"go-ipd/cmd"
)

//go:embed *.sql
var sql_dir embed.FS

// The log is held in memory and disappears with the process.
type db struct {
	conn *sql.DB

	// The SQL queries are stored next to this file, and they are
	// loaded by Open.  QUERIES are read-only statements (select-*),
	// COMMANDS modify the database.
	queries  map[string]*sql.Stmt
	commands map[string]*sql.Stmt
}

// Agents read back from the log can only be named, not asked to play.
type entrant string

func (e entrant) Name() string   { return string(e) }
func (e entrant) String() string { return string(e) }

func (entrant) Decide(_, _ ipd.History) ipd.Action {
	panic("Cannot request a decision from a logged agent")
}

func (db *db) SaveMatch(ctx context.Context, m *ipd.Match) error {
	res, err := db.commands["insert-match"].ExecContext(ctx,
		m.Run, m.Repetition, m.I, m.J,
		m.First.Name(), m.Second.Name(), m.Rounds,
		m.Result.First, m.Result.Second,
		m.Coops[0], m.Coops[1])
	if err != nil {
		return fmt.Errorf("saving %s: %w", m, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.Id = uint64(id)
	ipd.Debug.WithField("id", id).Printf("Saved match %s", m)
	return nil
}

func (db *db) QueryMatches(ctx context.Context, run string) ([]ipd.Match, error) {
	rows, err := db.queries["select-matches"].QueryContext(ctx, run)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []ipd.Match
	for rows.Next() {
		var (
			m             ipd.Match
			first, second string
		)
		err = rows.Scan(
			&m.Id, &m.Run, &m.Repetition, &m.I, &m.J,
			&first, &second, &m.Rounds,
			&m.Result.First, &m.Result.Second,
			&m.Coops[0], &m.Coops[1])
		if err != nil {
			return nil, err
		}
		m.First, m.Second = entrant(first), entrant(second)
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func (db *db) QueryTotals(ctx context.Context, run string) (map[string]int, error) {
	rows, err := db.queries["select-totals"].QueryContext(ctx, run)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make(map[string]int)
	for rows.Next() {
		var (
			name   string
			points int
		)
		if err = rows.Scan(&name, &points); err != nil {
			return nil, err
		}
		totals[name] = points
	}
	return totals, rows.Err()
}

// The log needs no maintenance while running
func (db *db) Start(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

func (db *db) Shutdown() {
	for _, stmts := range []map[string]*sql.Stmt{db.queries, db.commands} {
		for _, stmt := range stmts {
			stmt.Close()
		}
	}
	if err := db.conn.Close(); err != nil {
		log.Print(err)
	}
}

func (*db) String() string { return "Match Log" }

// Open creates a new, empty match log.
func Open() (cmd.Database, error) {
	// Every log gets its own in-memory database.  A single connection
	// is kept open, as the database is dropped together with the last
	// connection.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	conn.SetConnMaxLifetime(0)
	conn.SetMaxIdleConns(1)
	conn.SetMaxOpenConns(1)

	db := &db{
		conn:     conn,
		queries:  make(map[string]*sql.Stmt),
		commands: make(map[string]*sql.Stmt),
	}

	for _, pragma := range []string{
		// https://www.sqlite.org/pragma.html#pragma_temp_store
		"temp_store = memory",
		// https://www.sqlite.org/pragma.html#pragma_foreign_keys
		"foreign_keys = on",
	} {
		ipd.Debug.Printf("Run PRAGMA %v", pragma)
		_, err = conn.Exec("PRAGMA " + pragma + ";")
		if err != nil {
			conn.Close()
			return nil, err
		}
	}

	entries, err := sql_dir.ReadDir(".")
	if err != nil {
		conn.Close()
		return nil, err
	}

	// Create tables before preparing statements that refer to them
	var stmts []fs.DirEntry
	for _, entry := range entries {
		if !entry.Type().IsRegular() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if strings.HasPrefix(entry.Name(), "create-") {
			stmts = append([]fs.DirEntry{entry}, stmts...)
		} else {
			stmts = append(stmts, entry)
		}
	}

	for _, entry := range stmts {
		base := path.Base(entry.Name())
		data, err := fs.ReadFile(sql_dir, entry.Name())
		if err != nil {
			conn.Close()
			return nil, err
		}

		if strings.HasPrefix(base, "create-") {
			_, err = conn.Exec(string(data))
			ipd.Debug.Printf("Executed query %v", base)
		} else {
			query := strings.TrimSuffix(base, ".sql")
			if strings.HasPrefix(query, "select-") {
				db.queries[query], err = conn.Prepare(string(data))
				ipd.Debug.Printf("Registered query %v", query)
			} else {
				db.commands[query], err = conn.Prepare(string(data))
				ipd.Debug.Printf("Registered command %v", query)
			}
		}
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("%s: %w", entry.Name(), err)
		}
	}

	if len(db.queries) == 0 {
		panic("No queries loaded")
	}
	return db, nil
}

// Register opens a match log and adds it to the managers of ST.
func Register(st *cmd.State) {
	db, err := Open()
	if err != nil {
		log.Fatal(err)
	}
	st.Register(db)
}
