// Configuration
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
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"go-ipd"
	"go-ipd/game"
)

const (
	defconf = "go-ipd.toml"
	defenv  = ".env"
)

type GameConf struct {
	Rounds      uint `toml:"rounds"`
	Repetitions uint `toml:"repetitions"`
	// Pause after each match in milliseconds
	Delay  uint     `toml:"delay"`
	Agents []string `toml:"agents"`
}

type DatabaseConf struct {
	Enabled bool `toml:"enabled"`
}

type WebConf struct {
	Enabled bool `toml:"enabled"`
	Port    uint `toml:"port"`
}

type Conf struct {
	Game     GameConf     `toml:"game"`
	Database DatabaseConf `toml:"database"`
	Web      WebConf      `toml:"web"`
}

// Configuration object used by default
var defaultConfig = Conf{
	Game: GameConf{
		Rounds:      game.DefaultRounds,
		Repetitions: 1,
		Agents:      []string{"random", "tit-for-tat"},
	},
	Database: DatabaseConf{
		Enabled: true,
	},
	Web: WebConf{
		Port: 8080,
	},
}

// Command line overrides, applied last
var (
	flags  = defaultConfig
	agents string

	debug  = false
	silent = false
	dump   = false
	cfile  = defconf
	dotenv = defenv
)

func init() {
	def := &flags

	flag.UintVar(&def.Game.Rounds, "rounds", def.Game.Rounds,
		"Number of rounds per match")
	flag.UintVar(&def.Game.Repetitions, "repetitions", def.Game.Repetitions,
		"Number of times every pairing is played")
	flag.UintVar(&def.Game.Delay, "delay", def.Game.Delay,
		"Milliseconds to pause after each match")
	flag.StringVar(&agents, "agents", strings.Join(def.Game.Agents, ","),
		"Comma separated list of participating agents")

	flag.BoolVar(&def.Database.Enabled, "match-log", def.Database.Enabled,
		"Keep a log of all matches during the run")

	flag.BoolVar(&def.Web.Enabled, "web", def.Web.Enabled,
		"Serve live progress over HTTP")
	flag.UintVar(&def.Web.Port, "web-port", def.Web.Port,
		"Port to use for the HTTP server")

	flag.BoolVar(&debug, "debug", debug, "Enable debug output")
	flag.BoolVar(&silent, "silent", silent, "Disable log output")
	flag.BoolVar(&dump, "dump-config", dump, "Dump configuration to standard output")
	flag.StringVar(&cfile, "conf", cfile, "Path to configuration file")
	flag.StringVar(&dotenv, "env", dotenv, "Path to a file with environment variables")
}

// Default returns a copy of the default configuration.
func Default() *Conf {
	c := defaultConfig
	c.Game.Agents = append([]string(nil), defaultConfig.Game.Agents...)
	return &c
}

// Decode reads a TOML configuration from R on top of C.
func (c *Conf) Decode(r io.Reader) error {
	_, err := toml.NewDecoder(r).Decode(c)
	return err
}

func splitList(s string) (list []string) {
	for _, e := range strings.Split(s, ",") {
		if e = strings.TrimSpace(e); e != "" {
			list = append(list, e)
		}
	}
	return
}

// Environ applies IPD_* variables, as returned by LOOKUP, to C.
func (c *Conf) Environ(lookup func(string) (string, bool)) error {
	uints := []struct {
		key string
		dst *uint
	}{
		{"IPD_ROUNDS", &c.Game.Rounds},
		{"IPD_REPETITIONS", &c.Game.Repetitions},
		{"IPD_DELAY", &c.Game.Delay},
		{"IPD_WEB_PORT", &c.Web.Port},
	}
	for _, u := range uints {
		v, ok := lookup(u.key)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.ParseUint(v, 10, 0)
		if err != nil {
			return fmt.Errorf("%s: %w", u.key, err)
		}
		*u.dst = uint(n)
	}

	bools := []struct {
		key string
		dst *bool
	}{
		{"IPD_MATCH_LOG", &c.Database.Enabled},
		{"IPD_WEB", &c.Web.Enabled},
	}
	for _, b := range bools {
		v, ok := lookup(b.key)
		if !ok || v == "" {
			continue
		}
		t, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", b.key, err)
		}
		*b.dst = t
	}

	if v, ok := lookup("IPD_AGENTS"); ok && v != "" {
		c.Game.Agents = splitList(v)
	}
	return nil
}

// Apply the flags given on the command line to C
func (c *Conf) override(set *flag.FlagSet) {
	set.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "rounds":
			c.Game.Rounds = flags.Game.Rounds
		case "repetitions":
			c.Game.Repetitions = flags.Game.Repetitions
		case "delay":
			c.Game.Delay = flags.Game.Delay
		case "agents":
			c.Game.Agents = splitList(agents)
		case "match-log":
			c.Database.Enabled = flags.Database.Enabled
		case "web":
			c.Web.Enabled = flags.Web.Enabled
		case "web-port":
			c.Web.Port = flags.Web.Port
		}
	})
}

// Load variables from the file NAME into the environment.  Only the
// default file may be missing.
func loadEnv(name string) error {
	err := godotenv.Load(name)
	if err != nil && errors.Is(err, os.ErrNotExist) && name == defenv {
		return nil
	}
	return err
}

// PauseDuration converts the configured delay.
func (c *Conf) PauseDuration() time.Duration {
	return time.Duration(c.Game.Delay) * time.Millisecond
}

// Load the configuration from the configuration file, the environment
// and the command line, in that order of increasing precedence.
func (c *Conf) Load() {
	*c = *Default()

	switch {
	case debug:
		ipd.Debug.SetOutput(os.Stderr)
		log.SetLevel(log.DebugLevel)
		ipd.Debug.Println("Debug logging has been enabled")
	case silent:
		log.SetOutput(io.Discard)
	}

	file, err := os.Open(cfile)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) || cfile != defconf {
			log.Fatal(err)
		}
	} else {
		defer file.Close()
		if err := c.Decode(file); err != nil {
			log.Fatalf("%s: %s", cfile, err)
		}
		ipd.Debug.Println("Loaded configuration from", cfile)
	}

	if err := loadEnv(dotenv); err != nil {
		log.Fatal(err)
	}
	if err := c.Environ(os.LookupEnv); err != nil {
		log.Fatal(err)
	}

	c.override(flag.CommandLine)

	// Dump the configuration onto the disk if requested
	if dump {
		err = c.Dump(os.Stdout)
		if err != nil {
			log.Fatalln("Failed to dump configuration:", err)
		}
		os.Exit(0)
	}
}

// Serialise the configuration into a writer
func (c *Conf) Dump(wr io.Writer) error {
	return toml.NewEncoder(wr).Encode(c)
}
