// Shared logging
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
// License, version 3, along with go-ipd . If not, see
// <http://www.gnu.org/licenses/>

package ipd

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Debug is silent until debugging is enabled (see cmd.Conf.Load).
var Debug = &logrus.Logger{
	Out: io.Discard,
	Formatter: &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05.000000",
	},
	Hooks: make(logrus.LevelHooks),
	Level: logrus.DebugLevel,
}
