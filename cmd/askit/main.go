// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
)

func main() {
	corpusFlag := &cli.StringFlag{
		Name:     "corpus",
		Aliases:  []string{"c"},
		Usage:    "Path to the JSON corpus file",
		Required: true,
	}
	dbFlag := &cli.StringFlag{
		Name:    "db",
		Aliases: []string{"d"},
		Usage:   "Path to BadgerDB database directory (omit for in-memory only)",
	}
	sessionFlag := &cli.StringFlag{
		Name:    "session",
		Aliases: []string{"s"},
		Usage:   "Session identifier to resume (omit for a fresh session)",
	}
	serviceHostFlag := &cli.StringFlag{
		Name:  "service-host",
		Usage: "External query service host URL for service intents",
	}
	serviceModelFlag := &cli.StringFlag{
		Name:  "service-model",
		Usage: "External query service model name",
		Value: "qwen2.5:3b",
	}

	app := &cli.App{
		Name:  "askit",
		Usage: "Corpus-backed question answering engine",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "warn",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "ask",
				Usage:     "Answer a single query and exit",
				ArgsUsage: "<query>",
				Action:    askCommand,
				Flags:     []cli.Flag{corpusFlag, dbFlag, sessionFlag, serviceHostFlag, serviceModelFlag},
			},
			{
				Name:   "repl",
				Usage:  "Interactive query loop with suggestions, feedback, and bookmarks",
				Action: replCommand,
				Flags:  []cli.Flag{corpusFlag, dbFlag, sessionFlag, serviceHostFlag, serviceModelFlag},
			},
			{
				Name:   "seed",
				Usage:  "Write a sample corpus file",
				Action: seedCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Usage:   "Output path for the sample corpus",
						Value:   "corpus.json",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
