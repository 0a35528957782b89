// Copyright 2025 The WordServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the wordtrie completion server and CLI [DBG] application.

wordtrie loads an ordered word list, builds a radix trie whose nodes hold
index ranges into that list, and answers prefix completions. It can operate
as a MessagePack IPC server for integration with editors, or as a CLI
application for testing and debugging.

# Usage

Start the server with the configured word list:

	wordtrie

Use a custom word list and enable debug mode:

	wordtrie -data /path/to/words.txt -d

Run in CLI mode for interactive testing:

	wordtrie -c -limit 10 -prmin 2

The data path is either a text file with one word per line or a directory of
chunked binary files named dict_0001.bin, dict_0002.bin, etc. Words must be
distinct lowercase strings where no word is a prefix of another; offending
entries are skipped unless dict.skip_invalid is false.

# Configuration

Runtime configuration lives in a TOML file with server, dictionary and CLI
sections:

	[server]
	max_limit = 64
	min_prefix = 1
	max_prefix = 60
	workers = 8
	metrics_addr = ":9464"

	[dict]
	path = "data/words.txt"
	encoding = "utf-8"
	max_words = 0
	skip_invalid = true

The config file is created with defaults if it doesn't exist.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout. It first writes
{"status": "ready"}, then answers each request in order.

	{"id": "req1", "p": "be", "l": 20}
	{"id": "req1", "s": [{"w": "bear", "i": 0, "r": 1}, {"w": "bell", "i": 2, "r": 2}], "c": 2, "t": 12}

Batches and info requests:

	{"id": "b1", "ps": ["be", "st"]}
	{"id": "i1", "action": "get_info"}

# Command Line Flags

	-data string
	    Word list file or chunk directory (default from config)
	-config string
	    Path to a TOML config file
	-d  Enable debug mode with detailed logging
	-c  Run in CLI mode instead of server mode
	-limit int
	    Number of suggestions to return in CLI mode
	-prmin int
	    Minimum prefix length for suggestions
	-prmax int
	    Maximum prefix length for suggestions
	-no-filter
	    Disable input filtering for debugging
	-words int
	    Maximum words to load (0 for all)
	-encoding string
	    Text word list encoding, utf-8 or latin1
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bastiangx/wordtrie/internal/cli"
	"github.com/bastiangx/wordtrie/internal/logger"
	"github.com/bastiangx/wordtrie/internal/utils"
	"github.com/bastiangx/wordtrie/pkg/config"
	"github.com/bastiangx/wordtrie/pkg/dictionary"
	"github.com/bastiangx/wordtrie/pkg/server"
	"github.com/bastiangx/wordtrie/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.1.0"
	AppName = "wordtrie"
	gh      = "https://github.com/bastiangx/wordtrie"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main wires config, word list, completer and the chosen front end.
func main() {
	sigHandler()
	defaultConfig := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	dataPath := flag.String("data", "", "Word list file or directory of chunk files (default from config)")
	configPath := flag.String("config", "", "Path to a custom config file")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	limit := flag.Int("limit", defaultConfig.CLI.DefaultLimit, "Number of suggestions to return")
	minPrefix := flag.Int("prmin", defaultConfig.CLI.DefaultMinLen, "Minimum prefix length for suggestions (1 < n <= prmax)")
	maxPrefix := flag.Int("prmax", defaultConfig.CLI.DefaultMaxLen, "Maximum prefix length for suggestions")
	noFilter := flag.Bool("no-filter", defaultConfig.CLI.DefaultNoFilter, "Disable input filtering (DBG only)")
	wordLimit := flag.Int("words", -1, "Maximum number of words to load (0 for all, default from config)")
	encoding := flag.String("encoding", "", "Encoding of text word lists: utf-8 or latin1 (default from config)")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	pathResolver, err := utils.NewPathResolver()
	if err != nil {
		log.Fatalf("Failed to initialize path resolver: %v", err)
	}

	appConfig, activeConfigPath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(activeConfigPath))

	opts := dictionary.Options{
		Encoding:    appConfig.Dict.Encoding,
		MaxWords:    appConfig.Dict.MaxWords,
		Lowercase:   appConfig.Dict.Lowercase,
		SkipInvalid: appConfig.Dict.SkipInvalid,
	}
	if *encoding != "" {
		opts.Encoding = *encoding
	}
	if *wordLimit >= 0 {
		opts.MaxWords = *wordLimit
	}
	requested := appConfig.Dict.Path
	if *dataPath != "" {
		requested = *dataPath
	}

	resolvedData, err := pathResolver.GetDataPath(requested)
	if err != nil {
		log.Fatalf("Failed to resolve word list (%s): %v", requested, err)
	}
	log.Debugf("Using word list at: %s", resolvedData)

	start := time.Now()
	words, err := dictionary.Load(resolvedData, opts)
	if err != nil {
		log.Fatalf("Failed to load word list: %v", err)
	}
	if len(words) == 0 {
		log.Warn("Word list is empty, every completion will be empty")
	}

	completer, err := suggest.NewCompleter(words, appConfig.Server.Workers)
	if err != nil {
		log.Fatalf("Failed to init completer: %v", err)
	}
	log.Debugf("Completer init done: %s words in %v", utils.FormatWithCommas(len(words)), time.Since(start))

	// CLI would be mainly used for testing and dbg purposes.
	if *cliMode {
		log.SetReportTimestamp(false)
		log.Debug("Input info:",
			"minPrefix", *minPrefix,
			"maxPrefix", *maxPrefix,
			"limit", *limit,
			"noFilter", *noFilter)

		inputHandler := cli.NewInputHandler(completer, *minPrefix, *maxPrefix, *limit, *noFilter)
		err = inputHandler.Start(os.Stdin)
	} else {
		err = serve(completer, appConfig, resolvedData, len(words))
	}

	completer.Stop()
	if err != nil {
		log.Errorf("Stopped: %v", err)
		os.Exit(1)
	}
}

// serve runs the IPC server on stdin/stdout, with the metrics listener
// alongside when one is configured.
func serve(completer suggest.ICompleter, appConfig *config.Config, dataPath string, words int) error {
	metrics := server.NewMetrics()
	if addr := appConfig.Server.MetricsAddr; addr != "" {
		metricsServer := metrics.Serve(addr)
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if err := metricsServer.Shutdown(ctx); err != nil {
				log.Warnf("Metrics listener shutdown: %v", err)
			}
		}()
	}

	srv := server.NewServer(completer, appConfig, metrics, os.Stdin, os.Stdout)
	showStartupInfo(dataPath, words)
	return srv.Start()
}

func printVersion() {
	l := logger.NewWithConfig("", log.InfoLevel, false, false, log.TextFormatter)

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	l.SetStyles(styles)

	l.Print("")
	l.Print("[ wordtrie ] Prefix completions from a radix trie")
	l.Print("", "version", Version)
	l.Print("")
	l.Print("use -h or --help to see available options")
	l.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(dataPath string, words int) {
	l := logger.NewWithConfig(AppName, log.InfoLevel, false, false, log.TextFormatter)
	l.Infof("Version: %s", Version)
	l.Infof("Process ID: [ %d ]", os.Getpid())
	l.Infof("word list: ( %s ), %s words", dataPath, utils.FormatWithCommas(words))
	l.Info("status: ready")
}
