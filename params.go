package main

import (
	"flag"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/alessio/shellescape"

	"github.com/kasir-api/pos-contract-tests/config"
	"github.com/kasir-api/pos-contract-tests/framework"
)

const commandName = "pos-contract-tests"

type commandParams struct {
	configPath     string
	baseURL        string
	seed           int64
	latencyCeiling time.Duration
	requestTimeout time.Duration
	filters        framework.RegexFilters
	debug          bool
	debugAll       bool

	set map[string]bool
}

// Read parses the command line. On failure it writes the error and usage to errOut.
func (c *commandParams) Read(args []string, errOut io.Writer) bool {
	fs := flag.NewFlagSet(commandName, flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.StringVar(&c.configPath, "config", "", "YAML configuration file")
	fs.StringVar(&c.baseURL, "url", "", "base URL of the API under test (default "+config.DefaultBaseURL+")")
	fs.Int64Var(&c.seed, "seed", 0, "seed for generated fixtures (default: chosen from the clock)")
	fs.DurationVar(&c.latencyCeiling, "latency-ceiling", config.DefaultLatencyCeiling, "every response must arrive in less than this")
	fs.DurationVar(&c.requestTimeout, "timeout", 0, "HTTP request timeout, 0 for none")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")

	if err := fs.Parse(args[1:]); err != nil {
		return false
	}
	if fs.NArg() != 0 {
		fmt.Fprintf(errOut, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
		fs.Usage()
		return false
	}
	c.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { c.set[f.Name] = true })
	return true
}

// Config loads the configuration file, if any, and applies the flags that were given on top of it.
func (c *commandParams) Config() (config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if c.set["url"] {
		cfg.BaseURL = c.baseURL
	}
	if c.set["seed"] {
		cfg.Seed = c.seed
	}
	if c.set["latency-ceiling"] {
		cfg.LatencyCeiling = c.latencyCeiling
	}
	if c.set["timeout"] {
		cfg.RequestTimeout = c.requestTimeout
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// rerunCommand builds a command line that repeats the run with the same fixtures, limited to
// the failed tests and the tests they get their fixtures from.
func rerunCommand(
	cfg config.Config,
	configPath string,
	seed int64,
	results framework.Results,
	dependsOn map[string][]string,
) string {
	var b commandBuilder
	b.add(commandName)
	if configPath != "" {
		b.add("-config", configPath)
	}
	b.add("-url", cfg.BaseURL, "-seed", strconv.FormatInt(seed, 10))
	if cfg.LatencyCeiling != config.DefaultLatencyCeiling {
		b.add("-latency-ceiling", cfg.LatencyCeiling.String())
	}
	if cfg.RequestTimeout != 0 {
		b.add("-timeout", cfg.RequestTimeout.String())
	}
	if pattern := runPattern(results, dependsOn); pattern != "" {
		b.add("-run", pattern)
	}
	return b.String()
}

// runPattern matches every failed test plus each test that ran before it in the same suite or
// in a suite it depends on. A test ID is "suite/case"; a failure recorded on a suite itself
// selects the whole suite.
func runPattern(results framework.Results, dependsOn map[string][]string) string {
	seen := make(map[string]bool)
	var alternatives []string
	add := func(pattern string) {
		if !seen[pattern] {
			seen[pattern] = true
			alternatives = append(alternatives, pattern)
		}
	}
	for i, t := range results.Tests {
		if t.Outcome() != framework.Failed || len(t.TestID.Path) == 0 {
			continue
		}
		suites := suiteClosure(t.TestID.Path[0], dependsOn)
		for _, earlier := range results.Tests[:i] {
			if !earlier.Group && len(earlier.TestID.Path) > 1 && suites[earlier.TestID.Path[0]] {
				add(regexp.QuoteMeta(earlier.TestID.String()))
			}
		}
		if t.Group {
			add(regexp.QuoteMeta(t.TestID.String()) + "/.*")
		} else {
			add(regexp.QuoteMeta(t.TestID.String()))
		}
	}
	if len(alternatives) == 0 {
		return ""
	}
	return "^(" + strings.Join(alternatives, "|") + ")$"
}

func suiteClosure(suite string, dependsOn map[string][]string) map[string]bool {
	ret := map[string]bool{}
	pending := []string{suite}
	for len(pending) != 0 {
		name := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		if ret[name] {
			continue
		}
		ret[name] = true
		pending = append(pending, dependsOn[name]...)
	}
	return ret
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}
