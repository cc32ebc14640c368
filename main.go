package main

import (
	"fmt"
	"os"
	"time"

	"github.com/kasir-api/pos-contract-tests/client"
	"github.com/kasir-api/pos-contract-tests/fixtures"
	"github.com/kasir-api/pos-contract-tests/framework"
	"github.com/kasir-api/pos-contract-tests/posapi"
)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	var params commandParams
	if !params.Read(args, os.Stderr) {
		return 1
	}
	cfg, err := params.Config()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %s\n", err)
		return 1
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	suiteParams := posapi.SuiteParams{
		Client:         client.New(cfg.BaseURL, client.WithTimeout(cfg.RequestTimeout)),
		Fixtures:       fixtures.New(seed),
		LatencyCeiling: cfg.LatencyCeiling,
	}
	dependsOn := make(map[string][]string)
	for _, s := range posapi.Suites(suiteParams) {
		dependsOn[s.Name] = s.DependsOn
	}

	fmt.Printf("Testing API at %s (fixture seed %d)\n\n", cfg.BaseURL, seed)
	framework.PrintFilterDescription(os.Stdout, params.filters)

	fmt.Println("Running test suite")
	testLogger := &ConsoleTestLogger{
		Out:                  os.Stdout,
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}
	results, _, err := posapi.RunTestSuite(suiteParams, params.filters.AsFilter, testLogger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid test suite: %s\n", err)
		return 1
	}

	printResults(os.Stdout, results)
	if !results.OK() {
		fmt.Println()
		fmt.Println("To repeat the failed tests with the same fixtures:")
		fmt.Println("  " + rerunCommand(cfg, params.configPath, seed, results, dependsOn))
		return 1
	}
	return 0
}
