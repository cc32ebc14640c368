package framework

import (
	"fmt"
	"strings"
)

// Suite is a named group of tests that may depend on other suites in the same run.
//
// Action receives the state produced by the suites that ran before it and returns the state
// that later suites should see. State is passed by value; a suite that is skipped passes its
// input through unchanged.
type Suite[S any] struct {
	Name      string
	DependsOn []string
	Action    func(c *Context, state S) S
}

// OrderSuites validates the dependency declarations of the given suites and returns their
// names in an order where every suite comes after all of its dependencies. Among suites whose
// dependencies are all satisfied, declaration order wins.
func OrderSuites[S any](suites []Suite[S]) ([]string, error) {
	index := make(map[string]int, len(suites))
	for i, s := range suites {
		if s.Name == "" {
			return nil, fmt.Errorf("suite #%d has no name", i+1)
		}
		if _, ok := index[s.Name]; ok {
			return nil, fmt.Errorf("duplicate suite name %q", s.Name)
		}
		index[s.Name] = i
	}
	for _, s := range suites {
		for _, dep := range s.DependsOn {
			if _, ok := index[dep]; !ok {
				return nil, fmt.Errorf("suite %q depends on unknown suite %q", s.Name, dep)
			}
			if dep == s.Name {
				return nil, fmt.Errorf("suite %q depends on itself", s.Name)
			}
		}
	}

	done := make(map[string]bool, len(suites))
	order := make([]string, 0, len(suites))
	for len(order) < len(suites) {
		progressed := false
		for _, s := range suites {
			if done[s.Name] || !allDone(done, s.DependsOn) {
				continue
			}
			done[s.Name] = true
			order = append(order, s.Name)
			progressed = true
			break
		}
		if !progressed {
			var stuck []string
			for _, s := range suites {
				if !done[s.Name] {
					stuck = append(stuck, s.Name)
				}
			}
			return nil, fmt.Errorf("dependency cycle among suites: %s", strings.Join(stuck, ", "))
		}
	}
	return order, nil
}

func allDone(done map[string]bool, names []string) bool {
	for _, n := range names {
		if !done[n] {
			return false
		}
	}
	return true
}

// RunSuites runs each suite as a group under c, serially and in dependency order, threading
// state from one suite to the next. Failing tests inside a suite do not stop the suites after
// it. A suite is skipped without running only if one of its dependencies was skipped, or was
// aborted by a failure at the suite level before its action returned. It returns an error,
// before running anything, if the dependency declarations are invalid.
func RunSuites[S any](c *Context, initial S, suites []Suite[S]) (S, error) {
	order, err := OrderSuites(suites)
	if err != nil {
		return initial, err
	}
	byName := make(map[string]Suite[S], len(suites))
	for _, s := range suites {
		byName[s.Name] = s
	}

	state := initial
	completed := make(map[string]bool, len(suites))
	for _, name := range order {
		s := byName[name]
		if unmet := firstIncomplete(completed, s.DependsOn); unmet != "" {
			reason := fmt.Sprintf("dependency unmet: suite %q did not complete", unmet)
			c.RunGroup(name, func(c1 *Context) { c1.SkipWithReason(reason) })
			continue
		}
		in := state
		out := in
		c.RunGroup(name, func(c1 *Context) {
			out = s.Action(c1, in)
			completed[name] = true
		})
		if completed[name] {
			state = out
		}
	}
	return state, nil
}

func firstIncomplete(completed map[string]bool, deps []string) string {
	for _, d := range deps {
		if !completed[d] {
			return d
		}
	}
	return ""
}
