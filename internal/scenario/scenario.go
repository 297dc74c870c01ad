package scenario

import (
	"slices"
	"strings"
)

// Suites a scenario can belong to.
const (
	SuiteAPI = "api"
	SuiteUI  = "ui"
	SuiteE2E = "e2e"
	SuiteAll = "all"
)

// Scenario is one catalog entry.
type Scenario struct {
	Name    string
	Title   string
	Feature string
	Suite   string
	Tags    []string
	// UI scenarios get a fresh browser.
	UI  bool
	Run func(t *T)
}

// Filter keeps scenarios in any of suites that carry any of tags. Empty
// filters, and the "all" suite, match everything.
func Filter(all []Scenario, suites, tags []string) []Scenario {
	wantSuite := normalize(suites)
	wantTag := normalize(tags)
	matchAll := len(wantSuite) == 0 || slices.Contains(wantSuite, SuiteAll)

	var out []Scenario
	for _, sc := range all {
		if !matchAll && !slices.Contains(wantSuite, strings.ToLower(sc.Suite)) {
			continue
		}
		if len(wantTag) > 0 && !hasAny(sc.Tags, wantTag) {
			continue
		}
		out = append(out, sc)
	}
	return out
}

func hasAny(tags, want []string) bool {
	for _, t := range tags {
		if slices.Contains(want, strings.ToLower(t)) {
			return true
		}
	}
	return false
}

// normalize lowercases, trims and splits comma separated values.
func normalize(in []string) []string {
	var out []string
	for _, v := range in {
		for _, part := range strings.Split(v, ",") {
			if part = strings.ToLower(strings.TrimSpace(part)); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
