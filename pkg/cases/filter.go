package cases

import (
	"fmt"
	"regexp"
	"strings"
)

// FilterConfig specifies include and exclude patterns for suite filtering.
type FilterConfig struct {
	Include []string // Regex patterns - only matching suites included
	Exclude []string // Regex patterns - matching suites excluded
}

// ParsePatterns splits a comma-separated string into individual patterns.
// Patterns are trimmed of whitespace.
func ParsePatterns(patterns string) []string {
	if patterns == "" {
		return []string{}
	}

	parts := strings.Split(patterns, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// Filter applies include and exclude patterns to suite IDs.
// Include is applied first, then exclude. Empty include means "include all".
// Returns error if any pattern is invalid regex.
func Filter(suites []*Suite, config FilterConfig) ([]*Suite, error) {
	if len(suites) == 0 {
		return suites, nil
	}

	includeRegexes, err := compilePatterns(config.Include)
	if err != nil {
		return nil, err
	}
	excludeRegexes, err := compilePatterns(config.Exclude)
	if err != nil {
		return nil, err
	}

	filtered := suites
	if len(includeRegexes) > 0 {
		filtered = keepMatching(filtered, includeRegexes, true)
	}
	if len(excludeRegexes) > 0 {
		filtered = keepMatching(filtered, excludeRegexes, false)
	}

	return filtered, nil
}

func compilePatterns(patterns []string) ([]*regexp.Regexp, error) {
	var regexes []*regexp.Regexp
	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid regex pattern %q: %w", pattern, err)
		}
		regexes = append(regexes, re)
	}
	return regexes, nil
}

// keepMatching returns the suites whose ID matches any regex when keep is
// true, and the suites whose ID matches none when keep is false.
func keepMatching(suites []*Suite, regexes []*regexp.Regexp, keep bool) []*Suite {
	result := make([]*Suite, 0)
	for _, s := range suites {
		if matchesAny(s.ID, regexes) == keep {
			result = append(result, s)
		}
	}
	return result
}

func matchesAny(id string, regexes []*regexp.Regexp) bool {
	for _, re := range regexes {
		if re.MatchString(id) {
			return true
		}
	}
	return false
}
