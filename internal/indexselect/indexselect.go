/*
Copyright 2025.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package indexselect

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"sort"
	"strings"

	"index-management-operator.freepik.com/index-management-operator/internal/apicaller"
)

type Kind string

const (
	KindIndex      Kind = "index"
	KindAlias      Kind = "alias"
	KindDataStream Kind = "data_stream"
)

// Option is a name that can be used wherever an index is expected
type Option struct {
	Name string
	Kind Kind
}

// List gathers the indices, aliases and data streams of a cluster
func List(ctx context.Context, caller *apicaller.Caller) ([]Option, error) {
	options := []Option{}

	var indices []struct {
		Index string `json:"index"`
	}
	if err := get(ctx, caller, "/_cat/indices", &indices); err != nil {
		return nil, fmt.Errorf("failed to list indices: %w", err)
	}
	for _, index := range indices {
		options = append(options, Option{Name: index.Index, Kind: KindIndex})
	}

	var aliases []struct {
		Alias string `json:"alias"`
	}
	if err := get(ctx, caller, "/_cat/aliases", &aliases); err != nil {
		return nil, fmt.Errorf("failed to list aliases: %w", err)
	}
	for _, alias := range aliases {
		options = append(options, Option{Name: alias.Alias, Kind: KindAlias})
	}

	// Clusters without data stream support answer 404 here
	var dataStreams struct {
		DataStreams []struct {
			Name string `json:"name"`
		} `json:"data_streams"`
	}
	res, err := caller.Call(ctx, apicaller.Request{Method: http.MethodGet, Path: "/_data_stream"})
	switch {
	case apicaller.IsNotFound(err):
	case err != nil:
		return nil, fmt.Errorf("failed to list data streams: %w", err)
	default:
		if err := res.Decode(&dataStreams); err != nil {
			return nil, err
		}
	}
	for _, dataStream := range dataStreams.DataStreams {
		options = append(options, Option{Name: dataStream.Name, Kind: KindDataStream})
	}

	return options, nil
}

func get(ctx context.Context, caller *apicaller.Caller, catPath string, target interface{}) error {
	res, err := caller.Call(ctx, apicaller.Request{
		Method: http.MethodGet,
		Path:   catPath,
		Query:  url.Values{"format": []string{"json"}},
	})
	if err != nil {
		return err
	}
	return res.Decode(target)
}

// Filter returns the options whose name contains search, without duplicates
// and without the excluded names, sorted by name. When a name appears more
// than once the first occurrence wins. Hidden names (starting with ".") are
// only returned when search itself starts with ".".
func Filter(options []Option, search string, exclude ...string) []Option {
	excluded := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		excluded[name] = true
	}

	showHidden := strings.HasPrefix(search, ".")
	seen := make(map[string]bool, len(options))
	filtered := []Option{}
	for _, option := range options {
		if seen[option.Name] || excluded[option.Name] {
			continue
		}
		seen[option.Name] = true

		if strings.HasPrefix(option.Name, ".") && !showHidden {
			continue
		}
		if !strings.Contains(option.Name, search) {
			continue
		}
		filtered = append(filtered, option)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Name < filtered[j].Name
	})
	return filtered
}

// Find returns the option with exactly the given name
func Find(options []Option, name string) (Option, bool) {
	for _, option := range options {
		if option.Name == name {
			return option, true
		}
	}
	return Option{}, false
}

// Matching returns the visible options addressed by a comma separated index
// pattern, leaving out the excluded names. Each part of the pattern narrows
// the options with Filter on its literal prefix before the wildcard match.
func Matching(options []Option, pattern string, exclude ...string) []Option {
	seen := map[string]bool{}
	matched := []Option{}
	for _, part := range splitPattern(pattern) {
		for _, option := range Filter(options, literalPrefix(part), exclude...) {
			if seen[option.Name] || !matches(part, option.Name) {
				continue
			}
			seen[option.Name] = true
			matched = append(matched, option)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Name < matched[j].Name
	})
	return matched
}

// literalPrefix is the part of a pattern before its first wildcard
func literalPrefix(pattern string) string {
	if index := strings.IndexAny(pattern, "*?["); index >= 0 {
		return pattern[:index]
	}
	return pattern
}

// Overlaps reports whether two comma separated index patterns can address the
// same index
func Overlaps(a, b string) bool {
	for _, left := range splitPattern(a) {
		for _, right := range splitPattern(b) {
			if left == right || matches(left, right) || matches(right, left) {
				return true
			}
		}
	}
	return false
}

func splitPattern(pattern string) []string {
	parts := []string{}
	for _, part := range strings.Split(pattern, ",") {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}

func matches(pattern, name string) bool {
	matched, err := path.Match(pattern, name)
	return err == nil && matched
}
