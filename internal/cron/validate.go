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

package cron

import (
	"fmt"
	"strings"
	"time"

	robfigcron "github.com/robfig/cron/v3"
)

// DefaultTimezone is applied when a schedule does not name one
const DefaultTimezone = "UTC"

var standardParser = robfigcron.NewParser(
	robfigcron.Minute | robfigcron.Hour | robfigcron.Dom | robfigcron.Month | robfigcron.Dow | robfigcron.Descriptor,
)

// Validate checks that expression is a valid five field cron expression
func Validate(expression string) error {
	if strings.TrimSpace(expression) == "" {
		return fmt.Errorf("invalid cron expression: empty")
	}
	if _, err := standardParser.Parse(expression); err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", expression, err)
	}
	return nil
}

// LoadLocation resolves an IANA timezone name, defaulting to UTC when empty
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" {
		timezone = DefaultTimezone
	}
	location, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return location, nil
}

// Next returns the first activation of expression after from, evaluated in timezone
func Next(expression string, timezone string, from time.Time) (time.Time, error) {
	location, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, err
	}
	schedule, err := standardParser.Parse(expression)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid cron expression %q: %w", expression, err)
	}
	return schedule.Next(from.In(location)), nil
}
