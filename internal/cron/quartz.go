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
	"strconv"
	"strings"
)

// quartzWeekdays names cron day-of-week numbers 0-7, both ends being Sunday
var quartzWeekdays = []string{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// Quartz converts a five field expression into the Quartz flavour used by
// Elasticsearch SLM: a leading seconds field and "?" for whichever of
// day-of-month and day-of-week is unrestricted. Weekdays are written as names
// since Quartz numbers them 1 (SUN) to 7 (SAT).
// Descriptors, day-of-week steps and expressions restricting both day fields
// have no Quartz equivalent and are rejected.
func Quartz(expression string) (string, error) {
	if strings.HasPrefix(strings.TrimSpace(expression), "@") {
		return "", fmt.Errorf("descriptor %q has no Quartz equivalent", expression)
	}

	fields := strings.Fields(expression)
	if len(fields) != 5 {
		return "", fmt.Errorf("expected 5 fields in %q, found %d", expression, len(fields))
	}
	minute, hour, dayOfMonth, month, dayOfWeek := fields[0], fields[1], fields[2], fields[3], fields[4]

	switch {
	case dayOfWeek == wildcard:
		dayOfWeek = "?"
	case dayOfMonth == wildcard:
		dayOfMonth = "?"
		weekdays, err := quartzDayOfWeek(dayOfWeek)
		if err != nil {
			return "", err
		}
		dayOfWeek = weekdays
	default:
		return "", fmt.Errorf("cannot restrict both day-of-month %q and day-of-week %q in Quartz", dayOfMonth, dayOfWeek)
	}

	return strings.Join([]string{"0", minute, hour, dayOfMonth, month, dayOfWeek}, " "), nil
}

// quartzDayOfWeek rewrites every day of a list or range as a name. A range
// closed by 7 is split so it does not wrap around the week.
func quartzDayOfWeek(field string) (string, error) {
	parts := []string{}
	for _, part := range strings.Split(field, ",") {
		if strings.Contains(part, "/") {
			return "", fmt.Errorf("day-of-week step %q has no Quartz equivalent", part)
		}

		bounds := strings.SplitN(part, "-", 2)
		first, err := weekdayNumber(bounds[0])
		if err != nil {
			return "", err
		}
		if len(bounds) == 1 {
			parts = append(parts, quartzWeekdays[first])
			continue
		}

		last, err := weekdayNumber(bounds[1])
		if err != nil {
			return "", err
		}
		switch {
		case first > last:
			return "", fmt.Errorf("day-of-week range %q is reversed", part)
		case first == last:
			parts = append(parts, quartzWeekdays[first])
		case last == 7 && first == 0:
			parts = append(parts, Sunday+"-"+Saturday)
		case last == 7 && first == 6:
			parts = append(parts, Saturday, Sunday)
		case last == 7:
			parts = append(parts, quartzWeekdays[first]+"-"+Saturday, Sunday)
		default:
			parts = append(parts, quartzWeekdays[first]+"-"+quartzWeekdays[last])
		}
	}
	return strings.Join(parts, ","), nil
}

// weekdayNumber reads a day given as 0-7 or by name
func weekdayNumber(token string) (int, error) {
	if day, err := strconv.Atoi(token); err == nil {
		if day < 0 || day > 7 {
			return 0, fmt.Errorf("day-of-week %d out of range", day)
		}
		return day, nil
	}

	upper := strings.ToUpper(token)
	for day, name := range quartzWeekdays[:7] {
		if upper == name {
			return day, nil
		}
	}
	return 0, fmt.Errorf("unknown day-of-week %q", token)
}
