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

// Frequency selects which fields of a Schedule are authoritative and how the
// cron expression is shaped
type Frequency string

const (
	FrequencyHourly  Frequency = "hourly"
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyCustom  Frequency = "custom"
)

// Valid reports whether the frequency is one of the known values
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyHourly, FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyCustom:
		return true
	}
	return false
}

const (
	Monday    = "MON"
	Tuesday   = "TUE"
	Wednesday = "WED"
	Thursday  = "THU"
	Friday    = "FRI"
	Saturday  = "SAT"
	Sunday    = "SUN"
)

// Weekdays lists the day-of-week symbols understood by the parser
var Weekdays = []string{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

const (
	DefaultMinute     = 0
	DefaultHour       = 20
	DefaultDayOfWeek  = Sunday
	DefaultDayOfMonth = 1
	DefaultFrequency  = FrequencyCustom

	wildcard = "*"
)

// TimePlaceholder stands in for the time of day in weekly and monthly
// descriptions. The display format for those cases was never settled.
const TimePlaceholder = "{time}"

// Schedule is the structured form of a five field cron expression.
// DayOfWeek is only meaningful for weekly schedules and DayOfMonth for monthly ones.
type Schedule struct {
	Minute     int
	Hour       int
	DayOfWeek  string
	DayOfMonth int
	Frequency  Frequency
}

// DefaultSchedule returns the schedule used when an expression is not recognized
func DefaultSchedule() Schedule {
	return Schedule{
		Minute:     DefaultMinute,
		Hour:       DefaultHour,
		DayOfWeek:  DefaultDayOfWeek,
		DayOfMonth: DefaultDayOfMonth,
		Frequency:  DefaultFrequency,
	}
}

// Parse converts a "minute hour day-of-month month day-of-week" expression
// into a Schedule. It never fails: anything it cannot classify is reported as
// a custom schedule carrying defaults for the fields it could not read.
func Parse(expression string) Schedule {
	schedule := DefaultSchedule()

	fields := make([]string, 5)
	copy(fields, strings.Fields(expression))
	minute, hour, dayOfMonth, month, dayOfWeek := fields[0], fields[1], fields[2], fields[3], fields[4]

	parsedMinute, minuteErr := strconv.Atoi(minute)
	parsedHour, hourErr := strconv.Atoi(hour)

	switch {
	case minuteErr == nil && hourErr == nil:
		schedule.Minute = parsedMinute
		schedule.Hour = parsedHour

		parsedDayOfMonth, dayOfMonthErr := strconv.Atoi(dayOfMonth)
		switch {
		case dayOfMonthErr == nil && month == wildcard && dayOfWeek == wildcard:
			schedule.Frequency = FrequencyMonthly
			schedule.DayOfMonth = parsedDayOfMonth
		case dayOfMonth == wildcard && month == wildcard && isDayOfWeek(dayOfWeek):
			schedule.Frequency = FrequencyWeekly
			schedule.DayOfWeek = dayOfWeek
		case dayOfMonth == wildcard && month == wildcard && dayOfWeek == wildcard:
			schedule.Frequency = FrequencyDaily
		}

	case minuteErr == nil && hour == wildcard && dayOfMonth == wildcard && month == wildcard && dayOfWeek == wildcard:
		schedule.Minute = parsedMinute
		schedule.Frequency = FrequencyHourly
	}

	return schedule
}

// Build serializes a Schedule back into a cron expression. Custom schedules
// return previousExpression untouched. An unknown frequency is a programming
// error and panics.
func Build(schedule Schedule, previousExpression string) string {
	switch schedule.Frequency {
	case FrequencyHourly:
		return fmt.Sprintf("%d * * * *", schedule.Minute)
	case FrequencyDaily:
		return fmt.Sprintf("%d %d * * *", schedule.Minute, schedule.Hour)
	case FrequencyWeekly:
		return fmt.Sprintf("%d %d * * %s", schedule.Minute, schedule.Hour, schedule.DayOfWeek)
	case FrequencyMonthly:
		return fmt.Sprintf("%d %d %d * *", schedule.Minute, schedule.Hour, schedule.DayOfMonth)
	case FrequencyCustom:
		return previousExpression
	}
	panic(fmt.Sprintf("Unknown schedule frequency type %s.", schedule.Frequency))
}

// Humanize renders a schedule for display, e.g. "6:45 (UTC)"
func Humanize(schedule Schedule, expression string, timezone string) string {
	if schedule.Frequency == FrequencyCustom {
		return fmt.Sprintf("%s (%s)", expression, timezone)
	}

	humanized := fmt.Sprintf("%d:%s (%s)", schedule.Hour, padLeft(schedule.Minute), timezone)

	switch schedule.Frequency {
	case FrequencyMonthly:
		humanized = fmt.Sprintf("Day %d %s", schedule.DayOfMonth, TimePlaceholder)
	case FrequencyWeekly:
		humanized = fmt.Sprintf("%s %s", schedule.DayOfWeek, TimePlaceholder)
	}

	return humanized
}

func padLeft(value int) string {
	return fmt.Sprintf("%02d", value)
}

func isDayOfWeek(field string) bool {
	if _, err := strconv.Atoi(field); err == nil {
		return true
	}
	for _, weekday := range Weekdays {
		if field == weekday {
			return true
		}
	}
	return false
}
