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

// Editor keeps a Schedule and its cron expression in step while single fields
// are edited. Every edit rebuilds the whole expression, falling back to the
// stored expression while the schedule is custom.
type Editor struct {
	stored     string
	schedule   Schedule
	expression string
}

// NewEditor seeds an editor from a stored expression
func NewEditor(stored string) *Editor {
	return &Editor{
		stored:     stored,
		schedule:   Parse(stored),
		expression: stored,
	}
}

// Schedule returns the current structured schedule
func (e *Editor) Schedule() Schedule {
	return e.schedule
}

// Expression returns the expression for the current state
func (e *Editor) Expression() string {
	return e.expression
}

func (e *Editor) SetFrequency(frequency Frequency) *Editor {
	e.schedule.Frequency = frequency
	return e.rebuild()
}

func (e *Editor) SetMinute(minute int) *Editor {
	e.schedule.Minute = minute
	return e.rebuild()
}

func (e *Editor) SetHour(hour int) *Editor {
	e.schedule.Hour = hour
	return e.rebuild()
}

func (e *Editor) SetDayOfWeek(dayOfWeek string) *Editor {
	e.schedule.DayOfWeek = dayOfWeek
	return e.rebuild()
}

func (e *Editor) SetDayOfMonth(dayOfMonth int) *Editor {
	e.schedule.DayOfMonth = dayOfMonth
	return e.rebuild()
}

// SetCustomExpression replaces the stored expression with a free-typed one and
// switches the schedule to custom
func (e *Editor) SetCustomExpression(expression string) *Editor {
	e.stored = expression
	e.schedule.Frequency = FrequencyCustom
	return e.rebuild()
}

func (e *Editor) rebuild() *Editor {
	e.expression = Build(e.schedule, e.stored)
	return e
}
