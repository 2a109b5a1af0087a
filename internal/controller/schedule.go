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

package controller

import (
	"errors"
	"fmt"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"index-management-operator.freepik.com/index-management-operator/api/v1alpha1"
	"index-management-operator.freepik.com/index-management-operator/internal/cron"
)

// ResolvedSchedule is a CronSchedule after structured fields were applied
type ResolvedSchedule struct {
	Expression string
	Timezone   string
	Schedule   cron.Schedule
}

// ResolveSchedule turns the schedule of a resource into the expression written to the cluster.
// The raw expression seeds the editor and every structured field set on the resource is applied on top.
func ResolveSchedule(spec *v1alpha1.CronSchedule) (*ResolvedSchedule, error) {
	editor := cron.NewEditor(spec.Expression)

	if spec.Frequency != "" {
		frequency := cron.Frequency(spec.Frequency)
		if !frequency.Valid() {
			return nil, fmt.Errorf("unknown schedule frequency %q", spec.Frequency)
		}
		editor.SetFrequency(frequency)

		if spec.Minute != nil {
			editor.SetMinute(*spec.Minute)
		}
		if spec.Hour != nil {
			editor.SetHour(*spec.Hour)
		}
		if spec.DayOfWeek != "" {
			editor.SetDayOfWeek(spec.DayOfWeek)
		}
		if spec.DayOfMonth != nil {
			editor.SetDayOfMonth(*spec.DayOfMonth)
		}
	}

	expression := editor.Expression()
	if err := cron.Validate(expression); err != nil {
		return nil, err
	}

	timezone := spec.Timezone
	if timezone == "" {
		timezone = cron.DefaultTimezone
	}
	if _, err := cron.LoadLocation(timezone); err != nil {
		return nil, err
	}

	return &ResolvedSchedule{
		Expression: expression,
		Timezone:   timezone,
		Schedule:   editor.Schedule(),
	}, nil
}

// Status renders the schedule for the resource status
func (s *ResolvedSchedule) Status(name string, now time.Time) v1alpha1.ScheduleStatus {
	status := v1alpha1.ScheduleStatus{
		Name:        name,
		Expression:  s.Expression,
		Timezone:    s.Timezone,
		Frequency:   string(s.Schedule.Frequency),
		Description: cron.Humanize(s.Schedule, s.Expression, s.Timezone),
	}

	if next, err := cron.Next(s.Expression, s.Timezone, now); err == nil {
		nextRun := metav1.NewTime(next)
		status.NextRun = &nextRun
	}

	return status
}

// InvalidScheduleError marks a schedule that could not be resolved for a named policy or job
type InvalidScheduleError struct {
	Name string
	Err  error
}

func (e *InvalidScheduleError) Error() string {
	return fmt.Sprintf("invalid schedule for %s: %s", e.Name, e.Err.Error())
}

func (e *InvalidScheduleError) Unwrap() error {
	return e.Err
}

// IsInvalidSchedule reports whether err was caused by an unresolvable schedule
func IsInvalidSchedule(err error) bool {
	var scheduleErr *InvalidScheduleError
	return errors.As(err, &scheduleErr)
}
