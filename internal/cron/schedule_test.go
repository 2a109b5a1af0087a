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
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Schedule", func() {

	Describe("Parse", func() {
		It("returns the defaults for an empty expression", func() {
			Expect(Parse("")).To(Equal(Schedule{
				Minute:     0,
				Hour:       20,
				DayOfWeek:  "SUN",
				DayOfMonth: 1,
				Frequency:  FrequencyCustom,
			}))
		})

		It("returns the defaults for garbage", func() {
			Expect(Parse("not a cron")).To(Equal(DefaultSchedule()))
		})

		It("detects hourly schedules", func() {
			schedule := Parse("15 * * * *")
			Expect(schedule.Frequency).To(Equal(FrequencyHourly))
			Expect(schedule.Minute).To(Equal(15))
			Expect(schedule.Hour).To(Equal(DefaultHour))
			Expect(schedule.DayOfWeek).To(Equal(DefaultDayOfWeek))
			Expect(schedule.DayOfMonth).To(Equal(DefaultDayOfMonth))
		})

		It("detects daily schedules", func() {
			schedule := Parse("45 6 * * *")
			Expect(schedule.Frequency).To(Equal(FrequencyDaily))
			Expect(schedule.Minute).To(Equal(45))
			Expect(schedule.Hour).To(Equal(6))
		})

		It("detects weekly schedules with a symbolic day", func() {
			Expect(Parse("30 9 * * MON")).To(Equal(Schedule{
				Minute:     30,
				Hour:       9,
				DayOfWeek:  "MON",
				DayOfMonth: DefaultDayOfMonth,
				Frequency:  FrequencyWeekly,
			}))
		})

		It("passes numeric weekdays through unchanged", func() {
			schedule := Parse("0 3 * * 5")
			Expect(schedule.Frequency).To(Equal(FrequencyWeekly))
			Expect(schedule.DayOfWeek).To(Equal("5"))
		})

		It("detects monthly schedules", func() {
			schedule := Parse("0 20 15 * *")
			Expect(schedule.Frequency).To(Equal(FrequencyMonthly))
			Expect(schedule.Minute).To(Equal(0))
			Expect(schedule.Hour).To(Equal(20))
			Expect(schedule.DayOfMonth).To(Equal(15))
		})

		It("strips leading zeros", func() {
			schedule := Parse("05 07 * * *")
			Expect(schedule.Minute).To(Equal(5))
			Expect(schedule.Hour).To(Equal(7))
		})

		It("keeps unrecognized shapes custom but carries minute and hour", func() {
			schedule := Parse("10 11 3 5 *")
			Expect(schedule.Frequency).To(Equal(FrequencyCustom))
			Expect(schedule.Minute).To(Equal(10))
			Expect(schedule.Hour).To(Equal(11))
		})

		It("treats step expressions as custom", func() {
			Expect(Parse("*/5 * * * *").Frequency).To(Equal(FrequencyCustom))
		})

		It("treats a lowercase weekday as custom", func() {
			Expect(Parse("0 1 * * mon").Frequency).To(Equal(FrequencyCustom))
		})
	})

	Describe("Build", func() {
		DescribeTable("serializes each frequency",
			func(schedule Schedule, expected string) {
				Expect(Build(schedule, "ignored")).To(Equal(expected))
			},
			Entry("hourly", Schedule{Minute: 5, Hour: 9, Frequency: FrequencyHourly}, "5 * * * *"),
			Entry("daily", Schedule{Minute: 5, Hour: 9, Frequency: FrequencyDaily}, "5 9 * * *"),
			Entry("weekly", Schedule{Minute: 30, Hour: 9, DayOfWeek: "MON", Frequency: FrequencyWeekly}, "30 9 * * MON"),
			Entry("monthly", Schedule{Minute: 0, Hour: 20, DayOfMonth: 15, Frequency: FrequencyMonthly}, "0 20 15 * *"),
		)

		It("echoes the previous expression for custom schedules", func() {
			for _, previous := range []string{"X", "", "*/5 1-3 * * *", "definitely not cron"} {
				Expect(Build(Schedule{Frequency: FrequencyCustom, Minute: 7}, previous)).To(Equal(previous))
			}
		})

		It("panics on an unknown frequency", func() {
			Expect(func() {
				Build(Schedule{Frequency: "biweekly"}, "")
			}).To(PanicWith(ContainSubstring("Unknown schedule frequency type biweekly.")))
		})

		It("round-trips generated expressions", func() {
			schedules := []Schedule{
				{Minute: 15, Hour: DefaultHour, DayOfWeek: DefaultDayOfWeek, DayOfMonth: DefaultDayOfMonth, Frequency: FrequencyHourly},
				{Minute: 45, Hour: 6, DayOfWeek: DefaultDayOfWeek, DayOfMonth: DefaultDayOfMonth, Frequency: FrequencyDaily},
				{Minute: 0, Hour: 23, DayOfWeek: "FRI", DayOfMonth: DefaultDayOfMonth, Frequency: FrequencyWeekly},
				{Minute: 59, Hour: 0, DayOfWeek: DefaultDayOfWeek, DayOfMonth: 31, Frequency: FrequencyMonthly},
			}
			for _, schedule := range schedules {
				Expect(Parse(Build(schedule, "anything"))).To(Equal(schedule))
			}
		})
	})

	Describe("Humanize", func() {
		It("renders daily schedules with the timezone", func() {
			Expect(Humanize(Parse("45 6 * * *"), "45 6 * * *", "UTC")).To(Equal("6:45 (UTC)"))
		})

		It("pads single digit minutes", func() {
			Expect(Humanize(Parse("5 14 * * *"), "5 14 * * *", "Europe/Madrid")).To(Equal("14:05 (Europe/Madrid)"))
		})

		It("renders hourly schedules with the base string", func() {
			Expect(Humanize(Parse("15 * * * *"), "15 * * * *", "UTC")).To(Equal("20:15 (UTC)"))
		})

		It("prefixes monthly schedules with the day", func() {
			humanized := Humanize(Parse("0 20 15 * *"), "0 20 15 * *", "UTC")
			Expect(humanized).To(ContainSubstring("Day 15 "))
			Expect(humanized).To(Equal("Day 15 " + TimePlaceholder))
		})

		It("prefixes weekly schedules with the weekday", func() {
			Expect(Humanize(Parse("30 9 * * MON"), "30 9 * * MON", "UTC")).To(Equal("MON " + TimePlaceholder))
		})

		It("shows custom expressions verbatim", func() {
			Expect(Humanize(Parse("*/5 * * * *"), "*/5 * * * *", "America/New_York")).To(Equal("*/5 * * * * (America/New_York)"))
		})
	})

	Describe("Frequency", func() {
		It("knows its values", func() {
			Expect(FrequencyWeekly.Valid()).To(BeTrue())
			Expect(Frequency("biweekly").Valid()).To(BeFalse())
			Expect(Frequency("").Valid()).To(BeFalse())
		})
	})
})
