// Package calendar holds the date arithmetic behind a lookahead schedule.
//
// Week zero always begins on the schedule's start date, whatever weekday
// that is; weeks are not aligned to Monday or Sunday boundaries. All dates
// are normalized to midnight UTC so day differences are exact.
package calendar
