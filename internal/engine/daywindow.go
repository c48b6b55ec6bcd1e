package engine

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const minutesPerDay = 1440

// DateKeyLayout formats local calendar dates used as day keys.
const DateKeyLayout = "2006-01-02"

// DateKey returns the local calendar date key of t.
func DateKey(t time.Time) string {
	return t.Format(DateKeyLayout)
}

// ParseDateKey parses a day key in the location of ref.
func ParseDateKey(key string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateKeyLayout, key, loc)
}

// Weekday returns the Monday-based weekday index (Mon=0..Sun=6).
func Weekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// ParseClock converts "HH:MM" to minutes after midnight. Hours are clamped to
// 0..23 and minutes to 0..59; unreadable parts count as zero.
func ParseClock(s string) int {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	h, _ := strconv.Atoi(strings.TrimSpace(parts[0]))
	m := 0
	if len(parts) == 2 {
		m, _ = strconv.Atoi(strings.TrimSpace(parts[1]))
	}
	return clampInt(h, 0, 23)*60 + clampInt(m, 0, 59)
}

// FormatClock renders minutes after midnight as "HH:MM".
func FormatClock(minutes int) string {
	minutes = ((minutes % minutesPerDay) + minutesPerDay) % minutesPerDay
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// NormalizeClock re-renders a clock string with its components clamped.
func NormalizeClock(s string) string {
	return FormatClock(ParseClock(s))
}

// DayWindow is the wake-to-bed interval evaluated at a given instant.
type DayWindow struct {
	WakeMin      int
	BedMin       int // may exceed 1440 when bedtime is past midnight
	Duration     int
	NowMin       float64
	Progress     float64
	WithinWindow bool
}

// DayWindowMinutes returns the active window length for wake and bed times.
func DayWindowMinutes(wake, bed string) int {
	w, b := windowBounds(wake, bed)
	return max(1, b-w)
}

func windowBounds(wake, bed string) (int, int) {
	wakeMin := ParseClock(wake)
	bedMin := ParseClock(bed)
	if bedMin <= wakeMin {
		bedMin += minutesPerDay
	}
	return wakeMin, bedMin
}

// ComputeDayWindow places now within the day window. It is pure.
func ComputeDayWindow(wake, bed string, now time.Time) DayWindow {
	wakeMin, bedMin := windowBounds(wake, bed)
	duration := max(1, bedMin-wakeMin)
	// Window membership uses whole minutes; seconds only smooth the progress.
	nowMin := float64(now.Hour()*60 + now.Minute())
	if nowMin < float64(wakeMin) {
		nowMin += minutesPerDay
	}
	exact := nowMin + float64(now.Second())/60
	return DayWindow{
		WakeMin:      wakeMin,
		BedMin:       bedMin,
		Duration:     duration,
		NowMin:       nowMin,
		Progress:     clampFloat((exact-float64(wakeMin))/float64(duration), 0, 1),
		WithinWindow: float64(wakeMin) <= nowMin && nowMin <= float64(bedMin),
	}
}

// IsWithinDayWindow reports whether now falls between wake and bed.
func IsWithinDayWindow(s Settings, now time.Time) bool {
	return ComputeDayWindow(s.WakeTime, s.BedTime, now).WithinWindow
}

// MinutesLeft is the whole minutes until bedtime, zero outside the window.
func (w DayWindow) MinutesLeft() int {
	if !w.WithinWindow {
		return 0
	}
	return max(0, int(float64(w.BedMin)-w.NowMin))
}

// PastBedtime reports whether the window has been exited after bed.
func (w DayWindow) PastBedtime() bool {
	return w.NowMin > float64(w.BedMin)
}

// WindowDate returns the calendar date a day window containing now starts on:
// before wake time, now still belongs to yesterday's window.
func WindowDate(s Settings, now time.Time) time.Time {
	wakeMin := ParseClock(s.WakeTime)
	if now.Hour()*60+now.Minute() < wakeMin {
		return now.AddDate(0, 0, -1)
	}
	return now
}

// DayKey is the ledger key of the day window containing now. Completions
// after midnight but before bedtime belong to the previous date.
func DayKey(s Settings, now time.Time) string {
	return DateKey(WindowDate(s, now))
}

// WakeOn returns the wake instant on the calendar date of t.
func WakeOn(s Settings, t time.Time) time.Time {
	wakeMin := ParseClock(s.WakeTime)
	y, m, d := t.Date()
	return time.Date(y, m, d, wakeMin/60, wakeMin%60, 0, 0, t.Location())
}

// ISOWeekStart returns midnight of the Monday of t's ISO week.
func ISOWeekStart(t time.Time) time.Time {
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -Weekday(t))
}
