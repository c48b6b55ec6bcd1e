package engine

import "time"

// Tick runs the periodic sweep: day rollover with missed-day backfill, the
// bedtime penalty, and challenge expiry and generation.
func Tick(st AppState, now time.Time, rng Rand) (AppState, Result) {
	changed := false
	steps := []func(AppState) (AppState, Result){
		func(s AppState) (AppState, Result) { return Rollover(s, now) },
		func(s AppState) (AppState, Result) { return ApplyBedtimePenalty(s, now) },
		func(s AppState) (AppState, Result) { return RefreshWeeklyChallenge(s, now, rng) },
		func(s AppState) (AppState, Result) { return RefreshMysteryBox(s, now, rng) },
	}
	for _, step := range steps {
		var r Result
		st, r = step(st)
		changed = changed || r.Changed
	}
	return st, Result{Changed: changed}
}
