package engine

import "time"

// Elapsed returns the accumulated timer duration of q at now.
func Elapsed(q Quest, now time.Time) time.Duration {
	d := time.Duration(q.ElapsedMs) * time.Millisecond
	if q.TimerStatus == TimerActive && q.StartedAt != nil && now.After(*q.StartedAt) {
		d += now.Sub(*q.StartedAt)
	}
	return d
}

// TargetMinutes is the timer goal of a time-measured quest: the explicit
// targetMinutes, or the current target value when unset.
func TargetMinutes(q Quest) int {
	if q.TargetMinutes > 0 {
		return q.TargetMinutes
	}
	return q.CurrentTargetValue
}

func timedQuest(st AppState, id, action string) (int, error) {
	idx := st.QuestIndex(id)
	if idx < 0 {
		return -1, nil
	}
	if st.Quests[idx].MeasurementType != MeasureTime {
		return -1, reject(action, ReasonNotTimed)
	}
	return idx, nil
}

// StartQuest starts the live timer of a time-measured quest from zero.
func StartQuest(st AppState, id string, now time.Time) (AppState, Result, error) {
	idx, err := timedQuest(st, id, "start")
	if err != nil || idx < 0 {
		return st, Result{}, err
	}
	switch st.Quests[idx].TimerStatus {
	case TimerActive, TimerPaused:
		return st, Result{}, reject("start", ReasonTimerState)
	}
	if err := windowGate(st, "start", now); err != nil {
		return st, Result{}, err
	}
	next := st.Clone()
	q := &next.Quests[idx]
	t := now
	q.TimerStatus = TimerActive
	q.StartedAt = &t
	q.ElapsedMs = 0
	return next, Result{Changed: true}, nil
}

// PauseQuest banks the running time of an active timer.
func PauseQuest(st AppState, id string, now time.Time) (AppState, Result, error) {
	idx, err := timedQuest(st, id, "pause")
	if err != nil || idx < 0 {
		return st, Result{}, err
	}
	if st.Quests[idx].TimerStatus != TimerActive {
		return st, Result{}, reject("pause", ReasonTimerState)
	}
	next := st.Clone()
	q := &next.Quests[idx]
	q.ElapsedMs = Elapsed(*q, now).Milliseconds()
	q.StartedAt = nil
	q.TimerStatus = TimerPaused
	return next, Result{Changed: true}, nil
}

// ResumeQuest restarts a paused timer.
func ResumeQuest(st AppState, id string, now time.Time) (AppState, Result, error) {
	idx, err := timedQuest(st, id, "resume")
	if err != nil || idx < 0 {
		return st, Result{}, err
	}
	if st.Quests[idx].TimerStatus != TimerPaused {
		return st, Result{}, reject("resume", ReasonTimerState)
	}
	next := st.Clone()
	q := &next.Quests[idx]
	t := now
	q.StartedAt = &t
	q.TimerStatus = TimerActive
	return next, Result{Changed: true}, nil
}

// CompleteQuest marks today's completion of a quest, stopping its timer first
// when it is time-measured. A timed run past targetMinutes+graceMinutes is
// rejected. Completing an already completed quest is a no-op.
func CompleteQuest(st AppState, id string, now time.Time) (AppState, Result, error) {
	idx := st.QuestIndex(id)
	if idx < 0 {
		return st, Result{}, nil
	}
	if err := windowGate(st, "complete", now); err != nil {
		return st, Result{}, err
	}
	q := st.Quests[idx]
	key := DayKey(st.Settings, now)
	timed := q.MeasurementType == MeasureTime && q.TimerStatus != "" && q.TimerStatus != TimerIdle

	if timed && q.TimerStatus != TimerCompleted {
		limit := time.Duration(TargetMinutes(q)+q.GraceMinutes) * time.Minute
		if Elapsed(q, now) > limit {
			return st, Result{}, reject("complete", ReasonGraceExceeded)
		}
	}
	if st.Days[key].Completed[id].Done {
		return st, Result{Done: true}, nil
	}

	next := st.Clone()
	if timed {
		nq := &next.Quests[idx]
		nq.ElapsedMs = Elapsed(*nq, now).Milliseconds()
		nq.StartedAt = nil
		nq.TimerStatus = TimerCompleted
	}
	res := toggleQuestAt(&next, idx, key)
	return next, res, nil
}
