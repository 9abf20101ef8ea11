package service

import (
	"sort"
	"time"

	"mini-mcu/pkg/auditlog"
)

// Manual edit events.
const (
	EventEditMaster         = "edit_master"
	EventManualCheckupInput = "manual_checkup_input"
)

// ManualLog is the audit record of a single manual change. Master edits
// and manual checkup entries share this shape.
type ManualLog struct {
	TargetUID     string         `json:"target_uid"`
	Actor         string         `json:"actor"`
	Role          string         `json:"role"`
	Event         string         `json:"event"`
	Timestamp     string         `json:"timestamp"`
	CheckupID     *int64         `json:"checkup_id"`
	ChangedFields []string       `json:"changed_fields"`
	NewValues     map[string]any `json:"new_values"`
}

// Caller identifies who made a manual change.
type Caller struct {
	ID   string
	Role string
}

func newManualLog(uid string, caller Caller, event string, at time.Time, values map[string]any) ManualLog {
	fields := make([]string, 0, len(values))
	printable := make(map[string]any, len(values))
	for k, v := range values {
		fields = append(fields, k)
		if t, ok := v.(time.Time); ok {
			v = t.Format(time.DateOnly)
		}
		printable[k] = v
	}
	sort.Strings(fields)
	return ManualLog{
		TargetUID:     uid,
		Actor:         caller.ID,
		Role:          caller.Role,
		Event:         event,
		Timestamp:     at.Format("2006-01-02T15:04:05"),
		ChangedFields: fields,
		NewValues:     printable,
	}
}

func writeManualLog(w *auditlog.Writer, entry ManualLog, at time.Time) (string, error) {
	return w.Append(auditlog.ManualName(entry.TargetUID, at), entry)
}
