package models

import "time"

// Default score given to entries created by a class template upload.
const DefaultScore = 100

type HistoryEvent struct {
	Action    string    `json:"action"`
	Delta     float64   `json:"delta"`
	Timestamp time.Time `json:"timestamp"`
}

// StudentRecord is a student or, when IsGroup is set, a group of students.
// MemberIDs is nil for individual students.
type StudentRecord struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	IsGroup   bool           `json:"isGroup"`
	Score     float64        `json:"score"`
	History   []HistoryEvent `json:"history"`
	ClassID   string         `json:"classId"`
	MemberIDs []string       `json:"memberIds"`
}

func NewStudentRecord(name, classID string, isGroup bool) StudentRecord {
	s := StudentRecord{
		Name:    name,
		IsGroup: isGroup,
		Score:   DefaultScore,
		History: []HistoryEvent{},
		ClassID: classID,
	}
	if isGroup {
		s.MemberIDs = []string{}
	}
	return s
}

func (s StudentRecord) ToDocument() Document {
	history := make([]any, 0, len(s.History))
	for _, h := range s.History {
		history = append(history, map[string]any{
			"action":    h.Action,
			"delta":     h.Delta,
			"timestamp": h.Timestamp,
		})
	}

	var members any
	if s.IsGroup {
		ids := make([]any, 0, len(s.MemberIDs))
		for _, id := range s.MemberIDs {
			ids = append(ids, id)
		}
		members = ids
	}

	return NewDocument(s.ID, map[string]any{
		"name":      s.Name,
		"isGroup":   s.IsGroup,
		"score":     s.Score,
		"history":   history,
		"classId":   s.ClassID,
		"memberIds": members,
	})
}

func StudentFromDocument(d Document) StudentRecord {
	s := StudentRecord{
		ID:      d.ID,
		Name:    String(d.Get("name")),
		IsGroup: Bool(d.Get("isGroup")),
		Score:   Float(d.Get("score")),
		ClassID: String(d.Get("classId")),
		History: []HistoryEvent{},
	}
	for _, entry := range Maps(d.Get("history")) {
		ts, _ := Time(entry["timestamp"])
		s.History = append(s.History, HistoryEvent{
			Action:    String(entry["action"]),
			Delta:     Float(entry["delta"]),
			Timestamp: ts,
		})
	}
	if d.Get("memberIds") != nil {
		s.MemberIDs = Strings(d.Get("memberIds"))
	}
	return s
}

// NormalizeStudentDocument returns a copy of a snapshot student whose history
// timestamps are parsed back into time values. Unknown fields are kept.
func NormalizeStudentDocument(d Document) Document {
	fields := make(map[string]any, len(d.Fields))
	for k, v := range d.Fields {
		fields[k] = v
	}

	if raw, ok := fields["history"]; ok && raw != nil {
		entries := Maps(raw)
		history := make([]any, 0, len(entries))
		for _, entry := range entries {
			copied := make(map[string]any, len(entry))
			for k, v := range entry {
				copied[k] = v
			}
			if ts, ok := Time(entry["timestamp"]); ok {
				copied["timestamp"] = ts
			}
			history = append(history, copied)
		}
		fields["history"] = history
	}
	return NewDocument(d.ID, fields)
}

// GuestStudentView is the read-only projection served on guest links.
type GuestStudentView struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	IsGroup   bool             `json:"isGroup"`
	Score     float64          `json:"score"`
	History   []map[string]any `json:"history"`
	ClassID   string           `json:"classId"`
	MemberIDs []string         `json:"memberIds"`
}

func GuestViewFromDocument(d Document) GuestStudentView {
	v := GuestStudentView{
		ID:      d.ID,
		Name:    String(d.Get("name")),
		IsGroup: Bool(d.Get("isGroup")),
		Score:   Float(d.Get("score")),
		ClassID: String(d.Get("classId")),
		History: []map[string]any{},
	}
	for _, entry := range Maps(d.Get("history")) {
		copied := make(map[string]any, len(entry))
		for k, val := range entry {
			copied[k] = val
		}
		if ts, ok := Time(entry["timestamp"]); ok {
			copied["timestamp"] = FormatISO(ts)
		}
		v.History = append(v.History, copied)
	}
	if members := d.Get("memberIds"); members != nil {
		v.MemberIDs = Strings(members)
	}
	return v
}
