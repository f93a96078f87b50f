package attendance

import (
	"sort"
	"time"

	"brigadeattend/internal/session"
)

// SessionType identifies one of the two fixed daily slots.
type SessionType string

const (
	SessionFN SessionType = "FN"
	SessionAN SessionType = "AN"
)

// Valid reports whether the value is one of the two known slots.
func (s SessionType) Valid() bool { return s == SessionFN || s == SessionAN }

// Record is one attendance mark for a user in one session of one event day.
// At most one record exists per (eventId, eventDate, userId, sessionType).
type Record struct {
	ID          string      `bson:"_id,omitempty" json:"id"`
	EventID     string      `bson:"eventId" json:"eventId"`
	EventDate   time.Time   `bson:"eventDate" json:"eventDate"`
	UserID      string      `bson:"userId" json:"userId"`
	SessionType SessionType `bson:"sessionType" json:"sessionType"`
	IsPresent   bool        `bson:"isPresent" json:"isPresent"`
	MarkedAt    time.Time   `bson:"markedAt" json:"markedAt"`
	MarkedBy    string      `bson:"markedBy" json:"markedBy"`
}

// TupleKey is the natural key of a record.
type TupleKey struct {
	EventID     string
	EventDate   time.Time
	UserID      string
	SessionType SessionType
}

// FindRecord returns the record for the user and session on the given
// calendar day, or nil. Date equality is by calendar day in the fixed zone,
// not by instant.
func FindRecord(records []Record, userID string, st SessionType, date time.Time) *Record {
	for i := range records {
		r := &records[i]
		if r.UserID == userID && r.SessionType == st && session.SameDay(r.EventDate, date) {
			return r
		}
	}
	return nil
}

// DuplicateGroup is a tuple that more than one record was written for.
// IDs are ordered by MarkedAt ascending; everything after the first is
// removable.
type DuplicateGroup struct {
	EventID     string      `json:"eventId"`
	EventDate   time.Time   `json:"eventDate"`
	SessionType SessionType `json:"sessionType"`
	UserID      string      `json:"userId"`
	IDs         []string    `json:"ids"`
}

// ScanDuplicates groups records by natural tuple and returns the tuples that
// occur more than once, ordered by date, session, then user.
func ScanDuplicates(records []Record) []DuplicateGroup {
	type key struct {
		eventID string
		day     string
		user    string
		st      SessionType
	}
	groups := make(map[key][]Record)
	for _, r := range records {
		k := key{r.EventID, session.DayStart(r.EventDate).Format("2006-01-02"), r.UserID, r.SessionType}
		groups[k] = append(groups[k], r)
	}

	var out []DuplicateGroup
	for k, recs := range groups {
		if len(recs) < 2 {
			continue
		}
		sort.Slice(recs, func(i, j int) bool { return recs[i].MarkedAt.Before(recs[j].MarkedAt) })
		g := DuplicateGroup{
			EventID:     k.eventID,
			EventDate:   session.DayStart(recs[0].EventDate),
			SessionType: k.st,
			UserID:      k.user,
		}
		for _, r := range recs {
			g.IDs = append(g.IDs, r.ID)
		}
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].EventDate.Equal(out[j].EventDate) {
			return out[i].EventDate.Before(out[j].EventDate)
		}
		if out[i].SessionType != out[j].SessionType {
			return out[i].SessionType < out[j].SessionType
		}
		return out[i].UserID < out[j].UserID
	})
	return out
}
