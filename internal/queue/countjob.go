package queue

import (
	"fmt"
	"strings"
	"time"

	"brigadeattend/internal/session"
)

// TypeCount marks messages that ask the worker to refresh a denormalized
// session attendance count.
const TypeCount = "count"

// CountJob identifies one session of one event day whose attendance count
// needs a recount.
type CountJob struct {
	EventID     string
	Date        time.Time
	SessionType string
}

// EncodeCountJob packs a job into a queue message.
func EncodeCountJob(j CountJob) Message {
	body := j.EventID + "|" + j.Date.In(session.Zone).Format("2006-01-02") + "|" + j.SessionType
	return Message{Type: TypeCount, Body: []byte(body)}
}

// DecodeCountJob unpacks a count message.
func DecodeCountJob(msg Message) (CountJob, error) {
	parts := strings.Split(string(msg.Body), "|")
	if len(parts) != 3 {
		return CountJob{}, fmt.Errorf("malformed count job %q", msg.Body)
	}
	date, err := time.ParseInLocation("2006-01-02", parts[1], session.Zone)
	if err != nil {
		return CountJob{}, fmt.Errorf("malformed count job date %q", parts[1])
	}
	if parts[0] == "" || (parts[2] != "FN" && parts[2] != "AN") {
		return CountJob{}, fmt.Errorf("malformed count job %q", msg.Body)
	}
	return CountJob{EventID: parts[0], Date: date, SessionType: parts[2]}, nil
}
