package queue

import (
	"testing"
	"time"

	"brigadeattend/internal/session"
)

func TestCountJobRoundTrip(t *testing.T) {
	job := CountJob{
		EventID:     "ev1",
		Date:        time.Date(2025, 7, 2, 0, 0, 0, 0, session.Zone),
		SessionType: "FN",
	}

	msg := EncodeCountJob(job)
	if msg.Type != TypeCount {
		t.Errorf("type = %s", msg.Type)
	}

	// Through the wire codec and back.
	decoded, err := deserialize(serialize(msg))
	if err != nil {
		t.Fatal(err)
	}
	got, err := DecodeCountJob(decoded)
	if err != nil {
		t.Fatal(err)
	}
	if got.EventID != job.EventID || got.SessionType != job.SessionType {
		t.Errorf("decoded = %+v", got)
	}
	if !session.SameDay(got.Date, job.Date) {
		t.Errorf("date = %s, want same day as %s", got.Date, job.Date)
	}
}

func TestDecodeCountJobMalformed(t *testing.T) {
	cases := []string{"", "ev1|2025-07-02", "ev1|notadate|FN", "|2025-07-02|FN", "ev1|2025-07-02|XX"}
	for _, body := range cases {
		if _, err := DecodeCountJob(Message{Type: TypeCount, Body: []byte(body)}); err == nil {
			t.Errorf("body %q accepted", body)
		}
	}
}
