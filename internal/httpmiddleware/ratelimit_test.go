package httpmiddleware

import "testing"

func TestLimiterExhaustsBucket(t *testing.T) {
	l := NewLimiter(3)
	for i := 0; i < 3; i++ {
		if !l.Allow("10.0.0.1") {
			t.Fatalf("request %d should pass", i+1)
		}
	}
	if l.Allow("10.0.0.1") {
		t.Error("request over the limit should be rejected")
	}
}

func TestLimiterIsolatesClients(t *testing.T) {
	l := NewLimiter(1)
	if !l.Allow("10.0.0.1") {
		t.Fatal("first client should pass")
	}
	if !l.Allow("10.0.0.2") {
		t.Error("second client should have its own bucket")
	}
}
