package attendance

import (
	"context"
	"errors"
	"time"
)

// Store is the persistence surface the service needs.
type Store interface {
	Upsert(ctx context.Context, key TupleKey, isPresent bool, markedBy string, markedAt time.Time) (Record, bool, error)
	ListAll(ctx context.Context) ([]Record, error)
	ListByEvent(ctx context.Context, eventID string) ([]Record, error)
	Delete(ctx context.Context, ids []string) (int64, error)
}

// Service coordinates marking and the duplicate remedy.
type Service struct {
	store Store
	now   func() time.Time
}

// NewService creates a service backed by a store. A nil clock means the
// system clock.
func NewService(store Store, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{store: store, now: now}
}

// Mark records attendance for one user tuple. The first mark creates the
// record; later marks of the same tuple update isPresent in place. Reports
// whether a record was created.
func (s *Service) Mark(ctx context.Context, key TupleKey, isPresent bool, markedBy string) (Record, bool, error) {
	if key.EventID == "" || key.UserID == "" {
		return Record{}, false, errors.New("event and user required")
	}
	if !key.SessionType.Valid() {
		return Record{}, false, errors.New("session type must be FN or AN")
	}
	if key.EventDate.IsZero() {
		return Record{}, false, errors.New("event date required")
	}
	if markedBy == "" {
		markedBy = "admin"
	}
	return s.store.Upsert(ctx, key, isPresent, markedBy, s.now().UTC())
}

// BulkResult aggregates a bulk mark. The upserts are independent writes, not
// a transaction; some can land while others fail.
type BulkResult struct {
	Marked int      `json:"marked"`
	Failed []string `json:"failed,omitempty"`
}

// MarkBulk applies the same mark to each user and reports aggregate success.
func (s *Service) MarkBulk(ctx context.Context, eventID string, date time.Time, st SessionType, userIDs []string, isPresent bool, markedBy string) (BulkResult, error) {
	if len(userIDs) == 0 {
		return BulkResult{}, errors.New("no users selected")
	}
	var res BulkResult
	for _, userID := range userIDs {
		key := TupleKey{EventID: eventID, EventDate: date, UserID: userID, SessionType: st}
		if _, _, err := s.Mark(ctx, key, isPresent, markedBy); err != nil {
			res.Failed = append(res.Failed, userID)
			continue
		}
		res.Marked++
	}
	return res, nil
}

// Duplicates scans the full collection for tuples with more than one record.
// The tuple-keyed upsert keeps new writes clean; this catches data written by
// older clients.
func (s *Service) Duplicates(ctx context.Context) ([]DuplicateGroup, error) {
	records, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return ScanDuplicates(records), nil
}

// CleanupDuplicates deletes all but the earliest record of every offending
// tuple and returns how many records were removed.
func (s *Service) CleanupDuplicates(ctx context.Context) (int64, error) {
	groups, err := s.Duplicates(ctx)
	if err != nil {
		return 0, err
	}
	var ids []string
	for _, g := range groups {
		ids = append(ids, g.IDs[1:]...)
	}
	return s.store.Delete(ctx, ids)
}
