package usecase

import "time"

// SetNow pins the aggregation clock for tests.
func (s *ProjectStatsService) SetNow(now func() time.Time) {
	s.now = now
}
