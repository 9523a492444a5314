package monitor

import "time"

// Status is per-cycle bookkeeping, surfaced through logs and kept for
// whoever embeds the monitor.
type Status struct {
	LastRunAt string
	LastOkAt  string
	LastError string
	LastNew   int
	Running   bool
}

func (s *Status) markRunning() {
	s.Running = true
	s.LastRunAt = time.Now().Format(time.RFC3339)
}

func (s *Status) markDone(newCount int, err error) {
	s.Running = false
	s.LastNew = newCount
	if err != nil {
		s.LastError = err.Error()
		return
	}
	s.LastError = ""
	s.LastOkAt = time.Now().Format(time.RFC3339)
}
