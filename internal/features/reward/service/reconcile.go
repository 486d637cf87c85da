package service

import (
	"fmt"
	"strings"
)

// Reconciliation is the checked view of a reward service answer for one requested set.
type Reconciliation struct {
	Found    []string
	NotFound []string
	Success  []string
	// FailedFoundCount is len(Found) - len(Success), never clamped.
	FailedFoundCount int
	Warnings         []string
}

// handleKey compares handles the way Telegram does: case-insensitive, "@" optional.
func handleKey(h string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(h), "@"))
}

type handleSet map[string]struct{}

func newHandleSet(handles []string) handleSet {
	s := make(handleSet, len(handles))
	for _, h := range handles {
		s[handleKey(h)] = struct{}{}
	}
	return s
}

func (s handleSet) has(h string) bool {
	_, ok := s[handleKey(h)]
	return ok
}

// Reconcile checks the three handle sets returned for requested and collects every
// integrity violation as a warning. The sets are kept exactly as the service sent them.
func Reconcile(requested, found, notFound, success []string) Reconciliation {
	rec := Reconciliation{
		Found:            nonNil(found),
		NotFound:         nonNil(notFound),
		Success:          nonNil(success),
		FailedFoundCount: len(found) - len(success),
	}

	foundSet := newHandleSet(found)
	notFoundSet := newHandleSet(notFound)
	requestedSet := newHandleSet(requested)

	if outside := filter(success, func(h string) bool { return !foundSet.has(h) }); len(outside) > 0 {
		rec.warn("success handles not reported as found: %s", outside)
	}
	if both := filter(found, notFoundSet.has); len(both) > 0 {
		rec.warn("handles reported as both found and not found: %s", both)
	}
	if missing := filter(requested, func(h string) bool { return !foundSet.has(h) && !notFoundSet.has(h) }); len(missing) > 0 {
		rec.warn("requested handles missing from the response: %s", missing)
	}
	reported := append(append([]string{}, found...), notFound...)
	if extra := filter(reported, func(h string) bool { return !requestedSet.has(h) }); len(extra) > 0 {
		rec.warn("response reports handles that were never requested: %s", extra)
	}
	if rec.FailedFoundCount < 0 {
		rec.warn("failed-but-found count is negative: %d", rec.FailedFoundCount)
	}
	return rec
}

func (r *Reconciliation) warn(format string, args ...interface{}) {
	for i, a := range args {
		if list, ok := a.([]string); ok {
			args[i] = strings.Join(list, ", ")
		}
	}
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func filter(handles []string, keep func(string) bool) []string {
	var out []string
	for _, h := range handles {
		if keep(h) {
			out = append(out, h)
		}
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
