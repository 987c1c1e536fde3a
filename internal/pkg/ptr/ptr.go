package ptr

import "time"

func Of[T any](v T) *T {
	return &v
}

func Deref[T any](p *T, fallback T) T {
	if p != nil {
		return *p
	}
	return fallback
}

func TimeOrNil(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
