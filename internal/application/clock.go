package application

import "time"

// Clock supaya gampang ditest (OTP expiry, token issue time, latency logs)
type Clock interface {
	Now() time.Time
}

// SystemClock implementasi default, pakai time.Now()
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// ClockFunc adapts a plain function, handy for fixed times in tests.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }
