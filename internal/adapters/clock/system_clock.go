package clock_adapter

import "time"

// SystemClock - боевая реализация ClockPort.
type SystemClock struct{}

func NewSystemClock() *SystemClock { return &SystemClock{} }

func (SystemClock) Now() time.Time { return time.Now().UTC() }
