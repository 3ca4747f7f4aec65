package port

import "time"

// ClockPort - инъекция времени в ядро. Правило 3-месячной блокировки
// сравнивает "сейчас" с rented-меткой, поэтому в тестах часы подменяются.
type ClockPort interface {
	Now() time.Time
}
