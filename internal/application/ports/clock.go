package ports

import "time"

// Clock fuente de "ahora" inyectable en los casos de uso.
type Clock interface {
	Now() time.Time
}

// SystemClock reloj del sistema en la zona horaria local del proceso.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// ClockFunc adapta una función a Clock (útil en tests).
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }
