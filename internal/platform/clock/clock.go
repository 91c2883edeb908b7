package clock

import "time"

// Clock entrega el "ahora". Los servicios lo reciben inyectado y lo pasan
// como parámetro al motor de adherencia, que nunca lee la hora global.
type Clock interface {
	Now() time.Time
}

// System usa la hora del sistema.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Fixed devuelve siempre el mismo instante (tests).
type Fixed time.Time

func (f Fixed) Now() time.Time { return time.Time(f) }

// Func adapta una función a Clock.
type Func func() time.Time

func (f Func) Now() time.Time { return f() }

// OrSystem devuelve c, o System si c es nil.
func OrSystem(c Clock) Clock {
	if c == nil {
		return System{}
	}
	return c
}
