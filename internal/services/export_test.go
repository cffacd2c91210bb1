package service

import "time"

// SetClock replaces the clock of a service built by one of the New* constructors.
func SetClock(svc any, now func() time.Time) {
	switch s := svc.(type) {
	case *authService:
		s.now = now
	case *orderService:
		s.now = now
	case *refundService:
		s.now = now
	case *paymentService:
		s.now = now
	default:
		panic("SetClock: service has no clock")
	}
}
