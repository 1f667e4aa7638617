package access

import (
	"github.com/trezcool/edunotify/core"
)

// Observer is notified of every decision a Guard makes.
type Observer interface {
	ObserveDecision(op Operation, role Role, d Decision)
}

// Guard enforces the policy for entity services and reports decisions to its observers.
type Guard struct {
	observers []Observer
}

func NewGuard(observers ...Observer) *Guard {
	return &Guard{observers: observers}
}

func (g *Guard) observe(id Identity, op Operation, d Decision) {
	if g == nil {
		return
	}
	for _, obs := range g.observers {
		obs.ObserveDecision(op, id.Role, d)
	}
}

// Check authorizes op on res for id.
// A denial is returned as core.ErrNotAuthenticated for anonymous identities, core.ErrNotAuthorized otherwise.
func (g *Guard) Check(id Identity, op Operation, res *Resource) (Decision, error) {
	d := Authorize(id, op, res)
	g.observe(id, op, d)
	return d, errorOf(d)
}

// Precheck authorizes op for id before the resource of an ownership rule is loaded.
func (g *Guard) Precheck(id Identity, op Operation) error {
	d := Eligible(id, op)
	if !d.Allowed {
		g.observe(id, op, d)
	}
	return errorOf(d)
}

// RequireIdentity fails with core.ErrNotAuthenticated for anonymous identities.
func RequireIdentity(id Identity) error {
	if id.IsAnonymous() {
		return core.ErrNotAuthenticated
	}
	return nil
}

func errorOf(d Decision) error {
	switch {
	case d.Allowed:
		return nil
	case d.Anonymous():
		return core.ErrNotAuthenticated
	default:
		return core.ErrNotAuthorized
	}
}
