package scenario

import (
	"context"
	"errors"
	"fmt"

	"github.com/nkcmr/evreg"
)

// Emission is the outcome of emitting one event.
type Emission struct {
	Event   string
	Invoked []string
	Err     error
}

// Build creates a registry holding the scenario's registrations. Each
// callback appends its name to the Emission it is handed.
func (s *Scenario) Build(opts ...evreg.Option) *evreg.Registry[string, *Emission] {
	reg := evreg.New[string, *Emission](opts...)

	handles := make(map[string]*evreg.Callback[*Emission], len(s.Callbacks))
	for _, def := range s.Callbacks {
		handles[def.Name] = evreg.Func(def.Name, def.behavior())
	}
	for _, r := range s.Registrations {
		for _, name := range r.Callbacks {
			reg.Register(r.Event, handles[name])
		}
	}
	return reg
}

func (c CallbackSpec) behavior() func(context.Context, *Emission) error {
	return func(ctx context.Context, em *Emission) error {
		em.Invoked = append(em.Invoked, c.Name)
		if c.Panic {
			panic(fmt.Sprintf("%s panicked", c.Name))
		}
		if c.Fail != "" {
			return errors.New(c.Fail)
		}
		return nil
	}
}

// Run builds the registry and emits every event in order. A failing emission
// does not stop later ones; its error is kept on the Emission.
func (s *Scenario) Run(ctx context.Context, opts ...evreg.Option) []Emission {
	return s.RunWith(ctx, s.Build(opts...))
}

// RunWith emits the scenario's events on an already built registry.
func (s *Scenario) RunWith(ctx context.Context, reg *evreg.Registry[string, *Emission]) []Emission {
	out := make([]Emission, 0, len(s.Emit))
	for _, ev := range s.Emit {
		em := Emission{Event: ev}
		em.Err = reg.Emit(ctx, ev, &em)
		out = append(out, em)
	}
	return out
}

// Failed reports whether any emission returned an error.
func Failed(ems []Emission) bool {
	for _, em := range ems {
		if em.Err != nil {
			return true
		}
	}
	return false
}
