package actor

// PID (process id) is a unique, opaque reference to a running actor.
type PID struct {
	ID string
}

func (p *PID) String() string {
	if p == nil {
		return "<nil>"
	}
	return p.ID
}
