package sync

// Monitor reports network availability. Changes delivers a value on
// every transition; true means the network came back.
type Monitor interface {
	Online() bool
	Changes() <-chan bool
}

// AlwaysOnline is a Monitor for environments without connectivity
// tracking. The engine then discovers outages from transport errors.
type AlwaysOnline struct{}

func (AlwaysOnline) Online() bool          { return true }
func (AlwaysOnline) Changes() <-chan bool  { return nil }
