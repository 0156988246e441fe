// Package spork declares the runtime feature-flag collaborator. The core
// consults it only for the ping-message salt; it never owns spork state
// itself.
package spork

// Spork is implemented by the node's spork manager.
type Spork interface {
	// PingMessageSalt returns the current value of the ping-message-salt
	// spork. Zero means the salt is disabled and must be omitted from the
	// ping hash.
	PingMessageSalt() int64
}

// Static is a fixed-value Spork, useful for tests and for nodes that have
// not yet received a spork update from the network.
type Static int64

// PingMessageSalt implements Spork.
func (s Static) PingMessageSalt() int64 { return int64(s) }
