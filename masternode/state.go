package masternode

import "time"

// State is a masternode record's position in the lifecycle state machine.
type State int

const (
	// PreEnabled is a newly-seen masternode whose first ping hasn't aged
	// past MinMnpSeconds since its announcement sig_time yet.
	PreEnabled State = iota
	// Enabled masternodes are eligible for payment election.
	Enabled
	// Expired masternodes have missed pings for too long but may still
	// recover if a fresh ping arrives before RemovalSeconds elapses.
	Expired
	// Removed masternodes have missed pings long enough to be dropped
	// from the registry outright.
	Removed
	// VinSpent is terminal: the collateral has been proven unspendable
	// and the record is never re-examined.
	VinSpent
)

func (s State) String() string {
	switch s {
	case PreEnabled:
		return "pre-enabled"
	case Enabled:
		return "enabled"
	case Expired:
		return "expired"
	case Removed:
		return "removed"
	case VinSpent:
		return "vin-spent"
	default:
		return "unknown"
	}
}

// Protocol timing and depth constants.
const (
	CheckSeconds      = 5 * time.Second
	MinMnpSeconds     = 10 * time.Minute
	MinMnbSeconds     = 5 * time.Minute
	ExpirationSeconds = 65 * time.Minute
	RemovalSeconds    = 75 * time.Minute
	MinConfirmations  = 15
	PingBlockAgeMax   = 24
)
