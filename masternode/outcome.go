package masternode

// OutcomeKind tags the result of admitting an Announcement or Heartbeat.
type OutcomeKind int

const (
	// Accepted means the message was applied to the Registry.
	Accepted OutcomeKind = iota
	// RejectedTransient means the message could not be decided because of
	// contention with the Chain collaborator; the caller should drop any
	// seen-cache entry to allow a retry.
	RejectedTransient
	// RejectedPermanent means the message is structurally or
	// cryptographically invalid; Misbehavior carries the penalty the host
	// should assess against the delivering peer.
	RejectedPermanent
	// Ignored means the message was neither accepted nor an offense: too
	// old a protocol version, a duplicate within cool-down, etc.
	Ignored
)

func (k OutcomeKind) String() string {
	switch k {
	case Accepted:
		return "accepted"
	case RejectedTransient:
		return "rejected-transient"
	case RejectedPermanent:
		return "rejected-permanent"
	case Ignored:
		return "ignored"
	default:
		return "unknown"
	}
}

// AdmitOutcome is the tagged result returned by Announcement.Admit and
// Heartbeat.Admit. Err, when set, is one of the sentinel kinds from
// errors.go identifying which check failed; it carries no peer penalty
// beyond Misbehavior and exists so hosts can log and test against the
// specific failure.
type AdmitOutcome struct {
	Kind        OutcomeKind
	Relay       bool
	Misbehavior uint8
	Err         error
}

func accepted(relay bool) AdmitOutcome { return AdmitOutcome{Kind: Accepted, Relay: relay} }
func ignored() AdmitOutcome            { return AdmitOutcome{Kind: Ignored} }
func transient() AdmitOutcome          { return AdmitOutcome{Kind: RejectedTransient} }
func permanent(misbehavior uint8) AdmitOutcome {
	return AdmitOutcome{Kind: RejectedPermanent, Misbehavior: misbehavior}
}
func permanentErr(misbehavior uint8, err error) AdmitOutcome {
	return AdmitOutcome{Kind: RejectedPermanent, Misbehavior: misbehavior, Err: err}
}
