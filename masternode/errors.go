package masternode

import "errors"

// Typed error kinds surfaced by the internal helpers. All of them are
// absorbed into an AdmitOutcome at the public Admit boundary; callers that
// invoke the lower-level helpers directly see these sentinels and may use
// errors.Is against them.
var (
	ErrNotSynced                 = errors.New("masternode: blockchain not synced")
	ErrBadKey                    = errors.New("masternode: malformed key")
	ErrCollateralNotFound        = errors.New("masternode: collateral outpoint not found")
	ErrBadAddress                = errors.New("masternode: invalid or unroutable service address")
	ErrBadSignature              = errors.New("masternode: signature verification failed")
	ErrStaleTimestamp            = errors.New("masternode: sig_time too far in the past")
	ErrFutureTimestamp           = errors.New("masternode: sig_time too far in the future")
	ErrWrongPort                 = errors.New("masternode: service port does not match network default")
	ErrInsufficientConfirmations = errors.New("masternode: collateral has insufficient confirmations")
	ErrChainRetry                = errors.New("masternode: chain lock contended, retry later")
)
