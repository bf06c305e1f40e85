package candidates

import "errors"

var ErrNoActiveRegistration = errors.New("no election is currently in the registration phase")
var ErrMissingAsset = errors.New("logo image is required")
var ErrDuplicateRegistration = errors.New("wallet is already registered for this election")
var ErrDuplicateOnLedger = errors.New("wallet is already a candidate on the ledger")
