package model

import (
	"errors"
	"fmt"
)

// ErrNoValidWallets is returned when the key file yields zero usable wallets.
var ErrNoValidWallets = errors.New("no valid wallets in key file")

// DeployError wraps a failed asset deployment. The orchestrator skips the
// wallet's interaction phase when it sees one.
type DeployError struct {
	Kind AssetKind
	Err  error
}

func (e *DeployError) Error() string {
	return fmt.Sprintf("%s deploy failed: %v", e.Kind, e.Err)
}

func (e *DeployError) Unwrap() error {
	return e.Err
}

// UnknownActionError is returned for an action name outside the fixed set.
type UnknownActionError struct {
	Action string
}

func (e *UnknownActionError) Error() string {
	return fmt.Sprintf("unknown action %q", e.Action)
}

// IsUnknownAction checks if error is UnknownActionError
func IsUnknownAction(err error) bool {
	var ua *UnknownActionError
	return errors.As(err, &ua)
}
