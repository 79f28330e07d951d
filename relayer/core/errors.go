package core

import (
	"errors"
	"net"

	"github.com/Vikakfuse/star-craft/common"
	"github.com/Vikakfuse/star-craft/eth"
)

var (
	// drop errors: the specific event is skipped and scanning continues
	ErrNonceMissing  = errors.New("event log has no nonce")
	ErrNonceReplayed = errors.New("nonce has already been processed")
	ErrFieldsMissing = errors.New("event log is missing required fields")
)

// IsEventDropError reports whether err only invalidates a single event
// rather than the whole iteration.
func IsEventDropError(err error) bool {
	return errors.Is(err, ErrNonceMissing) ||
		errors.Is(err, ErrNonceReplayed) ||
		errors.Is(err, ErrFieldsMissing)
}

// IsConnectivityError classifies node-unreachable and timeout failures,
// which are recovered with backoff and are never fatal.
func IsConnectivityError(err error) bool {
	var netErr net.Error

	return errors.Is(err, eth.ErrNotConnected) ||
		errors.As(err, &netErr) ||
		common.IsContextDoneErr(err)
}
