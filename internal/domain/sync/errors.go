package sync

import "errors"

var (
	// ErrNoSyncURL means neither the settings nor a bootstrap link have
	// configured a sheet endpoint yet.
	ErrNoSyncURL = errors.New("no sync url configured")

	// ErrBusy reports the advisory busy flag: a pull or push is in flight
	// and a second one is not queued behind it.
	ErrBusy = errors.New("a sync operation is already in progress")

	ErrInvalidBootstrapLink = errors.New("bootstrap link is not valid base64 or not a url")
)
