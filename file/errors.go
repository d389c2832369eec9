// SPDX-License-Identifier: MIT

package file

import "errors"

var (
	// ErrNotFound reports a dataset, group or attribute missing from a store.
	ErrNotFound = errors.New("file: object not found")

	// ErrClosed reports use of a closed store.
	ErrClosed = errors.New("file: store closed")

	// ErrNoVersion reports a file without /Info/Inovesa_v.
	ErrNoVersion = errors.New("file: no Inovesa version in file")

	// ErrCfg reports a missing or unreadable .cfg side file or key.
	ErrCfg = errors.New("file: cfg value not available")
)
