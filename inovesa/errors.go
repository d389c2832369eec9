// SPDX-License-Identifier: MIT

package inovesa

import "errors"

var (
	// ErrDataNotInFile reports a group, axis or parameter the file does not carry.
	ErrDataNotInFile = errors.New("inovesa: data not in file")

	// ErrUnit reports a missing, unknown or illegal unit conversion.
	ErrUnit = errors.New("inovesa: unit error")

	// ErrData reports access to elements a container was not built with.
	ErrData = errors.New("inovesa: data error")

	// ErrVersion reports a malformed version triple.
	ErrVersion = errors.New("inovesa: invalid version")
)
