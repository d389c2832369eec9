// SPDX-License-Identifier: MIT

package style

import "errors"

// ErrStyle reports a malformed key, an unknown selector, sub selector or
// attribute, an unknown style or palette name, or a value of the wrong kind.
var ErrStyle = errors.New("style: invalid style")
