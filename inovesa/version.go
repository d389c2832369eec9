// SPDX-License-Identifier: MIT

package inovesa

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is an Inovesa release triple.
type Version struct {
	Major, Minor, Fix int
}

// Releases whose file layout differs from their predecessors.
var (
	V9_1  = Version{0, 9, 1}
	V13_0 = Version{0, 13, 0}
	V14_1 = Version{0, 14, 1}
	V15_1 = Version{0, 15, 1}
)

// factor4Since is the first release naming conversion attributes Factor4<Unit>s.
var factor4Since = Version{0, 14, 0}

// ParseVersion builds a Version from the integer array stored in the file.
// Missing trailing components are zero; more than three is an error.
func ParseVersion(parts []int) (Version, error) {
	if len(parts) == 0 || len(parts) > 3 {
		return Version{}, fmt.Errorf("ParseVersion(%v): %w", parts, ErrVersion)
	}
	var v Version
	fields := []*int{&v.Major, &v.Minor, &v.Fix}
	for i, p := range parts {
		if p < 0 {
			return Version{}, fmt.Errorf("ParseVersion(%v): %w", parts, ErrVersion)
		}
		*fields[i] = p
	}

	return v, nil
}

// ParseVersionString parses "0.15.1" (a leading "v" is accepted).
func ParseVersionString(s string) (Version, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "v")
	fields := strings.Split(s, ".")
	parts := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return Version{}, fmt.Errorf("ParseVersionString(%q): %w", s, ErrVersion)
		}
		parts = append(parts, n)
	}

	return ParseVersion(parts)
}

// Compare returns -1, 0 or +1 ordering v against o component-wise.
func (v Version) Compare(o Version) int {
	switch {
	case v.Major != o.Major:
		return sign(v.Major - o.Major)
	case v.Minor != o.Minor:
		return sign(v.Minor - o.Minor)
	default:
		return sign(v.Fix - o.Fix)
	}
}

func (v Version) Less(o Version) bool  { return v.Compare(o) < 0 }
func (v Version) After(o Version) bool { return v.Compare(o) > 0 }
func (v Version) Equal(o Version) bool { return v == o }

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Fix)
}

func sign(d int) int {
	switch {
	case d < 0:
		return -1
	case d > 0:
		return 1
	}

	return 0
}
