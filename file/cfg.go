// SPDX-License-Identifier: MIT

package file

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// CfgCandidates returns the side files checked for a result file, in order:
// "<name without .h5>.cfg", then "<name>.cfg".
func CfgCandidates(name string) []string {
	first := strings.TrimSuffix(name, ".h5") + ".cfg"
	second := name + ".cfg"
	if first == second {
		return []string{first}
	}

	return []string{first, second}
}

// cfgFile is a parsed Inovesa "Key=value" side file.
type cfgFile struct {
	path string
	v    *viper.Viper
}

func readCfg(path string) (*cfgFile, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, ErrCfg)
	}
	defer fh.Close()
	v := viper.New()
	v.SetConfigType("properties")
	if err := v.ReadConfig(fh); err != nil {
		return nil, fmt.Errorf("%s: %v: %w", path, err, ErrCfg)
	}

	return &cfgFile{path: path, v: v}, nil
}

// Float returns key as a number.
func (c *cfgFile) Float(key string) (float64, error) {
	if !c.v.IsSet(key) {
		return 0, fmt.Errorf("%s: %s: %w", c.path, key, ErrCfg)
	}
	raw := strings.TrimSpace(c.v.GetString(key))
	var f float64
	if _, err := fmt.Sscan(raw, &f); err != nil {
		return 0, fmt.Errorf("%s: %s=%q: %w", c.path, key, raw, ErrCfg)
	}

	return f, nil
}

// ReadCfgValue reads the numeric value of key from an Inovesa .cfg file.
func ReadCfgValue(path, key string) (float64, error) {
	c, err := readCfg(path)
	if err != nil {
		return 0, err
	}

	return c.Float(key)
}

// ReadSideCfgValue reads key from the first existing side file of a result
// file (see CfgCandidates).
func ReadSideCfgValue(name, key string) (float64, error) {
	for _, p := range CfgCandidates(name) {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		return ReadCfgValue(p, key)
	}

	return 0, fmt.Errorf("no side file for %s: %w", name, ErrCfg)
}
