// Package platform reads the machine description the benchmark needs:
// clock and timebase frequencies, core topology and host identity.
package platform

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Pair is one "key : value" line.
type Pair struct {
	Key   string
	Value string
}

// KV holds the key/value lines of a cpuinfo-style file in file order.
type KV []Pair

// ParseCPUInfo reads "key : value" lines. Lines without a colon, such as
// the blank separators between processors, are skipped.
func ParseCPUInfo(r io.Reader) (KV, error) {
	var kv KV
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		i := strings.IndexByte(line, ':')
		if i < 0 {
			continue
		}
		kv = append(kv, Pair{
			Key:   strings.TrimSpace(line[:i]),
			Value: strings.TrimSpace(line[i+1:]),
		})
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "read cpuinfo")
	}
	return kv, nil
}

// Get returns the last value whose key is exactly key.
func (kv KV) Get(key string) (string, bool) {
	for i := len(kv) - 1; i >= 0; i-- {
		if kv[i].Key == key {
			return kv[i].Value, true
		}
	}
	return "", false
}

// Prefix returns the last value whose key starts with prefix.
func (kv KV) Prefix(prefix string) (string, bool) {
	for i := len(kv) - 1; i >= 0; i-- {
		if strings.HasPrefix(kv[i].Key, prefix) {
			return kv[i].Value, true
		}
	}
	return "", false
}

// LeadingUint parses the unsigned integer at the start of s, decimal or
// with a 0x prefix for hex. Trailing text is ignored.
func LeadingUint(s string) (uint64, bool) {
	s = strings.TrimSpace(s)
	end, base := 0, 10
	isDigit := func(c byte) bool { return c >= '0' && c <= '9' }
	if len(s) > 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		end, base = 2, 16
		isDigit = func(c byte) bool {
			return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
		}
	}
	start := end
	for end < len(s) && isDigit(s[end]) {
		end++
	}
	if end == start {
		return 0, false
	}
	v, err := strconv.ParseUint(s[start:end], base, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// LeadingFloat parses the decimal number at the start of s, so that
// "3425.000000MHz" yields 3425.
func LeadingFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
		digits++
	}
	if end < len(s) && s[end] == '.' {
		end++
		for end < len(s) && s[end] >= '0' && s[end] <= '9' {
			end++
			digits++
		}
	}
	if digits == 0 {
		return 0, false
	}
	if end < len(s) && (s[end] == 'e' || s[end] == 'E') {
		exp := end + 1
		if exp < len(s) && (s[exp] == '+' || s[exp] == '-') {
			exp++
		}
		n := exp
		for n < len(s) && s[n] >= '0' && s[n] <= '9' {
			n++
		}
		if n > exp {
			end = n
		}
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
