package port

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrInvalidSpec is returned for empty selections or ports outside 1..65535.
var ErrInvalidSpec = errors.New("invalid port selection")

// ParseSpec parses a port specification string and returns a sorted,
// deduplicated slice of ports. Supported forms:
//   - single: "22"
//   - list: "22,80,443"
//   - range: "1-1024"
//   - mixed: "22,80,8000-8100"
func ParseSpec(spec string) ([]int, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, fmt.Errorf("%w: empty spec", ErrInvalidSpec)
	}
	seen := make(map[int]struct{})
	for _, p := range strings.Split(spec, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			return nil, fmt.Errorf("%w: empty token", ErrInvalidSpec)
		}
		if strings.Contains(p, "-") {
			bounds := strings.SplitN(p, "-", 2)
			start, err := strconv.Atoi(strings.TrimSpace(bounds[0]))
			if err != nil {
				return nil, fmt.Errorf("%w: %q", ErrInvalidSpec, p)
			}
			end, err := strconv.Atoi(strings.TrimSpace(bounds[1]))
			if err != nil {
				return nil, fmt.Errorf("%w: %q", ErrInvalidSpec, p)
			}
			if start > end {
				return nil, fmt.Errorf("%w: range start greater than end in %q", ErrInvalidSpec, p)
			}
			if err := addRange(start, end, seen); err != nil {
				return nil, err
			}
		} else {
			v, err := strconv.Atoi(p)
			if err != nil {
				return nil, fmt.Errorf("%w: %q", ErrInvalidSpec, p)
			}
			if v < 1 || v > 65535 {
				return nil, fmt.Errorf("%w: port %d out of 1..65535", ErrInvalidSpec, v)
			}
			seen[v] = struct{}{}
		}
	}
	ports := make([]int, 0, len(seen))
	for p := range seen {
		ports = append(ports, p)
	}
	sort.Ints(ports)
	return ports, nil
}

// ParseRange expands a start-end pair into a sorted port slice.
func ParseRange(start, end int) ([]int, error) {
	if start > end {
		return nil, fmt.Errorf("%w: range start greater than end", ErrInvalidSpec)
	}
	seen := make(map[int]struct{}, end-start+1)
	if err := addRange(start, end, seen); err != nil {
		return nil, err
	}
	ports := make([]int, 0, len(seen))
	for p := range seen {
		ports = append(ports, p)
	}
	sort.Ints(ports)
	return ports, nil
}

// Validate checks that every port in the selection lies in 1..65535 and that
// the selection is not empty.
func Validate(ports []int) error {
	if len(ports) == 0 {
		return fmt.Errorf("%w: no ports selected", ErrInvalidSpec)
	}
	for _, p := range ports {
		if p < 1 || p > 65535 {
			return fmt.Errorf("%w: port %d out of 1..65535", ErrInvalidSpec, p)
		}
	}
	return nil
}

// addRange adds start..end inclusive to seen, enforcing the 1..65535 bound.
func addRange(start, end int, seen map[int]struct{}) error {
	if start < 1 || end < 1 || start > 65535 || end > 65535 {
		return fmt.Errorf("%w: ports must be in 1..65535", ErrInvalidSpec)
	}
	for i := start; i <= end; i++ {
		seen[i] = struct{}{}
	}
	return nil
}
