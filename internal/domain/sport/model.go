package sport

import (
	"fmt"
	"strings"
)

// Code identifies a league whose provider the pipeline syncs.
type Code string

const (
	NBA Code = "NBA"
	NFL Code = "NFL"
	MLB Code = "MLB"
	NHL Code = "NHL"
)

// AllCodes lists the supported leagues in sync order.
func AllCodes() []Code {
	return []Code{NBA, NFL, MLB, NHL}
}

func (c Code) Valid() bool {
	switch c {
	case NBA, NFL, MLB, NHL:
		return true
	default:
		return false
	}
}

func (c Code) String() string {
	return string(c)
}

func ParseCode(raw string) (Code, error) {
	code := Code(strings.ToUpper(strings.TrimSpace(raw)))
	if !code.Valid() {
		return "", fmt.Errorf("unknown sport code %q", raw)
	}
	return code, nil
}

// ParseCodes parses a list, dropping duplicates and keeping order.
func ParseCodes(raw []string) ([]Code, error) {
	out := make([]Code, 0, len(raw))
	seen := make(map[Code]struct{}, len(raw))
	for _, item := range raw {
		code, err := ParseCode(item)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		out = append(out, code)
	}
	return out, nil
}

// Sport is the reference row an athlete's primary sport points to.
type Sport struct {
	ID   int64
	Code Code
	Name string
}
