package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// parseYAML parses the specific two-level mapping used by config.yaml
func parseYAML(r io.Reader, cfg *Config) error {
	type section int
	const (
		none section = iota
		sv
		cr
		lg
		tr
	)

	scanner := bufio.NewScanner(r)
	var cur section

	lineNo := 0
	seenTop := map[section]bool{}

	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()

		// strip comments
		if i := strings.IndexByte(raw, '#'); i >= 0 {
			raw = raw[:i]
		}

		line := strings.TrimRight(raw, " \t\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}

		// top-level section? (no leading spaces)
		if len(line) > 0 && (line[0] != ' ' && line[0] != '\t') {
			switch strings.TrimSpace(line) {
			case "server:":
				cur = sv
				if seenTop[sv] {
					return fmt.Errorf("line %d: duplicate 'server' section", lineNo)
				}
				seenTop[sv] = true
			case "credentials:":
				cur = cr
				if seenTop[cr] {
					return fmt.Errorf("line %d: duplicate 'credentials' section", lineNo)
				}
				seenTop[cr] = true
			case "log:":
				cur = lg
				if seenTop[lg] {
					return fmt.Errorf("line %d: duplicate 'log' section", lineNo)
				}
				seenTop[lg] = true
			case "tracking:":
				cur = tr
				if seenTop[tr] {
					return fmt.Errorf("line %d: duplicate 'tracking' section", lineNo)
				}
				seenTop[tr] = true
			default:
				return fmt.Errorf("line %d: unknown top-level key %q", lineNo, strings.TrimSuffix(strings.TrimSpace(line), ":"))
			}
			continue
		}

		// expect indented "key: value"
		if cur == none {
			return fmt.Errorf("line %d: key without a section", lineNo)
		}
		trim := strings.TrimSpace(line)
		colon := strings.IndexByte(trim, ':')
		if colon <= 0 {
			return fmt.Errorf("line %d: expected 'key: value'", lineNo)
		}
		key := strings.TrimSpace(trim[:colon])
		val := strings.TrimLeft(strings.TrimSpace(trim[colon+1:]), " \t")

		switch cur {
		case sv:
			switch key {
			case "base_url":
				cfg.Server.BaseURL = resolveScalar(val)
			case "ws_url":
				cfg.Server.WSURL = resolveScalar(val)
			case "timeout":
				d, err := time.ParseDuration(resolveScalar(val))
				if err != nil {
					return fmt.Errorf("line %d: server.timeout must be a duration: %v", lineNo, err)
				}
				cfg.Server.Timeout = d
			default:
				return fmt.Errorf("line %d: unknown key in server: %q", lineNo, key)
			}
		case cr:
			switch key {
			case "path":
				cfg.Credentials.Path = resolveScalar(val)
			default:
				return fmt.Errorf("line %d: unknown key in credentials: %q", lineNo, key)
			}
		case lg:
			switch key {
			case "level":
				cfg.Log.Level = resolveScalar(val)
			default:
				return fmt.Errorf("line %d: unknown key in log: %q", lineNo, key)
			}
		case tr:
			switch key {
			case "enabled":
				b, err := strconv.ParseBool(resolveScalar(val))
				if err != nil {
					return fmt.Errorf("line %d: tracking.enabled must be bool: %v", lineNo, err)
				}
				cfg.Tracking.Enabled = b
			default:
				return fmt.Errorf("line %d: unknown key in tracking: %q", lineNo, key)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return err
	}

	return nil
}

// resolveScalar trims whitespace and removes surrounding quotes from YAML-like scalars.
// For example:
//
//	"localhost"   -> localhost
//	'password123' -> password123
//	localhost     -> localhost
func resolveScalar(s string) string {
	s = strings.TrimSpace(s)

	// if value is quoted with "..." or '...', remove quotes safely
	n := len(s)
	if n >= 2 {
		if (s[0] == '"' && s[n-1] == '"') || (s[0] == '\'' && s[n-1] == '\'') {
			if unq, err := strconv.Unquote(s); err == nil {
				return unq
			}
			// fallback if strconv.Unquote fails (e.g., mismatched quotes)
			return s[1 : n-1]
		}
	}

	return s
}
