package input

import (
	"fmt"
	"sort"
	"strings"
)

// Controls lists the keys offered to the user, in help order
var Controls = []Key{KeyPause, KeyRestart, KeyAddRow, KeySolve, KeyScreenshot, KeyDump, KeyQuit}

// bindings maps device codes to keys. Terminal codes are the typed character,
// window codes are Ebiten key names; both are matched lower case.
var bindings = map[string]Key{
	"p":      KeyPause,
	" ":      KeyPause,
	"space":  KeyPause,
	"r":      KeyRestart,
	"a":      KeyAddRow,
	"s":      KeySolve,
	"h":      KeyScreenshot,
	"m":      KeyDump,
	"q":      KeyQuit,
	"escape": KeyQuit,
	"ctrl+c": KeyQuit,
}

// Lookup returns the key bound to a device code, or KeyNone
func Lookup(code string) Key {
	return bindings[strings.ToLower(code)]
}

// GetBindingsByKey returns the current bindings grouped by key.
func GetBindingsByKey() map[Key][]string {
	result := make(map[Key][]string)
	for code, k := range bindings {
		result[k] = append(result[k], code)
	}
	// Ensure stable ordering of codes within each key so UI doesn't flicker.
	for k, codes := range result {
		sort.Strings(codes)
		result[k] = codes
	}
	return result
}

// SetSingleBinding replaces all bindings for the given key with a single code.
// Quit always stays reachable through ctrl+c.
func SetSingleBinding(key Key, code string) {
	for c, k := range bindings {
		if c == "ctrl+c" {
			continue
		}
		if k == key {
			delete(bindings, c)
		}
	}
	code = strings.ToLower(code)
	if code != "" && code != "ctrl+c" {
		bindings[code] = key
	}
}

// ParseKey returns the key with the given name, as printed by Key.String
func ParseKey(name string) (Key, bool) {
	for _, k := range Controls {
		if k.String() == name {
			return k, true
		}
	}
	return KeyNone, false
}

// Rebind applies overrides mapping key names to a single code each.
// Unknown key names are rejected before anything changes.
func Rebind(overrides map[string]string) error {
	names := make([]string, 0, len(overrides))
	for name := range overrides {
		if _, ok := ParseKey(name); !ok {
			return fmt.Errorf("unknown key %q", name)
		}
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		k, _ := ParseKey(name)
		SetSingleBinding(k, overrides[name])
	}
	return nil
}

// DisplayCode returns the code shown for key in help text: the first
// printable single character bound to it, else its first code.
func DisplayCode(key Key) string {
	codes := GetBindingsByKey()[key]
	for _, c := range codes {
		if len(c) == 1 && c != " " {
			return c
		}
	}
	if len(codes) > 0 {
		return codes[0]
	}
	return ""
}
