package event

import "strings"

// keyToName maps non-printable keys to canonical config string names
var keyToName = map[Key]string{
	Esc:        "escape",
	ShiftTab:   "backtab",
	Enter:      "enter",
	Tab:        "tab",
	Char(' '):  "space",
	Char(0x7f): "backspace",
	Ctrl('a'):  "ctrl_a",
	Ctrl('b'):  "ctrl_b",
	Ctrl('c'):  "ctrl_c",
	Ctrl('d'):  "ctrl_d",
	Ctrl('e'):  "ctrl_e",
	Ctrl('f'):  "ctrl_f",
	Ctrl('g'):  "ctrl_g",
	Ctrl('h'):  "ctrl_h",
	Ctrl('k'):  "ctrl_k",
	Ctrl('l'):  "ctrl_l",
	Ctrl('n'):  "ctrl_n",
	Ctrl('o'):  "ctrl_o",
	Ctrl('p'):  "ctrl_p",
	Ctrl('q'):  "ctrl_q",
	Ctrl('r'):  "ctrl_r",
	Ctrl('s'):  "ctrl_s",
	Ctrl('t'):  "ctrl_t",
	Ctrl('u'):  "ctrl_u",
	Ctrl('v'):  "ctrl_v",
	Ctrl('w'):  "ctrl_w",
	Ctrl('x'):  "ctrl_x",
	Ctrl('y'):  "ctrl_y",
	Ctrl('z'):  "ctrl_z",
}

// nameToKey is the reverse lookup, built at init
var nameToKey map[string]Key

// aliases accepted in config besides the canonical names
var aliases = map[string]Key{
	"esc":       Esc,
	"shift_tab": ShiftTab,
	"return":    Enter,
}

func init() {
	nameToKey = make(map[string]Key, len(keyToName)+len(aliases))
	for k, name := range keyToName {
		nameToKey[name] = k
	}
	for name, k := range aliases {
		nameToKey[name] = k
	}
}

// KeyName returns the canonical name of a non-printable key
func KeyName(k Key) (string, bool) {
	name, ok := keyToName[k]
	return name, ok
}

// KeyByName resolves a config name; a single character names itself
func KeyByName(name string) (Key, bool) {
	if r := []rune(name); len(r) == 1 {
		return Char(r[0]), true
	}
	k, ok := nameToKey[strings.ToLower(name)]
	return k, ok
}
