package layout

// Get returns the key definition for a physical key code.
func Get(code string) (KeyDef, bool) {
	i, ok := byCode[code]
	if !ok {
		return KeyDef{}, false
	}
	return keys[i], true
}

// CharForKey resolves the character a key produces under the given modifiers.
// Dead-key layers and absent layers yield false.
func CharForKey(key KeyDef, mods Modifiers) (rune, bool) {
	if key.Dead {
		return 0, false
	}
	switch {
	case mods.AltGr:
		if key.AltGr == 0 {
			return 0, false
		}
		return key.AltGr, true
	case mods.Shift:
		if key.Shift == 0 {
			return 0, false
		}
		return key.Shift, true
	default:
		if key.Normal == 0 {
			return 0, false
		}
		return key.Normal, true
	}
}

// FindForChar scans the layout for the key and modifier combination that
// produces the character. Case follows the layer that matched, never text
// case folding. The first table match wins; duplicate characters across keys
// would be a defect in the static table. Characters only reachable through
// dead-key composition report false here.
func FindForChar(r rune) (KeyDef, Modifiers, bool) {
	if r == 0 {
		return KeyDef{}, Modifiers{}, false
	}
	for _, key := range keys {
		if key.Dead {
			continue
		}
		switch r {
		case key.Normal:
			return key, Modifiers{}, true
		case key.Shift:
			return key, Modifiers{Shift: true}, true
		case key.AltGr:
			return key, Modifiers{AltGr: true}, true
		}
	}
	return KeyDef{}, Modifiers{}, false
}
