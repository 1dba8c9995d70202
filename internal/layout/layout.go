// Package layout defines the Latin-American Spanish keyboard layout.
package layout

// Finger identifies the touch-typing finger assigned to a key.
type Finger int

// Finger zones, left pinky through right pinky plus thumb.
const (
	LeftPinky Finger = iota
	LeftRing
	LeftMiddle
	LeftIndex
	RightIndex
	RightMiddle
	RightRing
	RightPinky
	Thumb
)

var fingerNames = map[Finger]string{
	LeftPinky:   "left-pinky",
	LeftRing:    "left-ring",
	LeftMiddle:  "left-middle",
	LeftIndex:   "left-index",
	RightIndex:  "right-index",
	RightMiddle: "right-middle",
	RightRing:   "right-ring",
	RightPinky:  "right-pinky",
	Thumb:       "thumb",
}

// String returns the finger zone name.
func (f Finger) String() string {
	if name, ok := fingerNames[f]; ok {
		return name
	}
	return "unknown"
}

// KeyDef describes one physical key: its character layers, dead-key flag,
// finger assignment, and geometry. Zero rune means the layer is absent.
type KeyDef struct {
	Code    string
	Width   float64
	Normal  rune
	Shift   rune
	AltGr   rune
	Dead    bool
	Finger  Finger
	HomeRow bool
}

// Modifiers is a snapshot of modifier keys at a point in time.
type Modifiers struct {
	Shift bool
	AltGr bool
	Ctrl  bool
	Meta  bool
}

// keys lists the Latin-American Spanish layout in physical order. The dead
// key (BracketLeft) produces acute on the normal layer and dieresis with
// Shift; both layers compose rather than emit a character directly.
var keys = []KeyDef{
	// Number row.
	{Code: "Backquote", Width: 1, Normal: '|', Shift: '°', AltGr: '¬', Finger: LeftPinky},
	{Code: "Digit1", Width: 1, Normal: '1', Shift: '!', Finger: LeftPinky},
	{Code: "Digit2", Width: 1, Normal: '2', Shift: '"', Finger: LeftRing},
	{Code: "Digit3", Width: 1, Normal: '3', Shift: '#', Finger: LeftMiddle},
	{Code: "Digit4", Width: 1, Normal: '4', Shift: '$', Finger: LeftIndex},
	{Code: "Digit5", Width: 1, Normal: '5', Shift: '%', Finger: LeftIndex},
	{Code: "Digit6", Width: 1, Normal: '6', Shift: '&', Finger: RightIndex},
	{Code: "Digit7", Width: 1, Normal: '7', Shift: '/', Finger: RightIndex},
	{Code: "Digit8", Width: 1, Normal: '8', Shift: '(', Finger: RightMiddle},
	{Code: "Digit9", Width: 1, Normal: '9', Shift: ')', Finger: RightRing},
	{Code: "Digit0", Width: 1, Normal: '0', Shift: '=', Finger: RightPinky},
	{Code: "Minus", Width: 1, Normal: '\'', Shift: '?', AltGr: '\\', Finger: RightPinky},
	{Code: "Equal", Width: 1, Normal: '¿', Shift: '¡', Finger: RightPinky},

	// Top row.
	{Code: "KeyQ", Width: 1, Normal: 'q', Shift: 'Q', AltGr: '@', Finger: LeftPinky},
	{Code: "KeyW", Width: 1, Normal: 'w', Shift: 'W', Finger: LeftRing},
	{Code: "KeyE", Width: 1, Normal: 'e', Shift: 'E', Finger: LeftMiddle},
	{Code: "KeyR", Width: 1, Normal: 'r', Shift: 'R', Finger: LeftIndex},
	{Code: "KeyT", Width: 1, Normal: 't', Shift: 'T', Finger: LeftIndex},
	{Code: "KeyY", Width: 1, Normal: 'y', Shift: 'Y', Finger: RightIndex},
	{Code: "KeyU", Width: 1, Normal: 'u', Shift: 'U', Finger: RightIndex},
	{Code: "KeyI", Width: 1, Normal: 'i', Shift: 'I', Finger: RightMiddle},
	{Code: "KeyO", Width: 1, Normal: 'o', Shift: 'O', Finger: RightRing},
	{Code: "KeyP", Width: 1, Normal: 'p', Shift: 'P', Finger: RightPinky},
	{Code: "BracketLeft", Width: 1, Normal: '´', Shift: '¨', Dead: true, Finger: RightPinky},
	{Code: "BracketRight", Width: 1, Normal: '+', Shift: '*', AltGr: '~', Finger: RightPinky},

	// Home row.
	{Code: "KeyA", Width: 1, Normal: 'a', Shift: 'A', Finger: LeftPinky, HomeRow: true},
	{Code: "KeyS", Width: 1, Normal: 's', Shift: 'S', Finger: LeftRing, HomeRow: true},
	{Code: "KeyD", Width: 1, Normal: 'd', Shift: 'D', Finger: LeftMiddle, HomeRow: true},
	{Code: "KeyF", Width: 1, Normal: 'f', Shift: 'F', Finger: LeftIndex, HomeRow: true},
	{Code: "KeyG", Width: 1, Normal: 'g', Shift: 'G', Finger: LeftIndex, HomeRow: true},
	{Code: "KeyH", Width: 1, Normal: 'h', Shift: 'H', Finger: RightIndex, HomeRow: true},
	{Code: "KeyJ", Width: 1, Normal: 'j', Shift: 'J', Finger: RightIndex, HomeRow: true},
	{Code: "KeyK", Width: 1, Normal: 'k', Shift: 'K', Finger: RightMiddle, HomeRow: true},
	{Code: "KeyL", Width: 1, Normal: 'l', Shift: 'L', Finger: RightRing, HomeRow: true},
	{Code: "Semicolon", Width: 1, Normal: 'ñ', Shift: 'Ñ', Finger: RightPinky, HomeRow: true},
	{Code: "Quote", Width: 1, Normal: '{', Shift: '[', AltGr: '^', Finger: RightPinky},
	{Code: "Backslash", Width: 1, Normal: '}', Shift: ']', AltGr: '`', Finger: RightPinky},

	// Bottom row.
	{Code: "IntlBackslash", Width: 1, Normal: '<', Shift: '>', Finger: LeftPinky},
	{Code: "KeyZ", Width: 1, Normal: 'z', Shift: 'Z', Finger: LeftPinky},
	{Code: "KeyX", Width: 1, Normal: 'x', Shift: 'X', Finger: LeftRing},
	{Code: "KeyC", Width: 1, Normal: 'c', Shift: 'C', Finger: LeftMiddle},
	{Code: "KeyV", Width: 1, Normal: 'v', Shift: 'V', Finger: LeftIndex},
	{Code: "KeyB", Width: 1, Normal: 'b', Shift: 'B', Finger: LeftIndex},
	{Code: "KeyN", Width: 1, Normal: 'n', Shift: 'N', Finger: RightIndex},
	{Code: "KeyM", Width: 1, Normal: 'm', Shift: 'M', Finger: RightIndex},
	{Code: "Comma", Width: 1, Normal: ',', Shift: ';', Finger: RightMiddle},
	{Code: "Period", Width: 1, Normal: '.', Shift: ':', Finger: RightRing},
	{Code: "Slash", Width: 1, Normal: '-', Shift: '_', Finger: RightPinky},

	{Code: "Space", Width: 6.25, Normal: ' ', Shift: ' ', Finger: Thumb},
}

var byCode = buildIndex()

func buildIndex() map[string]int {
	index := make(map[string]int, len(keys))
	for i, key := range keys {
		index[key.Code] = i
	}
	return index
}

// Keys returns the layout table in physical order.
func Keys() []KeyDef {
	out := make([]KeyDef, len(keys))
	copy(out, keys)
	return out
}

// DeadKeyCode is the physical key that starts accent composition.
const DeadKeyCode = "BracketLeft"
