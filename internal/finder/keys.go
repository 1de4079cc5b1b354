package finder

import "unicode/utf8"

// KeyKind classifies a raw key token read from the terminal.
type KeyKind int

const (
	KeyUnknown KeyKind = iota
	KeyRune
	KeyEscape
	KeyEnter
	KeyBackspace
	KeyCtrlC
	KeyCtrlD
)

// Key is a single raw key token. Rune is set for KeyRune.
type Key struct {
	Kind KeyKind
	Rune rune
}

// Rune builds a KeyRune token.
func Rune(r rune) Key {
	return Key{Kind: KeyRune, Rune: r}
}

// nextKey decodes the first key in buf and returns it with the number of
// bytes it used. It returns 0 when buf holds only part of a character.
func nextKey(buf []byte) (Key, int) {
	if len(buf) == 0 {
		return Key{}, 0
	}
	switch b := buf[0]; b {
	case 0x1b:
		return Key{Kind: KeyEscape}, 1
	case '\r', '\n':
		return Key{Kind: KeyEnter}, 1
	case 0x7f, 0x08:
		return Key{Kind: KeyBackspace}, 1
	case 0x03:
		return Key{Kind: KeyCtrlC}, 1
	case 0x04:
		return Key{Kind: KeyCtrlD}, 1
	default:
		if b < 0x20 {
			return Key{Kind: KeyUnknown}, 1
		}
	}
	if !utf8.FullRune(buf) {
		return Key{}, 0
	}
	r, size := utf8.DecodeRune(buf)
	if r == utf8.RuneError {
		return Key{Kind: KeyUnknown}, size
	}
	return Rune(r), size
}
