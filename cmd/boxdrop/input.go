package main

import "unicode"

// editBuffer collects typed characters until Enter commits them as the new text.
type editBuffer struct {
	runes []rune
}

// Insert appends a printable character. Control characters are dropped.
func (b *editBuffer) Insert(r rune) {
	if !unicode.IsPrint(r) {
		return
	}
	b.runes = append(b.runes, r)
}

// Backspace removes the last character, if any.
func (b *editBuffer) Backspace() {
	if len(b.runes) > 0 {
		b.runes = b.runes[:len(b.runes)-1]
	}
}

// Commit returns the typed text and clears the buffer. An empty buffer commits nothing.
func (b *editBuffer) Commit() (string, bool) {
	if len(b.runes) == 0 {
		return "", false
	}
	s := string(b.runes)
	b.runes = b.runes[:0]
	return s, true
}

// Title renders the buffer after the base window title.
func (b *editBuffer) Title(base string) string {
	if len(b.runes) == 0 {
		return base
	}
	return base + " | > " + string(b.runes) + "_"
}
