package source

// Flag is a tri-state flag, Unset leaves corresponding buffer state as is.
type Flag int8

const (
	Unset Flag = iota
	Off
	On
)

// FlagOf converts bool to Flag.
func FlagOf(b bool) Flag {
	if b {
		return On
	}
	return Off
}

func (f Flag) isSet() bool {
	return f != Unset
}

func (f Flag) value() bool {
	return f == On
}

// Buffer holds text accumulated but not yet consumed by parser.
// bol tells whether buffer start is the beginning of a line,
// eof tells whether no more text will be appended.
type Buffer struct {
	text string
	bol  bool
	eof  bool
}

// NewBuffer creates a buffer holding text.
func NewBuffer(text string, bol, eof bool) *Buffer {
	return &Buffer{text, bol, eof}
}

// String returns buffered text.
func (b *Buffer) String() string {
	return b.text
}

// Len returns buffered text length in bytes.
func (b *Buffer) Len() int {
	return len(b.text)
}

// BOL tells whether buffered text starts at the beginning of a line.
func (b *Buffer) BOL() bool {
	return b.bol
}

// EOF tells whether end of input was signaled.
func (b *Buffer) EOF() bool {
	return b.eof
}

// Append adds text to buffer.
// On empty buffer bol sets the beginning-of-line flag,
// otherwise bol == On starts a new line before text.
// Non-empty text resets end-of-input flag unless eof == On.
func (b *Buffer) Append(text string, bol, eof Flag) {
	if bol.isSet() {
		if b.text == "" {
			b.bol = bol.value()
		} else if bol.value() {
			b.text += "\n"
			if !eof.isSet() {
				eof = Off
			}
		}
	}
	if text != "" {
		b.text += text
		if !eof.isSet() {
			eof = Off
		}
	}
	if eof.isSet() {
		b.eof = eof.value()
	}
}

// Skip drops first count bytes of buffered text.
// Beginning-of-line flag is recomputed from the last dropped byte.
func (b *Buffer) Skip(count int) {
	if count <= 0 {
		return
	}
	if count > len(b.text) {
		count = len(b.text)
	}
	b.bol = (b.text[count-1] == '\n')
	b.text = b.text[count:]
}

// Clear drops buffered text and flags, buffer becomes empty, starting a line.
func (b *Buffer) Clear() {
	b.text = ""
	b.bol = true
	b.eof = false
}

// Complete returns separate buffer holding first end bytes of text
// with end-of-input flag set.
func (b *Buffer) Complete(end int) *Buffer {
	if end > len(b.text) {
		end = len(b.text)
	}
	return &Buffer{b.text[:end], b.bol, true}
}
