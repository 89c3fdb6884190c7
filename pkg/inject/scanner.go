package inject

import "unicode"

// Boundary describes the first tag of a fragment that starts with '<'.
// Positions are byte offsets into the scanned text; -1 means "not found".
type Boundary struct {
	Space int
	Slash int
	Close int
}

// Insert returns the position where declarations are spliced in, or -1.
//
// The insertion point is the earliest of Space and Slash that lies before
// Close. When neither does (minimal tags like "<A>"), it falls back to Close.
// Without a closing bracket there is no insertion point.
func (b Boundary) Insert() int {
	if b.Close < 0 {
		return -1
	}
	pos := b.Close
	if b.Space > 0 && b.Space < pos {
		pos = b.Space
	}
	if b.Slash > 0 && b.Slash < pos {
		pos = b.Slash
	}
	return pos
}

type scanState int

const (
	stateOpen scanState = iota // expecting '<'
	stateName                  // inside the region before the first '>'
	stateDone
)

// ScanRoot walks text once and records the first whitespace, '/' and '>'
// found after the opening delimiter. Scanning stops at the first '>', so a
// slash belonging to a later closing tag ("<A></A>") is never reported.
func ScanRoot(text string) Boundary {
	b := Boundary{Space: -1, Slash: -1, Close: -1}
	state := stateOpen
	for i, r := range text {
		switch state {
		case stateOpen:
			if r != '<' {
				return b
			}
			state = stateName
		case stateName:
			switch {
			case r == '>':
				b.Close = i
				state = stateDone
			case r == '/':
				if b.Slash < 0 {
					b.Slash = i
				}
			case unicode.IsSpace(r):
				if b.Space < 0 {
					b.Space = i
				}
			}
		}
		if state == stateDone {
			break
		}
	}
	return b
}

// RootTag returns the root tag name of a fragment starting with '<' and
// whether an insertion point was found.
func RootTag(trimmed string) (string, bool) {
	pos := ScanRoot(trimmed).Insert()
	if pos <= 0 {
		return "", false
	}
	return trimmed[1:pos], true
}
