// Package weave implements the correspondence algorithm that maps a region
// of a source text onto the matching region(s) of a text derived from it.
//
// The input is a correspondence sequence: an ordered list of markers
// describing how spans of significant source text (tokens) fall inside the
// nested syntactic units of the derived text (open/close boundary pairs),
// with gap markers flagging derived content that must never be highlighted.
// A query is an arbitrary source region; the answer is the ordered, possibly
// discontinuous list of derived regions to highlight. Everything here is a
// pure function over an immutable Sequence: no I/O, no shared state, safe
// for concurrent use.
package weave

import "fmt"

// MarkerKind identifies the variant of a correspondence Marker.
type MarkerKind int

const (
	// TokenMarker covers a span of significant source text. Source text
	// not covered by any token is insignificant whitespace for mapping.
	TokenMarker MarkerKind = iota
	// OpenMarker starts a syntactic unit of derived text. Opens and
	// closes nest like parentheses.
	OpenMarker
	// CloseMarker ends a syntactic unit of derived text.
	CloseMarker
	// GapMarker sits between a close and the next open at the same level
	// and excludes the derived content there from highlights for Depth
	// enclosing nesting levels above it.
	GapMarker
)

// String returns the lowercase name of the marker kind.
func (k MarkerKind) String() string {
	switch k {
	case TokenMarker:
		return "token"
	case OpenMarker:
		return "open"
	case CloseMarker:
		return "close"
	case GapMarker:
		return "gap"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Marker is one element of a correspondence sequence. Kind selects the
// variant; Region is set for tokens, At for opens and closes, Depth for
// gaps. The union is closed: every traversal switches exhaustively on Kind
// and panics on anything else.
type Marker struct {
	Kind   MarkerKind
	Region Region   // TokenMarker: the source span
	At     Location // OpenMarker, CloseMarker: the derived boundary
	Depth  int      // GapMarker: levels above the gap that split there
}

// Token returns a marker covering a span of significant source text.
func Token(r Region) Marker {
	return Marker{Kind: TokenMarker, Region: r}
}

// Open returns a marker starting a derived unit at the given location.
func Open(at Location) Marker {
	return Marker{Kind: OpenMarker, At: at}
}

// Close returns a marker ending a derived unit at the given location.
func Close(at Location) Marker {
	return Marker{Kind: CloseMarker, At: at}
}

// Gap returns a marker excluding the derived content at its position from
// highlights for depth enclosing nesting levels.
func Gap(depth int) Marker {
	return Marker{Kind: GapMarker, Depth: depth}
}

// String renders the marker in the fixture notation.
func (m Marker) String() string {
	switch m.Kind {
	case TokenMarker:
		return fmt.Sprintf("token %s", m.Region)
	case OpenMarker:
		return fmt.Sprintf("open @%s", m.At)
	case CloseMarker:
		return fmt.Sprintf("close @%s", m.At)
	case GapMarker:
		return fmt.Sprintf("gap %d", m.Depth)
	default:
		return fmt.Sprintf("marker(%d)", int(m.Kind))
	}
}

// structural reports whether the marker opens or closes a unit.
func (m Marker) structural() bool {
	return m.Kind == OpenMarker || m.Kind == CloseMarker
}

// unknownKind builds the panic message for an impossible marker tag.
func unknownKind(m Marker) string {
	return fmt.Sprintf("weave: unknown marker kind %d", int(m.Kind))
}
