package gff

import "errors"

// Version is the only file version this codec reads or writes. The engine
// this format comes from hardcodes the same literal; later revisions
// (V3.3, V4.0, V4.1) use incompatible layouts and are rejected outright.
const Version = "V3.2"

// headerSize is the fixed preamble: 4-byte content tag, 4-byte version tag,
// then six (offset, count) uint32 pairs.
const headerSize = 56

// Codec failure classes. Decode failures wrap ErrInvalidVersion,
// ErrInvalidContent or ErrOutOfBounds; encode failures wrap
// ErrUnsupportedFieldType. ErrFieldMissing and ErrFieldType are returned by
// the typed accessors on Struct and indicate caller bugs, not corrupt data.
var (
	ErrInvalidVersion       = errors.New("gff: unsupported version tag")
	ErrInvalidContent       = errors.New("gff: invalid content tag")
	ErrOutOfBounds          = errors.New("gff: offset outside buffer")
	ErrUnsupportedFieldType = errors.New("gff: unsupported field type")
	ErrFieldMissing         = errors.New("gff: field not present")
	ErrFieldType            = errors.New("gff: field type mismatch")
)

// ContentType is the 4-byte tag identifying what schema a container holds.
// Tags are free-form printable ASCII; the constants below are the resource
// types used by the game data this format originates from.
type ContentType string

// Known content tags.
const (
	ContentGFF ContentType = "GFF " // generic
	ContentIFO ContentType = "IFO " // module info
	ContentARE ContentType = "ARE " // static area info
	ContentGIT ContentType = "GIT " // dynamic area info
	ContentUTC ContentType = "UTC " // creature blueprint
	ContentUTD ContentType = "UTD " // door blueprint
	ContentUTE ContentType = "UTE " // encounter blueprint
	ContentUTI ContentType = "UTI " // item blueprint
	ContentUTP ContentType = "UTP " // placeable blueprint
	ContentUTS ContentType = "UTS " // sound blueprint
	ContentUTM ContentType = "UTM " // merchant blueprint
	ContentUTT ContentType = "UTT " // trigger blueprint
	ContentUTW ContentType = "UTW " // waypoint blueprint
	ContentDLG ContentType = "DLG " // dialog
	ContentJRL ContentType = "JRL " // journal
	ContentFAC ContentType = "FAC " // faction
	ContentITP ContentType = "ITP " // palette
	ContentGUI ContentType = "GUI " // interface layout
	ContentPTH ContentType = "PTH " // path
	ContentBIC ContentType = "BIC " // player character
)

var knownContent = map[ContentType]bool{
	ContentGFF: true, ContentIFO: true, ContentARE: true, ContentGIT: true,
	ContentUTC: true, ContentUTD: true, ContentUTE: true, ContentUTI: true,
	ContentUTP: true, ContentUTS: true, ContentUTM: true, ContentUTT: true,
	ContentUTW: true, ContentDLG: true, ContentJRL: true, ContentFAC: true,
	ContentITP: true, ContentGUI: true, ContentPTH: true, ContentBIC: true,
}

// Known reports whether the tag is one of the game resource types above.
// Decoding does not require a known tag; tools use this to warn about
// unfamiliar schemas.
func (c ContentType) Known() bool { return knownContent[c] }

// valid reports whether the tag can be written to a file header: exactly
// four printable ASCII bytes.
func (c ContentType) valid() bool {
	if len(c) != 4 {
		return false
	}
	for i := 0; i < 4; i++ {
		if c[i] < 0x20 || c[i] > 0x7e {
			return false
		}
	}
	return true
}

// GFF is a decoded container: a content tag plus one root struct. The root
// conventionally carries struct ID -1.
type GFF struct {
	Content ContentType
	Root    *Struct
}

// New returns an empty container with an untyped root struct.
func New(content ContentType) *GFF {
	return &GFF{Content: content, Root: NewStruct(-1)}
}
