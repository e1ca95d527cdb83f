package descriptor

import "strings"

//go:generate go tool stringer -type=Tag -linecomment -output=tag_string.go

// Tag is a marker annotation attached to a parameter.
type Tag int

const (
	_ Tag = iota // invalid

	TagDeprecated // deprecated
	TagRGB        // rgb
	TagFont       // font
	TagSavefile   // savefile
	TagLoadfile   // loadfile
	TagPassword   // password
	TagDirectory  // directory

	tagCount = int(iota)
)

// ParseTag resolves an annotation name to a tag.
func ParseTag(name string) (Tag, bool) {
	for t := TagDeprecated; int(t) < tagCount; t++ {
		if t.String() == name {
			return t, true
		}
	}

	return 0, false
}

// Tags returns every known tag in declaration order.
func Tags() []Tag {
	out := make([]Tag, 0, tagCount-1)
	for t := TagDeprecated; int(t) < tagCount; t++ {
		out = append(out, t)
	}

	return out
}

// IsStringSubtype reports whether the tag specializes a string parameter.
func (t Tag) IsStringSubtype() bool {
	switch t {
	case TagFont, TagSavefile, TagLoadfile, TagPassword, TagDirectory:
		return true
	default:
		return false
	}
}

// TagSet is a set of tags.
type TagSet uint16

// Has reports whether t is in the set.
func (s TagSet) Has(t Tag) bool {
	return s&(1<<uint(t)) != 0
}

// Add returns the set with t added.
func (s TagSet) Add(t Tag) TagSet {
	return s | 1<<uint(t)
}

// List returns the tags in declaration order of the Tag constants.
func (s TagSet) List() []Tag {
	var out []Tag
	for t := TagDeprecated; int(t) < tagCount; t++ {
		if s.Has(t) {
			out = append(out, t)
		}
	}

	return out
}

// String formats the set as `{a, b}`.
func (s TagSet) String() string {
	names := make([]string, 0, tagCount)
	for _, t := range s.List() {
		names = append(names, t.String())
	}

	return "{" + strings.Join(names, ", ") + "}"
}
