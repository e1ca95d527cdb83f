package protocol

import (
	"strings"
	"unicode"
)

// Subcategory is a configuration bucket a module registers its settings
// under.
type Subcategory struct {
	// Name is the protocol spelling, for example "VIDEO_VFILTER".
	Name  string
	Value int64
	// Aliases are accepted in descriptors in addition to Name.
	Aliases []string
}

var subcategories = []Subcategory{
	{Name: "HIDDEN", Value: -1, Aliases: []string{"Hidden"}},
	{Name: "INTERFACE_GENERAL", Value: 101, Aliases: []string{"Interface"}},
	{Name: "INTERFACE_MAIN", Value: 102},
	{Name: "INTERFACE_CONTROL", Value: 103},
	{Name: "INTERFACE_HOTKEYS", Value: 104},
	{Name: "AUDIO_GENERAL", Value: 201, Aliases: []string{"Audio"}},
	{Name: "AUDIO_AOUT", Value: 202},
	{Name: "AUDIO_AFILTER", Value: 203},
	{Name: "AUDIO_VISUAL", Value: 204},
	{Name: "AUDIO_RESAMPLER", Value: 206},
	{Name: "VIDEO_GENERAL", Value: 301, Aliases: []string{"Video"}},
	{Name: "VIDEO_VOUT", Value: 302},
	{Name: "VIDEO_VFILTER", Value: 303},
	{Name: "VIDEO_SUBPIC", Value: 305},
	{Name: "VIDEO_SPLITTER", Value: 306},
	{Name: "INPUT_GENERAL", Value: 401, Aliases: []string{"Input"}},
	{Name: "INPUT_ACCESS", Value: 402},
	{Name: "INPUT_DEMUX", Value: 403},
	{Name: "INPUT_VCODEC", Value: 404},
	{Name: "INPUT_ACODEC", Value: 405},
	{Name: "INPUT_SCODEC", Value: 406},
	{Name: "INPUT_STREAM_FILTER", Value: 407},
	{Name: "SOUT_GENERAL", Value: 501, Aliases: []string{"Sout"}},
	{Name: "SOUT_STREAM", Value: 502},
	{Name: "SOUT_MUX", Value: 503},
	{Name: "SOUT_ACO", Value: 504},
	{Name: "SOUT_PACKETIZER", Value: 505},
	{Name: "SOUT_VOD", Value: 507},
	{Name: "SOUT_RENDERER", Value: 508},
	{Name: "ADVANCED_MISC", Value: 602, Aliases: []string{"Advanced"}},
	{Name: "ADVANCED_NETWORK", Value: 603},
	{Name: "PLAYLIST_GENERAL", Value: 701, Aliases: []string{"Playlist"}},
	{Name: "PLAYLIST_SD", Value: 702},
	{Name: "PLAYLIST_EXPORT", Value: 703},
}

var subcategoryIndex = buildSubcategoryIndex()

func buildSubcategoryIndex() map[string]int {
	idx := make(map[string]int, len(subcategories)*3)

	for i, s := range subcategories {
		idx[s.Name] = i
		idx[camel(s.Name)] = i

		for _, a := range s.Aliases {
			idx[a] = i
		}
	}

	return idx
}

// LookupSubcategory resolves a category identifier. The protocol name,
// its CamelCase form ("VideoVfilter") and the listed aliases are accepted.
func LookupSubcategory(name string) (Subcategory, bool) {
	i, ok := subcategoryIndex[name]
	if !ok {
		return Subcategory{}, false
	}

	return subcategories[i], true
}

// SubcategoryByValue returns the table entry with the given protocol value.
func SubcategoryByValue(v int64) (Subcategory, bool) {
	for _, s := range subcategories {
		if s.Value == v {
			return s, true
		}
	}

	return Subcategory{}, false
}

// Subcategories returns the whole table in protocol order.
func Subcategories() []Subcategory {
	out := make([]Subcategory, len(subcategories))
	copy(out, subcategories)

	return out
}

// SubcategoryNames lists every accepted spelling, for suggestions.
func SubcategoryNames() []string {
	names := make([]string, 0, len(subcategoryIndex))
	for _, s := range subcategories {
		names = append(names, s.Name, camel(s.Name))
		names = append(names, s.Aliases...)
	}

	return names
}

func camel(name string) string {
	var b strings.Builder

	for _, part := range strings.Split(name, "_") {
		for i, r := range strings.ToLower(part) {
			if i == 0 {
				r = unicode.ToUpper(r)
			}

			b.WriteRune(r)
		}
	}

	return b.String()
}
