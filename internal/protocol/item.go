package protocol

import "strconv"

// ItemKind is the protocol type of a config item.
type ItemKind int64

// Values are fixed by the protocol.
const (
	ItemFloat     ItemKind = 0x20
	ItemInteger   ItemKind = 0x40
	ItemRGB       ItemKind = 0x41
	ItemBool      ItemKind = 0x60
	ItemString    ItemKind = 0x80
	ItemPassword  ItemKind = 0x81
	ItemLoadfile  ItemKind = 0x8C
	ItemSavefile  ItemKind = 0x8D
	ItemDirectory ItemKind = 0x8E
	ItemFont      ItemKind = 0x8F
)

var itemKindNames = map[ItemKind]string{
	ItemFloat:     "FLOAT",
	ItemInteger:   "INTEGER",
	ItemRGB:       "RGB",
	ItemBool:      "BOOL",
	ItemString:    "STRING",
	ItemPassword:  "PASSWORD",
	ItemLoadfile:  "LOADFILE",
	ItemSavefile:  "SAVEFILE",
	ItemDirectory: "DIRECTORY",
	ItemFont:      "FONT",
}

func (k ItemKind) String() string {
	if name, ok := itemKindNames[k]; ok {
		return name
	}

	return "ItemKind(" + strconv.FormatInt(int64(k), 10) + ")"
}

// ParseItemKind resolves a name such as "RGB".
func ParseItemKind(name string) (ItemKind, bool) {
	for k, n := range itemKindNames {
		if n == name {
			return k, true
		}
	}

	return 0, false
}

// IsString reports whether the item holds a string value.
func (k ItemKind) IsString() bool {
	return k&0x80 != 0
}

// MarshalYAML renders the kind by name.
func (k ItemKind) MarshalYAML() (any, error) {
	return k.String(), nil
}
