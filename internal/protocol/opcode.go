package protocol

//go:generate go tool stringer -type=Opcode -linecomment -output=opcode_string.go

// Opcode identifies a registration operation.
type Opcode int

const (
	_ Opcode = iota // invalid

	OpCreateModule            // CREATE_MODULE
	OpSetName                 // SET_NAME
	OpSetCapability           // SET_CAPABILITY
	OpSetScore                // SET_SCORE
	OpSetDescription          // SET_DESCRIPTION
	OpSetHelp                 // SET_HELP
	OpSetShortname            // SET_SHORTNAME
	OpSetShortcuts            // SET_SHORTCUTS
	OpSetOpenCallback         // SET_OPEN_CALLBACK
	OpSetCloseCallback        // SET_CLOSE_CALLBACK
	OpCreateConfigSubcategory // CREATE_CONFIG_SUBCATEGORY
	OpCreateConfigSection     // CREATE_CONFIG_SECTION
	OpSetConfigSectionDesc    // SET_CONFIG_SECTION_DESC
	OpCreateConfigItem        // CREATE_CONFIG_ITEM
	OpSetConfigDesc           // SET_CONFIG_DESC
	OpSetConfigName           // SET_CONFIG_NAME
	OpSetConfigValue          // SET_CONFIG_VALUE
	OpSetConfigRemoved        // SET_CONFIG_REMOVED
	OpSetConfigRange          // SET_CONFIG_RANGE

	opcodeCount = int(iota)
)

// ParseOpcode resolves a protocol name such as "SET_SCORE".
func ParseOpcode(name string) (Opcode, bool) {
	for op := OpCreateModule; int(op) < opcodeCount; op++ {
		if op.String() == name {
			return op, true
		}
	}

	return 0, false
}

// CreatesModule reports whether the operation binds a new module handle.
func (o Opcode) CreatesModule() bool {
	return o == OpCreateModule
}

// CreatesConfig reports whether the operation binds a new config handle.
func (o Opcode) CreatesConfig() bool {
	switch o {
	case OpCreateConfigSubcategory, OpCreateConfigSection, OpCreateConfigItem:
		return true
	default:
		return false
	}
}
