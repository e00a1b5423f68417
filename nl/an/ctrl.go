package an

// Generic netlink control family identity.
const (
	GenlIDCtrl   = 0x10
	GenlCtrlName = "nlctrl"

	// GenlCtrlVersion is the protocol version sent with control commands.
	GenlCtrlVersion = 1
)

// Control family commands.
const (
	CtrlCmdNewFamily = 0x01
	CtrlCmdDelFamily = 0x02
	CtrlCmdGetFamily = 0x03
)

// Control family attribute types.
const (
	CtrlAttrFamilyID    = 0x01
	CtrlAttrFamilyName  = 0x02
	CtrlAttrVersion     = 0x03
	CtrlAttrHdrSize     = 0x04
	CtrlAttrMaxAttr     = 0x05
	CtrlAttrOps         = 0x06
	CtrlAttrMcastGroups = 0x07
)

// Nested attribute types within CtrlAttrOps elements.
const (
	CtrlAttrOpID    = 0x01
	CtrlAttrOpFlags = 0x02
)

// Nested attribute types within CtrlAttrMcastGroups elements.
const (
	CtrlAttrMcastGrpName = 0x01
	CtrlAttrMcastGrpID   = 0x02
)
