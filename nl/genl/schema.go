package genl

import (
	"github.com/nlkit/nlkit/nl/an"
	"github.com/nlkit/nlkit/nl/attr"
)

// Attribute schemas of the nlctrl control family.
var (
	opSchema = attr.NewSet(
		attr.Def{Tag: an.CtrlAttrOpID, Name: "id", Codec: attr.U32},
		attr.Def{Tag: an.CtrlAttrOpFlags, Name: "flags", Codec: attr.U32},
	)

	mcastGrpSchema = attr.NewSet(
		attr.Def{Tag: an.CtrlAttrMcastGrpName, Name: "name", Codec: attr.Bytes},
		attr.Def{Tag: an.CtrlAttrMcastGrpID, Name: "id", Codec: attr.U32},
	)

	ctrlSchema = attr.NewSet(
		attr.Def{Tag: an.CtrlAttrFamilyID, Name: "family_id", Codec: attr.U16},
		attr.Def{Tag: an.CtrlAttrFamilyName, Name: "family_name", Codec: attr.Bytes},
		attr.Def{Tag: an.CtrlAttrVersion, Name: "version", Codec: attr.U32},
		attr.Def{Tag: an.CtrlAttrHdrSize, Name: "hdrsize", Codec: attr.U32},
		attr.Def{Tag: an.CtrlAttrMaxAttr, Name: "maxattr", Codec: attr.U32},
		attr.Def{Tag: an.CtrlAttrOps, Name: "ops", Codec: attr.ArrayOf(opSchema)},
		attr.Def{Tag: an.CtrlAttrMcastGroups, Name: "mcast_groups", Codec: attr.ArrayOf(mcastGrpSchema)},
	)
)

func ctrlCommands() map[string]uint8 {
	return map[string]uint8{
		"newfamily": an.CtrlCmdNewFamily,
		"getfamily": an.CtrlCmdGetFamily,
	}
}
