// Package nl80211 declares a station-information attribute schema for
// the nl80211 wireless family. The schema is caller-supplied data: the
// generic client knows nothing about it until Register attaches it.
package nl80211

import (
	"github.com/nlkit/nlkit/nl/attr"
	"github.com/nlkit/nlkit/nl/genl"
)

// FamilyName is the generic netlink family name.
const FamilyName = "nl80211"

// Commands understood by this schema.
const (
	CmdGetStation = 17
)

// Station flag bits within the sta_flags mask/values record.
const (
	StaFlagAuthorized    = 1 << 0
	StaFlagShortPreamble = 1 << 1
	StaFlagWME           = 1 << 2
	StaFlagMFP           = 1 << 3
	StaFlagAuthenticated = 1 << 4
	StaFlagTDLSPeer      = 1 << 5
	StaFlagAssociated    = 1 << 6
)

// RateInfo describes one transmit or receive bitrate.
var RateInfo = attr.NewSet(
	attr.Def{Tag: 1, Name: "bitrate", Codec: attr.U16},
	attr.Def{Tag: 2, Name: "mcs", Codec: attr.U8},
	attr.Def{Tag: 4, Name: "short_gi", Codec: attr.Flag},
	attr.Def{Tag: 5, Name: "bitrate32", Codec: attr.U32},
	attr.Def{Tag: 9, Name: "80p80_mhz_width", Codec: attr.U32},
	attr.Def{Tag: 10, Name: "160_mhz_width", Codec: attr.U32},
)

// BSSParam describes the station's BSS parameters.
var BSSParam = attr.NewSet(
	attr.Def{Tag: 2, Name: "short_preamble", Codec: attr.Flag},
	attr.Def{Tag: 3, Name: "short_slot_time", Codec: attr.Flag},
	attr.Def{Tag: 4, Name: "dtim_period", Codec: attr.U8},
	attr.Def{Tag: 5, Name: "beacon_interval", Codec: attr.U16},
)

// StaInfo describes per-station statistics.
var StaInfo = attr.NewSet(
	attr.Def{Tag: 1, Name: "inactive_time", Codec: attr.U32},
	attr.Def{Tag: 2, Name: "rx_bytes", Codec: attr.U32},
	attr.Def{Tag: 3, Name: "tx_bytes", Codec: attr.U32},
	attr.Def{Tag: 7, Name: "signal", Codec: attr.U8},
	attr.Def{Tag: 8, Name: "tx_bitrate", Codec: RateInfo},
	attr.Def{Tag: 9, Name: "rx_packets", Codec: attr.U32},
	attr.Def{Tag: 10, Name: "tx_packets", Codec: attr.U32},
	attr.Def{Tag: 11, Name: "tx_retries", Codec: attr.U32},
	attr.Def{Tag: 12, Name: "tx_failed", Codec: attr.U32},
	attr.Def{Tag: 13, Name: "signal_avg", Codec: attr.U8},
	attr.Def{Tag: 14, Name: "rx_bitrate", Codec: RateInfo},
	attr.Def{Tag: 15, Name: "bss_param", Codec: BSSParam},
	attr.Def{Tag: 16, Name: "connected_time", Codec: attr.U32},
	attr.Def{Tag: 17, Name: "sta_flags", Codec: attr.Record(
		attr.RecordField{Name: "mask", Codec: attr.U32},
		attr.RecordField{Name: "values", Codec: attr.U32},
	)},
	attr.Def{Tag: 18, Name: "beacon_loss", Codec: attr.U32},
	attr.Def{Tag: 23, Name: "rx_bytes_64", Codec: attr.U64},
	attr.Def{Tag: 24, Name: "tx_bytes_64", Codec: attr.U64},
)

// Schema is the top-level nl80211 attribute schema.
var Schema = attr.NewSet(
	attr.Def{Tag: 3, Name: "ifindex", Codec: attr.U32},
	attr.Def{Tag: 6, Name: "mac", Codec: attr.Bytes},
	attr.Def{Tag: 21, Name: "sta_info", Codec: StaInfo},
	attr.Def{Tag: 46, Name: "generation", Codec: attr.U32},
)

// Commands returns the command table.
func Commands() map[string]uint8 {
	return map[string]uint8{
		"get_station": CmdGetStation,
	}
}

// Register attaches the nl80211 schema and command table to an
// already-discovered family.
func Register(c *genl.Client) error {
	return c.RegisterMsgType(FamilyName, Schema, Commands())
}
