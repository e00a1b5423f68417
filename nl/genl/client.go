// Package genl implements a generic netlink client with runtime family resolution.
package genl

import (
	"context"
	"encoding/binary"
	"fmt"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/nlkit/nlkit/core/logging"
	"github.com/nlkit/nlkit/nl/an"
	"github.com/nlkit/nlkit/nl/attr"
	"github.com/nlkit/nlkit/nl/nlsock"
)

var logger = logging.New("genl")

// headerSize is the size of genlmsghdr: command:u8, version:u8, reserved:u16.
const headerSize = 4

// Family describes one generic netlink family.
// Schema and Commands stay nil until RegisterMsgType attaches them.
type Family struct {
	ID       uint16
	Name     string
	Schema   *attr.Set
	Commands map[string]uint8
}

// Client is a generic netlink client. It owns one netlink socket and a
// registry of families discovered from the control family. Resolved
// family ids are stable for the client's lifetime.
//
// Client is not safe for concurrent use; it assumes one logical caller.
type Client struct {
	tr       *nlsock.Transport
	families []*Family
	byID     map[uint16]*Family
	byName   map[string]*Family
}

// New creates a Client and resolves family ids by dumping the control
// family's getfamily command. ctx bounds the bootstrap exchange.
func New(ctx context.Context, cfg nlsock.Config) (*Client, error) {
	tr, e := nlsock.New(cfg)
	if e != nil {
		return nil, e
	}

	c := &Client{tr: tr}
	c.families = []*Family{{
		ID:       an.GenlIDCtrl,
		Name:     an.GenlCtrlName,
		Schema:   ctrlSchema,
		Commands: ctrlCommands(),
	}}
	c.reindex()

	if e := c.bootstrap(ctx); e != nil {
		return nil, multierr.Append(fmt.Errorf("bootstrap: %w", e), tr.Close())
	}
	return c, nil
}

// reindex rebuilds both lookup indices from the family list.
// It must be called inside every mutation so the indices never diverge.
func (c *Client) reindex() {
	c.byID = make(map[uint16]*Family, len(c.families))
	c.byName = make(map[string]*Family, len(c.families))
	for _, f := range c.families {
		c.byID[f.ID] = f
		c.byName[f.Name] = f
	}
}

// bootstrap discovers family ids. Every reply must carry the newfamily
// command; rediscovering a known name must yield the recorded id.
func (c *Client) bootstrap(ctx context.Context) error {
	reply, e := c.Query(ctx, an.GenlCtrlName, an.Dump, "getfamily", an.GenlCtrlVersion, nil)
	if e != nil {
		return e
	}
	for reply.Next() {
		if reply.Cmd() != an.CtrlCmdNewFamily {
			return fmt.Errorf("%w: unexpected control command %d", ErrProtocol, reply.Cmd())
		}
		attrs := reply.Attrs()
		nameB, _ := attrs["family_name"].([]byte)
		id, ok := attrs["family_id"].(uint16)
		if len(nameB) == 0 || !ok {
			return fmt.Errorf("%w: newfamily reply missing family_name or family_id", ErrProtocol)
		}
		name := strings.TrimRight(string(nameB), "\x00")

		if f := c.byName[name]; f != nil {
			if f.ID != id {
				return fmt.Errorf("%w: family %s rediscovered with id %d, have %d", ErrProtocol, name, id, f.ID)
			}
			continue
		}
		c.families = append(c.families, &Family{ID: id, Name: name})
	}
	if e := reply.Err(); e != nil {
		return e
	}
	c.reindex()
	logger.Info("families discovered", zap.Int("count", len(c.families)))
	return nil
}

// RegisterMsgType attaches an attribute schema and command table to an
// already-discovered family.
func (c *Client) RegisterMsgType(name string, schema *attr.Set, commands map[string]uint8) error {
	f := c.byName[name]
	if f == nil {
		return fmt.Errorf("%w: %s", ErrNoFamily, name)
	}
	f.Schema, f.Commands = schema, commands
	c.reindex()
	logger.Debug("msgtype registered", zap.String("family", name), zap.Uint16("id", f.ID))
	return nil
}

// Family returns the descriptor of a discovered family.
func (c *Client) Family(name string) (*Family, error) {
	f := c.byName[name]
	if f == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoFamily, name)
	}
	return f, nil
}

// Send encodes a genlmsghdr plus named attributes and writes the
// message. family and cmd are resolved by name.
func (c *Client) Send(family string, flags an.Flags, cmd string, version uint8, attrs map[string]any) error {
	f := c.byName[family]
	if f == nil {
		return fmt.Errorf("%w: %s", ErrNoFamily, family)
	}
	cmdNum, ok := f.Commands[cmd]
	if !ok {
		return fmt.Errorf("%w: %s.%s", ErrNoCommand, family, cmd)
	}

	var eb attr.EncodingBuffer
	hdr := make([]byte, headerSize)
	hdr[0] = cmdNum
	hdr[1] = version
	binary.NativeEndian.PutUint16(hdr[2:4], 0) // reserved
	eb.Append(hdr)

	if len(attrs) > 0 {
		if f.Schema == nil {
			return fmt.Errorf("%w: %s", ErrNoSchema, family)
		}
		if e := f.Schema.EncodeAll(&eb, attrs); e != nil {
			return e
		}
	}
	return c.tr.Send(f.ID, flags, eb.Output())
}

// Close closes the underlying socket.
func (c *Client) Close() error {
	return c.tr.Close()
}
