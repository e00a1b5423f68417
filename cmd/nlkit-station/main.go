// Command nlkit-station dumps per-station statistics of a wireless interface.
package main

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"os"
	"time"

	"github.com/safchain/ethtool"
	"github.com/urfave/cli/v2"
	"github.com/vishvananda/netlink"

	"github.com/nlkit/nlkit/mk/version"
	"github.com/nlkit/nlkit/nl/an"
	"github.com/nlkit/nlkit/nl/genl"
	"github.com/nlkit/nlkit/nl/nl80211"
	"github.com/nlkit/nlkit/nl/nlsock"
)

var (
	ifname  string
	timeout time.Duration
	verbose bool
)

var app = &cli.App{
	Version: version.Get().String(),
	Usage:   "Dump nl80211 station statistics.",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:        "ifname",
			Value:       "wlan0",
			Usage:       "wireless `interface` to query",
			Destination: &ifname,
		},
		&cli.DurationFlag{
			Name:        "timeout",
			Value:       0,
			Usage:       "receive `deadline`; 0 blocks indefinitely",
			Destination: &timeout,
		},
		&cli.BoolFlag{
			Name:        "verbose",
			Aliases:     []string{"v"},
			Usage:       "print interface details before station output",
			Destination: &verbose,
		},
	},
	Action: func(c *cli.Context) error {
		link, e := netlink.LinkByName(ifname)
		if e != nil {
			return cli.Exit(fmt.Sprintf("netlink.LinkByName(%s): %v", ifname, e), 2)
		}
		ifindex := link.Attrs().Index

		if verbose {
			describeInterface(ifindex)
		}

		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		client, e := genl.New(ctx, nlsock.Config{})
		if e != nil {
			return cli.Exit(fmt.Sprintf("genl.New: %v", e), 3)
		}
		defer client.Close()

		if e := nl80211.Register(client); e != nil {
			return cli.Exit(fmt.Sprintf("nl80211.Register: %v", e), 3)
		}

		reply, e := client.Query(ctx, nl80211.FamilyName, an.Dump, "get_station", 0,
			map[string]any{"ifindex": uint32(ifindex)})
		if e != nil {
			return cli.Exit(fmt.Sprintf("get_station: %v", e), 3)
		}
		for reply.Next() {
			j, _ := json.Marshal(printable(reply.Attrs()))
			fmt.Println(string(j))
		}
		if e := reply.Err(); e != nil {
			return cli.Exit(fmt.Sprintf("get_station reply: %v", e), 3)
		}
		return nil
	},
}

func describeInterface(ifindex int) {
	etht, e := ethtool.NewEthtool()
	if e != nil {
		log.Printf("ethtool unavailable: %v", e)
		return
	}
	defer etht.Close()

	drv, e := etht.DriverName(ifname)
	if e != nil {
		log.Printf("ethtool.DriverName(%s): %v", ifname, e)
		return
	}
	fmt.Fprintf(os.Stderr, "%s: ifindex %d, driver %s\n", ifname, ifindex, drv)
}

// printable rewrites decoded attribute values for JSON output:
// the station MAC becomes colon-separated, other byte strings hex.
func printable(v any) any {
	switch x := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(x))
		for k, sub := range x {
			if k == "mac" {
				if b, ok := sub.([]byte); ok {
					m[k] = net.HardwareAddr(b).String()
					continue
				}
			}
			m[k] = printable(sub)
		}
		return m
	case []any:
		out := make([]any, len(x))
		for i, sub := range x {
			out[i] = printable(sub)
		}
		return out
	case []byte:
		return hex.EncodeToString(x)
	default:
		return v
	}
}

func main() {
	if e := app.Run(os.Args); e != nil {
		log.Fatal(e)
	}
}
