package models

import "github.com/samber/mo"

// RecordKind selects how records of a search category are rendered
type RecordKind string

const (
	RecordKindGeneric RecordKind = "generic"
	RecordKindDevice  RecordKind = "device"
)

// SearchCommand maps a chat trigger to a NetBox API endpoint
type SearchCommand struct {
	Trigger  string
	Endpoint string
	Label    string
	Kind     RecordKind
}

// SearchQuery is a parsed search request for one inbound message
type SearchQuery struct {
	Command SearchCommand
	Text    string
}

const (
	StartCommand = "/start"
	HelpCommand  = "/help"
)

// SearchCommands is the single source of truth for the supported search categories.
// Order is the order used in help listings.
var SearchCommands = []SearchCommand{
	{Trigger: "/search_racks", Endpoint: "dcim/racks", Label: "racks", Kind: RecordKindGeneric},
	{Trigger: "/search_devices", Endpoint: "dcim/devices", Label: "devices", Kind: RecordKindDevice},
	{Trigger: "/search_connections", Endpoint: "dcim/cables", Label: "connections", Kind: RecordKindGeneric},
	{Trigger: "/search_wireless", Endpoint: "wireless/wireless-links", Label: "wireless links", Kind: RecordKindGeneric},
	{Trigger: "/search_ipam", Endpoint: "ipam/ip-addresses", Label: "IP addresses", Kind: RecordKindGeneric},
	{Trigger: "/search_vpn", Endpoint: "vpn/tunnels", Label: "VPN tunnels", Kind: RecordKindGeneric},
	{Trigger: "/search_virtualization", Endpoint: "virtualization/virtual-machines", Label: "virtual machines", Kind: RecordKindGeneric},
	{Trigger: "/search_communication_channels", Endpoint: "circuits/circuits", Label: "circuits", Kind: RecordKindGeneric},
	{Trigger: "/search_power_supply", Endpoint: "dcim/power-feeds", Label: "power feeds", Kind: RecordKindGeneric},
}

// FindSearchCommand returns the search command registered for trigger
func FindSearchCommand(trigger string) mo.Option[SearchCommand] {
	for _, cmd := range SearchCommands {
		if cmd.Trigger == trigger {
			return mo.Some(cmd)
		}
	}
	return mo.None[SearchCommand]()
}
