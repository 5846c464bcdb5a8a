package networking

import (
	"strconv"
	"strings"

	"github.com/valyala/fasttemplate"
)

const (
	interfaceStatusTemplate = "Status of interface: {{name}}\n" +
		"  IPv6:              {{ipv6}}\n" +
		"  Promiscuous mode:  {{promisc}}\n" +
		"  Qdisc:\n" +
		"{{qdiscs}}"

	qdiscHeaderTemplate = "Qdisc {{kind}}, Handle {{handle}}, Parent {{parent}}\n"

	qdiscStatsTemplate = "  Stats:\n" +
		"    Bytes: {{bytes}}, Packets: {{packets}}\n" +
		"    Drops: {{drops}}, Overlimits: {{overlimits}}\n" +
		"    Queue length: {{qlen}}, Backlog: {{backlog}}\n"
)

var (
	interfaceStatusTmpl = fasttemplate.New(interfaceStatusTemplate, "{{", "}}")
	qdiscHeaderTmpl     = fasttemplate.New(qdiscHeaderTemplate, "{{", "}}")
	qdiscStatsTmpl      = fasttemplate.New(qdiscStatsTemplate, "{{", "}}")
)

func enabledString(v bool) string {
	if v {
		return "Enabled"
	}
	return "Disabled"
}

// String renders the human-readable status block printed by the status command.
func (s *InterfaceStatus) String() string {
	var qdiscs strings.Builder
	if len(s.Qdiscs) == 0 {
		qdiscs.WriteString("    None\n")
	}
	for i := range s.Qdiscs {
		qdiscs.WriteString(s.Qdiscs[i].String())
	}

	return interfaceStatusTmpl.ExecuteString(map[string]interface{}{
		"name":    s.Name,
		"ipv6":    enabledString(s.IPv6Enabled),
		"promisc": enabledString(s.PromiscuousMode),
		"qdiscs":  qdiscs.String(),
	})
}

func (q *QdiscInfo) String() string {
	var sb strings.Builder

	sb.WriteString(qdiscHeaderTmpl.ExecuteString(map[string]interface{}{
		"kind":   q.Kind,
		"handle": q.Handle,
		"parent": q.Parent,
	}))

	if len(q.Options) > 0 {
		sb.WriteString("  Options:\n")
		for _, opt := range q.Options {
			sb.WriteString("    ")
			sb.WriteString(opt)
			sb.WriteString("\n")
		}
	}

	sb.WriteString(qdiscStatsTmpl.ExecuteString(map[string]interface{}{
		"bytes":      strconv.FormatUint(q.Stats.Bytes, 10),
		"packets":    strconv.FormatUint(q.Stats.Packets, 10),
		"drops":      strconv.FormatUint(q.Stats.Drops, 10),
		"overlimits": strconv.FormatUint(q.Stats.Overlimits, 10),
		"qlen":       strconv.FormatUint(q.Stats.Qlen, 10),
		"backlog":    strconv.FormatUint(q.Stats.Backlog, 10),
	}))

	return sb.String()
}
