package networking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vishvananda/netlink"

	"github.com/maksimkurb/keen-tap/src/internal/errors"
)

func ingressWithStats(index int) *netlink.Ingress {
	q := BuildIngressQdisc(index)
	q.Statistics = &netlink.QdiscStatistics{
		Basic: &netlink.GnetStatsBasic{Bytes: 1 << 40, Packets: 4000000000},
		Queue: &netlink.GnetStatsQueue{Qlen: 1, Backlog: 2, Drops: 3, Overlimits: 4},
	}
	return q
}

func TestStatusReporter_Report(t *testing.T) {
	veth0 := testLink(5, "veth0")
	veth0.Promisc = 1

	noqueue := &netlink.GenericQdisc{
		QdiscAttrs: netlink.QdiscAttrs{LinkIndex: 5, Parent: netlink.HANDLE_ROOT},
		QdiscType:  "noqueue",
	}

	nl := new(MockNetlinker)
	nl.On("LinkList").Return([]netlink.Link{testLink(1, "lo"), veth0, testLink(6, "veth1")}, nil)
	nl.On("QdiscList", nil).Return([]netlink.Qdisc{noqueue, ingressWithStats(5), BuildIngressQdisc(6)}, nil)

	sys := new(MockSysctl)
	sys.On("Get", IPv6Key("veth0")).Return("1", nil)

	resolver := NewResolver(nl)
	status, err := NewStatusReporter(nl, resolver, NewIPv6Toggle(sys)).Report("veth0")
	require.NoError(t, err)

	assert.Equal(t, "veth0", status.Name)
	assert.False(t, status.IPv6Enabled)
	assert.True(t, status.PromiscuousMode)
	require.Len(t, status.Qdiscs, 1)

	q := status.Qdiscs[0]
	assert.Equal(t, "ingress", q.Kind)
	assert.Equal(t, "ffff:", q.Handle)
	assert.Equal(t, "ffff:", q.Parent)
	assert.Empty(t, q.Options)
	assert.Equal(t, QdiscStats{
		Bytes:      1 << 40,
		Packets:    4000000000,
		Drops:      3,
		Overlimits: 4,
		Qlen:       1,
		Backlog:    2,
	}, q.Stats)
}

func TestStatusReporter_NoQdisc(t *testing.T) {
	nl := new(MockNetlinker)
	nl.On("LinkList").Return(vethPair(), nil)
	nl.On("QdiscList", nil).Return([]netlink.Qdisc{}, nil)

	sys := new(MockSysctl)
	sys.On("Get", IPv6Key("veth1")).Return("0", nil)

	status, err := NewStatusReporter(nl, NewResolver(nl), NewIPv6Toggle(sys)).Report("veth1")
	require.NoError(t, err)

	assert.True(t, status.IPv6Enabled)
	assert.False(t, status.PromiscuousMode)
	assert.NotNil(t, status.Qdiscs)
	assert.Empty(t, status.Qdiscs)
}

func TestStatusReporter_MissingInterface(t *testing.T) {
	nl := new(MockNetlinker)
	nl.On("LinkList").Return(vethPair(), nil)

	_, err := NewStatusReporter(nl, NewResolver(nl), NewIPv6Toggle(new(MockSysctl))).Report("veth9")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestParseQdisc_Options(t *testing.T) {
	tests := []struct {
		name  string
		qdisc netlink.Qdisc
		kind  string
		opts  []string
	}{
		{
			name:  "prio",
			qdisc: &netlink.Prio{QdiscAttrs: netlink.QdiscAttrs{Handle: netlink.MakeHandle(1, 0), Parent: netlink.HANDLE_ROOT}, Bands: 3},
			kind:  "prio",
			opts:  []string{"bands=3"},
		},
		{
			name:  "tbf",
			qdisc: &netlink.Tbf{QdiscAttrs: netlink.QdiscAttrs{Handle: netlink.MakeHandle(0x10, 0)}, Rate: 1000, Limit: 2000, Buffer: 3000},
			kind:  "tbf",
			opts:  []string{"rate=1000", "limit=2000", "buffer=3000"},
		},
		{
			name:  "generic",
			qdisc: &netlink.GenericQdisc{QdiscType: "mq"},
			kind:  "mq",
			opts:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := parseQdisc(tt.qdisc)
			assert.Equal(t, tt.kind, info.Kind)
			assert.Equal(t, tt.opts, info.Options)
			assert.Zero(t, info.Stats)
		})
	}

	assert.Equal(t, "10:", parseQdisc(tests[1].qdisc).Handle)
	assert.Equal(t, "ffff:", parseQdisc(tests[0].qdisc).Parent)
}
