package networking

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vishvananda/netlink"
	"golang.org/x/sys/unix"

	apperrors "github.com/maksimkurb/keen-tap/src/internal/errors"
	"github.com/maksimkurb/keen-tap/src/internal/log"
)

func newIngressQdisc(nl *MockNetlinker) *IngressQdisc {
	return NewIngressQdisc(nl, NewResolver(nl))
}

func TestBuildIngressQdisc(t *testing.T) {
	q := BuildIngressQdisc(5)

	assert.Equal(t, "ingress", q.Type())
	assert.Equal(t, 5, q.LinkIndex)
	assert.Equal(t, uint32(netlink.HANDLE_INGRESS), q.Parent)
	assert.Equal(t, netlink.MakeHandle(0xffff, 0), q.Handle)
}

func TestIngressQdisc_DelIfExists(t *testing.T) {
	ingress := []netlink.Qdisc{BuildIngressQdisc(5)}

	t.Run("deletes existing qdisc", func(t *testing.T) {
		nl := new(MockNetlinker)
		nl.On("LinkList").Return(vethPair(), nil)
		nl.On("QdiscList", mock.Anything).Return(ingress, nil)
		nl.On("QdiscDel", BuildIngressQdisc(5)).Return(nil).Once()

		removed, err := newIngressQdisc(nl).DelIfExists("veth0")
		require.NoError(t, err)
		assert.True(t, removed)
		nl.AssertExpectations(t)
	})

	t.Run("missing interface is a no-op", func(t *testing.T) {
		nl := new(MockNetlinker)
		nl.On("LinkList").Return(vethPair(), nil)

		removed, err := newIngressQdisc(nl).DelIfExists("veth9")
		require.NoError(t, err)
		assert.False(t, removed)
		nl.AssertNotCalled(t, "QdiscDel", mock.Anything)
	})

	t.Run("absent qdisc is not deleted", func(t *testing.T) {
		nl := new(MockNetlinker)
		nl.On("LinkList").Return(vethPair(), nil)
		nl.On("QdiscList", mock.Anything).Return([]netlink.Qdisc{}, nil)

		var buf bytes.Buffer
		log.SetOutput(&buf)
		defer log.SetOutput(nil)

		removed, err := newIngressQdisc(nl).DelIfExists("veth0")
		require.NoError(t, err)
		assert.False(t, removed)
		nl.AssertNotCalled(t, "QdiscDel", mock.Anything)
		assert.NotContains(t, buf.String(), "[WRN]")
	})

	t.Run("qdisc gone between dump and delete is swallowed", func(t *testing.T) {
		nl := new(MockNetlinker)
		nl.On("LinkList").Return(vethPair(), nil)
		nl.On("QdiscList", mock.Anything).Return(ingress, nil)
		nl.On("QdiscDel", mock.Anything).Return(unix.ENOENT)

		removed, err := newIngressQdisc(nl).DelIfExists("veth0")
		require.NoError(t, err)
		assert.False(t, removed)
	})

	t.Run("other delete errors are best-effort", func(t *testing.T) {
		nl := new(MockNetlinker)
		nl.On("LinkList").Return(vethPair(), nil)
		nl.On("QdiscList", mock.Anything).Return(ingress, nil)
		nl.On("QdiscDel", mock.Anything).Return(unix.EPERM)

		removed, err := newIngressQdisc(nl).DelIfExists("veth0")
		require.NoError(t, err)
		assert.False(t, removed)
	})

	t.Run("qdisc dump failure propagates", func(t *testing.T) {
		nl := new(MockNetlinker)
		nl.On("LinkList").Return(vethPair(), nil)
		nl.On("QdiscList", mock.Anything).Return(nil, errors.New("netlink socket closed"))

		_, err := newIngressQdisc(nl).DelIfExists("veth0")
		require.Error(t, err)
		assert.True(t, apperrors.IsTransport(err))
		nl.AssertNotCalled(t, "QdiscDel", mock.Anything)
	})

	t.Run("link scan failure propagates", func(t *testing.T) {
		nl := new(MockNetlinker)
		nl.On("LinkList").Return(nil, errors.New("netlink socket closed"))

		_, err := newIngressQdisc(nl).DelIfExists("veth0")
		require.Error(t, err)
		assert.True(t, apperrors.IsTransport(err))
	})
}

func TestIngressQdisc_AddIfNotExists(t *testing.T) {
	t.Run("adds qdisc", func(t *testing.T) {
		nl := new(MockNetlinker)
		nl.On("LinkList").Return(vethPair(), nil)
		nl.On("QdiscAdd", BuildIngressQdisc(6)).Return(nil).Once()

		added, err := newIngressQdisc(nl).AddIfNotExists("veth1")
		require.NoError(t, err)
		assert.True(t, added)
		nl.AssertExpectations(t)
	})

	t.Run("existing qdisc is not an error", func(t *testing.T) {
		nl := new(MockNetlinker)
		nl.On("LinkList").Return(vethPair(), nil)
		nl.On("QdiscAdd", mock.Anything).Return(unix.EEXIST)

		added, err := newIngressQdisc(nl).AddIfNotExists("veth1")
		require.NoError(t, err)
		assert.False(t, added)
	})

	t.Run("other errors are fatal", func(t *testing.T) {
		nl := new(MockNetlinker)
		nl.On("LinkList").Return(vethPair(), nil)
		nl.On("QdiscAdd", mock.Anything).Return(unix.EPERM)

		_, err := newIngressQdisc(nl).AddIfNotExists("veth1")
		require.Error(t, err)
		assert.True(t, apperrors.IsTransport(err))
		assert.ErrorIs(t, err, unix.EPERM)
	})

	t.Run("missing interface is fatal", func(t *testing.T) {
		nl := new(MockNetlinker)
		nl.On("LinkList").Return(vethPair(), nil)

		_, err := newIngressQdisc(nl).AddIfNotExists("veth9")
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
		nl.AssertNotCalled(t, "QdiscAdd", mock.Anything)
	})
}

func TestIngressQdisc_IsExists(t *testing.T) {
	link := testLink(5, "veth0")
	nl := new(MockNetlinker)
	nl.On("LinkList").Return([]netlink.Link{link}, nil)
	nl.On("QdiscList", link).Return([]netlink.Qdisc{BuildIngressQdisc(5)}, nil).Once()
	nl.On("QdiscList", link).Return([]netlink.Qdisc{}, nil).Once()

	q := newIngressQdisc(nl)

	exists, err := q.IsExists("veth0")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = q.IsExists("veth0")
	require.NoError(t, err)
	assert.False(t, exists)
}
