package service

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jxo-me/dyndns/config"
	xlogger "github.com/jxo-me/dyndns/sdk/logger"
)

func TestDynDNSServiceListenTCP(t *testing.T) {
	s := NewDynDNS(&fakeProvider{}, xlogger.Nop(), &config.Main{
		BindHost: "127.0.0.1",
		BindPort: 0,
	})

	listener, err := s.listen()
	require.NoError(t, err)
	defer listener.Close()

	assert.Equal(t, "tcp", listener.Addr().Network())
}

func TestDynDNSServiceListenUnixSocket(t *testing.T) {
	socket := filepath.Join(t.TempDir(), "dyndns.sock")
	s := NewDynDNS(&fakeProvider{}, xlogger.Nop(), &config.Main{
		// host/port are ignored as soon as a socket path is set
		BindHost:   "127.0.0.1",
		BindPort:   8080,
		BindSocket: socket,
	})

	listener, err := s.listen()
	require.NoError(t, err)
	defer listener.Close()

	assert.Equal(t, "unix", listener.Addr().Network())
	assert.Equal(t, socket, listener.Addr().String())
}
