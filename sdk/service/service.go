package service

import (
	"net"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/jxo-me/dyndns/config"
	"github.com/jxo-me/dyndns/consts"
	"github.com/jxo-me/dyndns/core/dns"
	"github.com/jxo-me/dyndns/core/logger"
	"github.com/jxo-me/dyndns/core/service"
)

const Code = "dyndns"

// DynDNSService serves the update endpoint over TCP or a unix socket.
// There is no state shared between requests; every request is one unit of
// work handled by the UpdateHandler.
type DynDNSService struct {
	provider dns.IProvider
	conf     *config.Main
	server   *http.Server
	status   *int32
	logger   logger.ILogger
}

func NewDynDNS(provider dns.IProvider, log logger.ILogger, conf *config.Main) *DynDNSService {
	st := consts.StatusReady
	s := &DynDNSService{
		provider: provider,
		conf:     conf,
		status:   &st,
		logger:   log,
	}

	mux := http.NewServeMux()
	mux.Handle(consts.UpdatePath, NewUpdateHandler(provider, conf.AllowedDomains, log))
	s.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *DynDNSService) String() string {
	return Code
}

// Serve blocks answering update requests until Close is called.
func (s *DynDNSService) Serve() error {
	listener, err := s.listen()
	if err != nil {
		return err
	}
	atomic.StoreInt32(s.status, consts.StatusRunning)
	s.logger.Infof("%s service listening on %s", Code, listener.Addr())
	if err := s.server.Serve(listener); err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *DynDNSService) listen() (net.Listener, error) {
	if s.conf.BindSocket != "" {
		return net.Listen("unix", s.conf.BindSocket)
	}
	return net.Listen("tcp", net.JoinHostPort(s.conf.BindHost, strconv.Itoa(s.conf.BindPort)))
}

// Close shuts the server down.
func (s *DynDNSService) Close() error {
	atomic.StoreInt32(s.status, consts.StatusClosed)
	return s.server.Close()
}

var _ service.IDynDNSService = (*DynDNSService)(nil)
