package service

// IDynDNSService interface
type IDynDNSService interface {
	String() string
	// Serve blocks answering update requests until Close is called.
	Serve() error
	Close() error
}
