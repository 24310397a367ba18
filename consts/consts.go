package consts

// RecordComment is attached to every record the service touches so that the
// record is recognizable as managed in the provider panel.
const RecordComment = "DynDNS Record - automatically managed, do not change!"

const (
	// UpdatePath is the HTTP path serving update requests.
	UpdatePath = "/dyndns"
	// MinTTL is the minimum TTL accepted by hosting.de, in seconds.
	// Lower values are silently replaced with the configured default.
	MinTTL = 60
	// DefaultConfigFile is used when no --config flag is given.
	DefaultConfigFile = "config.toml"
)

const (
	StatusReady   int32 = 0  // Service is ready for running.
	StatusRunning int32 = 1  // Service is already running.
	StatusClosed  int32 = -1 // Service is closed and no longer accepts requests.
)
