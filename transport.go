package push3

// Transport delivers raw bytes to a device endpoint.
//
// Implementations block until the endpoint accepted all of p or failed; there
// is no partial-write reporting at this level. Transports are not required to
// be safe for concurrent use: Dev serializes all writes behind its own lock.
type Transport interface {
	// Write delivers p to the given endpoint as one discrete operation.
	Write(endpoint byte, p []byte) error

	// Close releases the underlying device handle.
	Close() error
}
