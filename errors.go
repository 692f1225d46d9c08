package vecdesk

import "github.com/kailas-cloud/vecdesk/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotConfigured      = domain.ErrNotConfigured
	ErrInvalidInput       = domain.ErrInvalidInput
	ErrTransport          = domain.ErrTransport
	ErrProtocol           = domain.ErrProtocol
	ErrCollectionNotFound = domain.ErrCollectionNotFound
	ErrEmbeddingProvider  = domain.ErrEmbeddingProvider
)

// Typed errors re-exported from the domain layer.
// Use errors.As() to inspect.
type (
	ConfigurationError = domain.ConfigurationError
	ValidationError    = domain.ValidationError
	TransportError     = domain.TransportError
	ProtocolError      = domain.ProtocolError
	DeleteError        = domain.DeleteError
)
