package graphql

import "fmt"

// TransportError wraps a network-level failure: the remote side was
// never reached or the response could not be read.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("graphql transport: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// RemoteError means the remote side responded but reported a structured
// failure. Message carries the first reported error message verbatim.
type RemoteError struct {
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("graphql remote: %s", e.Message)
}

// AuthRequiredError means an authenticated operation was requested with
// no credential available from the token provider.
type AuthRequiredError struct {
	Document string
}

func (e *AuthRequiredError) Error() string {
	return "graphql: authentication required and no token available"
}

// genericRemoteMessage is used when the structured error array is
// present but malformed.
const genericRemoteMessage = "remote call failed"
