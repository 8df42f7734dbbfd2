package hub

// Registry maps a session ID to the outbound channel of its connection. It
// knows nothing about rooms or games, and is touched only on the coordinator
// goroutine.
type Registry struct {
	conns map[string]chan<- []byte
}

func NewRegistry() *Registry {
	return &Registry{
		conns: make(map[string]chan<- []byte),
	}
}

func (that *Registry) Register(sessionID string, send chan<- []byte) {
	that.conns[sessionID] = send
}

func (that *Registry) Unregister(sessionID string) {
	delete(that.conns, sessionID)
}

// Send - delivers the payload to the session's connection without blocking.
// Returns false when the session has no live channel or its buffer is full;
// the frame is dropped in both cases.
func (that *Registry) Send(sessionID string, payload []byte) bool {
	send, ok := that.conns[sessionID]
	if !ok {
		return false
	}

	select {
	case send <- payload:
		return true
	default:
		return false
	}
}

func (that *Registry) Len() int {
	return len(that.conns)
}
