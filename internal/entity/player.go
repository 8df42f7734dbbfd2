package entity

// Player holds one seat in a room. The session ID is the identity of the live
// connection and never leaves the server.
type Player struct {
	Name      string `json:"name"`
	SessionID string `json:"-"`
	Symbol    string `json:"symbol"`
}
