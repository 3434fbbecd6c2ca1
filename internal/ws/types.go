package ws

const (
	// server - client, in addition to domain event types
	MsgReady = "ready"
)

var readyMsg = []byte(`{"type":"` + MsgReady + `"}`)
