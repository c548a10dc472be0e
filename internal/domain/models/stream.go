package models

// StreamKind is a websocket endpoint of the mevlog backend
type StreamKind string

const (
	StreamSearch  StreamKind = "search"
	StreamTrace   StreamKind = "trace"
	StreamInspect StreamKind = "inspect"
)

// Path returns the websocket path for the stream
func (k StreamKind) Path() string {
	return "/ws/" + string(k)
}

// StreamMessage is one text frame received from a stream. Batch is set when
// the frame decoded as a transaction batch or backend error.
type StreamMessage struct {
	Raw   string
	Batch *Batch
}

// NewStreamMessage classifies a raw frame
func NewStreamMessage(raw []byte) StreamMessage {
	msg := StreamMessage{Raw: string(raw)}
	if batch, err := ParseBatch(raw); err == nil {
		msg.Batch = &batch
	}
	return msg
}

// TraceParams are the query parameters of a trace stream
type TraceParams struct {
	TxHash string
	RPCURL string
}

// InspectParams are the query parameters of an inspect stream
type InspectParams struct {
	TxHash  string
	Before  string
	After   string
	Reverse bool
	RPCURL  string
}
