package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/pawurb/mevlog-viewer/internal/domain/models"
	"github.com/pawurb/mevlog-viewer/internal/viewer"
)

// StreamStats summarizes a finished stream
type StreamStats struct {
	Generation   uint64
	Batches      int
	Transactions int
	RawLines     int
	Unhandled    int
	LastError    string
	Superseded   bool
}

var errSuperseded = errors.New("stream superseded by a newer request")

// streamSession pumps one backend stream into the hub. Frames that are not
// batches, and batches with no consumer, go to the transcript.
type streamSession struct {
	streamer   Streamer
	hub        ResultHub
	sink       ProgressSink
	transcript Transcript
	route      viewer.Route
	log        *slog.Logger
}

func (s *streamSession) run(ctx context.Context, kind models.StreamKind, query url.Values) (*StreamStats, error) {
	gen := s.hub.Begin()
	s.hub.ClearFor(gen)
	stats := &StreamStats{Generation: gen}

	s.sink.OnProgress(ctx, ProgressEvent{Stage: StageConnecting, Message: "Loading...", Spinner: true})
	defer s.sink.OnProgress(ctx, ProgressEvent{Stage: StageCompleted})

	s.log.Debug("opening stream", "kind", kind, "query", query.Encode(), "generation", gen)
	stream, err := s.streamer.Open(ctx, kind, query)
	if err != nil {
		return stats, fmt.Errorf("failed to open %s stream: %w", kind, err)
	}
	defer stream.Close()

	err = drain(ctx, stream, func(msg models.StreamMessage) error {
		return s.handle(ctx, gen, msg, stats)
	})
	if errors.Is(err, errSuperseded) {
		stats.Superseded = true
		return stats, nil
	}
	if err != nil {
		return stats, fmt.Errorf("%s stream failed: %w", kind, err)
	}
	return stats, nil
}

func (s *streamSession) handle(ctx context.Context, gen uint64, msg models.StreamMessage, stats *StreamStats) error {
	if msg.Batch == nil {
		stats.RawLines++
		s.transcript.Line(msg.Raw)
		return nil
	}

	batch := *msg.Batch
	stats.Batches++
	stats.Transactions += len(batch.Transactions)
	if batch.IsError() {
		stats.LastError = batch.Error
	}

	switch s.hub.Deliver(gen, s.route, batch) {
	case viewer.Stale:
		s.log.Debug("dropping message from superseded stream", "generation", gen)
		return errSuperseded
	case viewer.Unhandled:
		stats.Unhandled++
		s.transcript.Line(indentJSON(msg.Raw))
	}

	s.sink.OnProgress(ctx, ProgressEvent{
		Stage:   StageStreaming,
		Message: fmt.Sprintf("Received %d transactions", stats.Transactions),
		Spinner: true,
	})
	return nil
}

// drain feeds every message to handle until the stream ends, ctx is done or
// handle fails
func drain(ctx context.Context, stream Stream, handle func(models.StreamMessage) error) error {
	messages := stream.Messages()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-messages:
			if !ok {
				return stream.Err()
			}
			if err := handle(msg); err != nil {
				return err
			}
		}
	}
}

func indentJSON(raw string) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(raw), "", "  "); err != nil {
		return raw
	}
	return buf.String()
}

type nopTranscript struct{}

func (nopTranscript) Line(string) {}

func transcriptOrNop(t Transcript) Transcript {
	if t == nil {
		return nopTranscript{}
	}
	return t
}
