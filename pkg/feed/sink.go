package feed

import (
	"fmt"
	"io"
	"net/http"
)

// ContentType is sent with SmartFormat documents served over HTTP
const ContentType = "text/xml;charset=utf-8"

// Sink receives rendered feed stages
type Sink interface {
	io.Writer
	SetContentType(contentType string)
}

// StreamSink writes to a plain stream such as stdout. The content type is only recorded.
type StreamSink struct {
	w           io.Writer
	contentType string
}

// NewStreamSink wraps w as a Sink
func NewStreamSink(w io.Writer) *StreamSink {
	return &StreamSink{w: w}
}

func (s *StreamSink) Write(p []byte) (int, error) {
	return s.w.Write(p)
}

// SetContentType records the content type
func (s *StreamSink) SetContentType(contentType string) {
	s.contentType = contentType
}

// ContentType returns the recorded content type
func (s *StreamSink) ContentType() string {
	return s.contentType
}

// ResponseSink writes to an HTTP response. Headers can only change before the first write.
type ResponseSink struct {
	w     http.ResponseWriter
	wrote bool
}

// NewResponseSink wraps an HTTP response as a Sink
func NewResponseSink(w http.ResponseWriter) *ResponseSink {
	return &ResponseSink{w: w}
}

func (s *ResponseSink) Write(p []byte) (int, error) {
	s.wrote = true
	return s.w.Write(p)
}

// SetContentType sets the Content-Type header if nothing has been written yet
func (s *ResponseSink) SetContentType(contentType string) {
	if s.wrote {
		return
	}
	s.w.Header().Set("Content-Type", contentType)
}

// Emitter streams the stages of a Writer to a Sink
type Emitter struct {
	writer     *Writer
	sink       Sink
	headerSent bool
}

// NewEmitter creates an Emitter for w writing to sink
func NewEmitter(w *Writer, sink Sink) *Emitter {
	return &Emitter{writer: w, sink: sink}
}

// EmitPreamble sets the content type on first use and writes the preamble
func (e *Emitter) EmitPreamble() error {
	if !e.headerSent {
		e.sink.SetContentType(ContentType)
		e.headerSent = true
	}
	return e.emit("preamble", e.writer.Preamble())
}

// EmitChannel writes the channel block
func (e *Emitter) EmitChannel() error {
	return e.emit("channel", e.writer.ChannelXML())
}

// EmitItems writes the item blocks
func (e *Emitter) EmitItems() error {
	return e.emit("items", e.writer.ItemsXML())
}

// EmitPostamble writes the closing tags
func (e *Emitter) EmitPostamble() error {
	return e.emit("postamble", e.writer.Postamble())
}

// EmitAll writes the whole document, stopping at the first error
func (e *Emitter) EmitAll() error {
	for _, emit := range []func() error{e.EmitPreamble, e.EmitChannel, e.EmitItems, e.EmitPostamble} {
		if err := emit(); err != nil {
			return err
		}
	}
	return nil
}

func (e *Emitter) emit(stage, s string) error {
	if _, err := io.WriteString(e.sink, s); err != nil {
		return fmt.Errorf("failed to emit %s: %w", stage, err)
	}
	return nil
}
