package stream

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/desertthunder/musicbrief/internal/models"
	"github.com/tidwall/gjson"
)

// Prefix marks a line that carries an event envelope.
const Prefix = "data: "

// DefaultBufferSize is the read size used by [Consume] when none is given.
const DefaultBufferSize = 4096

// Kind tags a decoded line.
type Kind int

const (
	Unrecognized Kind = iota
	Chunk
	Done
	Error
)

func (k Kind) String() string {
	switch k {
	case Chunk:
		return "chunk"
	case Done:
		return "done"
	case Error:
		return "error"
	default:
		return "unrecognized"
	}
}

// Event is one classified line of the stream.
type Event struct {
	Kind   Kind
	Text   string        // chunk text, or the error message
	Result *models.Brief // set for Done
	Line   string        // the raw line, kept for logging unrecognized input
}

// Decoder is a stateful line decoder. The zero value is ready to use.
type Decoder struct {
	pending []byte
}

// NewDecoder returns an empty [Decoder].
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Write appends p to the decoder and returns the events of every line it completes, in order.
//
// Bytes after the last newline are held until a later Write or [Decoder.Flush].
func (d *Decoder) Write(p []byte) []Event {
	d.pending = append(d.pending, p...)

	var events []Event
	for {
		idx := bytes.IndexByte(d.pending, '\n')
		if idx < 0 {
			break
		}
		line := d.pending[:idx]
		if ev, ok := decodeLine(line); ok {
			events = append(events, ev)
		}
		d.pending = d.pending[idx+1:]
	}

	if len(d.pending) == 0 {
		d.pending = nil
	}
	return events
}

// Flush decodes whatever partial line remains once the stream has ended and resets the decoder.
func (d *Decoder) Flush() []Event {
	line := d.pending
	d.pending = nil
	if ev, ok := decodeLine(line); ok {
		return []Event{ev}
	}
	return nil
}

// decodeLine classifies one line. Blank lines produce no event.
func decodeLine(line []byte) (Event, bool) {
	line = bytes.TrimSuffix(line, []byte("\r"))
	if len(bytes.TrimSpace(line)) == 0 {
		return Event{}, false
	}

	ev := Event{Kind: Unrecognized, Line: string(line)}

	payload, ok := bytes.CutPrefix(line, []byte(Prefix))
	if !ok || !gjson.ValidBytes(payload) {
		return ev, true
	}

	env := gjson.ParseBytes(payload)
	if !env.IsObject() {
		return ev, true
	}

	if msg := env.Get("error"); isSet(msg) {
		ev.Kind, ev.Text = Error, msg.String()
		return ev, true
	}

	if env.Get("done").Bool() {
		brief, err := models.BriefFromResult(env.Get("result"))
		if err != nil {
			return ev, true
		}
		ev.Kind, ev.Result = Done, brief
		return ev, true
	}

	if chunk := env.Get("chunk"); chunk.Exists() && chunk.Type == gjson.String {
		ev.Kind, ev.Text = Chunk, chunk.String()
		return ev, true
	}

	return ev, true
}

// isSet reports whether an envelope field carries a value. Null, false, zero and empty strings count
// as unset, so servers that serialize every field are read correctly.
func isSet(field gjson.Result) bool {
	switch field.Type {
	case gjson.Null, gjson.False:
		return false
	case gjson.String:
		return field.Str != ""
	case gjson.Number:
		return field.Num != 0
	}
	return true
}

// ErrStopped is returned by [Consume] when the handler asked to stop reading.
var ErrStopped = errors.New("stream consumption stopped")

// Consume reads r with a fixed buffer of size bufSize, decodes each read, and passes events to fn in
// arrival order. It returns nil at end of input and [ErrStopped] as soon as fn returns false.
func Consume(r io.Reader, bufSize int, fn func(Event) bool) error {
	if bufSize <= 0 {
		bufSize = DefaultBufferSize
	}

	dec := NewDecoder()
	buf := make([]byte, bufSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			for _, ev := range dec.Write(buf[:n]) {
				if !fn(ev) {
					return ErrStopped
				}
			}
		}
		if errors.Is(err, io.EOF) {
			for _, ev := range dec.Flush() {
				if !fn(ev) {
					return ErrStopped
				}
			}
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read stream: %w", err)
		}
	}
}
