// Package stream decodes the line-oriented event stream returned by the generation API.
//
// Each line of interest is "data: " followed by a JSON envelope:
//
//	data: {"chunk": "..."}                  partial text
//	data: {"done": true, "result": {...}}   final brief
//	data: {"error": "..."}                  generation failed
//
// A [Decoder] is fed raw bytes as they arrive. It buffers partial lines (and therefore partial
// multi-byte characters) across reads and only classifies complete lines.
package stream
