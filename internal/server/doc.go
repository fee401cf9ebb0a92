// Package server implements the MCP (Model Context Protocol) server for Munsell colour tools.
//
// This package provides a JSON-RPC 2.0 server that exposes the palette engine
// through the MCP protocol, so MCP clients can validate, correct, convert and
// step Munsell notations.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Notation Model:
//   - mnsl_parse: Parse notations into hue, value and chroma
//   - mnsl_hues: List the 40 standard hues
//
// Gamut and Matching:
//   - mnsl_in_gamut: Validate notations, optionally correcting them
//   - mnsl_nearest: Nearest notation for LUV coordinates
//   - mnsl_from_rgb: Nearest notation for sRGB colours
//   - mnsl_to_hex: Notation to sRGB hex
//
// Arithmetic:
//   - mnsl_lighter, mnsl_darker: Step value
//   - mnsl_saturate, mnsl_desaturate: Step chroma
//   - mnsl_complement: Opposite hue
//   - mnsl_rotate_hue: Step hue around the circle
//   - mnsl_text_colour: Readable black or white text
//
// Sequences:
//   - mnsl_seq: Evenly spaced notations between two endpoints
//
// Images:
//   - mnsl_sample_image: Nearest notation for image pixels
//   - mnsl_image_palette: Dominant notations of an image
//   - mnsl_swatch: Render notations to PNG
//
// # Batches
//
// Tools taking a notations list answer element by element: one result per
// input, in input order, each with its own ok flag and error. Setting strict
// turns any element failure into a failure of the whole call.
//
// # Error Handling
//
// Errors are returned as JSON-RPC error responses with:
//   - code: -32602 (missing or malformed arguments), -32601 (unknown method)
//     or -32000 (tool execution failure)
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Usage
//
//	engine := palette.New(table.Builtin())
//	srv := server.New(engine, false)
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
