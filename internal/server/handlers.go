package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/ironsheep/munsell-mcp/internal/colorspace"
	"github.com/ironsheep/munsell-mcp/internal/imaging"
	"github.com/ironsheep/munsell-mcp/internal/munsell"
	"github.com/ironsheep/munsell-mcp/internal/palette"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "mnsl_parse", "mnsl_in_gamut").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// paramsError marks tool arguments that are malformed or missing. It is
// reported as JSON-RPC -32602 rather than as a tool failure.
type paramsError struct {
	err error
}

func (e *paramsError) Error() string { return e.err.Error() }
func (e *paramsError) Unwrap() error { return e.err }

func invalidParams(format string, args ...interface{}) error {
	return &paramsError{err: fmt.Errorf(format, args...)}
}

// decodeArgs unmarshals tool arguments; absent arguments decode as {}.
func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}
	if err := json.Unmarshal(args, v); err != nil {
		return &paramsError{err: fmt.Errorf("invalid arguments: %w", err)}
	}
	return nil
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Bad arguments return JSON-RPC error -32602; any other tool failure
// returns -32000 with the error text in data.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}
	if s.debug {
		log.Printf("tools/call %s %s", params.Name, params.Arguments)
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		if s.debug {
			log.Printf("tools/call %s failed: %v", params.Name, err)
		}
		var pe *paramsError
		if errors.As(err, &pe) {
			return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
		}
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	text, err := marshalJSON(result)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": text,
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Notation Model
	case "mnsl_parse":
		return s.handleParse(args)
	case "mnsl_hues":
		return s.handleHues(args)

	// Gamut and matching
	case "mnsl_in_gamut":
		return s.handleInGamut(args)
	case "mnsl_nearest":
		return s.handleNearest(args)
	case "mnsl_from_rgb":
		return s.handleFromRGB(args)
	case "mnsl_to_hex":
		return s.handleToHex(args)

	// Arithmetic
	case "mnsl_lighter":
		return s.handleArithmetic(args, munsell.Lighter)
	case "mnsl_darker":
		return s.handleArithmetic(args, munsell.Darker)
	case "mnsl_saturate":
		return s.handleArithmetic(args, munsell.Saturate)
	case "mnsl_desaturate":
		return s.handleArithmetic(args, munsell.Desaturate)
	case "mnsl_complement":
		return s.handleComplement(args)
	case "mnsl_rotate_hue":
		return s.handleRotateHue(args)
	case "mnsl_text_colour":
		return s.handleTextColour(args)

	// Sequences
	case "mnsl_seq":
		return s.handleSeq(args)

	// Images
	case "mnsl_sample_image":
		return s.handleSampleImage(args)
	case "mnsl_image_palette":
		return s.handleImagePalette(args)
	case "mnsl_swatch":
		return s.handleSwatch(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
// An empty data string is left out of the response.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	mcpErr := &MCPError{Code: code, Message: message}
	if data != "" {
		mcpErr.Data = data
	}
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   mcpErr,
	}
}

// marshalJSON converts a value to pretty-printed JSON string.
func marshalJSON(v interface{}) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode result: %w", err)
	}
	return string(b), nil
}

// === Batch plumbing ===

type notationsArgs struct {
	Notations []string `json:"notations"`
	Fix       bool     `json:"fix"`
	Strict    bool     `json:"strict"`
	Steps     *int     `json:"steps"`
	Direction string   `json:"direction"`
}

func (a *notationsArgs) validate() error {
	if len(a.Notations) == 0 {
		return invalidParams("notations is required")
	}
	return nil
}

func (a *notationsArgs) steps() int {
	if a.Steps == nil {
		return 1
	}
	return *a.Steps
}

// notationResult is one element of a batch answer. Notation is set only on
// success.
type notationResult struct {
	Input      string `json:"input"`
	OK         bool   `json:"ok"`
	Notation   string `json:"notation,omitempty"`
	InTable    bool   `json:"in_table"`
	Hex        string `json:"hex,omitempty"`
	TextColour string `json:"text_colour,omitempty"`
	Error      string `json:"error,omitempty"`
	ErrorKind  string `json:"error_kind,omitempty"` // format, out_of_gamut or not_in_table
}

type batchResult struct {
	Results []notationResult `json:"results"`
	Failed  int              `json:"failed"`
}

// parseBatch parses texts and runs op over the ones that parsed. The result
// has one entry per text in input order; parse failures carry their
// *munsell.FormatError.
func parseBatch(texts []string, op func([]munsell.Notation) []palette.Result) []palette.Result {
	out := make([]palette.Result, len(texts))
	ns := make([]munsell.Notation, 0, len(texts))
	idx := make([]int, 0, len(texts))
	for i, t := range texts {
		n, err := munsell.Parse(t)
		if err != nil {
			out[i] = palette.Result{Err: err}
			continue
		}
		ns = append(ns, n)
		idx = append(idx, i)
	}
	for j, r := range op(ns) {
		out[idx[j]] = r
	}
	return out
}

// unchecked wraps notations that need no validation as successful results.
func unchecked(ns []munsell.Notation) []palette.Result {
	out := make([]palette.Result, len(ns))
	for i, n := range ns {
		out[i] = palette.Result{Notation: n}
	}
	return out
}

// report renders batch results. In strict mode any failing element fails
// the whole call.
func (s *Server) report(inputs []string, results []palette.Result, strict bool) (*batchResult, error) {
	if strict {
		if _, err := palette.Collect(results); err != nil {
			return nil, err
		}
	}

	out := &batchResult{Results: make([]notationResult, len(results))}
	for i, r := range results {
		nr := notationResult{Input: inputs[i], OK: r.OK()}
		if r.OK() {
			nr.Notation = r.Notation.String()
			nr.InTable = s.engine.Table().Contains(r.Notation)
		} else {
			nr.Error = r.Err.Error()
			nr.ErrorKind = errorKind(r.Err)
			out.Failed++
		}
		out.Results[i] = nr
	}
	return out, nil
}

func errorKind(err error) string {
	var fe *munsell.FormatError
	var ge *palette.OutOfGamutError
	var te *palette.NotInTableError
	switch {
	case errors.As(err, &fe):
		return "format"
	case errors.As(err, &ge):
		return "out_of_gamut"
	case errors.As(err, &te):
		return "not_in_table"
	default:
		return "error"
	}
}

// === Notation Model Handlers ===

type parseResult struct {
	Input     string  `json:"input"`
	OK        bool    `json:"ok"`
	Notation  string  `json:"notation,omitempty"`
	Hue       string  `json:"hue,omitempty"`
	Family    string  `json:"family,omitempty"`
	HueNumber float64 `json:"hue_number"`
	Value     float64 `json:"value"`
	Chroma    int     `json:"chroma"`
	HueIndex  *int    `json:"hue_index,omitempty"` // Position on the 40 step circle; absent for neutrals
	InTable   bool    `json:"in_table"`
	Error     string  `json:"error,omitempty"`
}

func (s *Server) handleParse(args json.RawMessage) (interface{}, error) {
	var a notationsArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := a.validate(); err != nil {
		return nil, err
	}

	results := make([]parseResult, len(a.Notations))
	for i, text := range a.Notations {
		n, err := munsell.Parse(text)
		if err != nil {
			results[i] = parseResult{Input: text, Error: err.Error()}
			continue
		}
		pr := parseResult{
			Input:     text,
			OK:        true,
			Notation:  n.String(),
			Hue:       n.Hue(),
			Family:    n.Family.String(),
			HueNumber: n.HueNumber,
			Value:     n.Value,
			Chroma:    n.Chroma,
			InTable:   s.engine.Table().Contains(n),
		}
		if h, ok := n.HueIndex(); ok {
			pr.HueIndex = &h
		}
		results[i] = pr
	}
	return map[string]interface{}{"results": results}, nil
}

func (s *Server) handleHues(args json.RawMessage) (interface{}, error) {
	hues := munsell.Hues()
	return map[string]interface{}{
		"hues":  hues,
		"count": len(hues),
	}, nil
}

// === Gamut and Matching Handlers ===

func (s *Server) handleInGamut(args json.RawMessage) (interface{}, error) {
	var a notationsArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := a.validate(); err != nil {
		return nil, err
	}

	results := parseBatch(a.Notations, func(ns []munsell.Notation) []palette.Result {
		return s.engine.InGamut(ns, a.Fix)
	})
	return s.report(a.Notations, results, a.Strict)
}

type nearestArgs struct {
	Coords [][]float64 `json:"coords"`
}

type nearestResult struct {
	LUV      colorspace.LUV `json:"luv"`
	Notation string         `json:"notation"`
	Distance float64        `json:"distance"` // Euclidean LUV distance to the entry
	Hex      string         `json:"hex"`
}

func (s *Server) handleNearest(args json.RawMessage) (interface{}, error) {
	var a nearestArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if len(a.Coords) == 0 {
		return nil, invalidParams("coords is required")
	}

	results := make([]nearestResult, len(a.Coords))
	for i, c := range a.Coords {
		if len(c) != 3 {
			return nil, invalidParams("coords[%d]: want [L, u, v], got %d numbers", i, len(c))
		}
		for _, x := range c {
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return nil, invalidParams("coords[%d]: components must be finite", i)
			}
		}
		luv := colorspace.LUV{L: c[0], U: c[1], V: c[2]}
		n := s.engine.Nearest(luv)
		entry, _ := s.engine.Table().Lookup(n)
		rgb, _ := colorspace.ToRGB(entry.Coord)
		results[i] = nearestResult{
			LUV:      luv,
			Notation: n.String(),
			Distance: luv.Distance(entry.Coord),
			Hex:      rgb.Hex(),
		}
	}
	return map[string]interface{}{"results": results}, nil
}

type fromRGBArgs struct {
	Hex []string `json:"hex"`
	RGB [][]int  `json:"rgb"`
}

type rgbResult struct {
	Input    string `json:"input"`
	OK       bool   `json:"ok"`
	Hex      string `json:"hex,omitempty"`
	Notation string `json:"notation,omitempty"`
	Error    string `json:"error,omitempty"`
}

func (s *Server) handleFromRGB(args json.RawMessage) (interface{}, error) {
	var a fromRGBArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if len(a.Hex) == 0 && len(a.RGB) == 0 {
		return nil, invalidParams("hex or rgb is required")
	}

	results := make([]rgbResult, 0, len(a.Hex)+len(a.RGB))
	for _, h := range a.Hex {
		rgb, err := colorspace.ParseHex(h)
		if err != nil {
			results = append(results, rgbResult{Input: h, Error: err.Error()})
			continue
		}
		results = append(results, rgbResult{
			Input:    h,
			OK:       true,
			Hex:      rgb.Hex(),
			Notation: s.engine.NearestRGB(rgb).String(),
		})
	}
	for i, c := range a.RGB {
		if len(c) != 3 {
			return nil, invalidParams("rgb[%d]: want [R, G, B], got %d numbers", i, len(c))
		}
		input := fmt.Sprintf("%d,%d,%d", c[0], c[1], c[2])
		if !inByteRange(c) {
			results = append(results, rgbResult{Input: input, Error: "components must be 0-255"})
			continue
		}
		rgb := colorspace.RGB{R: float64(c[0]) / 255, G: float64(c[1]) / 255, B: float64(c[2]) / 255}
		results = append(results, rgbResult{
			Input:    input,
			OK:       true,
			Hex:      rgb.Hex(),
			Notation: s.engine.NearestRGB(rgb).String(),
		})
	}
	return map[string]interface{}{"results": results}, nil
}

func inByteRange(c []int) bool {
	for _, v := range c {
		if v < 0 || v > 255 {
			return false
		}
	}
	return true
}

func (s *Server) handleToHex(args json.RawMessage) (interface{}, error) {
	var a notationsArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := a.validate(); err != nil {
		return nil, err
	}

	results := parseBatch(a.Notations, func(ns []munsell.Notation) []palette.Result {
		return s.engine.InGamut(ns, a.Fix)
	})
	out, err := s.report(a.Notations, results, a.Strict)
	if err != nil {
		return nil, err
	}
	for i, r := range results {
		if !r.OK() {
			continue
		}
		// r.Notation is a table entry here, so Hex cannot fail.
		hex, _, err := s.engine.Hex(r.Notation, false)
		if err != nil {
			return nil, err
		}
		out.Results[i].Hex = hex
	}
	return out, nil
}

// === Arithmetic Handlers ===

func (s *Server) handleArithmetic(args json.RawMessage, op func([]munsell.Notation, int) []munsell.Notation) (interface{}, error) {
	var a notationsArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := a.validate(); err != nil {
		return nil, err
	}

	steps := a.steps()
	results := parseBatch(a.Notations, func(ns []munsell.Notation) []palette.Result {
		return unchecked(op(ns, steps))
	})
	return s.report(a.Notations, results, a.Strict)
}

func (s *Server) handleComplement(args json.RawMessage) (interface{}, error) {
	var a notationsArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := a.validate(); err != nil {
		return nil, err
	}

	results := parseBatch(a.Notations, func(ns []munsell.Notation) []palette.Result {
		return s.engine.Complement(ns, a.Fix)
	})
	return s.report(a.Notations, results, a.Strict)
}

func (s *Server) handleRotateHue(args json.RawMessage) (interface{}, error) {
	var a notationsArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := a.validate(); err != nil {
		return nil, err
	}

	steps := a.steps()
	switch a.Direction {
	case "", "rygbp":
	case "pbgyr":
		steps = -steps
	default:
		return nil, invalidParams("direction must be rygbp or pbgyr, got %q", a.Direction)
	}

	results := parseBatch(a.Notations, func(ns []munsell.Notation) []palette.Result {
		return s.engine.RotateHue(ns, steps, a.Fix)
	})
	return s.report(a.Notations, results, a.Strict)
}

func (s *Server) handleTextColour(args json.RawMessage) (interface{}, error) {
	var a notationsArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := a.validate(); err != nil {
		return nil, err
	}

	results := parseBatch(a.Notations, unchecked)
	out, err := s.report(a.Notations, results, a.Strict)
	if err != nil {
		return nil, err
	}
	for i, r := range results {
		if r.OK() {
			out.Results[i].TextColour = munsell.TextColour(r.Notation)
		}
	}
	return out, nil
}

// === Sequence Handlers ===

type seqArgs struct {
	From string `json:"from"`
	To   string `json:"to"`
	N    int    `json:"n"`
}

type seqResult struct {
	From      string   `json:"from"`
	To        string   `json:"to"`
	N         int      `json:"n"`
	Notations []string `json:"notations"`
	Hex       []string `json:"hex"`
}

func (s *Server) handleSeq(args json.RawMessage) (interface{}, error) {
	var a seqArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.From == "" || a.To == "" {
		return nil, invalidParams("from and to are required")
	}
	if a.N > palette.MaxSeqLength {
		return nil, invalidParams("n must be at most %d, got %d", palette.MaxSeqLength, a.N)
	}

	from, err := munsell.Parse(a.From)
	if err != nil {
		return nil, err
	}
	to, err := munsell.Parse(a.To)
	if err != nil {
		return nil, err
	}

	seq, err := s.engine.Seq(from, to, a.N)
	if err != nil {
		return nil, err
	}

	out := &seqResult{
		From:      from.String(),
		To:        to.String(),
		N:         len(seq),
		Notations: make([]string, len(seq)),
		Hex:       make([]string, len(seq)),
	}
	for i, n := range seq {
		hex, _, err := s.engine.Hex(n, false)
		if err != nil {
			return nil, err
		}
		out.Notations[i] = n.String()
		out.Hex[i] = hex
	}
	return out, nil
}

// === Image Handlers ===

type sampleImageArgs struct {
	Path   string `json:"path"`
	Points []struct {
		X     int    `json:"x"`
		Y     int    `json:"y"`
		Label string `json:"label"`
	} `json:"points"`
}

func (s *Server) handleSampleImage(args json.RawMessage) (interface{}, error) {
	var a sampleImageArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, invalidParams("path is required")
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	points := make([]imaging.LabeledPoint, len(a.Points))
	for i, p := range a.Points {
		points[i] = imaging.LabeledPoint{X: p.X, Y: p.Y, Label: p.Label}
	}
	return imaging.SampleMunsell(img, points, s.engine)
}

type imagePaletteArgs struct {
	Path   string          `json:"path"`
	Count  int             `json:"count"`
	Region *imaging.Region `json:"region"`
}

func (s *Server) handleImagePalette(args json.RawMessage) (interface{}, error) {
	var a imagePaletteArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, invalidParams("path is required")
	}
	if a.Count == 0 {
		a.Count = 5
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.DominantMunsell(img, a.Count, a.Region, s.engine)
}

type swatchArgs struct {
	Notations []string `json:"notations"`
	Fix       bool     `json:"fix"`
	Cell      int      `json:"cell"`
	Columns   int      `json:"columns"`
}

type swatchResult struct {
	*imaging.SwatchResult
	Notations []string `json:"notations"`
	Hex       []string `json:"hex"`
}

func (s *Server) handleSwatch(args json.RawMessage) (interface{}, error) {
	var a swatchArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if len(a.Notations) == 0 {
		return nil, invalidParams("notations is required")
	}
	if a.Cell == 0 {
		a.Cell = 32
	}

	results := parseBatch(a.Notations, func(ns []munsell.Notation) []palette.Result {
		return s.engine.InGamut(ns, a.Fix)
	})
	valid, err := palette.Collect(results)
	if err != nil {
		return nil, err
	}

	colors := make([]colorspace.RGB, len(valid))
	names := make([]string, len(valid))
	hexes := make([]string, len(valid))
	for i, n := range valid {
		c, _, err := s.engine.Coord(n, false)
		if err != nil {
			return nil, err
		}
		colors[i], _ = colorspace.ToRGB(c)
		names[i] = n.String()
		hexes[i] = colors[i].Hex()
	}

	sw, err := imaging.Swatch(colors, a.Cell, a.Columns)
	if err != nil {
		return nil, err
	}
	return &swatchResult{SwatchResult: sw, Notations: names, Hex: hexes}, nil
}
