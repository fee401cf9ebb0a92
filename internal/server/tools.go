package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// Shared property schemas.
var (
	notationsProp = map[string]interface{}{
		"type":        "array",
		"items":       map[string]interface{}{"type": "string"},
		"description": "Munsell notations such as \"5PB 2/4\" or \"N 5/0\"",
	}
	fixProp = map[string]interface{}{
		"type":        "boolean",
		"description": "Replace out-of-gamut notations with the nearest realizable one instead of reporting an error. Default false",
		"default":     false,
	}
	strictProp = map[string]interface{}{
		"type":        "boolean",
		"description": "Fail the whole call if any element fails, instead of reporting errors per element. Default false",
		"default":     false,
	}
	stepsProp = map[string]interface{}{
		"type":        "integer",
		"description": "Number of steps to apply. Default 1",
		"default":     1,
	}
	pathProp = map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
)

func objectSchema(props map[string]interface{}, required ...string) map[string]interface{} {
	schema := map[string]interface{}{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Notation Model
		{
			Name:        "mnsl_parse",
			Description: "Parse Munsell notations, returning the canonical form, the hue/value/chroma components, the position on the 40 step hue circle and whether the reference table lists the colour.",
			InputSchema: objectSchema(map[string]interface{}{
				"notations": notationsProp,
			}, "notations"),
		},
		{
			Name:        "mnsl_hues",
			Description: "List the 40 standard hue names in hue circle order, from 2.5R to 10RP.",
			InputSchema: objectSchema(map[string]interface{}{}),
		},

		// Gamut
		{
			Name:        "mnsl_in_gamut",
			Description: "Check whether notations are realizable (listed in the reference table). With fix, out-of-gamut notations are replaced by the nearest realizable notation.",
			InputSchema: objectSchema(map[string]interface{}{
				"notations": notationsProp,
				"fix":       fixProp,
				"strict":    strictProp,
			}, "notations"),
		},

		// Nearest match
		{
			Name:        "mnsl_nearest",
			Description: "Find the reference notation nearest to each CIE LUV coordinate (Euclidean distance). Ties go to the earlier table entry.",
			InputSchema: objectSchema(map[string]interface{}{
				"coords": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type":     "array",
						"items":    map[string]interface{}{"type": "number"},
						"minItems": 3,
						"maxItems": 3,
					},
					"description": "LUV coordinates as [L, u, v], L in 0-100",
				},
			}, "coords"),
		},
		{
			Name:        "mnsl_from_rgb",
			Description: "Find the reference notation nearest to sRGB colours given as hex strings or 0-255 triples.",
			InputSchema: objectSchema(map[string]interface{}{
				"hex": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Colours as \"#RRGGBB\" or \"#RGB\"",
				},
				"rgb": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type":     "array",
						"items":    map[string]interface{}{"type": "integer", "minimum": 0, "maximum": 255},
						"minItems": 3,
						"maxItems": 3,
					},
					"description": "Colours as [R, G, B] with components 0-255",
				},
			}),
		},
		{
			Name:        "mnsl_to_hex",
			Description: "Convert notations to \"#RRGGBB\" sRGB hex. Colours outside sRGB are clipped.",
			InputSchema: objectSchema(map[string]interface{}{
				"notations": notationsProp,
				"fix":       fixProp,
				"strict":    strictProp,
			}, "notations"),
		},

		// Arithmetic
		{
			Name:        "mnsl_lighter",
			Description: "Raise value by steps. No gamut check is made; use mnsl_in_gamut on the result if needed.",
			InputSchema: objectSchema(map[string]interface{}{
				"notations": notationsProp,
				"steps":     stepsProp,
			}, "notations"),
		},
		{
			Name:        "mnsl_darker",
			Description: "Lower value by steps. No gamut check is made.",
			InputSchema: objectSchema(map[string]interface{}{
				"notations": notationsProp,
				"steps":     stepsProp,
			}, "notations"),
		},
		{
			Name:        "mnsl_saturate",
			Description: "Raise chroma by 2 per step. No gamut check is made.",
			InputSchema: objectSchema(map[string]interface{}{
				"notations": notationsProp,
				"steps":     stepsProp,
			}, "notations"),
		},
		{
			Name:        "mnsl_desaturate",
			Description: "Lower chroma by 2 per step. No gamut check is made; a negative chroma is reported as is.",
			InputSchema: objectSchema(map[string]interface{}{
				"notations": notationsProp,
				"steps":     stepsProp,
			}, "notations"),
		},
		{
			Name:        "mnsl_complement",
			Description: "Move every hue to the opposite side of the hue circle (5PB -> 5Y), keeping value and chroma, then check the result against the gamut.",
			InputSchema: objectSchema(map[string]interface{}{
				"notations": notationsProp,
				"fix":       fixProp,
				"strict":    strictProp,
			}, "notations"),
		},
		{
			Name:        "mnsl_rotate_hue",
			Description: "Rotate hues by steps of 2.5 on the 40 step hue circle, then check the result against the gamut.",
			InputSchema: objectSchema(map[string]interface{}{
				"notations": notationsProp,
				"steps":     stepsProp,
				"direction": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"rygbp", "pbgyr"},
					"description": "rygbp rotates R towards YR, pbgyr rotates R towards RP. Default rygbp",
					"default":     "rygbp",
				},
				"fix":    fixProp,
				"strict": strictProp,
			}, "notations"),
		},
		{
			Name:        "mnsl_text_colour",
			Description: "Pick black or white text for readability on each notation.",
			InputSchema: objectSchema(map[string]interface{}{
				"notations": notationsProp,
			}, "notations"),
		},

		// Sequences
		{
			Name:        "mnsl_seq",
			Description: "Generate n notations evenly spaced in LUV between two reference notations, endpoints included.",
			InputSchema: objectSchema(map[string]interface{}{
				"from": map[string]interface{}{
					"type":        "string",
					"description": "Start notation; must be in the reference table",
				},
				"to": map[string]interface{}{
					"type":        "string",
					"description": "End notation; must be in the reference table",
				},
				"n": map[string]interface{}{
					"type":        "integer",
					"description": "Number of colours, from 2 to 1024",
					"minimum":     2,
				},
			}, "from", "to", "n"),
		},

		// Images
		{
			Name:        "mnsl_sample_image",
			Description: "Report the nearest Munsell notation for pixels of an image file.",
			InputSchema: objectSchema(map[string]interface{}{
				"path": pathProp,
				"points": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"x":     map[string]interface{}{"type": "integer"},
							"y":     map[string]interface{}{"type": "integer"},
							"label": map[string]interface{}{"type": "string"},
						},
						"required": []string{"x", "y"},
					},
					"description": "Pixel coordinates (0-based from top-left) with optional labels",
				},
			}, "path", "points"),
		},
		{
			Name:        "mnsl_image_palette",
			Description: "Extract the dominant Munsell notations of an image file or a region of it.",
			InputSchema: objectSchema(map[string]interface{}{
				"path": pathProp,
				"count": map[string]interface{}{
					"type":        "integer",
					"description": "Number of notations to return. Default 5",
					"default":     5,
				},
				"region": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"x1": map[string]interface{}{"type": "integer"},
						"y1": map[string]interface{}{"type": "integer"},
						"x2": map[string]interface{}{"type": "integer"},
						"y2": map[string]interface{}{"type": "integer"},
					},
					"required":    []string{"x1", "y1", "x2", "y2"},
					"description": "Optional region; (x1,y1) inclusive, (x2,y2) exclusive",
				},
			}, "path"),
		},
		{
			Name:        "mnsl_swatch",
			Description: "Render notations as a PNG swatch grid and return it base64 encoded.",
			InputSchema: objectSchema(map[string]interface{}{
				"notations": notationsProp,
				"fix":       fixProp,
				"cell": map[string]interface{}{
					"type":        "integer",
					"description": "Edge length of each swatch cell in pixels. Default 32",
					"default":     32,
				},
				"columns": map[string]interface{}{
					"type":        "integer",
					"description": "Cells per row. Default: all on one row",
				},
			}, "notations"),
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
