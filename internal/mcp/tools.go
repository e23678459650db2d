package mcp

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

var genderSchema = map[string]interface{}{
	"type":        "string",
	"enum":        []string{"male", "female", "unisex"},
	"description": "Target gender. Unisex perfumes are always included.",
}

// ToolDefinitions contains all available MCP tools
var ToolDefinitions = []Tool{
	{
		Name:        "list_perfumes",
		Description: "List perfumes from the catalog with optional filters, in catalog order.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"gender": genderSchema,
				"brand": map[string]interface{}{
					"type":        "string",
					"description": "Filter by brand name (case-insensitive exact match)",
				},
				"max_price": map[string]interface{}{
					"type":        "number",
					"description": "Only include perfumes at or below this price",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of results to return (default: 20)",
				},
			},
		},
	},
	{
		Name:        "get_perfume",
		Description: "Get full details of a perfume including notes, characteristics and ratings.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"id": map[string]interface{}{
					"type":        "string",
					"description": "Perfume ID, e.g. 'oud-wood'",
				},
			},
			"required": []string{"id"},
		},
	},
	{
		Name:        "search_perfumes",
		Description: "Search perfumes by name, brand, description or scent note.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Search query text",
				},
			},
			"required": []string{"query"},
		},
	},
	{
		Name:        "find_perfumes_by_notes",
		Description: "Find perfumes containing any of the given scent notes, best matches first.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"notes": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Scent notes to look for, e.g. ['vanilla', 'oud']",
				},
				"gender": genderSchema,
			},
			"required": []string{"notes"},
		},
	},
}
