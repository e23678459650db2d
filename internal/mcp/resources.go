package mcp

// Resource defines an MCP resource
type Resource struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MimeType    string `json:"mimeType,omitempty"`
}

// ResourceDefinitions lists all available resources
var ResourceDefinitions = []Resource{
	{
		URI:         "perfume://catalog",
		Name:        "Catalog Summary",
		Description: "Perfume counts by gender and price tier",
		MimeType:    "text/plain",
	},
	{
		URI:         "perfume://brands",
		Name:        "Brands",
		Description: "All brands in the catalog with their perfumes",
		MimeType:    "text/plain",
	},
	{
		URI:         "perfume://notes",
		Name:        "Scent Notes",
		Description: "Every scent note found in the catalog",
		MimeType:    "text/plain",
	},
	{
		URI:         "perfume://survey-stats",
		Name:        "Quiz Statistics",
		Description: "Aggregate answers from the find-your-perfume quiz",
		MimeType:    "text/plain",
	},
}

// resourcesListResult is the response for resources/list
type resourcesListResult struct {
	Resources []Resource `json:"resources"`
}

// readResourceParams is the params for resources/read
type readResourceParams struct {
	URI string `json:"uri"`
}

// readResourceResult is the response for resources/read
type readResourceResult struct {
	Contents []resourceContent `json:"contents"`
}

type resourceContent struct {
	URI      string `json:"uri"`
	MimeType string `json:"mimeType,omitempty"`
	Text     string `json:"text,omitempty"`
}
