package models

// ModelInfo describes a selectable model
type ModelInfo struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

// AzureModels is the catalog offered when the Azure OpenAI provider is used
var AzureModels = []ModelInfo{
	{ID: "gpt-4o-mini", Description: "Fast and cost-effective, great for most tasks"},
	{ID: "gpt-4o", Description: "Advanced reasoning and complex tasks"},
	{ID: "gpt-4", Description: "High-quality responses with deep understanding"},
	{ID: "gpt-35-turbo", Description: "Balanced performance and speed"},
	{ID: "gpt-35-turbo-16k", Description: "Extended context length support"},
}

// GeminiModels is the catalog offered when the Gemini provider is used
var GeminiModels = []ModelInfo{
	{ID: "gemini-2.5-flash", Description: "Fast and cost-effective, great for most tasks"},
	{ID: "gemini-2.5-pro", Description: "Advanced reasoning and complex tasks"},
	{ID: "gemini-2.0-flash", Description: "Balanced performance and speed"},
}

// FindModel looks up a model id in a catalog
func FindModel(catalog []ModelInfo, id string) (ModelInfo, bool) {
	for _, m := range catalog {
		if m.ID == id {
			return m, true
		}
	}
	return ModelInfo{}, false
}
