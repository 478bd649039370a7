package config

type ModelInfo struct {
	ID          string
	Name        string
	Description string
}

var Models = []ModelInfo{
	{
		ID:          "claude-3-5-sonnet-20241022",
		Name:        "Claude 3.5 Sonnet (Oct 2024)",
		Description: "Best balance of quality and speed",
	},
	{
		ID:          "claude-3-5-sonnet-20240620",
		Name:        "Claude 3.5 Sonnet (Jun 2024)",
		Description: "Previous 3.5 Sonnet snapshot",
	},
	{
		ID:          "claude-3-7-sonnet-20250219",
		Name:        "Claude 3.7 Sonnet",
		Description: "Newest, strongest writing",
	},
}

var DefaultModel = Models[0].ID

func GetModel(id string) *ModelInfo {
	for _, m := range Models {
		if m.ID == id {
			return &m
		}
	}
	return nil
}
