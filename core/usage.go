package core

// Usage captures token accounting for one model call or a whole run.
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// Add returns the field-wise sum of u and other. A nil other contributes zero.
func (u Usage) Add(other *Usage) Usage {
	if other == nil {
		return u
	}
	return Usage{
		InputTokens:  u.InputTokens + other.InputTokens,
		OutputTokens: u.OutputTokens + other.OutputTokens,
		TotalTokens:  u.TotalTokens + other.TotalTokens,
	}
}
