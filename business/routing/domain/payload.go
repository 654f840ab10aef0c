package domain

// EntryFunctionPayload is a ready-to-sign Move entry-function call in
// the shape wallet adapters expect.
type EntryFunctionPayload struct {
	Type          string   `json:"type"`
	Function      string   `json:"function"`
	TypeArguments []string `json:"type_arguments"`
	Arguments     []any    `json:"arguments"`
}

// SwapResult is what executeSwap reports back to the caller. Failures
// are values here, never panics.
type SwapResult struct {
	Success bool                  `json:"success"`
	Payload *EntryFunctionPayload `json:"payload,omitempty"`
	Error   string                `json:"error,omitempty"`
}
