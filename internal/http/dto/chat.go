package dto

type ChatRequest struct {
	// SessionID continues an existing conversation. Empty starts a new one.
	SessionID string        `json:"session_id,omitempty"`
	Message   string        `json:"message" binding:"required,min=1"`
	Settings  *ChatSettings `json:"settings,omitempty"`
}

// ChatSettings override per-session completion settings. Absent fields leave
// the current values untouched.
type ChatSettings struct {
	Temperature   *float64 `json:"temperature,omitempty" binding:"omitempty,gte=0,lte=1"`
	TopP          *float64 `json:"top_p,omitempty" binding:"omitempty,gt=0,lte=1"`
	MaxTokens     *int     `json:"max_tokens,omitempty" binding:"omitempty,gte=1,lte=8192"`
	KeepPairs     *int     `json:"keep_pairs,omitempty" binding:"omitempty,gte=2,lte=50"`
	GlobalContext *string  `json:"global_context,omitempty"`
}

type ChatResponse struct {
	SessionID int64  `json:"session_id,string"`
	Reply     string `json:"reply"`
}
