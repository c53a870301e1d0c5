package api

// Error codes
const (
	ErrInvalidRequest    = "INVALID_REQUEST"
	ErrInvalidContent    = "INVALID_CONTENT_TYPE"
	ErrInvalidFEN        = "INVALID_FEN"
	ErrNotFound          = "NOT_FOUND"
	ErrRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
	ErrSearchAborted     = "SEARCH_ABORTED"
	ErrInternalError     = "INTERNAL_ERROR"
)

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}

// EvaluateRequest asks for the best move in a position. Depth is optional and
// falls back to the server default. With Play set the server keeps playing
// both sides until the game ends or the ply limit is hit.
type EvaluateRequest struct {
	FEN   string `json:"fen" form:"fen" query:"fen" validate:"required,max=128"`
	Depth *int   `json:"depth,omitempty" form:"depth" query:"depth" validate:"omitempty,min=0,max=20"`
	Play  bool   `json:"play,omitempty" form:"play" query:"play"`
}

// EvaluateResponse is returned when the client accepts JSON.
type EvaluateResponse struct {
	Move      string   `json:"move"`
	Score     int      `json:"score"`
	Depth     int      `json:"depth"`
	Nodes     uint64   `json:"nodes"`
	ElapsedMs int64    `json:"elapsed_ms"`
	Moves     []string `json:"moves,omitempty"`
	FEN       string   `json:"fen,omitempty"`
}
