package api

// SourceType classifies where a retrieval result came from.
type SourceType string

const (
	SourceText  SourceType = "text"
	SourceTable SourceType = "table"
	SourceImage SourceType = "image"
	SourceWeb   SourceType = "web"
)

// ParseSourceType maps a wire value onto the closed set of source types.
// Unknown values fall back to text so rendering stays total.
func ParseSourceType(s string) SourceType {
	switch SourceType(s) {
	case SourceText, SourceTable, SourceImage, SourceWeb:
		return SourceType(s)
	default:
		return SourceText
	}
}

// Confidence buckets a retrieval score for display.
type Confidence string

const (
	ConfidenceHigh   Confidence = "High"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceLow    Confidence = "Low"
)

// SourceRef is a single retrieval result returned by the backend.
type SourceRef struct {
	Type    SourceType `json:"type"`
	Score   *float64   `json:"score,omitempty"`
	Page    *int       `json:"page,omitempty"`
	Source  string     `json:"source,omitempty"`
	Content string     `json:"content"`
}

// Confidence derives the display bucket from the score. A missing score is
// treated as zero. Computed at render time, never stored.
func (s SourceRef) Confidence() Confidence {
	score := 0.0
	if s.Score != nil {
		score = *s.Score
	}
	switch {
	case score >= 0.7:
		return ConfidenceHigh
	case score >= 0.5:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// QueryRequest is the body of POST /api/v1/query.
type QueryRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k"`
}

// QueryResponse is the backend's answer to a query.
type QueryResponse struct {
	Success       bool        `json:"success"`
	Query         string      `json:"query"`
	Answer        string      `json:"answer"`
	Sources       []SourceRef `json:"sources"`
	UsedWebSearch bool        `json:"used_web_search"`
	Error         string      `json:"error,omitempty"`
}

// UploadResponse is returned after a document upload. The client does not
// depend on any particular field being present.
type UploadResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Filename string `json:"filename"`
}

// errorBody is the backend's structured error payload.
type errorBody struct {
	Detail string `json:"detail"`
}
