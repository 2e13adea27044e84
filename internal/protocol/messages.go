package protocol

// Message type identifiers carried in every message's "type" field.
const (
	// Client -> Server
	TypeClassify = "classify"
	TypeCheck    = "check"

	// Server -> Client
	TypeClassifyResult = "classify_result"
	TypeCheckResult    = "check_result"
	TypeError          = "error"
)

// Error codes.
const (
	CodeBadRequest      = "bad_request"
	CodeInvalidCards    = "invalid_cards"
	CodeInvalidStreet   = "invalid_street"
	CodeUnknownStrategy = "unknown_strategy"
	CodeUnknownType     = "unknown_type"
)

// Client -> Server Messages

// Request asks the server to classify a board or gate a hand. Cards use
// the two-character form ("Ah", "Td"). Street is optional and inferred from
// the board size when empty.
type Request struct {
	Type     string   `msg:"type" json:"type"`
	ID       string   `msg:"id" json:"id,omitempty"`
	Board    []string `msg:"board" json:"board"`
	Hole     []string `msg:"hole" json:"hole,omitempty"`
	Street   string   `msg:"street" json:"street,omitempty"`
	Strategy string   `msg:"strategy" json:"strategy,omitempty"`
}

// Server -> Client Messages

// ClassifyResult describes a board.
type ClassifyResult struct {
	Type     string   `msg:"type" json:"type"`
	ID       string   `msg:"id" json:"id,omitempty"`
	Street   string   `msg:"street" json:"street"`
	Features []string `msg:"features" json:"features"`
	Texture  string   `msg:"texture" json:"texture"`
	Tier     string   `msg:"tier" json:"tier"`
	Wetness  string   `msg:"wetness" json:"wetness"`
	AceHigh  bool     `msg:"ace_high" json:"ace_high"`
	TJQK     bool     `msg:"tjqk" json:"tjqk"`
	Required string   `msg:"required" json:"required"`
}

// CheckResult is the gate decision for one hand.
type CheckResult struct {
	Type       string `msg:"type" json:"type"`
	ID         string `msg:"id" json:"id,omitempty"`
	Strategy   string `msg:"strategy" json:"strategy"`
	Street     string `msg:"street" json:"street"`
	Texture    string `msg:"texture" json:"texture"`
	Tier       string `msg:"tier" json:"tier"`
	Required   string `msg:"required" json:"required"`
	Score      string `msg:"score" json:"score,omitempty"`
	GoodEnough bool   `msg:"good_enough" json:"good_enough"`
}

// Error reports a rejected request.
type Error struct {
	Type    string `msg:"type" json:"type"`
	ID      string `msg:"id" json:"id,omitempty"`
	Code    string `msg:"code" json:"code"`
	Message string `msg:"message" json:"message"`
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Message
}

// NewError builds an error message for request id.
func NewError(id, code, message string) *Error {
	return &Error{Type: TypeError, ID: id, Code: code, Message: message}
}
