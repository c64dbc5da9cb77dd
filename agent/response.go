package agent

import "github.com/spetersoncode/gipwrap/extract"

// Status values with defined meaning. Any other status ends the run like StatusDone.
const (
	StatusContinue = "continue"
	StatusDone     = "done"
)

// Response is one model turn read through the agent protocol.
// Fields are nil when the model's text did not carry them as strings.
type Response struct {
	Text      string
	Status    *string
	Message   *string
	Tool      *string
	ToolInput *string
}

// ParseResponse extracts the protocol fields from assistant text.
// It never fails; malformed text just yields missing fields.
func ParseResponse(text string) Response {
	return Response{
		Text:      text,
		Status:    field(text, "status"),
		Message:   field(text, "message"),
		Tool:      field(text, "tool"),
		ToolInput: field(text, "toolInput"),
	}
}

func field(text, key string) *string {
	v, ok := extract.Field(text, key)
	if !ok {
		return nil
	}
	return &v
}

// Continues reports whether the model asked for a tool call.
func (r Response) Continues() bool {
	return r.Status != nil && *r.Status == StatusContinue
}

// Done reports whether the model explicitly finished.
func (r Response) Done() bool {
	return r.Status != nil && *r.Status == StatusDone
}

// Freeform reports whether the text carried no status at all.
func (r Response) Freeform() bool {
	return r.Status == nil
}

// Final returns the text to emit when the run ends on this response:
// the message if present, even when empty, else the whole assistant text.
func (r Response) Final() string {
	if r.Message != nil {
		return *r.Message
	}
	return r.Text
}

func deref(s *string, placeholder string) string {
	if s == nil {
		return placeholder
	}
	return *s
}

func nonEmpty(s *string) bool {
	return s != nil && *s != ""
}
