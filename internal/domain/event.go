package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

// FBPAbsent is the value a site sends in fbp when the browser has no _fbp cookie.
const FBPAbsent = "NA"

const ActionSourceWebsite = "website"

// InboundEvent is the body of POST /api/conversion. Fields are read leniently:
// a value of an unexpected JSON type is stringified, never rejected.
type InboundEvent struct {
	EventName      Text            `json:"event_name"`
	EventSourceURL Text            `json:"event_source_url"`
	UserData       UserData        `json:"user_data"`
	ExternalID     json.RawMessage `json:"external_id,omitempty"`
	FBP            Text            `json:"fbp"`
}

// UserData holds raw, not yet hashed PII. A truthy user_data that is not an
// object is present but carries no PII.
type UserData struct {
	Email     Text `json:"em"`
	Phone     Text `json:"ph"`
	FirstName Text `json:"fn"`
	LastName  Text `json:"ln"`

	present bool
}

func (u UserData) Present() bool {
	return u.present
}

func (u *UserData) UnmarshalJSON(data []byte) error {
	*u = UserData{}

	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		type plain UserData
		var p plain
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		*u = UserData(p)
		u.present = true
		return nil
	}

	var t Text
	if err := t.UnmarshalJSON(data); err != nil {
		return err
	}
	_, u.present = t.Value()
	return nil
}

// Text is a JSON value read as a string. JSON-falsy inputs ("", 0, false, null)
// leave it unset; objects and arrays keep their compact JSON text.
type Text struct {
	value string
	set   bool
}

func NewText(v string) Text {
	return Text{value: v, set: v != ""}
}

func (t Text) Value() (string, bool) {
	return t.value, t.set
}

// String is the value, or "" when unset.
func (t Text) String() string {
	return t.value
}

func (t *Text) UnmarshalJSON(data []byte) error {
	*t = Text{}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = NewText(s)
	case 't':
		*t = NewText("true")
	case 'f':
	case '{', '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, data); err != nil {
			return err
		}
		*t = NewText(buf.String())
	default:
		n, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return err
		}
		if n != 0 {
			*t = NewText(strconv.FormatFloat(n, 'f', -1, 64))
		}
	}
	return nil
}

// NormalizedUserData is the user_data object sent upstream. A nil pointer means
// the field was absent and is omitted from the JSON.
type NormalizedUserData struct {
	Email           *string         `json:"em,omitempty"`
	Phone           *string         `json:"ph,omitempty"`
	FirstName       *string         `json:"fn,omitempty"`
	LastName        *string         `json:"ln,omitempty"`
	ExternalID      json.RawMessage `json:"external_id,omitempty"`
	ClientIPAddress *string         `json:"client_ip_address,omitempty"`
	ClientUserAgent *string         `json:"client_user_agent,omitempty"`
	FBP             *string         `json:"fbp,omitempty"`
}

type ServerEvent struct {
	EventName      string             `json:"event_name"`
	EventTime      int64              `json:"event_time"`
	ActionSource   string             `json:"action_source"`
	EventSourceURL string             `json:"event_source_url"`
	UserData       NormalizedUserData `json:"user_data"`
}

// OutboundPayload is the request body of the conversions API. It always carries
// exactly one event.
type OutboundPayload struct {
	Data []ServerEvent `json:"data"`
}

// RequestMeta is what the relay learns about the caller from the HTTP request itself.
type RequestMeta struct {
	ClientIP   string
	UserAgent  string
	ReceivedAt time.Time
}
