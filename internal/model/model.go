package model

import (
	"encoding/json"
	"time"
)

// Role identifies who authored a transcript entry.
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleBot
}

// Message stores a single entry of a widget transcript.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Error     bool      `json:"error,omitempty"` // Set on the apology shown after a failed dispatch.
	Timestamp time.Time `json:"timestamp"`
}

// Transcript is a read-only view of a conversation, including the transient
// pending entry when a dispatch is outstanding.
type Transcript struct {
	Messages []Message `json:"messages"`
	Pending  *Message  `json:"pending,omitempty"`
}

// Options is a raw, partially specified configuration as it arrives from the
// configuration service or from a config file.
type Options map[string]any

// Position is the corner of the host page the widget is anchored to.
type Position string

const (
	PositionBottomRight Position = "bottom-right"
	PositionBottomLeft  Position = "bottom-left"
)

// Placeholder is the input placeholder. It is either a single static string
// or an ordered list of candidates that are animated in turn.
type Placeholder struct {
	Text       string
	Candidates []string
}

// StaticPlaceholder returns a placeholder holding a single string.
func StaticPlaceholder(s string) Placeholder {
	return Placeholder{Text: s}
}

// Animated reports whether the placeholder carries a candidate list.
func (p Placeholder) Animated() bool {
	return len(p.Candidates) > 0
}

// Static returns the string to show when no animation runs.
func (p Placeholder) Static() string {
	if p.Animated() {
		return p.Candidates[0]
	}
	return p.Text
}

func (p Placeholder) MarshalJSON() ([]byte, error) {
	if p.Animated() {
		return json.Marshal(p.Candidates)
	}
	return json.Marshal(p.Text)
}

func (p *Placeholder) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*p = Placeholder{Candidates: list}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*p = Placeholder{Text: s}
	return nil
}

// Config is the resolved appearance and behaviour of one widget instance.
// It is built once by the normalizer and treated as immutable afterwards.
type Config struct {
	WebhookURL             string      `json:"webhookUrl" mapstructure:"webhookUrl" validate:"required,url"`
	PrimaryColor           string      `json:"primaryColor" mapstructure:"primaryColor" validate:"csscolor"`
	TextColor              string      `json:"textColor" mapstructure:"textColor" validate:"csscolor"`
	BotName                string      `json:"botName" mapstructure:"botName"`
	WelcomeMessage         string      `json:"welcomeMessage" mapstructure:"welcomeMessage"`
	InputPlaceholder       Placeholder `json:"inputPlaceholder" mapstructure:"inputPlaceholder"`
	InputTextColor         string      `json:"inputTextColor" mapstructure:"inputTextColor" validate:"csscolor"`
	InputHighlightBoxColor string      `json:"inputHighlightBoxColor" mapstructure:"inputHighlightBoxColor" validate:"csscolor"`
	ShowBranding           bool        `json:"showBranding" mapstructure:"showBranding"`
	Position               Position    `json:"position" mapstructure:"position" validate:"oneof=bottom-right bottom-left"`

	// Extra keeps overlay keys this version does not know about.
	Extra map[string]any `json:"-" mapstructure:"-"`
}

// MarshalJSON flattens Extra next to the known fields. Known fields win on a
// name clash.
func (c Config) MarshalJSON() ([]byte, error) {
	type plain Config
	known, err := json.Marshal(plain(c))
	if err != nil {
		return nil, err
	}
	if len(c.Extra) == 0 {
		return known, nil
	}
	out := make(map[string]any, len(c.Extra)+10)
	for k, v := range c.Extra {
		out[k] = v
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(known, &fields); err != nil {
		return nil, err
	}
	for k, v := range fields {
		out[k] = v
	}
	return json.Marshal(out)
}

// CachedConfig is a configuration overlay kept for a record id so that
// several widget instances of one brand do not each refetch it.
type CachedConfig struct {
	RecordID  string    `json:"record_id"`
	Overlay   Options   `json:"overlay"`
	FetchedAt time.Time `json:"fetched_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the entry is stale at now.
func (c *CachedConfig) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

// ResolvedConfig is a configuration together with where it came from.
type ResolvedConfig struct {
	RecordID string `json:"user_record_id,omitempty"`
	Source   string `json:"source"`
	Config   Config `json:"config"`
}

// SessionView is the state of a widget instance as shown to clients.
type SessionView struct {
	ID         string     `json:"id"`
	RecordID   string     `json:"user_record_id,omitempty"`
	Config     Config     `json:"config"`
	Transcript Transcript `json:"transcript"`
	Busy       bool       `json:"busy"`
}

// PlaceholderFrame is one step of the input placeholder animation. Static
// frames carry a placeholder that does not animate.
type PlaceholderFrame struct {
	Text   string `json:"text"`
	Static bool   `json:"static,omitempty"`
}
