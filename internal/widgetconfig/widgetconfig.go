// Package widgetconfig resolves the configuration of a widget instance from
// the built-in defaults, the legacy nested default layout and the overlay
// returned by the configuration service.
package widgetconfig

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"

	"echo-widget/internal/model"
)

const (
	// AppearanceKey is the sub-object the legacy layout nests appearance fields under.
	AppearanceKey  = "appearance"
	placeholderKey = "inputPlaceholder"
)

// knownFields maps configuration keys to Config field names.
var knownFields = map[string]string{
	"webhookUrl":             "WebhookURL",
	"primaryColor":           "PrimaryColor",
	"textColor":              "TextColor",
	"botName":                "BotName",
	"welcomeMessage":         "WelcomeMessage",
	placeholderKey:           "InputPlaceholder",
	"inputTextColor":         "InputTextColor",
	"inputHighlightBoxColor": "InputHighlightBoxColor",
	"showBranding":           "ShowBranding",
	"position":               "Position",
}

var (
	validate *validator.Validate
	once     sync.Once
)

func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
		if err := RegisterValidations(validate); err != nil {
			panic(err)
		}
	})
	return validate
}

// Defaults returns the built-in configuration.
func Defaults() model.Config {
	return model.Config{
		WebhookURL:             "http://localhost:5678/webhook/chat",
		PrimaryColor:           "#003459",
		TextColor:              "#E6E1C5",
		BotName:                "Echo Bot",
		WelcomeMessage:         "Hi, I hope you are well, How can I help?",
		InputPlaceholder:       model.StaticPlaceholder("Ask your question..."),
		InputTextColor:         "#003459",
		InputHighlightBoxColor: "#003459",
		ShowBranding:           true,
		Position:               model.PositionBottomRight,
	}
}

// Merge folds layers left to right into one flat option set. Fields nested
// under "appearance" are lifted to the top level before the layer's own flat
// keys are applied, so a flat key beats its nested twin within one layer.
func Merge(layers ...model.Options) model.Options {
	out := model.Options{}
	for _, layer := range layers {
		if layer == nil {
			continue
		}
		if nested, ok := asMap(layer[AppearanceKey]); ok {
			for k, v := range nested {
				out[k] = v
			}
		}
		for k, v := range layer {
			if k == AppearanceKey {
				if _, ok := asMap(v); ok {
					continue
				}
			}
			out[k] = v
		}
	}
	return out
}

// CanonicalKeys returns a copy of opts with known option names matched
// case-insensitively and restored to their canonical spelling, including
// inside the appearance sub-object. Other keys are kept as they are.
func CanonicalKeys(opts map[string]any) model.Options {
	out := make(model.Options, len(opts))
	for k, v := range opts {
		key := canonicalKey(k)
		if key == AppearanceKey {
			if nested, ok := asMap(v); ok {
				v = map[string]any(CanonicalKeys(nested))
			}
		}
		out[key] = v
	}
	return out
}

func canonicalKey(k string) string {
	if strings.EqualFold(k, AppearanceKey) {
		return AppearanceKey
	}
	for name := range knownFields {
		if strings.EqualFold(k, name) {
			return name
		}
	}
	return k
}

// Layered applies each layer over defaults in order with Normalize.
func Layered(defaults model.Config, layers ...model.Options) model.Config {
	cfg := defaults
	for _, layer := range layers {
		cfg = Normalize(cfg, layer)
	}
	return cfg
}

// Normalize overlays a remote partial configuration on defaults. It never
// fails: a value that cannot be decoded or does not validate is dropped and
// the default is kept. Unknown keys are carried in Config.Extra.
func Normalize(defaults model.Config, overlay model.Options) model.Config {
	if overlay == nil {
		return defaults
	}

	cfg := defaults
	cfg.Extra = cloneExtra(defaults.Extra)

	for key, raw := range Merge(overlay) {
		field, known := knownFields[key]
		if !known {
			if cfg.Extra == nil {
				cfg.Extra = make(map[string]any)
			}
			cfg.Extra[key] = raw
			continue
		}
		if raw == nil {
			continue
		}
		if key == placeholderKey {
			cfg.InputPlaceholder = repairPlaceholder(raw, cfg.InputPlaceholder)
			continue
		}

		candidate := cfg
		if err := decodeField(&candidate, key, raw); err != nil {
			slog.Warn("Discarding config value with unexpected type", "key", key, "error", err)
			continue
		}
		if err := getValidator().StructPartial(candidate, field); err != nil {
			slog.Warn("Discarding invalid config value", "key", key, "value", raw, "error", err)
			continue
		}
		cfg = candidate
	}
	return cfg
}

// ParsePlaceholder turns a placeholder string into a Placeholder. A string
// holding a non-empty JSON array of strings is decoded into candidates;
// anything else, including an empty or malformed literal, stays a static
// string.
func ParsePlaceholder(s string) model.Placeholder {
	if list, ok := decodeArrayLiteral(s); ok {
		return model.Placeholder{Candidates: list}
	}
	return model.StaticPlaceholder(s)
}

func decodeArrayLiteral(s string) ([]string, bool) {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "[") || !strings.HasSuffix(trimmed, "]") {
		return nil, false
	}
	// Pointers tell a JSON null apart from an empty string.
	var items []*string
	if err := json.Unmarshal([]byte(trimmed), &items); err != nil {
		slog.Debug("Placeholder looks like an array but does not decode", "value", s, "error", err)
		return nil, false
	}
	if len(items) == 0 {
		return nil, false
	}
	list := make([]string, 0, len(items))
	for _, item := range items {
		if item == nil {
			return nil, false
		}
		list = append(list, *item)
	}
	return list, true
}

func repairPlaceholder(raw any, fallback model.Placeholder) model.Placeholder {
	switch v := raw.(type) {
	case string:
		if list, ok := decodeArrayLiteral(v); ok {
			return model.Placeholder{Candidates: list}
		}
		return model.StaticPlaceholder(v)
	case []string:
		if len(v) == 0 {
			return fallback
		}
		return model.Placeholder{Candidates: append([]string(nil), v...)}
	case []any:
		list := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				slog.Warn("Discarding placeholder list with non-string entry", "entry", item)
				return fallback
			}
			list = append(list, s)
		}
		if len(list) == 0 {
			return fallback
		}
		return model.Placeholder{Candidates: list}
	default:
		slog.Warn("Discarding placeholder with unexpected type", "type", fmt.Sprintf("%T", raw))
		return fallback
	}
}

func decodeField(cfg *model.Config, key string, raw any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  cfg,
		TagName: "mapstructure",
	})
	if err != nil {
		return err
	}
	return dec.Decode(map[string]any{key: raw})
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case model.Options:
		return m, true
	}
	return nil, false
}

func cloneExtra(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
