// Package widget builds the embeddable storefront voice widget.
package widget

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"regexp"
	"unicode/utf8"
)

// DefaultScriptURL is where the widget loader is served from.
const DefaultScriptURL = "https://widget.zibda.ai/embed.js"

// MaxGreetingLength bounds the greeting in characters.
const MaxGreetingLength = 200

var ErrInvalidConfig = errors.New("invalid widget configuration")

// Config is a merchant's widget appearance and behaviour.
type Config struct {
	Theme        string `json:"theme"`
	PrimaryColor string `json:"primaryColor"`
	Position     string `json:"position"`
	Greeting     string `json:"greeting"`
	ShowAvatar   bool   `json:"showAvatar"`
	Language     string `json:"language"`
}

// DefaultConfig returns the configuration offered to new merchants.
func DefaultConfig() Config {
	return Config{
		Theme:        "light",
		PrimaryColor: "#8B5CF6",
		Position:     "bottom-right",
		Greeting:     "مرحباً! كيف يمكنني مساعدتك؟",
		ShowAvatar:   true,
		Language:     "ar",
	}
}

var (
	hexColor  = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
	themes    = map[string]bool{"light": true, "dark": true}
	positions = map[string]bool{"bottom-right": true, "bottom-left": true, "top-right": true, "top-left": true}
	languages = map[string]bool{"en": true, "ar": true}
)

// ValidationError names the offending field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidConfig }

// Validate checks every field against its allowed values.
func (c Config) Validate() error {
	switch {
	case !themes[c.Theme]:
		return &ValidationError{"theme", "must be light or dark"}
	case !hexColor.MatchString(c.PrimaryColor):
		return &ValidationError{"primaryColor", "must be a hex colour such as #8B5CF6"}
	case !positions[c.Position]:
		return &ValidationError{"position", "must be one of bottom-right, bottom-left, top-right, top-left"}
	case utf8.RuneCountInString(c.Greeting) > MaxGreetingLength:
		return &ValidationError{"greeting", fmt.Sprintf("must be at most %d characters", MaxGreetingLength)}
	case !languages[c.Language]:
		return &ValidationError{"language", "must be en or ar"}
	}
	return nil
}

var snippetTemplate = template.Must(template.New("snippet").Parse(`<!-- Zibda Voice Shopping Widget -->
<script>
  window.ZibdaConfig = {
    merchantId: {{.MerchantID}},
    theme: {{.Theme}},
    primaryColor: {{.PrimaryColor}},
    position: {{.Position}},
    greeting: {{.Greeting}},
    showAvatar: {{.ShowAvatar}},
    language: {{.Language}}
  };
</script>
<script src="{{.ScriptURL}}" async></script>
`))

// Snippet renders the HTML a merchant pastes into their site.
func Snippet(merchantID string, cfg Config, scriptURL string) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	if scriptURL == "" {
		scriptURL = DefaultScriptURL
	}
	data := struct {
		Config
		MerchantID string
		ScriptURL  string
	}{cfg, merchantID, scriptURL}

	var buf bytes.Buffer
	if err := snippetTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render widget snippet: %w", err)
	}
	return buf.String(), nil
}
