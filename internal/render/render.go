// Package render produces the HTML of a widget instance: the floating
// button, the panel with its transcript and the input.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"echo-widget/internal/model"
	"echo-widget/internal/widgetconfig"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// fallbackColor is used for a color that does not validate.
const fallbackColor = "inherit"

// View is everything needed to draw one widget instance.
type View struct {
	SessionID         string
	Config            model.Config
	Messages          []model.Message
	Pending           *model.Message
	Busy              bool
	PlaceholderStream string // URL of the placeholder frame stream; empty for a static placeholder.
}

// Position returns the CSS modifier for the widget's corner.
func (v View) Position() model.Position {
	if v.Config.Position == model.PositionBottomLeft {
		return model.PositionBottomLeft
	}
	return model.PositionBottomRight
}

// Renderer draws widget views.
type Renderer struct {
	markdown bool
	tmpl     *template.Template
}

var (
	validate *validator.Validate
	once     sync.Once
)

func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
		if err := widgetconfig.RegisterValidations(validate); err != nil {
			panic(err)
		}
	})
	return validate
}

// NewRenderer creates a Renderer. With markdown set, bot replies are
// rendered as markdown with raw HTML dropped.
func NewRenderer(markdown bool) (*Renderer, error) {
	r := &Renderer{markdown: markdown}
	tmpl, err := template.New("widget").Funcs(template.FuncMap{
		"color": cssColor,
		"reply": r.reply,
	}).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse widget template: %w", err)
	}
	r.tmpl = tmpl
	return r, nil
}

// Widget writes the HTML of v to w.
func (r *Renderer) Widget(w io.Writer, v View) error {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "widget", v); err != nil {
		return fmt.Errorf("failed to render widget: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}

func (r *Renderer) reply(m model.Message) template.HTML {
	if !r.markdown || m.Role != model.RoleBot || m.Error {
		return template.HTML(template.HTMLEscapeString(m.Content))
	}
	return Markdown(m.Content)
}

// Markdown converts a reply to HTML. Raw HTML in the source is skipped and
// only safe link schemes are kept.
func Markdown(src string) template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.NoEmptyLineBeforeBlock)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{
		Flags: mdhtml.CommonFlags | mdhtml.SkipHTML | mdhtml.Safelink | mdhtml.NofollowLinks | mdhtml.HrefTargetBlank,
	})
	return template.HTML(bytes.TrimSpace(markdown.ToHTML([]byte(src), p, renderer)))
}

// cssColor lets a validated color through the CSS context unescaped. The
// normalizer already rejects bad colors; this covers views built by hand.
func cssColor(c string) template.CSS {
	if c == "" || getValidator().Var(c, widgetconfig.ColorTag) != nil {
		return template.CSS(fallbackColor)
	}
	return template.CSS(c)
}
