package reply

import (
	"context"
	"fmt"
	"strings"

	"github.com/osteele/liquid"
)

// replyTemplate is the fixed Liquid document rendered by the deterministic
// strategy. The email body itself is intentionally never included in the
// output; the customer's input is only echoed through the category and
// sentiment interpretation.
const replyTemplate = `Subject: Re: {{ subject }}

Hi,

{{ opening }} {{ category_note }}{{ product_line }}

**What I'll do next**
- {{ urgency_line }}
- Create a ticket and track progress until resolution.

**Action items (to accelerate resolution)**
{{ action_items }}

If there's anything else we should consider (browser, environment, steps tried), please reply and I'll tailor the fix.

Best regards,
Support Team
`

// TemplateDrafter renders the fixed reply template. It is fully offline,
// requires no configuration, and produces identical output for identical
// input. Safe for concurrent use.
type TemplateDrafter struct {
	tmpl *liquid.Template
}

// NewTemplateDrafter parses the built-in template. The template is a
// compile-time constant, so a parse failure is a programmer error and
// panics, mirroring regexp.MustCompile.
func NewTemplateDrafter() *TemplateDrafter {
	tmpl, err := liquid.NewEngine().ParseString(replyTemplate)
	if err != nil {
		panic(fmt.Sprintf("reply: parse template: %v", err))
	}
	return &TemplateDrafter{tmpl: tmpl}
}

// Draft composes the reply document. It fails fast with an ErrUnknown*
// sentinel when any label falls outside its known enumeration.
func (d *TemplateDrafter) Draft(_ context.Context, req DraftRequest) (string, error) {
	open, err := opening(req.Sentiment)
	if err != nil {
		return "", err
	}
	note, err := categoryNote(req.Category)
	if err != nil {
		return "", err
	}
	items, err := actionItems(req.Category)
	if err != nil {
		return "", err
	}
	urgency, err := urgencyLine(req.Priority)
	if err != nil {
		return "", err
	}

	productLine := ""
	if req.ProductHint != "" {
		productLine = fmt.Sprintf("\n• Referenced product: **%s**", req.ProductHint)
	}

	bullets := make([]string, len(items))
	for i, item := range items {
		bullets[i] = "  - " + item
	}

	out, err := d.tmpl.RenderString(map[string]any{
		"subject":       req.Subject,
		"opening":       open,
		"category_note": note,
		"product_line":  productLine,
		"urgency_line":  urgency,
		"action_items":  strings.Join(bullets, "\n"),
	})
	if err != nil {
		return "", fmt.Errorf("reply: render template: %w", err)
	}
	return out, nil
}
