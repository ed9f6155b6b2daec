package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

var templates = map[string]*template.Template{
	TemplateWelcome: template.Must(template.New(TemplateWelcome).Parse(`
<p>Hi {{.Username}},</p>
<p>Welcome to EcoFinds! Your account is ready. Browse second-hand finds or
list something of your own, every reused item keeps waste out of landfills.</p>
`)),
	TemplateOrderConfirmation: template.Must(template.New(TemplateOrderConfirmation).Parse(`
<p>Hi {{.Username}},</p>
<p>Thanks for your order <strong>{{.OrderID}}</strong>.</p>
<p>{{.ItemCount}} item(s), total <strong>{{.TotalAmount}}</strong>.</p>
<p>You can review your purchase history any time from your dashboard.</p>
`)),
}

var subjects = map[string]string{
	TemplateWelcome:           "Welcome to EcoFinds",
	TemplateOrderConfirmation: "Your EcoFinds order confirmation",
}

// Render produces the subject and HTML body for a named template.
func Render(name string, data map[string]any) (subject, html string, err error) {
	tpl, ok := templates[name]
	if !ok {
		return "", "", fmt.Errorf("unknown email template %q", name)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", "", err
	}
	return subjects[name], buf.String(), nil
}
