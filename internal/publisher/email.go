package publisher

import (
	"context"
	"fmt"
	"html"
	"net/smtp"
	"strings"

	"github.com/ryosukesatoh/wp-monitor/internal/summarizer"
)

// EmailPublisher sends the run report as an HTML email via SMTP.
type EmailPublisher struct {
	host     string
	port     int
	username string
	password string
	from     string
	to       []string
}

func NewEmailPublisher(host string, port int, username, password, from string, to []string) *EmailPublisher {
	return &EmailPublisher{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		to:       to,
	}
}

func (p *EmailPublisher) Publish(_ context.Context, report *summarizer.Report) error {
	subject := fmt.Sprintf("WordPress Monitor: %d change(s) on %s - %s",
		len(report.Changes), report.SiteURL, report.Date.Format("2006-01-02"))
	body := buildHTMLBody(report)

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		p.from,
		strings.Join(p.to, ","),
		subject,
		body,
	)

	addr := fmt.Sprintf("%s:%d", p.host, p.port)
	auth := smtp.PlainAuth("", p.username, p.password, p.host)

	if err := smtp.SendMail(addr, auth, p.from, p.to, []byte(msg)); err != nil {
		return fmt.Errorf("email: failed to send: %w", err)
	}

	return nil
}

func buildHTMLBody(report *summarizer.Report) string {
	var sb strings.Builder

	sb.WriteString(`<!DOCTYPE html><html><head><style>
body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; max-width: 700px; margin: 0 auto; padding: 20px; color: #333; }
h1 { color: #1a1a2e; border-bottom: 2px solid #21759b; padding-bottom: 10px; }
.change { border: 1px solid #ddd; border-radius: 8px; padding: 12px; margin-bottom: 12px; }
.change h3 { margin-top: 0; color: #0f3460; }
.meta { color: #666; font-size: 0.9em; }
.metrics { background: #f0f0f0; padding: 15px; border-radius: 8px; margin-bottom: 20px; }
.summary { background: #fffbe6; padding: 15px; border-radius: 8px; white-space: pre-wrap; }
</style></head><body>`)

	sb.WriteString(fmt.Sprintf("<h1>WordPress Monitor: %s</h1>", html.EscapeString(report.SiteURL)))
	sb.WriteString(fmt.Sprintf("<p><em>%s</em></p>", report.Date.Format("January 2, 2006")))

	if snap := report.Metrics; snap != nil {
		sb.WriteString(`<div class="metrics">`)
		sb.WriteString(fmt.Sprintf("<strong>Inventory:</strong> %d posts, %d pages, %d comments",
			snap.PostCount, snap.PageCount, snap.CommentCount))
		if snap.Traffic != nil && snap.Traffic.Available {
			sb.WriteString(fmt.Sprintf("<br><strong>Traffic trend:</strong> %s (%+.2f%%)",
				snap.Traffic.Trend, snap.Traffic.ChangePct))
		}
		sb.WriteString("</div>")
	}

	for _, c := range report.Changes {
		sb.WriteString(`<div class="change">`)
		sb.WriteString(fmt.Sprintf(`<h3>[%s] <a href="%s">%s</a></h3>`,
			c.Type, c.Link, html.EscapeString(c.Title)))
		if c.OldModified != "" {
			sb.WriteString(fmt.Sprintf(`<div class="meta">Modified %s (was %s)</div>`, c.Modified, c.OldModified))
		} else {
			sb.WriteString(fmt.Sprintf(`<div class="meta">Modified %s</div>`, c.Modified))
		}
		sb.WriteString("</div>")
	}

	if report.Summary != "" {
		sb.WriteString(fmt.Sprintf(`<div class="summary"><strong>Claude summary</strong><br>%s</div>`,
			html.EscapeString(report.Summary)))
	}

	sb.WriteString("</body></html>")
	return sb.String()
}
