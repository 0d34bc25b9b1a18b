package mailer

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2/clientcredentials"
)

const (
	graphBase  = "https://graph.microsoft.com/v1.0"
	graphScope = "https://graph.microsoft.com/.default"
)

type GraphConfig struct {
	TenantID     string
	ClientID     string
	ClientSecret string
	Mailbox      string
	Timeout      time.Duration
	// TokenURL and BaseURL override the Microsoft endpoints.
	TokenURL string
	BaseURL  string
}

// GraphClient creates Outlook drafts through Microsoft Graph with an
// application (client credentials) token.
type GraphClient struct {
	http    *http.Client
	base    string
	mailbox string
}

func NewGraphClient(ctx context.Context, cfg GraphConfig) (*GraphClient, error) {
	if cfg.Mailbox == "" {
		return nil, fmt.Errorf("outlook mailbox is required")
	}

	tokenURL := cfg.TokenURL
	if tokenURL == "" {
		tokenURL = fmt.Sprintf("https://login.microsoftonline.com/%s/oauth2/v2.0/token", url.PathEscape(cfg.TenantID))
	}

	base := cfg.BaseURL
	if base == "" {
		base = graphBase
	}

	cc := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     tokenURL,
		Scopes:       []string{graphScope},
	}

	client := cc.Client(ctx)
	client.Timeout = cfg.Timeout

	return &GraphClient{http: client, base: base, mailbox: cfg.Mailbox}, nil
}

type Attachment struct {
	Name string
	Data []byte
}

type Draft struct {
	Subject    string
	Body       string
	To         []string
	CC         []string
	Attachment *Attachment
}

// Message is the subset of a Graph message we keep.
type Message struct {
	ID      string `json:"id"`
	Subject string `json:"subject"`
	WebLink string `json:"webLink"`
}

type recipient struct {
	EmailAddress struct {
		Address string `json:"address"`
	} `json:"emailAddress"`
}

func recipients(addrs []string) []recipient {
	out := make([]recipient, 0, len(addrs))

	for _, a := range addrs {
		var r recipient
		r.EmailAddress.Address = a
		out = append(out, r)
	}

	return out
}

type messagePayload struct {
	Subject string `json:"subject"`
	Body    struct {
		ContentType string `json:"contentType"`
		Content     string `json:"content"`
	} `json:"body"`
	ToRecipients []recipient `json:"toRecipients"`
	CCRecipients []recipient `json:"ccRecipients"`
	Importance   string      `json:"importance"`
}

type attachmentPayload struct {
	ODataType    string `json:"@odata.type"`
	Name         string `json:"name"`
	ContentType  string `json:"contentType"`
	ContentBytes string `json:"contentBytes"`
}

// CreateDraft saves a draft in the mailbox, attaches the PDF and returns
// the final message.
func (c *GraphClient) CreateDraft(ctx context.Context, d Draft) (*Message, error) {
	p := messagePayload{
		Subject:      d.Subject,
		ToRecipients: recipients(d.To),
		CCRecipients: recipients(d.CC),
		Importance:   "Normal",
	}
	p.Body.ContentType = "Text"
	p.Body.Content = d.Body

	messages := fmt.Sprintf("%s/users/%s/messages", c.base, url.PathEscape(c.mailbox))

	var msg Message
	if err := c.do(ctx, http.MethodPost, messages, p, &msg); err != nil {
		return nil, fmt.Errorf("creating draft: %w", err)
	}

	if d.Attachment == nil {
		return &msg, nil
	}

	att := attachmentPayload{
		ODataType:    "#microsoft.graph.fileAttachment",
		Name:         d.Attachment.Name,
		ContentType:  "application/pdf",
		ContentBytes: base64.StdEncoding.EncodeToString(d.Attachment.Data),
	}

	msgURL := messages + "/" + url.PathEscape(msg.ID)

	if err := c.do(ctx, http.MethodPost, msgURL+"/attachments", att, nil); err != nil {
		return nil, fmt.Errorf("attaching %s: %w", d.Attachment.Name, err)
	}

	var final Message
	if err := c.do(ctx, http.MethodGet, msgURL, nil, &final); err != nil {
		return nil, fmt.Errorf("fetching draft: %w", err)
	}

	return &final, nil
}

func (c *GraphClient) do(ctx context.Context, method, target string, body, out any) error {
	var reader io.Reader

	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}

		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("graph returned %d: %s", resp.StatusCode, bytes.TrimSpace(detail))
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}
