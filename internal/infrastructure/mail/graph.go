package mail

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/opsdesk/backend/internal/application/mailroom"
	"github.com/opsdesk/backend/internal/domain/setting"
	infraconfig "github.com/opsdesk/backend/internal/infrastructure/config"
)

const (
	// maxMailResponseSize caps response reads; attachment payloads are base64
	// encoded and can run tens of megabytes
	maxMailResponseSize = 50 * 1024 * 1024
	// tokenExpirySlack refreshes tokens this long before the exp claim
	tokenExpirySlack = 60 * time.Second
	// fileAttachmentType marks downloadable file attachments in the API payload
	fileAttachmentType = "#microsoft.graph.fileAttachment"
)

// Ensure GraphMailboxClient satisfies the poller port
var _ mailroom.MailboxClient = (*GraphMailboxClient)(nil)

// GraphMailboxClient reads the shared support mailbox through a
// Microsoft-Graph-style REST API using OAuth2 client credentials.
// The mailbox address prefers the mail_poll_mailbox setting so operators can
// repoint the poller without a restart.
type GraphMailboxClient struct {
	cfg         *infraconfig.MailboxConfig
	settingRepo setting.Repository
	httpClient  *http.Client
	logger      *zap.Logger

	mu       sync.Mutex
	token    string
	tokenExp time.Time
}

// NewGraphMailboxClient creates a mailbox client from configuration
func NewGraphMailboxClient(cfg *infraconfig.MailboxConfig, settingRepo setting.Repository, logger *zap.Logger) (*GraphMailboxClient, error) {
	if cfg == nil {
		return nil, errors.New("mailbox configuration is required")
	}
	if cfg.ClientID == "" {
		return nil, errors.New("mailbox client id is required")
	}
	if cfg.ClientSecret == "" {
		return nil, errors.New("mailbox client secret is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &GraphMailboxClient{
		cfg:         cfg,
		settingRepo: settingRepo,
		httpClient:  &http.Client{Timeout: cfg.HTTPTimeout},
		logger:      logger,
	}, nil
}

// FetchUnread returns up to limit unread inbox messages, newest first
func (c *GraphMailboxClient) FetchUnread(ctx context.Context, limit int) ([]mailroom.MailMessage, error) {
	address, err := c.mailboxAddress(ctx)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("$filter", "isRead eq false")
	q.Set("$orderby", "receivedDateTime desc")
	q.Set("$top", strconv.Itoa(limit))
	q.Set("$select", "id,subject,from,receivedDateTime,hasAttachments,body")

	path := fmt.Sprintf("/users/%s/mailFolders/Inbox/messages", url.PathEscape(address))
	body, err := c.get(ctx, path, q)
	if err != nil {
		return nil, err
	}

	var list graphMessageList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("mailbox message list: %w", err)
	}

	messages := make([]mailroom.MailMessage, 0, len(list.Value))
	for _, gm := range list.Value {
		messages = append(messages, mailroom.MailMessage{
			ID:             gm.ID,
			Sender:         strings.ToLower(strings.TrimSpace(gm.From.EmailAddress.Address)),
			SenderName:     gm.From.EmailAddress.Name,
			Subject:        gm.Subject,
			BodyHTML:       gm.Body.Content,
			ReceivedAt:     gm.ReceivedDateTime,
			HasAttachments: gm.HasAttachments,
		})
	}
	return messages, nil
}

// FetchAttachments returns the file attachments of a message.
// Item and reference attachments carry no downloadable content and are skipped.
func (c *GraphMailboxClient) FetchAttachments(ctx context.Context, messageID string) ([]mailroom.MailAttachment, error) {
	address, err := c.mailboxAddress(ctx)
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/users/%s/messages/%s/attachments", url.PathEscape(address), url.PathEscape(messageID))
	body, err := c.get(ctx, path, nil)
	if err != nil {
		return nil, err
	}

	var list graphAttachmentList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("mailbox attachment list: %w", err)
	}

	attachments := make([]mailroom.MailAttachment, 0, len(list.Value))
	for _, ga := range list.Value {
		if ga.ODataType != fileAttachmentType {
			continue
		}
		data, err := base64.StdEncoding.DecodeString(ga.ContentBytes)
		if err != nil {
			c.logger.Warn("skipping attachment with undecodable content",
				zap.String("message_id", messageID),
				zap.String("file_name", ga.Name),
				zap.Error(err))
			continue
		}
		attachments = append(attachments, mailroom.MailAttachment{
			FileName:    ga.Name,
			ContentType: ga.ContentType,
			Data:        data,
		})
	}
	return attachments, nil
}

// MarkRead flags the message as read in the mailbox
func (c *GraphMailboxClient) MarkRead(ctx context.Context, messageID string) error {
	address, err := c.mailboxAddress(ctx)
	if err != nil {
		return err
	}
	token, err := c.accessToken(ctx)
	if err != nil {
		return err
	}

	u := fmt.Sprintf("%s/users/%s/messages/%s",
		strings.TrimRight(c.cfg.BaseURL, "/"), url.PathEscape(address), url.PathEscape(messageID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, u, strings.NewReader(`{"isRead": true}`))
	if err != nil {
		return fmt.Errorf("mailbox request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mailbox request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("mailbox mark read failed: HTTP %d", resp.StatusCode)
	}
	return nil
}

// get performs an authenticated GET against the mailbox API
func (c *GraphMailboxClient) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	u := strings.TrimRight(c.cfg.BaseURL, "/") + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("mailbox request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mailbox request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxMailResponseSize))
	if err != nil {
		return nil, fmt.Errorf("mailbox response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("mailbox request failed: HTTP %d", resp.StatusCode)
	}
	return body, nil
}

// accessToken returns a cached token, minting a new one when the cached token
// is within tokenExpirySlack of expiry
func (c *GraphMailboxClient) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Now().Before(c.tokenExp.Add(-tokenExpirySlack)) {
		return c.token, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)
	form.Set("scope", c.tokenScope())

	tokenURL := fmt.Sprintf("%s/%s/oauth2/v2.0/token",
		strings.TrimRight(c.cfg.LoginURL, "/"), url.PathEscape(c.cfg.TenantID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("mailbox token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("mailbox token request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxMailResponseSize))
	if err != nil {
		return "", fmt.Errorf("mailbox token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("mailbox token request failed: HTTP %d", resp.StatusCode)
	}

	var tok tokenResponse
	if err := json.Unmarshal(body, &tok); err != nil {
		return "", fmt.Errorf("mailbox token response: %w", err)
	}
	if tok.AccessToken == "" {
		return "", errors.New("mailbox token response missing access_token")
	}

	c.token = tok.AccessToken
	c.tokenExp = tokenExpiry(tok)
	c.logger.Debug("mailbox token refreshed", zap.Time("expires_at", c.tokenExp))
	return c.token, nil
}

// tokenScope derives the OAuth scope from the API base URL
func (c *GraphMailboxClient) tokenScope() string {
	u, err := url.Parse(c.cfg.BaseURL)
	if err != nil || u.Host == "" {
		return "https://graph.microsoft.com/.default"
	}
	return fmt.Sprintf("%s://%s/.default", u.Scheme, u.Host)
}

// mailboxAddress resolves the mailbox user, preferring the runtime setting
func (c *GraphMailboxClient) mailboxAddress(ctx context.Context) (string, error) {
	addr := c.cfg.Address
	if c.settingRepo != nil {
		if v, err := c.settingRepo.GetValue(ctx, setting.KeyMailboxAddress, addr); err == nil && v != "" {
			addr = v
		}
	}
	if addr == "" {
		return "", errors.New("mailbox address is not configured")
	}
	return addr, nil
}

// tokenExpiry reads the exp claim from the token without verifying the
// signature, falling back to the expires_in hint
func tokenExpiry(tok tokenResponse) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok.AccessToken, claims); err == nil {
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			return exp.Time
		}
	}
	if tok.ExpiresIn > 0 {
		return time.Now().Add(time.Duration(tok.ExpiresIn) * time.Second)
	}
	return time.Now().Add(5 * time.Minute)
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

type graphMessageList struct {
	Value []graphMessage `json:"value"`
}

type graphMessage struct {
	ID               string         `json:"id"`
	Subject          string         `json:"subject"`
	From             graphRecipient `json:"from"`
	ReceivedDateTime time.Time      `json:"receivedDateTime"`
	HasAttachments   bool           `json:"hasAttachments"`
	Body             graphItemBody  `json:"body"`
}

type graphRecipient struct {
	EmailAddress graphEmailAddress `json:"emailAddress"`
}

type graphEmailAddress struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

type graphItemBody struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

type graphAttachmentList struct {
	Value []graphAttachment `json:"value"`
}

type graphAttachment struct {
	ODataType    string `json:"@odata.type"`
	Name         string `json:"name"`
	ContentType  string `json:"contentType"`
	ContentBytes string `json:"contentBytes"`
}
