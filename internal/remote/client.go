package remote

import (
	"context"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/Rorical/missionchat/internal/models"
)

const (
	UploadPath = "/api/mission/upload"
	AskPath    = "/api/mission/ask"
	ResetPath  = "/api/mission/reset"

	DefaultTimeout = 120 * time.Second
)

// AskRequest is the JSON body of an ask call
type AskRequest struct {
	Question  string `json:"question"`
	SessionID string `json:"sessionId"`
}

// AskResponse is the JSON body of a successful ask call
type AskResponse struct {
	Answer string `json:"answer"`
}

// ResetRequest is the JSON body of a reset call
type ResetRequest struct {
	SessionID string `json:"sessionId"`
}

// messageBody captures the description carried by error responses.
type messageBody struct {
	Answer  string `json:"answer"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (m *messageBody) text() string {
	if m == nil {
		return ""
	}
	for _, s := range []string{m.Message, m.Answer, m.Error} {
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return ""
}

// Client talks to the mission service over HTTP
type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &Client{logger: logger}
	c.http = resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("User-Agent", "missionchat/1.0").
		SetLogger(logger.Sugar()).
		OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
			c.logger.Debug("mission call",
				zap.String("method", resp.Request.Method),
				zap.String("url", resp.Request.URL),
				zap.Int("status", resp.StatusCode()),
				zap.Duration("took", resp.Time()))
			return nil
		})

	return c
}

// Ingest uploads the document bytes as multipart field "file".
func (c *Client) Ingest(ctx context.Context, doc models.Document) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetFile("file", doc.Path).
		SetError(&messageBody{}).
		Post(UploadPath)
	return c.check("Upload", resp, err)
}

// Ask sends a question for the given session and returns the answer text.
// An empty answer is returned as-is; callers decide on a fallback.
func (c *Client) Ask(ctx context.Context, question, sessionID string) (string, error) {
	result := &AskResponse{}
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(AskRequest{Question: question, SessionID: sessionID}).
		SetResult(result).
		SetError(&messageBody{}).
		Post(AskPath)
	if err := c.check("Request", resp, err); err != nil {
		return "", err
	}
	return result.Answer, nil
}

// Reset clears the server-side conversation memory of the session.
func (c *Client) Reset(ctx context.Context, sessionID string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("sessionId", sessionID).
		SetBody(ResetRequest{SessionID: sessionID}).
		SetError(&messageBody{}).
		Post(ResetPath)
	return c.check("Reset", resp, err)
}

func (c *Client) check(op string, resp *resty.Response, err error) error {
	if err != nil {
		c.logger.Warn("mission call failed", zap.String("op", op), zap.Error(err))
		return &TransportError{Op: op, Err: err}
	}
	if resp.IsSuccess() {
		return nil
	}

	statusErr := &StatusError{Op: op, StatusCode: resp.StatusCode()}
	if body, ok := resp.Error().(*messageBody); ok {
		statusErr.Message = body.text()
	}
	c.logger.Warn("mission call rejected", zap.String("op", op), zap.Int("status", statusErr.StatusCode))
	return statusErr
}
