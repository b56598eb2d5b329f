package gemini

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/samber/lo"
	"google.golang.org/genai"

	apperrors "gemini-transcriber/internal/app/errors"
	"gemini-transcriber/internal/config"
)

// Client implements Service on top of the genai SDK.
type Client struct {
	client   *genai.Client
	mimeType string
}

type clientOptions struct {
	baseURL    string
	httpClient *http.Client
	mimeType   string
}

// Option configures a Client.
type Option func(*clientOptions)

// WithBaseURL points the client at another endpoint, mostly for tests.
func WithBaseURL(url string) Option {
	return func(o *clientOptions) { o.baseURL = url }
}

// WithHTTPClient replaces the SDK's default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(o *clientOptions) { o.httpClient = c }
}

// WithMIMEType skips content sniffing and declares the upload's type.
func WithMIMEType(mimeType string) Option {
	return func(o *clientOptions) { o.mimeType = mimeType }
}

// NewClient validates creds and opens a Gemini API session.
func NewClient(ctx context.Context, creds config.Credentials, opts ...Option) (*Client, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	var o clientOptions
	for _, opt := range opts {
		opt(&o)
	}

	cc := &genai.ClientConfig{
		APIKey:     creds.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: o.httpClient,
	}
	if o.baseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: o.baseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindConfig, "failed to create genai client")
	}
	return &Client{client: client, mimeType: o.mimeType}, nil
}

// NewFactory returns a Factory that opens a fresh Client on every call.
func NewFactory(creds config.Credentials, opts ...Option) Factory {
	return func(ctx context.Context) (Service, error) {
		c, err := NewClient(ctx, creds, opts...)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
}

// Upload sends the file through the Files API.
func (c *Client) Upload(ctx context.Context, path string) (UploadedFile, error) {
	mimeType, err := c.detectMIMEType(path)
	if err != nil {
		return UploadedFile{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return UploadedFile{}, err
	}
	defer f.Close()

	file, err := c.client.Files.Upload(ctx, f, &genai.UploadFileConfig{
		MIMEType:    mimeType,
		DisplayName: filepath.Base(path),
	})
	if err != nil {
		return UploadedFile{}, err
	}

	return NewUploadedFile(file.Name, file.URI, lo.CoalesceOrEmpty(file.MIMEType, mimeType)), nil
}

// Generate issues one generateContent call with the prompt followed by the file.
func (c *Client) Generate(ctx context.Context, model, prompt string, file UploadedFile) (Response, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(prompt),
			genai.NewPartFromURI(file.URI(), file.MIMEType()),
		}, genai.RoleUser),
	}

	resp, err := c.client.Models.GenerateContent(ctx, model, contents, nil)
	if err != nil {
		return Response{}, err
	}
	return NewResponse(responseText(resp)), nil
}

// Delete removes an uploaded file.
func (c *Client) Delete(ctx context.Context, name string) error {
	_, err := c.client.Files.Delete(ctx, name, nil)
	return err
}

func (c *Client) detectMIMEType(path string) (string, error) {
	if c.mimeType != "" {
		return c.mimeType, nil
	}
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return "", err
	}
	mimeType, _, _ := strings.Cut(mt.String(), ";")
	return mimeType, nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	return resp.Text()
}

// IsNotFound reports whether err is a 404 from the API, e.g. for a file that
// has already expired on the remote side.
func IsNotFound(err error) bool {
	var apiErr genai.APIError
	return errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound
}
