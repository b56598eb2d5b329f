package gemini

import "context"

// UploadedFile is a reference to audio held by the remote service.
// The service owns the bytes; this process only refers to them.
type UploadedFile struct {
	name     string
	uri      string
	mimeType string
}

// NewUploadedFile builds a reference from the fields the Files API returns.
func NewUploadedFile(name, uri, mimeType string) UploadedFile {
	return UploadedFile{name: name, uri: uri, mimeType: mimeType}
}

// Name is the resource name used for deletion, e.g. "files/abc123".
func (f UploadedFile) Name() string { return f.name }

// URI is what generation requests point at.
func (f UploadedFile) URI() string { return f.uri }

func (f UploadedFile) MIMEType() string { return f.mimeType }

// Response is the result of one generation request.
type Response struct {
	text string
}

func NewResponse(text string) Response {
	return Response{text: text}
}

// Text is the primary textual output; empty when the model returned none.
func (r Response) Text() string { return r.text }

// Service is the remote boundary the transcriber depends on.
type Service interface {
	// Upload sends the file at path and returns a reference to it.
	Upload(ctx context.Context, path string) (UploadedFile, error)
	// Generate sends the ordered parts (prompt, file) to model.
	Generate(ctx context.Context, model, prompt string, file UploadedFile) (Response, error)
	// Delete removes a previously uploaded file by resource name.
	Delete(ctx context.Context, name string) error
}

// Factory opens a new session. The transcriber calls it once per run.
type Factory func(ctx context.Context) (Service, error)
