package tinify

import (
	"context"
	"errors"
	"net/http"
	"os"

	"github.com/shestakovda/errx"
)

const shrinkPath = "/shrink"

// Resize methods.
const (
	ResizeScale = "scale"
	ResizeFit   = "fit"
	ResizeCover = "cover"
	ResizeThumb = "thumb"
)

// Metadata kept by Preserve.
const (
	PreserveCopyright = "copyright"
	PreserveCreation  = "creation"
	PreserveLocation  = "location"
)

type ResizeOptions struct {
	Method string `json:"method"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// ConvertOptions lists acceptable media types, the smallest one wins.
// "*/*" lets the service pick.
type ConvertOptions struct {
	Type []string `json:"type"`
}

// TransformOptions fills transparent areas when converting, either a hex
// color or "white" or "black".
type TransformOptions struct {
	Background string `json:"background"`
}

// StoreOptions saves the result directly to a cloud bucket. Service is
// "s3" or "gcs".
type StoreOptions struct {
	Service            string            `json:"service"`
	Path               string            `json:"path"`
	Region             string            `json:"region,omitempty"`
	AWSAccessKeyID     string            `json:"aws_access_key_id,omitempty"`
	AWSSecretAccessKey string            `json:"aws_secret_access_key,omitempty"`
	GCPAccessToken     string            `json:"gcp_access_token,omitempty"`
	Headers            map[string]string `json:"headers,omitempty"`
}

// Validate checks the key of the client with an empty shrink request.
// The service rejects the empty input, which proves the key is accepted.
func Validate(ctx context.Context, c Client) error {
	var e *Error

	_, err := c.Request(http.MethodPost, shrinkPath, NoBody(), Context(ctx))

	if errors.As(err, &e) {
		if e.Kind == KindClient || (e.Kind == KindAccount && e.Status == http.StatusTooManyRequests) {
			return nil
		}
	}

	return err
}

// FromBuffer uploads image data and returns the compressed source.
func FromBuffer(ctx context.Context, c Client, data []byte) (*Source, error) {
	res, err := c.Request(http.MethodPost, shrinkPath, RawBody(data), Context(ctx))
	if err != nil {
		return nil, err
	}

	return newSource(c, res)
}

func FromFile(ctx context.Context, c Client, path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ErrBadFile.WithReason(err).WithDebug(errx.Debug{
			"path": path,
		})
	}

	return FromBuffer(ctx, c, data)
}

// FromURL lets the service download the image from a public address.
func FromURL(ctx context.Context, c Client, addr string) (*Source, error) {
	body := JSONBody(map[string]interface{}{
		"source": map[string]string{"url": addr},
	})

	res, err := c.Request(http.MethodPost, shrinkPath, body, Context(ctx))
	if err != nil {
		return nil, err
	}

	return newSource(c, res)
}

func newSource(c Client, res Response) (*Source, error) {
	loc := res.Header().Get(HeaderLocation)

	if loc == "" {
		return nil, ErrBadResponse.WithStack().WithDebug(errx.Debug{
			"code": res.Code(),
			"url":  res.URL(),
		})
	}

	return &Source{client: c, url: loc}, nil
}

// Source is a compressed image stored by the service. It is immutable,
// every command returns a new Source.
type Source struct {
	client   Client
	url      string
	commands map[string]interface{}
}

func (s *Source) URL() string { return s.url }

func (s *Source) with(name string, value interface{}) *Source {
	commands := make(map[string]interface{}, len(s.commands)+1)

	for k, v := range s.commands {
		commands[k] = v
	}

	commands[name] = value

	return &Source{client: s.client, url: s.url, commands: commands}
}

func (s *Source) Preserve(meta ...string) *Source {
	if len(meta) == 0 {
		return s
	}

	return s.with("preserve", meta)
}

func (s *Source) Resize(opts ResizeOptions) *Source { return s.with("resize", opts) }

func (s *Source) Convert(opts ConvertOptions) *Source { return s.with("convert", opts) }

func (s *Source) Transform(opts TransformOptions) *Source { return s.with("transform", opts) }

// Store saves the result to cloud storage instead of downloading it.
func (s *Source) Store(ctx context.Context, opts StoreOptions) (*ResultMeta, error) {
	res, err := s.client.Request(http.MethodPost, s.url, JSONBody(s.with("store", opts).commands), Context(ctx))
	if err != nil {
		return nil, err
	}

	return &ResultMeta{head: res.Header()}, nil
}

// Result downloads the image, applying the commands if there are any.
func (s *Source) Result(ctx context.Context) (*Result, error) {
	method := http.MethodGet

	if len(s.commands) > 0 {
		method = http.MethodPost
	}

	res, err := s.client.Request(method, s.url, JSONBody(s.commands), Context(ctx))
	if err != nil {
		return nil, err
	}

	return &Result{ResultMeta: ResultMeta{head: res.Header()}, data: res.Body()}, nil
}

func (s *Source) ToBuffer(ctx context.Context) ([]byte, error) {
	r, err := s.Result(ctx)
	if err != nil {
		return nil, err
	}

	return r.ToBuffer(), nil
}

func (s *Source) ToFile(ctx context.Context, path string) error {
	r, err := s.Result(ctx)
	if err != nil {
		return err
	}

	return r.ToFile(path)
}
