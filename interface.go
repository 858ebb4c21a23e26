// Package tinify is a client for the Tinify image optimization API.
//
// A Client holds the authenticated connection context and performs exactly
// one HTTPS request per call, without retries. Failed requests are reported
// as *Error values classified by Kind.
package tinify

import (
	"net/http"

	"github.com/shestakovda/errx"
)

// Version of the client library, sent in the User-Agent header.
const Version = "1.6.0"

const (
	APIEndpoint = "https://api.tinify.com"

	HeaderLocation         = "Location"
	HeaderUserAgent        = "User-Agent"
	HeaderAuthorization    = "Authorization"
	HeaderImageWidth       = "Image-Width"
	HeaderImageHeight      = "Image-Height"
	HeaderContentType      = "Content-Type"
	HeaderContentLength    = "Content-Length"
	HeaderCompressionCount = "Compression-Count"

	MimeJSON = "application/json; charset=utf-8"
)

// NewClient creates the connection context for the secret API key.
func NewClient(key string, args ...Option) (Client, error) {
	c, err := newClientV1(key, args)
	if err != nil {
		return nil, err
	}

	return c, nil
}

// Client dispatches authenticated requests to the API.
type Client interface {
	// Request sends a single request. The url is used as is when it starts
	// with https://, otherwise it is treated as a path on the API endpoint.
	Request(method, url string, body Body, args ...Option) (Response, error)

	// Close releases the pooled connections. It is safe to call repeatedly.
	Close() error
}

// Response is a successful (status below 400) API response with the body
// already read.
type Response interface {
	URL() string
	Code() int
	Body() []byte
	Text() string
	Header() http.Header
	JSON(interface{}) error
}

// Option configures a client in NewClient or a single call in Request.
type Option func(*options) error

var (
	ErrBadKey      = errx.New("Provide an API key")
	ErrBadURL      = errx.New("Invalid request address")
	ErrBadBody     = errx.New("Invalid request body")
	ErrBadFile     = errx.New("Invalid file")
	ErrBadBundle   = errx.New("Invalid certificate bundle")
	ErrBadOption   = errx.New("Invalid option value")
	ErrBadRequest  = errx.New("Invalid request data")
	ErrBadResponse = errx.New("Invalid response data")
	ErrClosed      = errx.New("Client is closed")
)
