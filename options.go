package tinify

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shestakovda/errx"
)

func getOpts(request bool, args []Option) (o options, err error) {
	o.ctx = context.Background()
	o.request = request
	o.endpoint = APIEndpoint
	o.addhead = make(http.Header, 4)
	o.sethead = make(http.Header, 4)

	for i := range args {
		if args[i] == nil {
			return o, ErrBadOption.WithStack().WithDebug(errx.Debug{
				"index": i,
			})
		}

		if err = args[i](&o); err != nil {
			return
		}
	}

	return o, nil
}

type options struct {
	// Set when the options are applied to a single Request call.
	request bool

	ctx     context.Context
	debug   bool
	addhead http.Header
	sethead http.Header

	appid     string
	bundle    string
	endpoint  string
	proxy     *url.URL
	timeout   time.Duration
	transport http.RoundTripper
}

// clientOnly rejects connection context settings inside a Request call,
// the context is immutable once created.
func (o *options) clientOnly(name string) error {
	if o.request {
		return ErrBadOption.WithStack().WithDebug(errx.Debug{
			"option": name,
		})
	}

	return nil
}

func (o *options) applyHeaders(h http.Header) {
	for name, values := range o.addhead {
		for i := range values {
			h.Add(name, values[i])
		}
	}

	for name := range o.sethead {
		h.Set(name, o.sethead.Get(name))
	}
}

// AppIdentifier appends the caller's application name to the User-Agent.
func AppIdentifier(id string) Option {
	return func(o *options) (err error) {
		if err = o.clientOnly("AppIdentifier"); err != nil {
			return
		}

		if id = strings.TrimSpace(id); id == "" {
			return ErrBadOption.WithStack()
		}

		o.appid = id
		return nil
	}
}

// CABundle replaces the embedded trust store with a PEM bundle on disk.
func CABundle(path string) Option {
	return func(o *options) (err error) {
		if err = o.clientOnly("CABundle"); err != nil {
			return
		}

		if path == "" {
			return ErrBadOption.WithStack()
		}

		o.bundle = path
		return nil
	}
}

// Proxy routes every request through the HTTP proxy at the given address.
func Proxy(addr string) Option {
	return func(o *options) (err error) {
		if err = o.clientOnly("Proxy"); err != nil {
			return
		}

		if o.proxy, err = url.Parse(addr); err != nil {
			return ErrBadOption.WithReason(err)
		}

		if o.proxy.Scheme == "" || o.proxy.Host == "" {
			return ErrBadOption.WithStack().WithDebug(errx.Debug{
				"proxy": addr,
			})
		}

		return nil
	}
}

// Timeout bounds every request of the client, connection and body included.
func Timeout(d time.Duration) Option {
	return func(o *options) (err error) {
		if err = o.clientOnly("Timeout"); err != nil {
			return
		}

		if d < 0 {
			return ErrBadOption.WithStack()
		}

		o.timeout = d
		return nil
	}
}

// Endpoint replaces the API origin used to resolve relative paths.
func Endpoint(base string) Option {
	return func(o *options) (err error) {
		var u *url.URL

		if err = o.clientOnly("Endpoint"); err != nil {
			return
		}

		if u, err = url.ParseRequestURI(base); err != nil {
			return ErrBadURL.WithReason(err)
		}

		o.endpoint = strings.TrimSuffix(u.String(), "/")
		return nil
	}
}

// Transport replaces the pooled HTTPS transport. The trust store and proxy
// settings are not applied to a custom transport.
func Transport(rt http.RoundTripper) Option {
	return func(o *options) (err error) {
		if err = o.clientOnly("Transport"); err != nil {
			return
		}

		if rt == nil {
			return ErrBadOption.WithStack()
		}

		o.transport = rt
		return nil
	}
}

// fixedHeader rejects headers owned by the connection context.
func fixedHeader(name string) error {
	if name == "" {
		return ErrBadOption.WithStack()
	}

	switch http.CanonicalHeaderKey(name) {
	case HeaderUserAgent, HeaderAuthorization:
		return ErrBadOption.WithStack().WithDebug(errx.Debug{
			"header": name,
		})
	}

	return nil
}

func Header(name, value string) Option {
	return func(o *options) (err error) {
		if err = fixedHeader(name); err != nil {
			return
		}

		o.addhead.Add(name, value)
		return nil
	}
}

func ReplaceHeader(name, value string) Option {
	return func(o *options) (err error) {
		if err = fixedHeader(name); err != nil {
			return
		}

		o.sethead.Set(name, value)
		return nil
	}
}

// Debug logs requests and responses regardless of the glog verbosity.
func Debug() Option {
	return func(o *options) error {
		o.debug = true
		return nil
	}
}

func Context(ctx context.Context) Option {
	return func(o *options) error {
		if ctx == nil {
			return ErrBadOption.WithStack()
		}

		o.ctx = ctx
		return nil
	}
}
