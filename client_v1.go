package tinify

import (
	"crypto/tls"
	"crypto/x509"
	_ "embed"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"runtime"
	"strings"
	"sync/atomic"

	"github.com/golang/glog"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/shestakovda/errx"
)

// apiUser is the fixed basic auth user name, the key is the password.
const apiUser = "api"

//go:embed data/cacert.pem
var bundledCerts []byte

var userAgent = fmt.Sprintf("Tinify/%s Go/%s (%s)",
	Version,
	strings.TrimPrefix(runtime.Version(), "go"),
	runtime.Compiler,
)

func newClientV1(key string, args []Option) (c *v1Client, err error) {
	var opts options

	if key = strings.TrimSpace(key); key == "" {
		return nil, ErrBadKey.WithStack()
	}

	if opts, err = getOpts(false, args); err != nil {
		return nil, err
	}

	c = &v1Client{
		key:      key,
		agent:    userAgent,
		debug:    opts.debug,
		endpoint: opts.endpoint,
	}

	if opts.appid != "" {
		c.agent += " " + opts.appid
	}

	rt := opts.transport

	if rt == nil {
		if rt, err = newTransport(&opts); err != nil {
			return nil, err
		}
	}

	c.http = &http.Client{
		Transport: rt,
		Timeout:   opts.timeout,
	}

	return c, nil
}

// newTransport builds the pooled HTTPS transport trusting only the bundle.
func newTransport(opts *options) (_ *http.Transport, err error) {
	pem := bundledCerts

	if opts.bundle != "" {
		if pem, err = os.ReadFile(opts.bundle); err != nil {
			return nil, ErrBadBundle.WithReason(err).WithDebug(errx.Debug{
				"path": opts.bundle,
			})
		}
	}

	pool := x509.NewCertPool()

	if !pool.AppendCertsFromPEM(pem) {
		return nil, ErrBadBundle.WithStack().WithDebug(errx.Debug{
			"path": opts.bundle,
		})
	}

	tr := cleanhttp.DefaultPooledTransport()
	tr.TLSClientConfig = &tls.Config{
		RootCAs:    pool,
		MinVersion: tls.VersionTLS12,
	}

	if opts.proxy != nil {
		tr.Proxy = http.ProxyURL(opts.proxy)
	}

	return tr, nil
}

type v1Client struct {
	key      string
	agent    string
	endpoint string
	debug    bool
	closed   atomic.Bool
	http     *http.Client
}

func (c *v1Client) resolve(ref string) string {
	if strings.HasPrefix(strings.ToLower(ref), "https://") {
		return ref
	}

	return c.endpoint + ref
}

func (c *v1Client) Request(method, ref string, body Body, args ...Option) (_ Response, err error) {
	var opts options
	var addr *url.URL
	var data io.Reader
	var mime string
	var reqs *http.Request
	var resp *http.Response

	if c.closed.Load() {
		return nil, ErrClosed.WithStack()
	}

	if method == "" {
		return nil, ErrBadRequest.WithStack()
	}

	if opts, err = getOpts(true, args); err != nil {
		return nil, err
	}

	if addr, err = url.Parse(c.resolve(ref)); err != nil {
		return nil, ErrBadURL.WithReason(err).WithDebug(errx.Debug{
			"url": ref,
		})
	}

	if data, mime, err = body.reader(); err != nil {
		return nil, err
	}

	if reqs, err = http.NewRequestWithContext(opts.ctx, strings.ToUpper(method), addr.String(), data); err != nil {
		return nil, ErrBadRequest.WithReason(err).WithDebug(errx.Debug{
			"method": method,
			"url":    addr.String(),
		})
	}

	opts.applyHeaders(reqs.Header)

	if mime != "" {
		reqs.Header.Set(HeaderContentType, mime)
	}

	reqs.SetBasicAuth(apiUser, c.key)
	reqs.Header.Set(HeaderUserAgent, c.agent)

	debug := c.debug || opts.debug || bool(glog.V(2))

	if debug {
		glog.Infof("tinify: %s %s", reqs.Method, reqs.URL)
	}

	if resp, err = c.http.Do(reqs); err != nil {
		if debug {
			glog.Infof("tinify: %s %s failed: %v", reqs.Method, reqs.URL, err)
		}

		return nil, newConnectionError(err)
	}

	res, err := newResponseV1(reqs, resp)
	if err != nil {
		return nil, err
	}

	if debug {
		glog.Infof("tinify: %s %s -> %d (%d bytes)", reqs.Method, reqs.URL, res.code, len(res.body))
	}

	if err = res.failure(); err != nil {
		return nil, err
	}

	return res, nil
}

func (c *v1Client) Close() error {
	if c.closed.Swap(true) {
		return nil
	}

	c.http.CloseIdleConnections()
	return nil
}
