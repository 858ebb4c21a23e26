package tinify

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/shestakovda/errx"
)

// newResponseV1 reads the whole body. The compression counter is updated
// before anything else, failed responses carry it too.
func newResponseV1(req *http.Request, res *http.Response) (r *v1Response, err error) {
	r = &v1Response{
		base: req,
		head: res.Header,
		code: res.StatusCode,
	}

	updateCompressionCount(res.Header.Get(HeaderCompressionCount))

	if res.Body != nil {
		defer res.Body.Close()

		if r.body, err = io.ReadAll(res.Body); err != nil {
			return nil, newConnectionError(err)
		}
	}

	return r, nil
}

type v1Response struct {
	code int
	body []byte
	head http.Header
	base *http.Request
}

func (r v1Response) URL() string         { return r.base.URL.String() }
func (r v1Response) Code() int           { return r.code }
func (r v1Response) Body() []byte        { return r.body }
func (r v1Response) Text() string        { return string(r.body) }
func (r v1Response) Header() http.Header { return r.head }
func (r v1Response) JSON(item interface{}) (err error) {
	if err = json.Unmarshal(r.body, item); err != nil {
		return ErrBadResponse.WithReason(err).WithDebug(errx.Debug{
			"body": string(r.body),
		})
	}

	return nil
}

type errorDetails struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// failure classifies responses with status 400 and above.
func (r v1Response) failure() error {
	var details errorDetails

	if r.code < http.StatusBadRequest {
		return nil
	}

	if err := json.Unmarshal(r.body, &details); err != nil {
		return newStatusError(fmt.Sprintf("Error while parsing response: %s", err), ParseError, r.code, err)
	}

	return newStatusError(details.Message, details.Error, r.code, nil)
}
