package anthropic

import (
	"io"
	"net/http"
	"net/http/httputil"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/polychat/polychat/log"
)

type stringReadCloser struct {
	io.Reader
}

func (stringReadCloser) Close() error {
	return nil
}

// Middleware dumps request/response at trace level and short-circuits the
// call with dryrunContent when dryRun is set.
func Middleware(dryRun bool, dryrunContent string) option.Middleware {
	return func(req *http.Request, next option.MiddlewareNext) (*http.Response, error) {
		logger := log.GetLogger(req.Context())
		start := time.Now()

		if logger.IsTrace() {
			reqData, _ := httputil.DumpRequest(req, true)
			logger.Debugf(">>>REQUEST:\n%s\n", string(reqData))
		}

		var resp *http.Response
		var err error

		if dryRun {
			resp = &http.Response{
				StatusCode: 200,
				Header:     http.Header{"Content-Type": []string{"application/json"}},
				Body:       stringReadCloser{strings.NewReader(dryrunContent)},
			}
		} else {
			resp, err = next(req)
		}

		if logger.IsTrace() && resp != nil {
			resData, _ := httputil.DumpResponse(resp, true)
			logger.Debugf("<<<RESPONSE:\n%s\n", string(resData))
		}

		took := time.Since(start).Milliseconds()
		var status int
		if resp != nil {
			status = resp.StatusCode
		}
		logger.Debugf("Status: %d, %s request for %s took %dms\n", status, req.Method, req.URL, took)

		return resp, err
	}
}
