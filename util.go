// Copyright (c) 2018 Tim Heckman
//
// Use of this source code is governed by the MIT License that can be found in
// the LICENSE file at the root of this repository.

package chatopera

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/pkg/errors"
)

const contentTypeJSON = "application/json"

func setHeaders(req *http.Request, token string) {
	req.Header.Set("Content-Type", contentTypeJSON)
	req.Header.Set("Accept", contentTypeJSON)

	// an empty token is still sent; the service answers with a non-200
	req.Header.Set("Authorization", token)
}

// newReq builds a request for url. A non-nil body is encoded as JSON, and the
// Content-Length header is set to the size of the encoded body.
func newReq(ctx context.Context, method, url string, body interface{}) (*http.Request, error) {
	var r io.Reader
	var n int

	if body != nil {
		p, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal request body")
		}

		r, n = bytes.NewReader(p), len(p)
	}

	req, err := http.NewRequest(method, url, r)
	if err != nil {
		return nil, err
	}

	if body != nil {
		req.ContentLength = int64(n)
		req.Header.Set("Content-Length", strconv.Itoa(n))
	}

	if ctx != nil {
		req = req.WithContext(ctx)
	}

	return req, nil
}
