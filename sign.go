// Copyright (c) 2018 Tim Heckman
//
// Use of this source code is governed by the MIT License that can be found in
// the LICENSE file at the root of this repository.

package chatopera

import (
	"crypto/hmac"
	"crypto/sha1" // #nosec required by the Chatopera signing scheme
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/pkg/errors"
)

const (
	nonceMin = 1000000000
	nonceMax = 9999999999
)

// Envelope is the JSON document that, base64 encoded, forms the Authorization
// header value of a request.
type Envelope struct {
	AppID     string `json:"appId"`
	Timestamp int64  `json:"timestamp"`
	Random    int64  `json:"random"`
	Signature string `json:"signature"`
}

// Token returns the base64 encoded JSON form of the envelope.
func (e Envelope) Token() (string, error) {
	p, err := json.Marshal(e)
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal envelope")
	}

	return base64.StdEncoding.EncodeToString(p), nil
}

// DecodeToken reverses Envelope.Token.
func DecodeToken(token string) (Envelope, error) {
	p, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return Envelope{}, errors.Wrap(err, "token is not valid base64")
	}

	var e Envelope

	if err := json.Unmarshal(p, &e); err != nil {
		return Envelope{}, errors.Wrap(err, "token does not contain a JSON envelope")
	}

	return e, nil
}

// Signature computes the hex encoded HMAC-SHA1, keyed by secret, over the
// concatenation of appID, timestamp, random, method and path. The path must
// include the query string, exactly as it is sent.
func Signature(secret, appID string, timestamp, random int64, method, path string) string {
	mac := hmac.New(sha1.New, []byte(secret))

	_, _ = mac.Write([]byte(appID))
	_, _ = mac.Write([]byte(strconv.FormatInt(timestamp, 10)))
	_, _ = mac.Write([]byte(strconv.FormatInt(random, 10)))
	_, _ = mac.Write([]byte(method))
	_, _ = mac.Write([]byte(path))

	return hex.EncodeToString(mac.Sum(nil))
}

// Sign returns the Authorization token for a request. A new timestamp and
// random value are drawn on every call, so tokens are never reused. If the
// client ID or secret is empty, Sign returns an empty string.
func (c *Client) Sign(method, path string) string {
	e, ok := c.envelope(method, path)
	if !ok {
		return ""
	}

	// marshaling a struct of strings and integers cannot fail
	token, _ := e.Token()

	return token
}

func (c *Client) envelope(method, path string) (Envelope, bool) {
	if len(c.clientID) == 0 || len(c.clientSecret) == 0 {
		return Envelope{}, false
	}

	ts := c.now().Unix()
	r := c.nonce()

	return Envelope{
		AppID:     c.clientID,
		Timestamp: ts,
		Random:    r,
		Signature: Signature(c.clientSecret, c.clientID, ts, r, method, path),
	}, true
}

var (
	nonceMu  sync.Mutex
	nonceRnd = rand.New(rand.NewSource(time.Now().UnixNano())) // #nosec not used for secrecy
)

// randomNonce returns a uniformly distributed integer in [nonceMin, nonceMax].
func randomNonce() int64 {
	nonceMu.Lock()
	defer nonceMu.Unlock()

	return nonceMin + nonceRnd.Int63n(nonceMax-nonceMin+1)
}
