// Copyright (c) 2018 Tim Heckman
//
// Use of this source code is governed by the MIT License that can be found in
// the LICENSE file at the root of this repository.

// Package chatopera is a client for the Chatopera chatbot platform
// (https://bot.chatopera.com). Each method of Client maps to a single endpoint
// of the platform's HTTP API: chatbot details, multi-turn conversation, FAQ
// search, user listing, chat history, muting users, and user profiles.
//
// Requests are authenticated with a per-request token. The token is the base64
// encoding of a JSON envelope containing the client ID, the current UNIX time,
// a random 10-digit number, and an HMAC-SHA1 signature, keyed by the client
// secret, over those values plus the HTTP method and the request path (query
// string included). Because the timestamp and random value change on every
// call, no two requests carry the same token.
//
// Responses are returned as *Response values, which keep the JSON exactly as
// the service sent it, with one exception: the detail, users, and chats
// endpoints include an internal chatbotID field in their data, which is
// removed before the response is handed back.
//
// The client performs no retries and imposes no rate limits. Any status other
// than 200 OK is returned as a *RemoteError, and it's up to the caller to
// decide whether to try again.
package chatopera
