// Copyright (c) 2018 Tim Heckman
//
// Use of this source code is governed by the MIT License that can be found in
// the LICENSE file at the root of this repository.

package chatopera

import "context"

type conversationQuery struct {
	FromUserID  string `json:"fromUserId"`
	TextMessage string `json:"textMessage"`
	IsDebug     bool   `json:"isDebug"`
}

type faqQuery struct {
	FromUserID string `json:"fromUserId"`
	Query      string `json:"query"`
}

// Detail retrieves the chatbot's details. The chatbotID member is removed from
// the returned data.
func (c *Client) Detail(ctx context.Context) (*Response, error) {
	resp, err := c.get(ctx, c.botPath())
	if err != nil {
		return nil, err
	}

	return resp.purge(), nil
}

// Conversation sends text to the chatbot's multi-turn conversation engine, on
// behalf of the user identified by userID, and returns the reply.
func (c *Client) Conversation(ctx context.Context, userID, text string) (*Response, error) {
	q := conversationQuery{
		FromUserID:  userID,
		TextMessage: text,
		IsDebug:     false,
	}

	return c.post(ctx, c.botPath("conversation", "query"), q)
}

// FAQ searches the chatbot's knowledge base for query, on behalf of the user
// identified by userID.
func (c *Client) FAQ(ctx context.Context, userID, query string) (*Response, error) {
	q := faqQuery{
		FromUserID: userID,
		Query:      query,
	}

	return c.post(ctx, c.botPath("faq", "query"), q)
}
