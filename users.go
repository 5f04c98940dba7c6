// Copyright (c) 2018 Tim Heckman
//
// Use of this source code is governed by the MIT License that can be found in
// the LICENSE file at the root of this repository.

package chatopera

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
)

const (
	usersPath = "users"

	usersActionMute    = "mute"
	usersActionUnmute  = "unmute"
	usersActionIsMute  = "ismute"
	usersActionProfile = "profile"
	usersActionChats   = "chats"
)

// Defaults applied to the zero fields of ListOptions.
const (
	DefaultLimit  = 50
	DefaultPage   = 1
	DefaultSortBy = "-lasttime"
)

// ListOptions controls the pagination of Users and Chats. A nil *ListOptions,
// or any zero field, takes the matching default.
type ListOptions struct {
	Limit  int
	Page   int
	SortBy string
}

// query returns the query string for the options, always in the order page,
// limit, sortby. The order matters: the query string is part of the signed
// path.
func (o *ListOptions) query() string {
	limit, page, sortby := DefaultLimit, DefaultPage, DefaultSortBy

	if o != nil {
		if o.Limit > 0 {
			limit = o.Limit
		}

		if o.Page > 0 {
			page = o.Page
		}

		if len(o.SortBy) > 0 {
			sortby = o.SortBy
		}
	}

	return "page=" + strconv.Itoa(page) +
		"&limit=" + strconv.Itoa(limit) +
		"&sortby=" + url.QueryEscape(sortby)
}

func (c *Client) userPath(userID, action string) string {
	return c.botPath(usersPath, url.PathEscape(userID), action)
}

// Users lists the users who have talked to the chatbot. The chatbotID member is
// removed from each returned user.
func (c *Client) Users(ctx context.Context, opts *ListOptions) (*Response, error) {
	resp, err := c.get(ctx, c.botPath(usersPath)+"?"+opts.query())
	if err != nil {
		return nil, err
	}

	return resp.purge(), nil
}

// Chats retrieves the chat history of the user identified by userID. The
// chatbotID member is removed from each returned message.
func (c *Client) Chats(ctx context.Context, userID string, opts *ListOptions) (*Response, error) {
	resp, err := c.get(ctx, c.userPath(userID, usersActionChats)+"?"+opts.query())
	if err != nil {
		return nil, err
	}

	return resp.purge(), nil
}

// Mute blocks the user identified by userID. It returns true if the service
// reported success (rc == 0), and false if the response carried a non-zero rc
// or none at all. An error is only returned if the request itself failed.
func (c *Client) Mute(ctx context.Context, userID string) (bool, error) {
	return c.actionUser(ctx, usersActionMute, userID)
}

// Unmute lifts a block on the user identified by userID. The result follows the
// same rules as Mute.
func (c *Client) Unmute(ctx context.Context, userID string) (bool, error) {
	return c.actionUser(ctx, usersActionUnmute, userID)
}

// actionUser posts action for the user, and reports whether rc was zero. It
// does not validate action and leaves that up to the caller.
func (c *Client) actionUser(ctx context.Context, action, userID string) (bool, error) {
	resp, err := c.post(ctx, c.userPath(userID, action), nil)
	if err != nil {
		return false, err
	}

	return resp.OK(), nil
}

// IsMuted reports whether the user identified by userID is muted. Unlike Mute
// and Unmute, a response without rc == 0 is an *UnexpectedResponseError,
// because there is no flag to report.
func (c *Client) IsMuted(ctx context.Context, userID string) (bool, error) {
	path := c.userPath(userID, usersActionIsMute)

	resp, err := c.post(ctx, path, nil)
	if err != nil {
		return false, err
	}

	if !resp.OK() {
		return false, &UnexpectedResponseError{Path: path, Reason: "rc is missing or non-zero", Response: resp}
	}

	data := resp.Data()

	// no data means no flag; the user isn't muted
	if data == nil || isNull(data) {
		return false, nil
	}

	if shapeOf(data) != shapeObject {
		return false, &UnexpectedResponseError{Path: path, Reason: "data is not an object", Response: resp}
	}

	var v struct {
		Mute bool `json:"mute"`
	}

	if err := json.Unmarshal(data, &v); err != nil {
		return false, &UnexpectedResponseError{Path: path, Reason: "data.mute is not a boolean", Response: resp}
	}

	return v.Mute, nil
}

// User retrieves the profile of the user identified by userID.
func (c *Client) User(ctx context.Context, userID string) (*Response, error) {
	return c.post(ctx, c.userPath(userID, usersActionProfile), nil)
}
