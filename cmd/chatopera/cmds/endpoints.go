// Copyright (c) 2018 Tim Heckman
//
// Use of this source code is governed by the MIT License that can be found in
// the LICENSE file at the root of this repository.

package cmds

import (
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/theckman/chatopera"
)

func (a *app) newDetailCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "detail",
		Short: "Show the chatbot's details",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.client.Detail(cmd.Context())
			if err != nil {
				return err
			}

			return a.printJSON(resp)
		},
	}
}

// userFlag registers --user on cmd. When it isn't provided, a random user ID is
// generated so that one-off queries don't share a conversation.
func userFlag(cmd *cobra.Command, userID *string) {
	cmd.Flags().StringVarP(userID, "user", "u", "", "user ID the message is sent as (default: random UUID)")
}

func (a *app) resolveUser(userID string) string {
	if len(userID) > 0 {
		return userID
	}

	id := uuid.New().String()
	a.log.Info().Str("user", id).Msg("no --user provided, using a random user ID")

	return id
}

func (a *app) newConversationCommand() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:     "conversation <text...>",
		Aliases: []string{"conv"},
		Short:   "Send a message to the multi-turn conversation engine",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.client.Conversation(cmd.Context(), a.resolveUser(userID), strings.Join(args, " "))
			if err != nil {
				return err
			}

			return a.printJSON(resp)
		},
	}

	userFlag(cmd, &userID)

	return cmd
}

func (a *app) newFAQCommand() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "faq <query...>",
		Short: "Search the chatbot's knowledge base",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.client.FAQ(cmd.Context(), a.resolveUser(userID), strings.Join(args, " "))
			if err != nil {
				return err
			}

			return a.printJSON(resp)
		},
	}

	userFlag(cmd, &userID)

	return cmd
}

func listFlags(cmd *cobra.Command, opts *chatopera.ListOptions) {
	cmd.Flags().IntVar(&opts.Limit, "limit", chatopera.DefaultLimit, "results per page")
	cmd.Flags().IntVar(&opts.Page, "page", chatopera.DefaultPage, "page number, starting at 1")
	cmd.Flags().StringVar(&opts.SortBy, "sortby", chatopera.DefaultSortBy, "sort order")
}

func (a *app) newUsersCommand() *cobra.Command {
	var opts chatopera.ListOptions

	cmd := &cobra.Command{
		Use:   "users",
		Short: "List the users who have talked to the chatbot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.client.Users(cmd.Context(), &opts)
			if err != nil {
				return err
			}

			return a.printJSON(resp)
		},
	}

	listFlags(cmd, &opts)

	return cmd
}

func (a *app) newChatsCommand() *cobra.Command {
	var opts chatopera.ListOptions

	cmd := &cobra.Command{
		Use:   "chats <userId>",
		Short: "Show the chat history of a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.client.Chats(cmd.Context(), args[0], &opts)
			if err != nil {
				return err
			}

			return a.printJSON(resp)
		},
	}

	listFlags(cmd, &opts)

	return cmd
}

type muteResult struct {
	User  string `json:"user"`
	Muted bool   `json:"muted"`
}

type actionResult struct {
	User    string `json:"user"`
	Action  string `json:"action"`
	Success bool   `json:"success"`
}

func (a *app) newMuteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mute <userId>",
		Short: "Mute a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := a.client.Mute(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return a.printJSON(actionResult{User: args[0], Action: "mute", Success: ok})
		},
	}
}

func (a *app) newUnmuteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unmute <userId>",
		Short: "Unmute a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := a.client.Unmute(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return a.printJSON(actionResult{User: args[0], Action: "unmute", Success: ok})
		},
	}
}

func (a *app) newIsMuteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ismute <userId>",
		Short: "Check whether a user is muted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			muted, err := a.client.IsMuted(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return a.printJSON(muteResult{User: args[0], Muted: muted})
		},
	}
}

func (a *app) newProfileCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "profile <userId>",
		Short: "Show a user's profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.client.User(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return a.printJSON(resp)
		},
	}
}

type signResult struct {
	Token    string             `json:"token"`
	Envelope chatopera.Envelope `json:"envelope"`
}

func (a *app) newSignCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sign <METHOD> <path>",
		Short: "Print the Authorization token for a request, and its decoded envelope",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			token := a.client.Sign(strings.ToUpper(args[0]), args[1])

			e, err := chatopera.DecodeToken(token)
			if err != nil {
				return err
			}

			return a.printJSON(signResult{Token: token, Envelope: e})
		},
	}
}
