// Copyright (c) 2026 Tributestream. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"github.com/spf13/cobra"

	"github.com/taibuivan/tributestream/pkg/tributeclient"
)

// checkCmd reports whether the gateway sees a session. Without --identifier
// it only proves the gateway answers.
func (app *cli) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Show the authentication state the gateway reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if app.identifier == "" {
				client, err := app.client()
				if err != nil {
					return err
				}
				session := tributeclient.NewSession(client)
				if err := session.Refresh(ctx); err != nil {
					return err
				}
				return app.print(session.Snapshot())
			}

			return app.signedIn(ctx, func(_ *tributeclient.Client, session *tributeclient.Session) error {
				if err := session.Refresh(ctx); err != nil {
					return err
				}
				return app.print(session.Snapshot())
			})
		},
	}
}

// loginCmd verifies credentials and prints the account.
func (app *cli) loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Verify credentials and print the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.signedIn(cmd.Context(), func(_ *tributeclient.Client, session *tributeclient.Session) error {
				user, err := session.RequireAuth()
				if err != nil {
					return err
				}
				return app.print(user)
			})
		},
	}
}
