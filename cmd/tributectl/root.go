// Copyright (c) 2026 Tributestream. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/taibuivan/tributestream/pkg/tributeclient"
)

const (
	envURL      = "TRIBUTECTL_URL"
	envPassword = "TRIBUTECTL_PASSWORD"
	defaultURL  = "http://localhost:8080"
)

// readPassword is replaced in tests.
var readPassword = term.ReadPassword

// cli carries the flags shared by every command.
type cli struct {
	baseURL    string
	identifier string
	out        io.Writer
	errOut     io.Writer
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	app := &cli{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:           "tributectl",
		Short:         "Command-line client for the Tributestream gateway",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	baseURL := os.Getenv(envURL)
	if baseURL == "" {
		baseURL = defaultURL
	}
	root.PersistentFlags().StringVar(&app.baseURL, "url", baseURL, "gateway base URL (env "+envURL+")")
	root.PersistentFlags().StringVarP(&app.identifier, "identifier", "u", "", "username or email used to sign in")

	root.AddCommand(
		app.checkCmd(),
		app.loginCmd(),
		app.funeralHomesCmd(),
		app.tributesCmd(),
	)
	return root
}

func (app *cli) client() (*tributeclient.Client, error) {
	return tributeclient.New(app.baseURL)
}

// signedIn opens a session, runs fn, and signs out again whatever fn returns.
func (app *cli) signedIn(ctx context.Context, fn func(*tributeclient.Client, *tributeclient.Session) error) error {
	if app.identifier == "" {
		return errors.New("--identifier is required")
	}
	password, err := app.password()
	if err != nil {
		return err
	}

	client, err := app.client()
	if err != nil {
		return err
	}
	session := tributeclient.NewSession(client)
	if err := session.Login(ctx, app.identifier, password, nil); err != nil {
		return fmt.Errorf("login: %w", err)
	}

	runErr := fn(client, session)
	if err := session.Logout(ctx); err != nil && runErr == nil {
		return fmt.Errorf("logout: %w", err)
	}
	return runErr
}

func (app *cli) password() (string, error) {
	if password := os.Getenv(envPassword); password != "" {
		return password, nil
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New(envPassword + " is not set and stdin is not a terminal")
	}
	fmt.Fprint(app.errOut, "Password: ")
	raw, err := readPassword(fd)
	fmt.Fprintln(app.errOut)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}

func (app *cli) print(value any) error {
	encoder := json.NewEncoder(app.out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}
