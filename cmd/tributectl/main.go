// Copyright (c) 2026 Tributestream. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command tributectl talks to a Tributestream gateway from the terminal.
//
// Commands that need a session sign in with --identifier and the password
// from TRIBUTECTL_PASSWORD (or a terminal prompt), and sign out before they
// exit. Nothing is written to disk.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "tributectl:", err)
		stop()
		os.Exit(1)
	}
}
