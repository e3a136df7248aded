// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router wires the HTTP surface.

NewRouter builds the ServeMux, constructs the shared vote ledger and OTP
engine, and attaches every route behind the logging middleware. Voter
routes sit behind RequireVoter; admin routes (everything under /admin
except /admin/login) sit behind RequireAdmin.

The delivery channel is injected so tests can capture outbound one-time
codes and confirmations:

	mux := router.NewRouter(db, cfg, &notify.ConsoleSender{})
*/
package router
