// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package notify is the outbound notification channel.

# Contract

A Sender delivers one message and reports success or failure:

	type Sender interface {
		Send(address, subject, body string) error
	}

Two implementations exist: SMTPSender for real delivery, and ConsoleSender
which logs the message for development (no SMTP configuration required).

# Dispatch

Dispatch sends fire-and-forget on its own goroutine:

	notify.Dispatch(sender, email, subject, body)

Failures are logged and never reach the caller; a committed vote is never
rolled back (or made to look rolled back) by a failed confirmation email.
Synchronous sending, where the caller needs the outcome, goes through
Sender.Send directly - the OTP engine does this on issuance.

# Messages

OTPMessage and VoteConfirmationMessage build the two message bodies used by
the system.
*/
package notify
