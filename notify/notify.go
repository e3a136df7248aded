// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"fmt"
	"log/slog"
	"net/smtp"
	"strconv"
	"strings"
)

// Sender is the outbound delivery contract: deliver a message, report
// success or failure. Nothing else about the transport leaks upward.
type Sender interface {
	Send(address, subject, body string) error
}

// SMTPSender delivers mail through a single SMTP relay.
type SMTPSender struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func (s *SMTPSender) Send(address, subject, body string) error {
	var msg strings.Builder
	msg.WriteString("From: " + s.From + "\r\n")
	msg.WriteString("To: " + address + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	addr := s.Host + ":" + strconv.Itoa(s.Port)
	auth := smtp.PlainAuth("", s.Username, s.Password, s.Host)
	if err := smtp.SendMail(addr, auth, s.From, []string{address}, []byte(msg.String())); err != nil {
		return fmt.Errorf("smtp send to %s failed: %w", address, err)
	}
	return nil
}

// ConsoleSender logs messages instead of delivering them. Development mode.
type ConsoleSender struct{}

func (ConsoleSender) Send(address, subject, body string) error {
	slog.Info("console mail delivery", "to", address, "subject", subject, "body", body)
	return nil
}

// Dispatch sends a message on a separate goroutine, fire-and-forget.
// A failed send is only logged; callers never wait and never see the error.
func Dispatch(s Sender, address, subject, body string) {
	go func() {
		if err := s.Send(address, subject, body); err != nil {
			slog.Warn("notification dispatch failed", "to", address, "subject", subject, "error", err)
		}
	}()
}

// OTPMessage builds the login code email
func OTPMessage(userName, code string, expiresInMinutes int) (subject, body string) {
	subject = "[BallotHub] Your Login OTP Code"
	body = fmt.Sprintf(`BallotHub - Login OTP

Hello %s!

Your login OTP code is: %s

This code is valid for %d minutes only.
Do not share this code with anyone.

If you didn't request this, please ignore this email.

---
BallotHub - Secure Online Voting System
`, userName, code, expiresInMinutes)
	return subject, body
}

// VoteConfirmationMessage builds the post-vote confirmation email
func VoteConfirmationMessage(userName, candidateName, electionName string) (subject, body string) {
	subject = "[BallotHub] Your Vote Confirmation"
	body = fmt.Sprintf(`BallotHub - Vote Confirmation

Hello %s!

Thank you for participating in the election. Your vote has been successfully recorded.

Vote Details:
- Election: %s
- You Voted For: %s
- Vote Status: Successfully Recorded

If you did not cast this vote or believe this is an error, please contact our support team immediately.

---
BallotHub - Secure Online Voting System
`, userName, electionName, candidateName)
	return subject, body
}
