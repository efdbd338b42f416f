package mail

import (
	"context"
	"fmt"
)

// Message is a single outbound notification with a plain-text and an HTML body.
type Message struct {
	From     string
	To       string
	ReplyTo  string
	Subject  string
	TextBody string
	HTMLBody string
}

// Sender delivers a message through a mail provider. Implementations must be
// safe for concurrent use and must not retry.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SenderFunc adapts a function to the Sender interface.
type SenderFunc func(ctx context.Context, msg Message) error

func (f SenderFunc) Send(ctx context.Context, msg Message) error {
	return f(ctx, msg)
}

// DispatchError reports a provider or network failure while sending.
type DispatchError struct {
	Provider string
	Err      error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("%s dispatch failed: %v", e.Provider, e.Err)
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}

// Dispatch wraps err as a DispatchError for provider. A nil err stays nil.
func Dispatch(provider string, err error) error {
	if err == nil {
		return nil
	}
	return &DispatchError{Provider: provider, Err: err}
}
