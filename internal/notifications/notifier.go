package notifications

import "context"

type WelcomeInput struct {
	UserID int64
	Login  string
	Name   string
	Email  string
}

type Notifier interface {
	SendWelcome(ctx context.Context, input WelcomeInput) error
}
