package services

import (
	"pupshare/backend/app/socket"
)

// Actor is the authenticated identity performing an operation.
type Actor struct {
	ID      string
	IsAdmin bool
}

// Notifier receives moderation events for photo owners.
type Notifier interface {
	Notify(userID string, ev socket.Event)
}

type nopNotifier struct{}

func (nopNotifier) Notify(string, socket.Event) {}
