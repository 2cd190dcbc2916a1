// Package notification defines in-app notifications. They are created only
// by fanout and mutated only by being marked read.
package notification

import "time"

// Notification is a message addressed to a single user.
type Notification struct {
	ID        string
	UserID    string
	Message   string
	Timestamp time.Time
	Read      bool
}

// CountUnread returns how many of ns are unread.
func CountUnread(ns []Notification) int {
	var n int
	for i := range ns {
		if !ns[i].Read {
			n++
		}
	}
	return n
}
