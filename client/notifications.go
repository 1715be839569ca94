package client

import (
	"fmt"
	"time"
)

// Notification is the inbox wire shape
type Notification struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
	Time      string    `json:"time"`
}

// NotificationState mirrors the caller's inbox. Unread is recounted locally
// after every mutation so the badge never desynchronizes from the list.
type NotificationState struct {
	c *Client

	Notifications []Notification
	Unread        int
}

func NewNotificationState(c *Client) *NotificationState {
	return &NotificationState{c: c}
}

func (s *NotificationState) recount() {
	unread := 0
	for _, n := range s.Notifications {
		if !n.Read {
			unread++
		}
	}
	s.Unread = unread
}

// Load refreshes the inbox
func (s *NotificationState) Load() error {
	var body struct {
		Notifications []Notification `json:"notifications"`
	}
	if err := s.c.get("/api/notifications", &body); err != nil {
		return err
	}
	s.Notifications = body.Notifications
	s.recount()
	return nil
}

// Add creates a notification and reloads the inbox
func (s *NotificationState) Add(title, message, notifType string) (uint, error) {
	var body struct {
		ID uint `json:"id"`
	}
	err := s.c.post("/api/notifications", map[string]string{
		"title":   title,
		"message": message,
		"type":    notifType,
	}, &body)
	if err != nil {
		return 0, err
	}
	if err := s.Load(); err != nil {
		return 0, err
	}
	return body.ID, nil
}

// MarkRead marks one notification read and updates the local mirror
func (s *NotificationState) MarkRead(id uint) error {
	err := s.c.put(fmt.Sprintf("/api/notifications/%d", id), map[string]bool{"read": true}, nil)
	if err != nil {
		return err
	}
	for i := range s.Notifications {
		if s.Notifications[i].ID == id {
			s.Notifications[i].Read = true
		}
	}
	s.recount()
	return nil
}

// MarkAllRead marks the whole inbox read
func (s *NotificationState) MarkAllRead() error {
	if err := s.c.put("/api/notifications/mark-all-read", nil, nil); err != nil {
		return err
	}
	for i := range s.Notifications {
		s.Notifications[i].Read = true
	}
	s.recount()
	return nil
}

// Remove deletes a notification and updates the local mirror
func (s *NotificationState) Remove(id uint) error {
	if err := s.c.delete(fmt.Sprintf("/api/notifications/%d", id), nil); err != nil {
		return err
	}
	kept := s.Notifications[:0]
	for _, n := range s.Notifications {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	s.Notifications = kept
	s.recount()
	return nil
}

// UnreadCount asks the server for the authoritative unread count, falling
// back to the local mirror when the call fails.
func (s *NotificationState) UnreadCount() (int, error) {
	var body struct {
		UnreadCount int `json:"unread_count"`
	}
	if err := s.c.get("/api/notifications/unread-count", &body); err != nil {
		return s.Unread, err
	}
	return body.UnreadCount, nil
}

// Latest returns up to limit of the newest notifications for previews
func (s *NotificationState) Latest(limit int) []Notification {
	if limit > len(s.Notifications) {
		limit = len(s.Notifications)
	}
	return s.Notifications[:limit]
}

// CheckTrainingProgress asks the server to create a reminder when the
// required-course average is too low. It reports whether a reminder was
// created.
func (s *NotificationState) CheckTrainingProgress(requiredAvg float64) (bool, error) {
	var body struct {
		ID      uint   `json:"id"`
		Message string `json:"message"`
	}
	err := s.c.post("/api/notifications/check-training-progress", map[string]float64{
		"requiredAvg": requiredAvg,
	}, &body)
	if err != nil {
		return false, err
	}
	return body.ID != 0, nil
}
