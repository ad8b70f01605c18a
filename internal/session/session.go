// Package session keeps the per-browser dashboard state between requests.
package session

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// MobileBreakpoint is the viewport width below which the layout collapses.
const MobileBreakpoint = 1024

// Layout is the sidebar state shared by every page.
type Layout struct {
	SidebarOpen bool `json:"sidebarOpen"`
	Mobile      bool `json:"mobile"`
}

func DefaultLayout() Layout {
	return Layout{SidebarOpen: true, Mobile: false}
}

// Toggle opens or closes the sidebar.
func (l *Layout) Toggle() {
	l.SidebarOpen = !l.SidebarOpen
}

// Resize recomputes the layout for a viewport width: below the breakpoint
// the sidebar collapses into mobile mode, otherwise it opens.
func (l *Layout) Resize(width int) {
	if width < MobileBreakpoint {
		l.Mobile = true
		l.SidebarOpen = false
		return
	}
	l.Mobile = false
	l.SidebarOpen = true
}

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// Notice is a non-blocking toast shown on the next render.
type Notice struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// Session is the state of one browser. Changes go through its methods so
// a store saves only the fields a request touched and overlapping requests
// keep each other's writes.
type Session struct {
	ID      string                     `json:"id"`
	Email   string                     `json:"email,omitempty"`
	Layout  Layout                     `json:"layout"`
	Notices []Notice                   `json:"notices,omitempty"`
	Data    map[string]json.RawMessage `json:"data,omitempty"`

	// replace is set on a new or reset session: the stored record is
	// overwritten instead of patched.
	replace bool
	changed map[string]struct{}
}

func New() *Session {
	return &Session{
		ID:      uuid.NewString(),
		Layout:  DefaultLayout(),
		replace: true,
	}
}

// Dirty reports whether the session changed since it was loaded or saved.
func (s *Session) Dirty() bool { return s.replace || len(s.changed) > 0 }

func (s *Session) markClean() {
	s.replace = false
	s.changed = nil
}

func (s *Session) touch(field string) {
	if s.changed == nil {
		s.changed = map[string]struct{}{}
	}
	s.changed[field] = struct{}{}
}

func (s *Session) SetEmail(email string) {
	s.Email = email
	s.touch(fieldEmail)
}

func (s *Session) ToggleSidebar() {
	s.Layout.Toggle()
	s.touch(fieldLayout)
}

func (s *Session) Resize(width int) {
	s.Layout.Resize(width)
	s.touch(fieldLayout)
}

// Notify queues a toast.
func (s *Session) Notify(level Level, message string) {
	s.Notices = append(s.Notices, Notice{Level: level, Message: message})
	s.touch(fieldNotices)
}

// TakeNotices returns and clears the queued toasts.
func (s *Session) TakeNotices() []Notice {
	if len(s.Notices) == 0 {
		return nil
	}
	n := s.Notices
	s.Notices = nil
	s.touch(fieldNotices)
	return n
}

// Put stores v under key. Storing the value already held is not a change.
func (s *Session) Put(key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("session: encode %s: %w", key, err)
	}
	if old, ok := s.Data[key]; ok && bytes.Equal(old, b) {
		return nil
	}
	if s.Data == nil {
		s.Data = map[string]json.RawMessage{}
	}
	s.Data[key] = b
	s.touch(dataPrefix + key)
	return nil
}

// Get decodes the value stored under key into v and reports whether it existed.
func (s *Session) Get(key string, v any) (bool, error) {
	b, ok := s.Data[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(b, v); err != nil {
		return true, fmt.Errorf("session: decode %s: %w", key, err)
	}
	return true, nil
}

func (s *Session) Delete(key string) {
	if _, ok := s.Data[key]; !ok {
		return
	}
	delete(s.Data, key)
	s.touch(dataPrefix + key)
}

// Reset drops everything except the id and the layout.
func (s *Session) Reset() {
	s.Email = ""
	s.Data = nil
	s.Notices = nil
	s.replace = true
	s.changed = nil
}
