package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jwalitptl/hospital-dashboard/pkg/metrics"
)

var ErrNotFound = errors.New("session: not found")

// Store persists sessions by id. Save writes only the fields changed since
// the session was loaded, so concurrent requests of one browser do not
// overwrite each other's keys.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}

const (
	fieldEmail   = "email"
	fieldLayout  = "layout"
	fieldNotices = "notices"
	dataPrefix   = "data:"
)

// record is the stored form of a session, one encoded value per field.
// Stores patch it field by field.
type record map[string][]byte

// encodeField returns the stored value of field, or false when the field
// has been removed.
func encodeField(s *Session, field string) ([]byte, bool, error) {
	var v any
	switch field {
	case fieldEmail:
		v = s.Email
	case fieldLayout:
		v = s.Layout
	case fieldNotices:
		v = s.Notices
	default:
		b, ok := s.Data[strings.TrimPrefix(field, dataPrefix)]
		if !ok {
			return nil, false, nil
		}
		return bytes.Clone(b), true, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, false, fmt.Errorf("session: encode %s: %w", field, err)
	}
	return b, true, nil
}

// fullRecord encodes every field of s.
func fullRecord(s *Session) (record, error) {
	fields := []string{fieldEmail, fieldLayout, fieldNotices}
	for key := range s.Data {
		fields = append(fields, dataPrefix+key)
	}
	set, _, err := encodeFields(s, fields)
	return set, err
}

// changes encodes the fields touched since s was loaded or saved.
func changes(s *Session) (record, []string, error) {
	fields := make([]string, 0, len(s.changed))
	for field := range s.changed {
		fields = append(fields, field)
	}
	return encodeFields(s, fields)
}

func encodeFields(s *Session, fields []string) (record, []string, error) {
	set := record{}
	var del []string
	for _, field := range fields {
		b, ok, err := encodeField(s, field)
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			del = append(del, field)
			continue
		}
		set[field] = b
	}
	return set, del, nil
}

func decodeRecord(id string, rec record) (*Session, error) {
	s := &Session{ID: id, Layout: DefaultLayout()}
	for field, b := range rec {
		var err error
		switch field {
		case fieldEmail:
			err = json.Unmarshal(b, &s.Email)
		case fieldLayout:
			err = json.Unmarshal(b, &s.Layout)
		case fieldNotices:
			err = json.Unmarshal(b, &s.Notices)
		default:
			key, ok := strings.CutPrefix(field, dataPrefix)
			if !ok {
				continue
			}
			if s.Data == nil {
				s.Data = map[string]json.RawMessage{}
			}
			s.Data[key] = bytes.Clone(b)
		}
		if err != nil {
			return nil, fmt.Errorf("session: decode %s: %w", field, err)
		}
	}
	return s, nil
}

// instrumented counts store operations per backend.
type instrumented struct {
	backend string
	next    Store
	metrics *metrics.Metrics
}

// Instrument wraps a store with operation counters.
func Instrument(backend string, next Store, m *metrics.Metrics) Store {
	return &instrumented{backend: backend, next: next, metrics: m}
}

func (i *instrumented) observe(op string, err error) {
	status := "ok"
	switch {
	case errors.Is(err, ErrNotFound):
		status = "miss"
	case err != nil:
		status = "error"
	}
	i.metrics.SessionOperations.WithLabelValues(i.backend, op, status).Inc()
}

func (i *instrumented) Get(ctx context.Context, id string) (*Session, error) {
	s, err := i.next.Get(ctx, id)
	i.observe("get", err)
	return s, err
}

func (i *instrumented) Save(ctx context.Context, s *Session) error {
	err := i.next.Save(ctx, s)
	i.observe("save", err)
	return err
}

func (i *instrumented) Delete(ctx context.Context, id string) error {
	err := i.next.Delete(ctx, id)
	i.observe("delete", err)
	return err
}

// ttlOrDefault keeps a zero TTL from creating sessions that never expire.
func ttlOrDefault(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return 12 * time.Hour
	}
	return ttl
}
