// Package gate implements the confirmation step in front of a delete.
package gate

import (
	"context"
	"errors"
)

var (
	ErrAlreadyOpen = errors.New("gate: a deletion is already pending")
	ErrClosed      = errors.New("gate: no deletion is pending")
)

// Target identifies the record awaiting confirmation.
type Target struct {
	ID    int64  `json:"id"`
	Label string `json:"label,omitempty"`
}

// Gate is either closed or open with exactly one pending target.
type Gate struct {
	Pending *Target `json:"pending,omitempty"`
}

func (g *Gate) IsOpen() bool {
	return g.Pending != nil
}

// Open moves the gate from closed to open for target.
func (g *Gate) Open(target Target) error {
	if g.Pending != nil {
		return ErrAlreadyOpen
	}
	g.Pending = &target
	return nil
}

// Confirm issues the delete for the pending target, then closes the gate
// whatever the outcome. The removed target is returned alongside the
// delete error.
func (g *Gate) Confirm(ctx context.Context, del func(ctx context.Context, id int64) error) (Target, error) {
	if g.Pending == nil {
		return Target{}, ErrClosed
	}
	target := *g.Pending
	err := del(ctx, target.ID)
	g.Pending = nil
	return target, err
}

// Cancel closes the gate without issuing a request.
func (g *Gate) Cancel() {
	g.Pending = nil
}
