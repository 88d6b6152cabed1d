// Package session persists run state so interrupted runs can resume.
package session

import (
	"context"

	"github.com/brian/letter-agent/internal/types"
)

// Store persists and retrieves sessions by ID.
type Store interface {
	Save(ctx context.Context, s *types.Session) error
	Load(ctx context.Context, id string) (*types.Session, error)
}
