package snapshotv1

import "context"

// Store persists and restores engine snapshots.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=snapshotv1_mock
type Store interface {
	Save(ctx context.Context, snapshot *Snapshot) error
	Load(ctx context.Context, isin string) (*Snapshot, error)
}
