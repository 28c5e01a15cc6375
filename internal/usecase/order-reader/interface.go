package orderreader

import (
	"context"

	requestv1 "github.com/mrmh13801225/matching-engine/internal/domain/request/v1"
)

// RequestReader consumes requests from the request stream in offset order.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=orderreader_mock
type RequestReader interface {
	ReadRequest(ctx context.Context) (*requestv1.Request, error)
	SetOffset(offset int64) error
	Close() error
}
