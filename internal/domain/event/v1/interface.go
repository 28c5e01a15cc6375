package eventv1

import "context"

// Publisher writes engine events to the event stream in order.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=eventv1_mock
type Publisher interface {
	Publish(ctx context.Context, events ...*Event) error
	Close() error
}
