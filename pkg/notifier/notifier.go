// Package notifier abstracts outbound notifications. The scheduler treats
// sends as fire-and-forget: a failed send is logged by the caller and never
// retried within the same tick.
package notifier

import "context"

//go:generate go run go.uber.org/mock/mockgen -source=notifier.go -destination=mock/notifier_mock.go -package=mock github.com/yuliitezarygml/tg-bor-arend/pkg/notifier Notifier

type Notifier interface {
	SendToUser(ctx context.Context, userID string, text string) error
	SendToAdmin(ctx context.Context, text string) error
}
