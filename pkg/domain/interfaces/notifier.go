package interfaces

import (
	"context"

	"github.com/campus-lab/rostersync/pkg/domain/model"
)

// Notifier delivers the end-of-run notification. Delivery is best effort; a
// failed notification never fails the run.
type Notifier interface {
	NotifyRunCompleted(ctx context.Context, report *model.Report, auditLogPath string) error
}
