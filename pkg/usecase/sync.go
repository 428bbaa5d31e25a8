package usecase

import (
	"bytes"
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/campus-lab/rostersync/pkg/domain/model"
	"github.com/campus-lab/rostersync/pkg/service/audit"
	"github.com/campus-lab/rostersync/pkg/utils/logging"
)

// Run executes one sync run: load the feed, decide against the run ledger,
// run the three passes in document order, record the feed identity and notify.
// A missing or unchanged feed ends the run gracefully with Skipped set; an
// error return means the run stopped mid-way and the ledger was not advanced.
func (u *SyncUseCase) Run(ctx context.Context) (*model.Report, error) {
	started := time.Now()
	report := &model.Report{StartedAt: started}

	var auditOpts []audit.Option
	if u.auditOut != nil {
		auditOpts = append(auditOpts, audit.WithWriter(u.auditOut))
	}
	log := audit.New(ctx, u.auditLogPath, auditOpts...)
	defer log.Close(ctx)

	log.Separator()
	log.Line("Roster sync launched at %s", started.Format(time.RFC1123))

	f, err := u.source.Load(ctx)
	if err != nil {
		return nil, err
	}
	if f == nil {
		log.Line("File not found: %s", u.source.Location())
		report.FeedPath = u.source.Location()
		report.Skipped = true
		report.Elapsed = time.Since(started)
		return report, nil
	}
	report.FeedPath = f.Identity.Path
	log.Line("Found file %s", f.Identity.Path)

	prev, err := u.repo.Ledger().Get(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read run ledger")
	}
	if !f.Identity.IsNewerThan(prev) {
		log.Line("File modification time is not more recent than last update - skipping processing.")
		report.Skipped = true
		report.Elapsed = time.Since(started)
		return report, nil
	}

	rc := newRunContext(log, u.options, u.roleMap, report)

	log.Line("about to process groups")
	if err := u.processGroups(ctx, rc, bytes.NewReader(f.Content)); err != nil {
		return nil, err
	}

	log.Line("about to process persons")
	if err := u.processPersons(ctx, rc, bytes.NewReader(f.Content)); err != nil {
		return nil, err
	}

	log.Line("about to process course and group memberships")
	if err := u.processMemberships(ctx, rc, bytes.NewReader(f.Content)); err != nil {
		return nil, err
	}

	if err := u.repo.Ledger().Put(ctx, &f.Identity); err != nil {
		return nil, goerr.Wrap(err, "failed to record run ledger")
	}

	report.Elapsed = time.Since(started)
	log.Line("Process has completed. Time taken: %d seconds.", int(report.Elapsed.Seconds()))

	u.notify(ctx, log, report)

	return report, nil
}

// notify delivers the completion notification best effort. A delivery failure
// is logged and never fails the run.
func (u *SyncUseCase) notify(ctx context.Context, log *audit.Log, report *model.Report) {
	if u.notifier == nil {
		return
	}
	if err := u.notifier.NotifyRunCompleted(ctx, report, log.Path()); err != nil {
		logging.From(ctx).Warn("Failed to send completion notification", logging.ErrAttr(err))
		return
	}
	log.Line("Notification sent to administrator.")
}
