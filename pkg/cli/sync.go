package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/campus-lab/rostersync/pkg/cli/config"
	"github.com/campus-lab/rostersync/pkg/ims"
	"github.com/campus-lab/rostersync/pkg/usecase"
	"github.com/campus-lab/rostersync/pkg/utils/logging"
	"github.com/campus-lab/rostersync/pkg/utils/safe"
)

func cmdSync() *cli.Command {
	var (
		repoCfg      config.Repository
		feedCfg      config.Feed
		syncCfg      config.Sync
		roleMapCfg   config.RoleMap
		slackCfg     config.Slack
		auditLogPath string
	)

	var flags []cli.Flag
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, feedCfg.Flags()...)
	flags = append(flags, syncCfg.Flags()...)
	flags = append(flags, roleMapCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)
	flags = append(flags, &cli.StringFlag{
		Name:        "audit-log",
		Usage:       "File path receiving a copy of the audit log lines",
		Sources:     cli.EnvVars("ROSTERSYNC_AUDIT_LOG"),
		Destination: &auditLogPath,
	})

	return &cli.Command{
		Name:    "sync",
		Aliases: []string{"s"},
		Usage:   "Run one feed synchronization pass against the entity store",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()
			logger.Info("Sync configuration",
				"feed", feedCfg.Location(),
				"from_web", feedCfg.FromWeb(),
				"slack", slackCfg,
			)

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return err
			}
			defer safe.Close(ctx, repo)

			source, feedCloser, err := feedCfg.Configure(ctx)
			if err != nil {
				return err
			}
			defer feedCloser()

			roleMap, err := roleMapCfg.Configure()
			if err != nil {
				return err
			}

			notifier, err := slackCfg.Configure()
			if err != nil {
				return err
			}

			var parserOpts []ims.Option
			if syncCfg.CapitaFix() {
				parserOpts = append(parserOpts, ims.WithCapitaFix())
			}

			ucOpts := []usecase.Option{
				usecase.WithOptions(syncCfg.Options()),
				usecase.WithRoleMap(roleMap),
				usecase.WithAuditLogPath(auditLogPath),
			}
			if notifier != nil {
				ucOpts = append(ucOpts, usecase.WithNotifier(notifier))
			}

			uc := usecase.NewSync(repo, source, ims.New(parserOpts...), ucOpts...)

			report, err := uc.Run(ctx)
			if err != nil {
				return goerr.Wrap(err, "sync run failed")
			}

			logger.Info("Sync run completed",
				"feed", report.FeedPath,
				"skipped", report.Skipped,
				"elapsed", report.Elapsed,
				"courses_created", report.Groups.CoursesCreated,
				"users_created", report.Persons.Created,
				"enrolled", report.Memberships.Enrolled,
				"unenrolled", report.Memberships.Unenrolled,
			)
			return nil
		},
	}
}
