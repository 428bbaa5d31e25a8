// Package usecase implements the sync run: feed loading, the three
// reconciliation passes and the run ledger decision.
package usecase

import (
	"io"

	"github.com/campus-lab/rostersync/pkg/domain/interfaces"
	"github.com/campus-lab/rostersync/pkg/domain/model"
	"github.com/campus-lab/rostersync/pkg/feed"
	"github.com/campus-lab/rostersync/pkg/ims"
)

// SyncUseCase orchestrates one sync run against the entity store. A run is
// single-threaded; concurrent runs against the same store must be serialized
// by the caller.
type SyncUseCase struct {
	repo    interfaces.Repository
	source  *feed.Source
	parser  *ims.Parser
	options model.Options
	roleMap model.RoleMap

	notifier     interfaces.Notifier
	auditLogPath string
	auditOut     io.Writer
}

// Option is a functional option for SyncUseCase configuration
type Option func(*SyncUseCase)

// WithOptions sets the sync behavior switches
func WithOptions(opts model.Options) Option {
	return func(u *SyncUseCase) {
		u.options = opts
	}
}

// WithRoleMap replaces the default role mapping table
func WithRoleMap(m model.RoleMap) Option {
	return func(u *SyncUseCase) {
		u.roleMap = m
	}
}

// WithNotifier sets the end-of-run notifier. Without one, runs complete
// silently.
func WithNotifier(n interfaces.Notifier) Option {
	return func(u *SyncUseCase) {
		u.notifier = n
	}
}

// WithAuditLogPath mirrors the audit log to a file
func WithAuditLogPath(path string) Option {
	return func(u *SyncUseCase) {
		u.auditLogPath = path
	}
}

// WithAuditWriter replaces the audit log's primary writer (stdout by default)
func WithAuditWriter(w io.Writer) Option {
	return func(u *SyncUseCase) {
		u.auditOut = w
	}
}

// NewSync creates a SyncUseCase
func NewSync(repo interfaces.Repository, source *feed.Source, parser *ims.Parser, opts ...Option) *SyncUseCase {
	u := &SyncUseCase{
		repo:    repo,
		source:  source,
		parser:  parser,
		roleMap: model.DefaultRoleMap(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}
