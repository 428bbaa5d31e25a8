package usecase

import (
	"github.com/campus-lab/rostersync/pkg/domain/model"
	"github.com/campus-lab/rostersync/pkg/service/audit"
)

// runContext carries the state of one run through the pass functions: the
// audit log, the behavior switches, the role map, the group ID cache and the
// tallies. It exists so no run state lives in package variables.
type runContext struct {
	audit   *audit.Log
	options model.Options
	roleMap model.RoleMap
	report  *model.Report

	// Group name to ID associations, cached to cut repeated lookups when a
	// cohort spans many member lines
	groupIDs map[groupKey]model.GroupID
}

type groupKey struct {
	courseID model.CourseID
	name     string
}

func newRunContext(log *audit.Log, opts model.Options, roleMap model.RoleMap, report *model.Report) *runContext {
	return &runContext{
		audit:    log,
		options:  opts,
		roleMap:  roleMap,
		report:   report,
		groupIDs: make(map[groupKey]model.GroupID),
	}
}

func (rc *runContext) groupID(courseID model.CourseID, name string) (model.GroupID, bool) {
	id, ok := rc.groupIDs[groupKey{courseID: courseID, name: name}]
	return id, ok
}

func (rc *runContext) setGroupID(courseID model.CourseID, name string, id model.GroupID) {
	rc.groupIDs[groupKey{courseID: courseID, name: name}] = id
}
