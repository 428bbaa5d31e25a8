package usecase

import (
	"context"
	"io"

	"github.com/campus-lab/rostersync/pkg/domain/model"
)

func (u *SyncUseCase) processMemberships(ctx context.Context, rc *runContext, r io.Reader) error {
	for rec, err := range u.parser.Memberships(r) {
		if err != nil {
			return err
		}
		if err := u.reconcileMembership(ctx, rc, rec); err != nil {
			return err
		}
	}
	return nil
}

func (u *SyncUseCase) reconcileMembership(ctx context.Context, rc *runContext, rec *model.MembershipRecord) error {
	code := rc.options.TruncateCourseCode(rec.CourseSourceID)

	course, err := u.repo.Course().GetByIDNumber(ctx, code)
	if err != nil {
		return err
	}
	if course == nil {
		rc.audit.Line("Error: Unable to find course with code %s; skipping its membership block.", code)
		rc.report.Memberships.BlocksSkipped++
		return nil
	}
	rc.report.Memberships.BlocksProcessed++

	tally := model.CourseTally{CourseCode: code}

	// The owned enrolment instance is resolved at most once per block
	var instance *model.EnrolInstance

	for i := range rec.Members {
		m := &rec.Members[i]

		user, err := u.repo.User().GetByIDNumber(ctx, m.IDNumber)
		if err != nil {
			return err
		}
		if user == nil {
			continue
		}

		roleID := rc.roleMap.Resolve(m.RoleCode)
		if roleID.IsNone() {
			rc.audit.Line("SKIPPING role %s for %s (%s) in course %s", m.RoleCode, user.Username, m.IDNumber, code)
			rc.report.Memberships.RolesSkipped++
			continue
		}

		if m.EffectiveActive() {
			if instance == nil {
				instance, err = u.ensureInstance(ctx, course.ID)
				if err != nil {
					return err
				}
			}

			// Both ends of the enrolment window decode from the begin text
			begin := decodeTimeframe(m.TimeframeBegin)
			end := decodeTimeframe(m.TimeframeBegin)
			if err := u.repo.Enrolment().Enrol(ctx, instance.ID, user.ID, roleID, begin, end); err != nil {
				return err
			}
			rc.audit.Line("Enrolled user %s (%s) to role %s in course %s", user.Username, m.IDNumber, m.RoleCode, code)
			rc.report.Memberships.Enrolled++
			tally.Enrolled++

			if m.GroupName != "" {
				if err := u.ensureGroupMembership(ctx, rc, course.ID, m.GroupName, user.ID); err != nil {
					return err
				}
			}
			continue
		}

		if !rc.options.AllowUnenrol {
			enrolled, err := u.isEnrolledAnywhere(ctx, course.ID, user.ID)
			if err != nil {
				return err
			}
			if enrolled {
				rc.report.Memberships.MissedDeactivations++
			}
			continue
		}

		// Remove the user from every owned instance attached to the course
		instances, err := u.repo.Enrolment().ListInstances(ctx, course.ID)
		if err != nil {
			return err
		}
		for _, inst := range instances {
			if err := u.repo.Enrolment().Unenrol(ctx, inst.ID, user.ID); err != nil {
				return err
			}
		}
		rc.audit.Line("Unenrolled %s from course %s", m.IDNumber, code)
		rc.report.Memberships.Unenrolled++
		tally.Removed++
	}

	rc.audit.Line("Added %d users to course %s", tally.Enrolled, code)
	if tally.Removed > 0 {
		rc.audit.Line("Removed %d users from course %s", tally.Removed, code)
	}
	rc.report.Courses = append(rc.report.Courses, tally)
	return nil
}

func (u *SyncUseCase) ensureInstance(ctx context.Context, courseID model.CourseID) (*model.EnrolInstance, error) {
	inst, err := u.repo.Enrolment().GetInstance(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if inst != nil {
		return inst, nil
	}
	return u.repo.Enrolment().CreateInstance(ctx, courseID)
}

func (u *SyncUseCase) isEnrolledAnywhere(ctx context.Context, courseID model.CourseID, userID model.UserID) (bool, error) {
	instances, err := u.repo.Enrolment().ListInstances(ctx, courseID)
	if err != nil {
		return false, err
	}
	for _, inst := range instances {
		enrolled, err := u.repo.Enrolment().IsEnrolled(ctx, inst.ID, userID)
		if err != nil {
			return false, err
		}
		if enrolled {
			return true, nil
		}
	}
	return false, nil
}

// ensureGroupMembership resolves or creates the named group in the course and
// records the user's membership, going through the run-scoped cache first.
func (u *SyncUseCase) ensureGroupMembership(ctx context.Context, rc *runContext, courseID model.CourseID, name string, userID model.UserID) error {
	id, ok := rc.groupID(courseID, name)
	if !ok {
		g, err := u.repo.Group().GetByName(ctx, courseID, name)
		if err != nil {
			return err
		}
		if g == nil {
			g, err = u.repo.Group().Create(ctx, &model.CourseGroup{CourseID: courseID, Name: name})
			if err != nil {
				return err
			}
			rc.audit.Line("Added a new group for this course: %s", name)
		}
		id = g.ID
		rc.setGroupID(courseID, name, id)
	}
	return u.repo.Group().AddMember(ctx, id, userID)
}
