package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/campus-lab/rostersync/pkg/domain/model"
	"github.com/campus-lab/rostersync/pkg/domain/types"
	"github.com/campus-lab/rostersync/pkg/repository/memory"
)

func seedCourse(t *testing.T, repo *memory.Memory, code string) *model.Course {
	t.Helper()
	course, err := repo.Course().Create(context.Background(), &model.Course{IDNumber: code, FullName: code})
	gt.NoError(t, err).Required()
	return course
}

func TestMembershipPass(t *testing.T) {
	ctx := context.Background()

	t.Run("active member is enrolled at the mapped role", func(t *testing.T) {
		repo := memory.New()
		course := seedCourse(t, repo, "CS101")
		seed(t, repo, &model.User{IDNumber: "900001", Username: "jdoe"})

		path := writeFeed(t, `<enterprise>
  <membership>
    <sourcedid><id>CS101</id></sourcedid>
    <member>
      <sourcedid><id>900001</id></sourcedid>
      <role roletype="01"><status>1</status></role>
    </member>
  </membership>
</enterprise>`)

		report, log := runSync(t, repo, path, model.Options{})
		gt.Number(t, report.Memberships.Enrolled).Equal(1)
		gt.Number(t, len(report.Courses)).Equal(1)
		gt.Number(t, report.Courses[0].Enrolled).Equal(1)

		inst, err := repo.Enrolment().GetInstance(ctx, course.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, inst).NotNil()
		gt.Value(t, inst.Method).Equal(model.EnrolMethod)

		user, err := repo.User().GetByIDNumber(ctx, "900001")
		gt.NoError(t, err).Required()
		enr, err := repo.Enrolment().GetEnrolment(ctx, inst.ID, user.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, enr).NotNil()
		gt.Value(t, enr.RoleID).Equal(types.RoleID(5))

		gt.Bool(t, strings.Contains(log, "Enrolled user jdoe (900001) to role 01 in course CS101")).True()
	})

	t.Run("both window bounds decode from the begin text", func(t *testing.T) {
		repo := memory.New()
		course := seedCourse(t, repo, "CS101")
		seed(t, repo, &model.User{IDNumber: "900001", Username: "jdoe"})

		path := writeFeed(t, `<enterprise>
  <membership>
    <sourcedid><id>CS101</id></sourcedid>
    <member>
      <sourcedid><id>900001</id></sourcedid>
      <role roletype="01">
        <status>1<timeframe><begin>2026-09-28</begin><end>2026-12-18</end></timeframe></status>
      </role>
    </member>
  </membership>
</enterprise>`)

		runSync(t, repo, path, model.Options{})

		inst, err := repo.Enrolment().GetInstance(ctx, course.ID)
		gt.NoError(t, err).Required()
		user, err := repo.User().GetByIDNumber(ctx, "900001")
		gt.NoError(t, err).Required()
		enr, err := repo.Enrolment().GetEnrolment(ctx, inst.ID, user.ID)
		gt.NoError(t, err).Required()

		begin := time.Date(2026, 9, 28, 0, 0, 0, 0, time.UTC).Unix()
		gt.Value(t, enr.TimeStart).Equal(begin)
		gt.Value(t, enr.TimeEnd).Equal(begin)
	})

	t.Run("unmapped role is skipped", func(t *testing.T) {
		repo := memory.New()
		course := seedCourse(t, repo, "CS101")
		seed(t, repo, &model.User{IDNumber: "900001", Username: "jdoe"})

		path := writeFeed(t, `<enterprise>
  <membership>
    <sourcedid><id>CS101</id></sourcedid>
    <member>
      <sourcedid><id>900001</id></sourcedid>
      <role roletype="07"><status>1</status></role>
    </member>
  </membership>
</enterprise>`)

		report, log := runSync(t, repo, path, model.Options{})
		gt.Number(t, report.Memberships.RolesSkipped).Equal(1)
		gt.Number(t, report.Memberships.Enrolled).Equal(0)
		gt.Bool(t, strings.Contains(log, "SKIPPING role 07")).True()

		inst, err := repo.Enrolment().GetInstance(ctx, course.ID)
		gt.NoError(t, err)
		gt.Value(t, inst).Nil()
	})

	t.Run("unknown course skips the whole block", func(t *testing.T) {
		repo := memory.New()
		seed(t, repo, &model.User{IDNumber: "900001", Username: "jdoe"})

		path := writeFeed(t, `<enterprise>
  <membership>
    <sourcedid><id>NOPE</id></sourcedid>
    <member>
      <sourcedid><id>900001</id></sourcedid>
      <role roletype="01"><status>1</status></role>
    </member>
  </membership>
</enterprise>`)

		report, log := runSync(t, repo, path, model.Options{})
		gt.Number(t, report.Memberships.BlocksSkipped).Equal(1)
		gt.Number(t, report.Memberships.Enrolled).Equal(0)
		gt.Bool(t, strings.Contains(log, "Unable to find course with code NOPE")).True()
	})

	t.Run("inactive member is unenrolled only when allowed", func(t *testing.T) {
		inactiveFeed := `<enterprise>
  <membership>
    <sourcedid><id>CS101</id></sourcedid>
    <member>
      <sourcedid><id>900001</id></sourcedid>
      <role roletype="01"><status>0</status></role>
    </member>
  </membership>
</enterprise>`

		enrol := func(t *testing.T, repo *memory.Memory, course *model.Course) (model.EnrolmentID, model.UserID) {
			t.Helper()
			user, err := repo.User().GetByIDNumber(ctx, "900001")
			gt.NoError(t, err).Required()
			inst, err := repo.Enrolment().CreateInstance(ctx, course.ID)
			gt.NoError(t, err).Required()
			gt.NoError(t, repo.Enrolment().Enrol(ctx, inst.ID, user.ID, types.RoleID(5), 0, 0))
			return inst.ID, user.ID
		}

		t.Run("disallowed counts the missed deactivation", func(t *testing.T) {
			repo := memory.New()
			course := seedCourse(t, repo, "CS101")
			seed(t, repo, &model.User{IDNumber: "900001", Username: "jdoe"})
			instID, userID := enrol(t, repo, course)

			report, _ := runSync(t, repo, writeFeed(t, inactiveFeed), model.Options{})
			gt.Number(t, report.Memberships.Unenrolled).Equal(0)
			gt.Number(t, report.Memberships.MissedDeactivations).Equal(1)

			enrolled, err := repo.Enrolment().IsEnrolled(ctx, instID, userID)
			gt.NoError(t, err)
			gt.Bool(t, enrolled).True()
		})

		t.Run("allowed removes the enrolment from every owned instance", func(t *testing.T) {
			repo := memory.New()
			course := seedCourse(t, repo, "CS101")
			seed(t, repo, &model.User{IDNumber: "900001", Username: "jdoe"})
			instID, userID := enrol(t, repo, course)

			report, log := runSync(t, repo, writeFeed(t, inactiveFeed), model.Options{AllowUnenrol: true})
			gt.Number(t, report.Memberships.Unenrolled).Equal(1)

			enrolled, err := repo.Enrolment().IsEnrolled(ctx, instID, userID)
			gt.NoError(t, err)
			gt.Bool(t, enrolled).False()
			gt.Bool(t, strings.Contains(log, "Removed 1 users from course CS101")).True()
		})
	})

	t.Run("deletion recstatus forces the member inactive", func(t *testing.T) {
		repo := memory.New()
		course := seedCourse(t, repo, "CS101")
		seed(t, repo, &model.User{IDNumber: "900001", Username: "jdoe"})

		path := writeFeed(t, `<enterprise>
  <membership>
    <sourcedid><id>CS101</id></sourcedid>
    <member>
      <sourcedid><id>900001</id></sourcedid>
      <role roletype="01" recstatus="3"><status>1</status></role>
    </member>
  </membership>
</enterprise>`)

		report, _ := runSync(t, repo, path, model.Options{AllowUnenrol: true})
		gt.Number(t, report.Memberships.Enrolled).Equal(0)

		inst, err := repo.Enrolment().GetInstance(ctx, course.ID)
		gt.NoError(t, err)
		gt.Value(t, inst).Nil()
	})

	t.Run("cohort name creates the course group and membership", func(t *testing.T) {
		repo := memory.New()
		course := seedCourse(t, repo, "CS101")
		seed(t, repo, &model.User{IDNumber: "900001", Username: "jdoe"})
		seed(t, repo, &model.User{IDNumber: "900002", Username: "asmith"})

		path := writeFeed(t, `<enterprise>
  <membership>
    <sourcedid><id>CS101</id></sourcedid>
    <member>
      <sourcedid><id>900001</id></sourcedid>
      <role roletype="01"><status>1</status></role>
      <extension><cohort>Section A</cohort></extension>
    </member>
    <member>
      <sourcedid><id>900002</id></sourcedid>
      <role roletype="01"><status>1</status></role>
      <extension><cohort>Section A</cohort></extension>
    </member>
  </membership>
</enterprise>`)

		_, log := runSync(t, repo, path, model.Options{})

		group, err := repo.Group().GetByName(ctx, course.ID, "Section A")
		gt.NoError(t, err).Required()
		gt.Value(t, group).NotNil()

		// The group is created once and reused from the cache
		gt.Number(t, strings.Count(log, "Added a new group for this course: Section A")).Equal(1)
	})

	t.Run("unknown member is skipped without failing the block", func(t *testing.T) {
		repo := memory.New()
		seedCourse(t, repo, "CS101")
		seed(t, repo, &model.User{IDNumber: "900001", Username: "jdoe"})

		path := writeFeed(t, `<enterprise>
  <membership>
    <sourcedid><id>CS101</id></sourcedid>
    <member>
      <sourcedid><id>424242</id></sourcedid>
      <role roletype="01"><status>1</status></role>
    </member>
    <member>
      <sourcedid><id>900001</id></sourcedid>
      <role roletype="01"><status>1</status></role>
    </member>
  </membership>
</enterprise>`)

		report, _ := runSync(t, repo, path, model.Options{})
		gt.Number(t, report.Memberships.Enrolled).Equal(1)
	})
}
