package usecase_test

import (
	"context"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/campus-lab/rostersync/pkg/domain/model"
	"github.com/campus-lab/rostersync/pkg/repository/memory"
)

func TestGroupPass(t *testing.T) {
	ctx := context.Background()

	t.Run("new course is hidden with default shape", func(t *testing.T) {
		repo := memory.New()
		path := writeFeed(t, `<enterprise>
  <group>
    <sourcedid><id>CS101</id></sourcedid>
    <description><short>CS101</short><long>Intro CS</long></description>
  </group>
</enterprise>`)

		report, _ := runSync(t, repo, path, model.Options{CreateCourses: true})
		gt.Number(t, report.Groups.CoursesCreated).Equal(1)

		course, err := repo.Course().GetByIDNumber(ctx, "CS101")
		gt.NoError(t, err).Required()
		gt.Value(t, course).NotNil()
		gt.Bool(t, course.Visible).False()
		gt.Value(t, course.Format).Equal("topics")
		gt.Number(t, course.NumSections).Equal(11)
		gt.Number(t, course.SortOrder).Equal(0)

		// Without a resolvable category the default one is used
		cat, err := repo.Category().GetByName(ctx, model.DefaultCategoryName)
		gt.NoError(t, err).Required()
		gt.Value(t, cat).NotNil()
		gt.Value(t, course.CategoryID).Equal(cat.ID)
	})

	t.Run("blank full name falls back to short name", func(t *testing.T) {
		repo := memory.New()
		path := writeFeed(t, `<enterprise>
  <group>
    <sourcedid><id>CS101</id></sourcedid>
    <description><short>CS101</short><long>  </long></description>
  </group>
</enterprise>`)

		runSync(t, repo, path, model.Options{CreateCourses: true})

		course, err := repo.Course().GetByIDNumber(ctx, "CS101")
		gt.NoError(t, err).Required()
		gt.Value(t, course.FullName).Equal("CS101")
	})

	t.Run("existing course title is refreshed", func(t *testing.T) {
		repo := memory.New()
		_, err := repo.Course().Create(ctx, &model.Course{IDNumber: "CS101", FullName: "Old Title", Visible: true})
		gt.NoError(t, err).Required()

		path := writeFeed(t, `<enterprise>
  <group>
    <sourcedid><id>CS101</id></sourcedid>
    <description><short>CS101</short><long>New Title</long></description>
  </group>
</enterprise>`)

		report, _ := runSync(t, repo, path, model.Options{})
		gt.Number(t, report.Groups.CoursesUpdated).Equal(1)

		course, err := repo.Course().GetByIDNumber(ctx, "CS101")
		gt.NoError(t, err).Required()
		gt.Value(t, course.FullName).Equal("New Title")
		gt.Bool(t, course.Visible).True()
	})

	t.Run("deletion hides an existing course and never creates one", func(t *testing.T) {
		repo := memory.New()
		_, err := repo.Course().Create(ctx, &model.Course{IDNumber: "CS101", FullName: "Intro CS", Visible: true})
		gt.NoError(t, err).Required()

		path := writeFeed(t, `<enterprise>
  <group recstatus="3">
    <sourcedid><id>CS101</id></sourcedid>
    <description><short>CS101</short><long>Intro CS</long></description>
  </group>
  <group recstatus="3">
    <sourcedid><id>GONE900</id></sourcedid>
    <description><short>GONE900</short></description>
  </group>
</enterprise>`)

		runSync(t, repo, path, model.Options{CreateCourses: true})

		course, err := repo.Course().GetByIDNumber(ctx, "CS101")
		gt.NoError(t, err).Required()
		gt.Bool(t, course.Visible).False()

		ghost, err := repo.Course().GetByIDNumber(ctx, "GONE900")
		gt.NoError(t, err)
		gt.Value(t, ghost).Nil()
	})

	t.Run("creation disabled rejects unknown courses", func(t *testing.T) {
		repo := memory.New()
		path := writeFeed(t, `<enterprise>
  <group>
    <sourcedid><id>CS101</id></sourcedid>
    <description><short>CS101</short><long>Intro CS</long></description>
  </group>
</enterprise>`)

		report, log := runSync(t, repo, path, model.Options{})
		gt.Number(t, report.Groups.Rejected).Equal(1)
		gt.Bool(t, strings.Contains(log, "Course CS101 not found")).True()

		course, err := repo.Course().GetByIDNumber(ctx, "CS101")
		gt.NoError(t, err)
		gt.Value(t, course).Nil()
	})

	t.Run("missing course code is rejected", func(t *testing.T) {
		repo := memory.New()
		path := writeFeed(t, `<enterprise>
  <group>
    <description><short>NAMELESS</short></description>
  </group>
</enterprise>`)

		report, log := runSync(t, repo, path, model.Options{CreateCourses: true})
		gt.Number(t, report.Groups.Rejected).Equal(1)
		gt.Bool(t, strings.Contains(log, "Unable to find course code")).True()
	})

	t.Run("course codes are truncated before lookup", func(t *testing.T) {
		repo := memory.New()
		_, err := repo.Course().Create(ctx, &model.Course{IDNumber: "CS1", FullName: "Intro CS"})
		gt.NoError(t, err).Required()

		path := writeFeed(t, `<enterprise>
  <group>
    <sourcedid><id>CS101-LONG-SUFFIX</id></sourcedid>
    <description><short>CS101</short><long>Renamed</long></description>
  </group>
</enterprise>`)

		report, _ := runSync(t, repo, path, model.Options{TruncateCourseCodes: 3})
		gt.Number(t, report.Groups.CoursesUpdated).Equal(1)

		course, err := repo.Course().GetByIDNumber(ctx, "CS1")
		gt.NoError(t, err).Required()
		gt.Value(t, course.FullName).Equal("Renamed")
	})

	t.Run("named category is created when allowed", func(t *testing.T) {
		repo := memory.New()
		path := writeFeed(t, `<enterprise>
  <group>
    <sourcedid><id>CS101</id></sourcedid>
    <description><short>CS101</short><long>Intro CS</long></description>
    <org><orgunit>Computer Science</orgunit></org>
  </group>
</enterprise>`)

		report, _ := runSync(t, repo, path, model.Options{CreateCourses: true, CreateCategories: true})
		gt.Number(t, report.Groups.CategoriesCreated).Equal(1)

		cat, err := repo.Category().GetByName(ctx, "Computer Science")
		gt.NoError(t, err).Required()
		gt.Value(t, cat).NotNil()
		gt.Bool(t, cat.Visible).True()

		course, err := repo.Course().GetByIDNumber(ctx, "CS101")
		gt.NoError(t, err).Required()
		gt.Value(t, course.CategoryID).Equal(cat.ID)
	})
}
