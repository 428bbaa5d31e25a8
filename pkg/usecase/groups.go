package usecase

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/campus-lab/rostersync/pkg/domain/model"
)

func (u *SyncUseCase) processGroups(ctx context.Context, rc *runContext, r io.Reader) error {
	for rec, err := range u.parser.Groups(r) {
		if err != nil {
			return err
		}
		if err := u.reconcileGroup(ctx, rc, rec); err != nil {
			return err
		}
	}
	return nil
}

func (u *SyncUseCase) reconcileGroup(ctx context.Context, rc *runContext, rec *model.GroupRecord) error {
	rc.report.Groups.Processed++

	if rec.SourceID == "" {
		rc.audit.Line("Error: Unable to find course code in 'group' element.")
		rc.report.Groups.Rejected++
		return nil
	}
	code := rc.options.TruncateCourseCode(rec.SourceID)

	course, err := u.repo.Course().GetByIDNumber(ctx, code)
	if err != nil {
		return err
	}

	if course == nil {
		// A deletion request never creates the course it asks to remove
		if rec.RecStatus.IsDelete() {
			return nil
		}
		if !rc.options.CreateCourses {
			rc.audit.Line("Course %s not found in existing course codes.", code)
			rc.report.Groups.Rejected++
			return nil
		}

		categoryID, err := u.resolveCategory(ctx, rc, rec.Category)
		if err != nil {
			return err
		}

		created, err := u.repo.Course().Create(ctx, &model.Course{
			IDNumber:    code,
			FullName:    rec.EffectiveFullName(),
			ShortName:   rec.ShortName,
			CategoryID:  categoryID,
			Visible:     false,
			Format:      "topics",
			NumSections: 11,
			SortOrder:   0,
			StartDate:   time.Now(),
		})
		if err != nil {
			return err
		}
		rc.audit.Line("Created course %s (ID %s)", code, created.ID)
		rc.report.Groups.CoursesCreated++
		return nil
	}

	// The title is refreshed unconditionally in case it changed in the source
	// system
	if err := u.repo.Course().UpdateFullName(ctx, course.ID, rec.EffectiveFullName()); err != nil {
		return err
	}
	rc.report.Groups.CoursesUpdated++

	if rec.RecStatus.IsDelete() {
		if err := u.repo.Course().SetVisible(ctx, course.ID, false); err != nil {
			return err
		}
		rc.audit.Line("Marked course %s as hidden.", code)
	}
	return nil
}

// resolveCategory maps the feed's organizational unit to a category ID,
// creating the category when allowed and falling back to the default root
// category otherwise.
func (u *SyncUseCase) resolveCategory(ctx context.Context, rc *runContext, name string) (model.CategoryID, error) {
	name = strings.TrimSpace(name)
	if name != "" {
		cat, err := u.repo.Category().GetByName(ctx, name)
		if err != nil {
			return "", err
		}
		if cat != nil {
			return cat.ID, nil
		}
		if rc.options.CreateCategories {
			created, err := u.repo.Category().Create(ctx, &model.Category{Name: name, Visible: true})
			if err != nil {
				return "", err
			}
			rc.audit.Line("Created new category %s (ID %s)", name, created.ID)
			rc.report.Groups.CategoriesCreated++
			return created.ID, nil
		}
		rc.audit.Line("Category %s not found, so using the default category instead.", name)
	}
	return u.defaultCategory(ctx)
}

func (u *SyncUseCase) defaultCategory(ctx context.Context) (model.CategoryID, error) {
	cat, err := u.repo.Category().GetByName(ctx, model.DefaultCategoryName)
	if err != nil {
		return "", err
	}
	if cat != nil {
		return cat.ID, nil
	}
	created, err := u.repo.Category().Create(ctx, &model.Category{Name: model.DefaultCategoryName, Visible: true})
	if err != nil {
		return "", err
	}
	return created.ID, nil
}
