package usecase

import (
	"context"
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/campus-lab/rostersync/pkg/domain/model"
)

const defaultLang = "en"

func (u *SyncUseCase) processPersons(ctx context.Context, rc *runContext, r io.Reader) error {
	for rec, err := range u.parser.Persons(r) {
		if err != nil {
			return err
		}
		if err := u.reconcilePerson(ctx, rc, rec); err != nil {
			return err
		}
	}
	return nil
}

func (u *SyncUseCase) reconcilePerson(ctx context.Context, rc *runContext, rec *model.PersonRecord) error {
	rc.report.Persons.Processed++

	username := rec.Username
	if rc.options.SourcedIDFallback && username == "" {
		// The userid element may be supplied-but-empty, so this is checked
		// after trimming rather than on element presence
		username = rec.IDNumber
	}
	if rc.options.FixCaseUsernames {
		username = strings.ToLower(username)
	}

	first, last := rec.FirstName, rec.LastName
	if rc.options.FixCasePersonalNames {
		first = titleCase(first)
		last = titleCase(last)
	}

	// Addresses are always derived from the username; the feed's own email
	// element is not trusted
	email := username + "@" + rc.options.EmailDomain

	if rec.RecStatus.IsDelete() {
		if rc.options.DeleteUsers {
			if err := u.repo.User().SetDeletedByUsername(ctx, username, true); err != nil {
				return err
			}
			rc.audit.Line("Marked user record for user '%s' (ID number %s) as deleted.", username, rec.IDNumber)
			rc.report.Persons.Deleted++
		} else {
			rc.audit.Line("Ignoring deletion request for user '%s' (ID number %s).", username, rec.IDNumber)
			rc.report.Persons.DeletionsIgnored++
		}
		return nil
	}

	existing, err := u.repo.User().GetByIDNumber(ctx, rec.IDNumber)
	if err != nil {
		return err
	}

	if existing != nil && existing.Suspended {
		rc.audit.Line("The user for ID number %s existed but is suspended. They will be unsuspended.", rec.IDNumber)
		existing.Suspended = false
		existing.Username = username
		existing.Email = email
		existing.Auth = model.DefaultAuth
		existing.Description += unsuspendedNote(time.Now())
		if err := u.repo.User().Update(ctx, existing); err != nil {
			return err
		}
		rc.report.Persons.Unsuspended++
	}

	if existing != nil {
		if rc.options.CreateUsers && existing.Deleted {
			if err := u.repo.User().SetDeletedByIDNumber(ctx, rec.IDNumber, false); err != nil {
				return err
			}
		}
		return nil
	}

	if !rc.options.CreateUsers {
		rc.audit.Line("No user record found for '%s' (ID number %s).", username, rec.IDNumber)
		rc.report.Persons.Skipped++
		return nil
	}
	if username == "" {
		rc.audit.Line("Cannot create new user for ID number %s - no username listed for this person.", rec.IDNumber)
		rc.report.Persons.Skipped++
		return nil
	}

	holder, err := u.repo.User().GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if holder != nil {
		if holder.IDNumber == "" {
			rc.audit.Line("A user record for '%s' already exists with no ID number; leaving it untouched.", username)
			rc.report.Persons.Skipped++
			return nil
		}

		// The username belongs to another ID number. Deactivate that account
		// and free the username, then fall through to create the new one.
		renamed := holder.Username + strconv.FormatInt(time.Now().Unix(), 10)
		rc.audit.Line("The username '%s' is in use; deactivating the previous account (ID number %s) and renaming it to '%s'.",
			username, holder.IDNumber, renamed)
		holder.Suspended = true
		holder.Description = deactivationNote(time.Now())
		holder.Username = renamed
		if err := u.repo.User().Update(ctx, holder); err != nil {
			return err
		}
		rc.report.Persons.CollisionsResolved++
	}

	_, err = u.repo.User().Create(ctx, &model.User{
		IDNumber:  rec.IDNumber,
		Username:  username,
		FirstName: first,
		LastName:  last,
		Email:     email,
		URL:       rec.URL,
		City:      rec.City,
		Country:   rec.Country,
		Auth:      model.DefaultAuth,
		Lang:      defaultLang,
		Confirmed: true,
	})
	if err != nil {
		return err
	}
	rc.audit.Line("Created user record for user '%s' (ID number %s).", username, rec.IDNumber)
	rc.report.Persons.Created++
	return nil
}

func titleCase(s string) string {
	return cases.Title(language.English).String(strings.ToLower(s))
}

func unsuspendedNote(now time.Time) string {
	return "---UNSUSPENDED on " + now.Format("2006-01-02:15")
}

func deactivationNote(now time.Time) string {
	return "This account was deactivated on " + now.Format("2006-01-02:15") +
		" as the ID number no longer has an active account"
}
