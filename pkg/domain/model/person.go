package model

import "github.com/campus-lab/rostersync/pkg/domain/types"

// PersonRecord is one <person> element of the feed. IDNumber carries the
// sourcedid that becomes the user idnumber. The feed's own email element is
// intentionally not represented: user email addresses are always derived from
// the username and the configured mail domain.
type PersonRecord struct {
	IDNumber  string
	Username  string
	FirstName string
	LastName  string
	URL       string
	City      string
	Country   string
	RecStatus types.RecStatus
}
