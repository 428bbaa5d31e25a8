package ims

import (
	"strconv"
	"strings"
)

// Raw element shapes. Missing child elements simply leave zero values; record
// validation is the reconciler's job, not the parser's.

type xmlGroup struct {
	RecStatus string `xml:"recstatus,attr"`
	SourceID  string `xml:"sourcedid>id"`
	Long      string `xml:"description>long"`
	Short     string `xml:"description>short"`
	OrgUnit   string `xml:"org>orgunit"`
}

type xmlPerson struct {
	RecStatus string `xml:"recstatus,attr"`
	SourceID  string `xml:"sourcedid>id"`
	UserID    string `xml:"userid"`
	Given     string `xml:"name>n>given"`
	Family    string `xml:"name>n>family"`
	URL       string `xml:"url"`
	Locality  string `xml:"locality"`
	Country   string `xml:"country"`
}

type xmlMembership struct {
	SourceID string      `xml:"sourcedid>id"`
	Members  []xmlMember `xml:"member"`
}

type xmlMember struct {
	SourceID  string       `xml:"sourcedid>id"`
	Role      xmlRole      `xml:"role"`
	Extension xmlExtension `xml:"extension"`
}

type xmlRole struct {
	RoleTypeAttr  string       `xml:"roletype,attr"`
	RoleTypeChild string       `xml:"roletype"`
	RecStatus     string       `xml:"recstatus,attr"`
	Status        xmlStatus    `xml:"status"`
	Timeframe     xmlTimeframe `xml:"timeframe"`
}

type xmlStatus struct {
	Value     string       `xml:",chardata"`
	Timeframe xmlTimeframe `xml:"timeframe"`
}

type xmlTimeframe struct {
	Begin string `xml:"begin"`
	End   string `xml:"end"`
}

type xmlExtension struct {
	Cohort string `xml:"cohort"`
}

// roleCodeFunc extracts the source role code from a role element. The two
// variants cover the standard attribute layout and the Capita child-element
// layout.
type roleCodeFunc func(r *xmlRole) string

func roleCodeFromAttr(r *xmlRole) string {
	return r.RoleTypeAttr
}

func roleCodeFromElement(r *xmlRole) string {
	return r.RoleTypeChild
}

// looseInt extracts the first run of digits from s, tolerating values like
// "1\n" or "01". Anything without digits is zero.
func looseInt(s string) int {
	var digits strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		} else if digits.Len() > 0 {
			break
		}
	}
	if digits.Len() == 0 {
		return 0
	}
	n, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0
	}
	return n
}
