// Package ims parses IMS Enterprise XML feeds. The parser is streaming: it
// walks the token stream and decodes one top-level element subtree at a time,
// so memory use is bounded by the largest single element, not the document
// size. Unrecognized elements and attributes are ignored.
package ims

import (
	"encoding/xml"
	"io"
	"iter"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/campus-lab/rostersync/pkg/domain/model"
	"github.com/campus-lab/rostersync/pkg/domain/types"
)

// Parser extracts group, person and membership records from a feed. Each
// record sequence is finite and single-pass: the underlying reader is
// consumed once and cannot be rewound, so callers supply a fresh reader per
// sequence.
type Parser struct {
	roleCode roleCodeFunc
}

// Option is a functional option for Parser configuration
type Option func(*Parser)

// WithCapitaFix selects the alternate role layout emitted by Capita student
// record systems, which put the role type in a child element instead of the
// roletype attribute.
func WithCapitaFix() Option {
	return func(p *Parser) {
		p.roleCode = roleCodeFromElement
	}
}

// New creates a Parser
func New(opts ...Option) *Parser {
	p := &Parser{roleCode: roleCodeFromAttr}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Groups yields the <group> records of the feed in document order
func (p *Parser) Groups(r io.Reader) iter.Seq2[*model.GroupRecord, error] {
	return scan(r, "group", func(raw *xmlGroup) *model.GroupRecord {
		return &model.GroupRecord{
			SourceID:  strings.TrimSpace(raw.SourceID),
			FullName:  raw.Long,
			ShortName: raw.Short,
			Category:  raw.OrgUnit,
			RecStatus: types.RecStatus(looseInt(raw.RecStatus)),
		}
	})
}

// Persons yields the <person> records of the feed in document order
func (p *Parser) Persons(r io.Reader) iter.Seq2[*model.PersonRecord, error] {
	return scan(r, "person", func(raw *xmlPerson) *model.PersonRecord {
		return &model.PersonRecord{
			IDNumber:  strings.TrimSpace(raw.SourceID),
			Username:  strings.TrimSpace(raw.UserID),
			FirstName: raw.Given,
			LastName:  raw.Family,
			URL:       raw.URL,
			City:      raw.Locality,
			Country:   raw.Country,
			RecStatus: types.RecStatus(looseInt(raw.RecStatus)),
		}
	})
}

// Memberships yields the <membership> records of the feed in document order
func (p *Parser) Memberships(r io.Reader) iter.Seq2[*model.MembershipRecord, error] {
	return scan(r, "membership", func(raw *xmlMembership) *model.MembershipRecord {
		rec := &model.MembershipRecord{
			CourseSourceID: strings.TrimSpace(raw.SourceID),
			Members:        make([]model.Member, 0, len(raw.Members)),
		}
		for i := range raw.Members {
			rec.Members = append(rec.Members, p.convertMember(&raw.Members[i]))
		}
		return rec
	})
}

func (p *Parser) convertMember(raw *xmlMember) model.Member {
	return model.Member{
		IDNumber:       strings.TrimSpace(raw.SourceID),
		RoleCode:       types.RoleCode(strings.TrimSpace(p.roleCode(&raw.Role))),
		Active:         looseInt(raw.Role.Status.Value) == 1,
		RecStatus:      types.RecStatus(looseInt(raw.Role.RecStatus)),
		TimeframeBegin: timeframeText(raw, func(t *xmlTimeframe) string { return t.Begin }),
		TimeframeEnd:   timeframeText(raw, func(t *xmlTimeframe) string { return t.End }),
		GroupName:      strings.TrimSpace(raw.Extension.Cohort),
	}
}

// timeframeText picks a timeframe field from whichever layout the feed uses:
// <timeframe> nested inside <status> (as some vendors emit) or as a direct
// child of <role> (IMS Enterprise v1.1).
func timeframeText(raw *xmlMember, field func(*xmlTimeframe) string) string {
	if s := field(&raw.Role.Status.Timeframe); s != "" {
		return s
	}
	return field(&raw.Role.Timeframe)
}

// scan walks the token stream and decodes each top-level element named name
// into X, converting it to a record. A syntax or decode error terminates the
// sequence with a non-nil error; records before it have already been yielded.
// Elements with other names are passed over without materializing them.
func scan[X, R any](r io.Reader, name string, conv func(*X) R) iter.Seq2[R, error] {
	return func(yield func(R, error) bool) {
		var zero R
		dec := xml.NewDecoder(r)
		for {
			tok, err := dec.Token()
			if err == io.EOF {
				return
			}
			if err != nil {
				yield(zero, goerr.Wrap(err, "failed to read feed XML"))
				return
			}

			se, ok := tok.(xml.StartElement)
			if !ok || se.Name.Local != name {
				continue
			}

			var raw X
			if err := dec.DecodeElement(&raw, &se); err != nil {
				yield(zero, goerr.Wrap(err, "failed to decode feed element", goerr.V("element", name)))
				return
			}

			if !yield(conv(&raw), nil) {
				return
			}
		}
	}
}
