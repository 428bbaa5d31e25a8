package model

import (
	"strings"

	"github.com/campus-lab/rostersync/pkg/domain/types"
)

// GroupRecord is one <group> element of the feed. A group describes a course
// in the source system; SourceID carries the stable join key that becomes the
// course idnumber.
type GroupRecord struct {
	SourceID  string
	FullName  string
	ShortName string
	Category  string
	RecStatus types.RecStatus
}

// EffectiveFullName returns the full name, falling back to the short name
// when the full name is blank or whitespace. The fallback also covers a
// supplied-but-empty element.
func (g *GroupRecord) EffectiveFullName() string {
	if strings.TrimSpace(g.FullName) == "" {
		return g.ShortName
	}
	return g.FullName
}
