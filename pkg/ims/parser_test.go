package ims_test

import (
	"strings"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/campus-lab/rostersync/pkg/domain/model"
	"github.com/campus-lab/rostersync/pkg/domain/types"
	"github.com/campus-lab/rostersync/pkg/ims"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<enterprise>
  <properties>
    <datasource>Student Records</datasource>
  </properties>
  <group recstatus="1">
    <sourcedid>
      <source>Student Records</source>
      <id> CS101 </id>
    </sourcedid>
    <description>
      <short>CS101</short>
      <long>Introduction to Computer Science</long>
    </description>
    <org>
      <orgunit>Computer Science</orgunit>
    </org>
  </group>
  <group recstatus="3">
    <sourcedid><id>HIST200</id></sourcedid>
    <description>
      <short>HIST200</short>
      <long></long>
    </description>
  </group>
  <person recstatus="1">
    <sourcedid><id>900001</id></sourcedid>
    <userid> jdoe </userid>
    <name>
      <fn>Jane Doe</fn>
      <n>
        <family>DOE</family>
        <given>JANE</given>
      </n>
    </name>
    <email>ignored@nowhere.invalid</email>
    <url>https://example.edu/~jdoe</url>
    <adr>
      <locality>Olympia</locality>
      <country>US</country>
    </adr>
  </person>
  <membership>
    <sourcedid><id>CS101</id></sourcedid>
    <member>
      <sourcedid><id>900001</id></sourcedid>
      <role roletype="01">
        <status>1<timeframe><begin>2026-09-28</begin><end>2026-12-18</end></timeframe></status>
        <extension><cohort>Section A</cohort></extension>
      </role>
      <extension><cohort>Section A</cohort></extension>
    </member>
    <member>
      <sourcedid><id>900002</id></sourcedid>
      <role roletype="02" recstatus="3">
        <status>1</status>
        <timeframe>
          <begin>2026-09-28</begin>
          <end>2026-12-18</end>
        </timeframe>
      </role>
    </member>
  </membership>
</enterprise>
`

func TestParserGroups(t *testing.T) {
	parser := ims.New()

	var groups []*model.GroupRecord
	for rec, err := range parser.Groups(strings.NewReader(sampleFeed)) {
		gt.NoError(t, err).Required()
		groups = append(groups, rec)
	}
	gt.Number(t, len(groups)).Equal(2)

	gt.Value(t, groups[0].SourceID).Equal("CS101")
	gt.Value(t, groups[0].FullName).Equal("Introduction to Computer Science")
	gt.Value(t, groups[0].ShortName).Equal("CS101")
	gt.Value(t, groups[0].Category).Equal("Computer Science")
	gt.Value(t, groups[0].RecStatus).Equal(types.RecStatusAdd)

	gt.Value(t, groups[1].SourceID).Equal("HIST200")
	gt.Value(t, groups[1].RecStatus).Equal(types.RecStatusDelete)
	gt.Value(t, groups[1].EffectiveFullName()).Equal("HIST200")
}

func TestParserPersons(t *testing.T) {
	parser := ims.New()

	var persons []*model.PersonRecord
	for rec, err := range parser.Persons(strings.NewReader(sampleFeed)) {
		gt.NoError(t, err).Required()
		persons = append(persons, rec)
	}
	gt.Number(t, len(persons)).Equal(1)

	p := persons[0]
	gt.Value(t, p.IDNumber).Equal("900001")
	gt.Value(t, p.Username).Equal("jdoe")
	gt.Value(t, p.FirstName).Equal("JANE")
	gt.Value(t, p.LastName).Equal("DOE")
	gt.Value(t, p.URL).Equal("https://example.edu/~jdoe")
	gt.Value(t, p.RecStatus).Equal(types.RecStatusAdd)
}

func TestParserMemberships(t *testing.T) {
	parser := ims.New()

	var blocks []*model.MembershipRecord
	for rec, err := range parser.Memberships(strings.NewReader(sampleFeed)) {
		gt.NoError(t, err).Required()
		blocks = append(blocks, rec)
	}
	gt.Number(t, len(blocks)).Equal(1)

	block := blocks[0]
	gt.Value(t, block.CourseSourceID).Equal("CS101")
	gt.Number(t, len(block.Members)).Equal(2)

	first := block.Members[0]
	gt.Value(t, first.IDNumber).Equal("900001")
	gt.Value(t, first.RoleCode).Equal(types.RoleCodeLearner)
	gt.Bool(t, first.Active).True()
	gt.Bool(t, first.EffectiveActive()).True()
	gt.Value(t, first.TimeframeBegin).Equal("2026-09-28")
	gt.Value(t, first.TimeframeEnd).Equal("2026-12-18")
	gt.Value(t, first.GroupName).Equal("Section A")

	// Timeframe as a direct child of role, and recstatus 3 overriding the
	// explicit active status
	second := block.Members[1]
	gt.Value(t, second.RoleCode).Equal(types.RoleCodeInstructor)
	gt.Bool(t, second.Active).True()
	gt.Bool(t, second.EffectiveActive()).False()
	gt.Value(t, strings.TrimSpace(second.TimeframeBegin)).Equal("2026-09-28")
}

func TestParserCapitaFix(t *testing.T) {
	const capitaFeed = `<enterprise>
  <membership>
    <sourcedid><id>CS101</id></sourcedid>
    <member>
      <sourcedid><id>900001</id></sourcedid>
      <role>
        <roletype>01</roletype>
        <status>1</status>
      </role>
    </member>
  </membership>
</enterprise>`

	t.Run("default layout ignores the child element", func(t *testing.T) {
		parser := ims.New()
		for rec, err := range parser.Memberships(strings.NewReader(capitaFeed)) {
			gt.NoError(t, err).Required()
			gt.Value(t, rec.Members[0].RoleCode).Equal(types.RoleCode(""))
		}
	})

	t.Run("capita layout reads the child element", func(t *testing.T) {
		parser := ims.New(ims.WithCapitaFix())
		for rec, err := range parser.Memberships(strings.NewReader(capitaFeed)) {
			gt.NoError(t, err).Required()
			gt.Value(t, rec.Members[0].RoleCode).Equal(types.RoleCodeLearner)
		}
	})
}

func TestParserMalformedXML(t *testing.T) {
	parser := ims.New()

	var seen int
	var lastErr error
	for _, err := range parser.Groups(strings.NewReader(`<enterprise><group><sourcedid><id>A1</id></sourcedid></group><group>`)) {
		if err != nil {
			lastErr = err
			break
		}
		seen++
	}
	gt.Number(t, seen).Equal(1)
	gt.Value(t, lastErr).NotNil()
}

func TestParserManyRecords(t *testing.T) {
	var b strings.Builder
	b.WriteString("<enterprise>")
	for i := 0; i < 500; i++ {
		b.WriteString(`<person><sourcedid><id>9000</id></sourcedid><userid>u</userid></person>`)
	}
	b.WriteString("</enterprise>")

	parser := ims.New()
	count := 0
	for _, err := range parser.Persons(strings.NewReader(b.String())) {
		gt.NoError(t, err).Required()
		count++
	}
	gt.Number(t, count).Equal(500)
}
