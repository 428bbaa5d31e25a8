package cli

import (
	"bytes"
	"context"
	"fmt"
	"slices"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/campus-lab/rostersync/pkg/cli/config"
	"github.com/campus-lab/rostersync/pkg/domain/types"
	"github.com/campus-lab/rostersync/pkg/ims"
)

func cmdValidate() *cli.Command {
	var feedCfg config.Feed
	var capitaFix bool

	var flags []cli.Flag
	flags = append(flags, feedCfg.Flags()...)
	flags = append(flags, &cli.BoolFlag{
		Name:        "capita-fix",
		Usage:       "Read the role type from a child element (Capita feed layout)",
		Sources:     cli.EnvVars("ROSTERSYNC_CAPITA_FIX"),
		Destination: &capitaFix,
	})

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Parse the feed and report record counts and problems without touching the store",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			source, closer, err := feedCfg.Configure(ctx)
			if err != nil {
				return err
			}
			defer closer()

			f, err := source.Load(ctx)
			if err != nil {
				return err
			}
			if f == nil {
				return goerr.New("feed not found", goerr.V("location", source.Location()))
			}

			var parserOpts []ims.Option
			if capitaFix {
				parserOpts = append(parserOpts, ims.WithCapitaFix())
			}
			parser := ims.New(parserOpts...)

			warn := color.New(color.FgYellow).SprintfFunc()
			ok := color.New(color.FgGreen).SprintFunc()

			var groups, persons, blocks, members, problems int

			for rec, err := range parser.Groups(bytes.NewReader(f.Content)) {
				if err != nil {
					return err
				}
				groups++
				if rec.SourceID == "" {
					problems++
					fmt.Println(warn("group %d: no course code", groups))
				}
			}

			for rec, err := range parser.Persons(bytes.NewReader(f.Content)) {
				if err != nil {
					return err
				}
				persons++
				if rec.IDNumber == "" {
					problems++
					fmt.Println(warn("person %d: no sourcedid", persons))
				}
				if rec.Username == "" {
					problems++
					fmt.Println(warn("person %d (%s): no username", persons, rec.IDNumber))
				}
			}

			knownCodes := types.AllRoleCodes()
			for rec, err := range parser.Memberships(bytes.NewReader(f.Content)) {
				if err != nil {
					return err
				}
				blocks++
				members += len(rec.Members)
				if rec.CourseSourceID == "" {
					problems++
					fmt.Println(warn("membership %d: no course code", blocks))
				}
				for _, m := range rec.Members {
					if m.RoleCode != "" && !slices.Contains(knownCodes, m.RoleCode) {
						problems++
						fmt.Println(warn("membership %d (%s): unrecognized role code %q for member %s",
							blocks, rec.CourseSourceID, m.RoleCode, m.IDNumber))
					}
				}
			}

			fmt.Printf("Feed: %s\n", f.Identity.Path)
			fmt.Printf("Groups: %d, Persons: %d, Memberships: %d blocks / %d members\n",
				groups, persons, blocks, members)
			if problems == 0 {
				fmt.Println(ok("No problems found"))
			} else {
				fmt.Println(warn("%d problem(s) found", problems))
			}
			return nil
		},
	}
}
