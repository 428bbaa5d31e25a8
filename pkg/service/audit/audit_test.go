package audit_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/campus-lab/rostersync/pkg/service/audit"
)

func TestLog(t *testing.T) {
	ctx := context.Background()

	t.Run("writes formatted lines to the writer", func(t *testing.T) {
		var buf bytes.Buffer
		log := audit.New(ctx, "", audit.WithWriter(&buf))
		defer log.Close(ctx)

		log.Line("Enrolled user %s to role %s", "jdoe", "01")
		log.Separator()

		lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
		gt.Array(t, lines).Length(2)
		gt.Value(t, lines[0]).Equal("Enrolled user jdoe to role 01")
		gt.Bool(t, strings.HasPrefix(lines[1], "----")).True()

		gt.Value(t, log.Path()).Equal("")
	})

	t.Run("mirrors lines to the file in append mode", func(t *testing.T) {
		var buf bytes.Buffer
		path := filepath.Join(t.TempDir(), "audit.log")

		log := audit.New(ctx, path, audit.WithWriter(&buf))
		gt.Value(t, log.Path()).Equal(path)
		log.Line("first run")
		log.Close(ctx)

		log = audit.New(ctx, path, audit.WithWriter(&buf))
		log.Line("second run")
		log.Close(ctx)

		content, err := os.ReadFile(path)
		gt.NoError(t, err).Required()
		gt.Value(t, string(content)).Equal("first run\nsecond run\n")
	})

	t.Run("unopenable mirror path keeps the writer going", func(t *testing.T) {
		var buf bytes.Buffer
		log := audit.New(ctx, filepath.Join(t.TempDir(), "no", "such", "dir", "audit.log"),
			audit.WithWriter(&buf))
		defer log.Close(ctx)

		gt.Value(t, log.Path()).Equal("")
		log.Line("still works")
		gt.Bool(t, strings.Contains(buf.String(), "still works")).True()
	})
}
