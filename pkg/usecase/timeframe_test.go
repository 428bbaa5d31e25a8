package usecase_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/campus-lab/rostersync/pkg/usecase"
)

func TestDecodeTimeframe(t *testing.T) {
	sep28 := time.Date(2026, 9, 28, 0, 0, 0, 0, time.UTC).Unix()

	t.Run("plain date", func(t *testing.T) {
		gt.Value(t, usecase.DecodeTimeframe("2026-09-28")).Equal(sep28)
	})

	t.Run("date buried in text", func(t *testing.T) {
		gt.Value(t, usecase.DecodeTimeframe("term begins 2026-09-28 at noon")).Equal(sep28)
	})

	t.Run("first date wins", func(t *testing.T) {
		gt.Value(t, usecase.DecodeTimeframe("2026-09-28/2026-12-18")).Equal(sep28)
	})

	t.Run("no date", func(t *testing.T) {
		gt.Value(t, usecase.DecodeTimeframe("")).Equal(int64(0))
		gt.Value(t, usecase.DecodeTimeframe("fall term")).Equal(int64(0))
	})

	t.Run("impossible date", func(t *testing.T) {
		gt.Value(t, usecase.DecodeTimeframe("2026-13-45")).Equal(int64(0))
	})
}
