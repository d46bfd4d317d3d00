package btoeperr_test

import (
	"errors"
	"os"
	"testing"

	"github.com/tniessen/btoep/internal/btoeperr"
)

func Test_ExitCode_MatchesSpecTable(t *testing.T) {
	t.Parallel()

	cases := []struct {
		kind btoeperr.Kind
		want int
	}{
		{btoeperr.KindDataConflict, 3},
		{btoeperr.KindSizeTooSmall, 3},
		{btoeperr.KindReadOutOfBounds, 3},
		{btoeperr.KindIO, 3},
		{btoeperr.KindMalformedIndex, 3},
		{btoeperr.KindLockContention, 3},
		{btoeperr.KindUsage, 2},
	}

	for _, c := range cases {
		if got := c.kind.ExitCode(); got != c.want {
			t.Fatalf("Kind(%d).ExitCode() = %d, want %d", c.kind, got, c.want)
		}
	}
}

func Test_Code_MatchesSpecStableIdentifiers(t *testing.T) {
	t.Parallel()

	cases := []struct {
		kind btoeperr.Kind
		want int
	}{
		{btoeperr.KindIO, 1},
		{btoeperr.KindSizeTooSmall, 3},
		{btoeperr.KindDataConflict, 5},
		{btoeperr.KindReadOutOfBounds, 6},
	}

	for _, c := range cases {
		if got := c.kind.Code(); got != c.want {
			t.Fatalf("Kind(%d).Code() = %d, want %d", c.kind, got, c.want)
		}
	}
}

func Test_Message_MatchesSpecText(t *testing.T) {
	t.Parallel()

	cases := []struct {
		kind btoeperr.Kind
		want string
	}{
		{btoeperr.KindDataConflict, "Data conflicts with existing data"},
		{btoeperr.KindSizeTooSmall, "Size too small to contain data"},
		{btoeperr.KindReadOutOfBounds, "Read out of bounds"},
		{btoeperr.KindIO, "System input/output error"},
	}

	for _, c := range cases {
		if got := c.kind.Message(); got != c.want {
			t.Fatalf("Kind(%d).Message() = %q, want %q", c.kind, got, c.want)
		}
	}
}

func Test_Is_ClassifiesByKindOnly(t *testing.T) {
	t.Parallel()

	err := btoeperr.New(btoeperr.KindDataConflict, "offset 512")

	if !errors.Is(err, btoeperr.New(btoeperr.KindDataConflict, "")) {
		t.Fatal("expected errors.Is to match on Kind regardless of Detail")
	}

	if errors.Is(err, btoeperr.New(btoeperr.KindReadOutOfBounds, "")) {
		t.Fatal("expected errors.Is to not match a different Kind")
	}
}

func Test_As_ExtractsKind(t *testing.T) {
	t.Parallel()

	err := btoeperr.New(btoeperr.KindLockContention, "")

	var kind btoeperr.Kind
	if !btoeperr.As(err, &kind) {
		t.Fatal("As returned false")
	}

	if kind != btoeperr.KindLockContention {
		t.Fatalf("kind = %v, want KindLockContention", kind)
	}
}

func Test_Wrap_AttachesSystemCause(t *testing.T) {
	t.Parallel()

	_, statErr := os.Stat("/does/not/exist/btoep-test-path")
	if statErr == nil {
		t.Skip("environment unexpectedly has this path")
	}

	err := btoeperr.Wrap(btoeperr.KindIO, "/does/not/exist/btoep-test-path", statErr)

	if err.Cause == nil {
		t.Fatal("expected a system cause to be attached")
	}

	if err.Cause.Name != "ENOENT" || err.Cause.Code != 2 {
		t.Fatalf("cause = %+v, want {ENOENT 2}", err.Cause)
	}
}

func Test_Error_FormatsKindMessageAndDetail(t *testing.T) {
	t.Parallel()

	err := btoeperr.New(btoeperr.KindSizeTooSmall, "")
	if got, want := err.Error(), "Size too small to contain data"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}
