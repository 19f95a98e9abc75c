package format_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gogd/pkg/format"
)

func reorderOK(t *testing.T, source string) string {
	t.Helper()
	out, err := format.Reorder(source)
	require.NoError(t, err)
	return out
}

func TestReorder(t *testing.T) {
	t.Parallel()

	t.Run("variables move above methods", func(t *testing.T) {
		t.Parallel()
		src := "extends Node\n\n\nfunc f():\n\tpass\n\n\nvar a = 1\n"
		want := "extends Node\n\nvar a = 1\n\n\nfunc f():\n\tpass\n"
		require.Equal(t, want, reorderOK(t, src))
	})

	t.Run("signals enums constants variables order", func(t *testing.T) {
		t.Parallel()
		src := "var a = 1\nconst C = 2\nenum E { X }\nsignal fired\n"
		want := "signal fired\n\nenum E { X }\n\nconst C = 2\n\nvar a = 1\n"
		require.Equal(t, want, reorderOK(t, src))
	})

	t.Run("variable flavors order", func(t *testing.T) {
		t.Parallel()
		src := "@onready var s = $S\nvar plain = 1\n@export var e = 2\nstatic var st = 3\n"
		want := "static var st = 3\n\n@export var e = 2\n\nvar plain = 1\n\n@onready var s = $S\n"
		require.Equal(t, want, reorderOK(t, src))
	})

	t.Run("virtual methods keep their fixed order", func(t *testing.T) {
		t.Parallel()
		src := "func _ready():\n\tpass\n\n\nfunc _init():\n\tpass\n\n\nfunc _process(delta):\n\tpass\n"
		want := "func _init():\n\tpass\n\n\nfunc _ready():\n\tpass\n\n\nfunc _process(delta):\n\tpass\n"
		require.Equal(t, want, reorderOK(t, src))
	})

	t.Run("overridden custom methods precede regular methods", func(t *testing.T) {
		t.Parallel()
		src := "func run():\n\tpass\n\n\nfunc _helper():\n\tpass\n"
		want := "func _helper():\n\tpass\n\n\nfunc run():\n\tpass\n"
		require.Equal(t, want, reorderOK(t, src))
	})

	t.Run("already ordered source is byte identical", func(t *testing.T) {
		t.Parallel()
		// Spacing deliberately off-style: a no-op reorder must not touch it.
		src := "extends Node\nvar a = 1\n\n\n\nfunc f():\n\tpass\n"
		require.Equal(t, src, reorderOK(t, src))
	})

	t.Run("comments move with their declaration", func(t *testing.T) {
		t.Parallel()
		src := "func f():\n\tpass\n\n\n# the answer\nvar a = 42\n"
		want := "# the answer\nvar a = 42\n\n\nfunc f():\n\tpass\n"
		require.Equal(t, want, reorderOK(t, src))
	})

	t.Run("section annotations move with their variable", func(t *testing.T) {
		t.Parallel()
		src := "func f():\n\tpass\n\n\n@export_group(\"Movement\")\n@export var speed = 10\n"
		want := "@export_group(\"Movement\")\n@export var speed = 10\n\n\nfunc f():\n\tpass\n"
		require.Equal(t, want, reorderOK(t, src))
	})

	t.Run("tool annotation goes first", func(t *testing.T) {
		t.Parallel()
		src := "extends Node\n@tool\n"
		want := "@tool\nextends Node\n"
		require.Equal(t, want, reorderOK(t, src))
	})

	t.Run("skip region disables reordering", func(t *testing.T) {
		t.Parallel()
		src := "# fmt: off\nfunc f():\n\tpass\n\n\nvar a = 1\n# fmt: on\n"
		require.Equal(t, src, reorderOK(t, src))
	})

	t.Run("inner class body is reordered", func(t *testing.T) {
		t.Parallel()
		src := "class Inner:\n\tfunc g():\n\t\tpass\n\n\tvar b = 2\n"
		want := "class Inner:\n\tvar b = 2\n\n\n\tfunc g():\n\t\tpass\n"
		require.Equal(t, want, reorderOK(t, src))
	})

	t.Run("empty source is unchanged", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, "", reorderOK(t, ""))
		require.Equal(t, "\n\n", reorderOK(t, "\n\n"))
	})

	t.Run("reordering is idempotent", func(t *testing.T) {
		t.Parallel()
		src := "extends Node\n\n\nfunc f():\n\treturn 1\n\n\nvar a = 1\nconst C = 2\n"
		once := reorderOK(t, src)
		require.Equal(t, once, reorderOK(t, once))
	})
}
