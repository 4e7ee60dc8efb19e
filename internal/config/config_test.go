package config

import (
	"os"
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestBuiltinPresets(t *testing.T) {
	c := qt.New(t)
	p := Builtin()

	c.Assert(p.Validate(), qt.IsNil)
	c.Assert(p.Group("small"), qt.HasLen, 8)
	c.Assert(p.Group("large"), qt.HasLen, 3)

	seaweed, err := p.Find("seaweed")
	c.Assert(err, qt.IsNil)
	c.Assert(seaweed.Rows, qt.Equals, 500)
	c.Assert(seaweed.Cols, qt.Equals, 1200)
	c.Assert(*seaweed.HueDiff, qt.Equals, 1)
	c.Assert(*seaweed.DownBias, qt.Equals, 0.1)

	coral, err := p.Find("coral")
	c.Assert(err, qt.IsNil)
	c.Assert(coral.HueDiff, qt.IsNil)
	c.Assert(coral.PBrightness, qt.IsNil)
}

func TestFindUnknown(t *testing.T) {
	c := qt.New(t)
	_, err := Builtin().Find("kelp")
	c.Assert(err, qt.ErrorIs, ErrUnknownPreset)
	c.Assert(err, qt.ErrorMatches, `config: unknown preset "kelp"`)
}

func TestLoadCustomPath(t *testing.T) {
	c := qt.New(t)
	path := filepath.Join(t.TempDir(), "mine.yaml")
	err := os.WriteFile(path, []byte(`
presets:
  - name: tiny
    rows: 3
    cols: 4
    right_bias: 0.5
`), 0o644)
	c.Assert(err, qt.IsNil)

	p, err := Load(path)
	c.Assert(err, qt.IsNil)
	c.Assert(p.Names(), qt.DeepEquals, []string{"tiny"})
	tiny, err := p.Find("tiny")
	c.Assert(err, qt.IsNil)
	c.Assert(*tiny.RightBias, qt.Equals, 0.5)
}

func TestLoadCustomPathErrors(t *testing.T) {
	c := qt.New(t)
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	c.Assert(err, qt.ErrorMatches, `config: failed to read .*`)

	bad := filepath.Join(dir, "bad.yaml")
	c.Assert(os.WriteFile(bad, []byte("presets:\n  - name: x\n    rows: 0\n    cols: 2\n"), 0o644), qt.IsNil)
	_, err = Load(bad)
	c.Assert(err, qt.ErrorMatches, `config: failed to parse .*invalid size 0x2`)

	dup := filepath.Join(dir, "dup.yaml")
	c.Assert(os.WriteFile(dup, []byte("presets:\n  - {name: a, rows: 1, cols: 1}\n  - {name: a, rows: 1, cols: 1}\n"), 0o644), qt.IsNil)
	_, err = Load(dup)
	c.Assert(err, qt.ErrorMatches, `.*duplicate preset "a"`)
}

func TestLoadUserOverride(t *testing.T) {
	c := qt.New(t)
	home := t.TempDir()
	t.Setenv("HOME", home)

	p, err := Load("")
	c.Assert(err, qt.IsNil)
	c.Assert(p.Names(), qt.DeepEquals, Builtin().Names())

	c.Assert(os.MkdirAll(filepath.Join(home, ".coral"), 0o755), qt.IsNil)
	c.Assert(os.WriteFile(filepath.Join(home, ".coral", "presets.yaml"),
		[]byte("presets:\n  - {name: home, rows: 10, cols: 20}\n"), 0o644), qt.IsNil)

	p, err = Load("")
	c.Assert(err, qt.IsNil)
	c.Assert(p.Names(), qt.DeepEquals, []string{"home"})
}
