// Package script replays recorded input against an editor.
//
// A script is a TOML file with a list of [[event]] tables and an optional
// [expect] table checked after playback:
//
//	[[event]]
//	move = [10, 10]
//
//	[[event]]
//	text = "n"
//
//	[[event]]
//	click = "primary"
//	shift = true
//
//	[[event]]
//	key = "<delete>"
//
//	[expect]
//	blocks = 1
//	links = 0
//
// Every event sets exactly one of move, text, key, click, release or tick.
// Scripts are the headless input adapter: they drive the same editor
// callbacks as the window and terminal front ends.
package script

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/blockone/pkg/editor"
	"github.com/matzehuels/blockone/pkg/errors"
	"github.com/matzehuels/blockone/pkg/geom"
	"github.com/matzehuels/blockone/pkg/scene"
)

var validate = validator.New()

// Script is a parsed event script.
type Script struct {
	Events []Event `toml:"event" validate:"dive"`
	Expect *Expect `toml:"expect"`
}

// Event is one input event. Move is an [x, y] pair; Tick is a Go duration
// string such as "16ms".
type Event struct {
	Move    []float64 `toml:"move" validate:"omitempty,len=2"`
	Text    string    `toml:"text"`
	Key     string    `toml:"key"`
	Click   string    `toml:"click" validate:"omitempty,oneof=primary secondary middle"`
	Release string    `toml:"release" validate:"omitempty,oneof=primary secondary middle"`
	Tick    string    `toml:"tick"`
	Shift   bool      `toml:"shift"`

	key  scene.Key
	tick time.Duration
}

// Expect lists the scene counts a script expects after playback. Unset
// fields are not checked.
type Expect struct {
	Blocks        *int `toml:"blocks" validate:"omitempty,gte=0"`
	Links         *int `toml:"links" validate:"omitempty,gte=0"`
	CompleteLinks *int `toml:"complete_links" validate:"omitempty,gte=0"`
	Focused       *int `toml:"focused" validate:"omitempty,gte=0"`
}

// Load reads and parses the script at path.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeFileNotFound, "script not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidScript, err, "read %s", path)
	}
	return Parse(string(data))
}

// Parse parses script source. Unknown keys are errors.
func Parse(src string) (*Script, error) {
	var s Script
	md, err := toml.Decode(src, &s)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScript, err, "parse script")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidScript, "unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := validate.Struct(&s); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScript, err, "validate script")
	}
	for i := range s.Events {
		if err := s.Events[i].compile(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScript, err, "event %d", i+1)
		}
	}
	return &s, nil
}

func (ev *Event) compile() error {
	set := 0
	for _, ok := range []bool{ev.Move != nil, ev.Text != "", ev.Key != "", ev.Click != "", ev.Release != "", ev.Tick != ""} {
		if ok {
			set++
		}
	}
	if set != 1 {
		return fmt.Errorf("want exactly one of move, text, key, click, release, tick; got %d", set)
	}
	if ev.Shift && ev.Click == "" {
		return fmt.Errorf("shift only applies to click")
	}

	if ev.Key != "" {
		k, ok := scene.ParseKey(ev.Key)
		if !ok {
			return fmt.Errorf("unknown key %q", ev.Key)
		}
		ev.key = k
	}
	if ev.Tick != "" {
		d, err := time.ParseDuration(ev.Tick)
		if err != nil {
			return fmt.Errorf("tick: %w", err)
		}
		if d < 0 {
			return fmt.Errorf("tick: negative duration %s", d)
		}
		ev.tick = d
	}
	return nil
}

func parseButton(name string) scene.Button {
	switch name {
	case "secondary":
		return scene.ButtonSecondary
	case "middle":
		return scene.ButtonMiddle
	}
	return scene.ButtonPrimary
}

// Play applies every event to e in order. It stops early when ctx is done.
func (s *Script) Play(ctx context.Context, e *editor.Editor) error {
	for i, ev := range s.Events {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("event %d: %w", i+1, err)
		}
		switch {
		case ev.Move != nil:
			e.OnMouseMove(geom.Pt(ev.Move[0], ev.Move[1]))
		case ev.Text != "":
			e.OnTextInput(ev.Text)
		case ev.Key != "":
			e.OnKeyDown(ev.key)
		case ev.Click != "":
			e.OnMouseDown(parseButton(ev.Click), scene.Modifiers{Shift: ev.Shift})
		case ev.Release != "":
			e.OnMouseUp(parseButton(ev.Release))
		case ev.Tick != "":
			e.OnTick(ev.tick)
		}
	}
	return nil
}

// Counts summarizes a scene.
type Counts struct {
	Blocks        int
	Links         int
	CompleteLinks int
	Focused       int
}

// Count tallies s.
func Count(s *scene.Scene) Counts {
	links := s.Links()
	return Counts{
		Blocks:        len(s.Blocks()),
		Links:         len(links),
		CompleteLinks: len(links) - s.PendingLinks(),
		Focused:       len(s.Focused()),
	}
}

// Check compares the scene with the script's expectations. A script
// without [expect] always passes.
func (s *Script) Check(sc *scene.Scene) error {
	if s.Expect == nil {
		return nil
	}
	got := Count(sc)
	var diffs []string
	for _, c := range []struct {
		name string
		want *int
		got  int
	}{
		{"blocks", s.Expect.Blocks, got.Blocks},
		{"links", s.Expect.Links, got.Links},
		{"complete_links", s.Expect.CompleteLinks, got.CompleteLinks},
		{"focused", s.Expect.Focused, got.Focused},
	} {
		if c.want != nil && *c.want != c.got {
			diffs = append(diffs, fmt.Sprintf("%s: got %d, want %d", c.name, c.got, *c.want))
		}
	}
	if len(diffs) > 0 {
		return errors.New(errors.ErrCodeExpectationFailed, "%s", strings.Join(diffs, "; "))
	}
	return nil
}
