package scene

import (
	"cmp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/matzehuels/blockone/pkg/errors"
)

// Command is an editing action a binding can trigger.
type Command int

const (
	CommandNone Command = iota
	// CommandAddBlock adds a block at the mouse position.
	CommandAddBlock
	// CommandAddLink starts an incomplete link from every focused block.
	CommandAddLink
	// CommandDeleteFocused removes focused blocks and their links.
	CommandDeleteFocused
	// CommandCancelLinks drops every incomplete link.
	CommandCancelLinks
)

var commandNames = map[Command]string{
	CommandAddBlock:      "add_block",
	CommandAddLink:       "add_link",
	CommandDeleteFocused: "delete",
	CommandCancelLinks:   "cancel",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "none"
}

// ParseCommand resolves a command by its config name ("add_block", ...).
func ParseCommand(name string) (Command, bool) {
	for c, n := range commandNames {
		if n == name {
			return c, true
		}
	}
	return CommandNone, false
}

// Key is a named, non-printable key.
type Key int

const (
	KeyUnknown Key = iota
	KeyDelete
	KeyBackspace
	KeyEscape
	KeyEnter
	KeyTab
)

var keyNames = map[Key]string{
	KeyDelete:    "delete",
	KeyBackspace: "backspace",
	KeyEscape:    "escape",
	KeyEnter:     "enter",
	KeyTab:       "tab",
}

// String returns the binding form of the key, e.g. "<delete>".
func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return "<" + name + ">"
	}
	return "<unknown>"
}

// ParseKey resolves a key by name, with or without angle brackets.
// "esc" is accepted as an alias for "escape".
func ParseKey(name string) (Key, bool) {
	name = strings.ToLower(strings.TrimSuffix(strings.TrimPrefix(name, "<"), ">"))
	if name == "esc" {
		name = "escape"
	}
	for k, n := range keyNames {
		if n == name {
			return k, true
		}
	}
	return KeyUnknown, false
}

// HelpText is the typed character reserved for the help overlay. It cannot be
// bound to a command.
const HelpText = "?"

// Keymap maps typed text and named keys to commands.
type Keymap struct {
	Text map[string]Command
	Keys map[Key]Command
}

// DefaultKeymap binds "n" and "a" to adding a block, "l" to adding links,
// Delete and Backspace to deleting focused blocks and Escape to cancelling
// pending links.
func DefaultKeymap() Keymap {
	return Keymap{
		Text: map[string]Command{
			"n": CommandAddBlock,
			"a": CommandAddBlock,
			"l": CommandAddLink,
		},
		Keys: map[Key]Command{
			KeyDelete:    CommandDeleteFocused,
			KeyBackspace: CommandDeleteFocused,
			KeyEscape:    CommandCancelLinks,
		},
	}
}

// NewKeymap returns an empty keymap.
func NewKeymap() Keymap {
	return Keymap{Text: map[string]Command{}, Keys: map[Key]Command{}}
}

// Bind attaches binding to cmd. A binding wrapped in angle brackets names a
// key ("<delete>"); anything else is a single typed character other than
// [HelpText]. Rebinding replaces the previous command.
func (k Keymap) Bind(binding string, cmd Command) error {
	if binding == "" {
		return errors.New(errors.ErrCodeInvalidKeymap, "empty binding for %s", cmd)
	}
	if strings.HasPrefix(binding, "<") && strings.HasSuffix(binding, ">") && len(binding) > 2 {
		key, ok := ParseKey(binding)
		if !ok {
			return errors.New(errors.ErrCodeInvalidKeymap, "unknown key %q for %s", binding, cmd)
		}
		k.Keys[key] = cmd
		return nil
	}
	if utf8.RuneCountInString(binding) != 1 {
		return errors.New(errors.ErrCodeInvalidKeymap, "text binding %q for %s must be a single character", binding, cmd)
	}
	if binding == HelpText {
		return errors.New(errors.ErrCodeInvalidKeymap, "%q for %s is reserved for help", binding, cmd)
	}
	k.Text[binding] = cmd
	return nil
}

// Binding pairs a binding string with its command.
type Binding struct {
	Input   string
	Command Command
}

// Bindings lists all bindings ordered by command, then input.
func (k Keymap) Bindings() []Binding {
	out := make([]Binding, 0, len(k.Text)+len(k.Keys))
	for text, cmd := range k.Text {
		out = append(out, Binding{Input: text, Command: cmd})
	}
	for key, cmd := range k.Keys {
		out = append(out, Binding{Input: key.String(), Command: cmd})
	}
	slices.SortFunc(out, func(a, b Binding) int {
		if c := cmp.Compare(a.Command, b.Command); c != 0 {
			return c
		}
		return cmp.Compare(a.Input, b.Input)
	})
	return out
}
