package gui

import (
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/pkg/errors"
)

// Element is an interactive control nested inside a block: a select
// menu, a checkbox or radio group, a button or a text input. The set of
// implementations is closed; the serializer dispatches over it with an
// exhaustive type switch.
type Element interface {
	element()
}

func (SelectMenu) element()      {}
func (MultiSelectMenu) element() {}
func (Selector) element()       {}
func (Button) element()         {}
func (TextInput) element()      {}

// SelectOpts carries the choice lists of a select menu. Exactly one of
// Options and OptionGroups must be set. InitialOption and InitialGroup
// mark the pre-selected entry; they are references by value into the
// declared lists and are checked against them at construction.
type SelectOpts struct {
	Options       []Option
	OptionGroups  []OptionGroup
	InitialOption *Option
	InitialGroup  *OptionGroup
}

// SelectMenu is a static single-select menu.
type SelectMenu struct {
	actionID    string
	placeholder Text
	choices     selectChoices
}

// NewSelectMenu builds a static select menu. The placeholder is
// required, plain_text only and capped at 150 characters.
func NewSelectMenu(actionID string, placeholder Text, opts SelectOpts) (SelectMenu, error) {
	if err := validateID("action_id", actionID); err != nil {
		return SelectMenu{}, err
	}
	bound, err := boundText(placeholder, 150, KindPlain)
	if err != nil {
		return SelectMenu{}, errors.Wrap(err, "select placeholder")
	}
	choices, err := validateChoices(opts)
	if err != nil {
		return SelectMenu{}, err
	}
	return SelectMenu{actionID: actionID, placeholder: bound, choices: choices}, nil
}

// MultiSelectMenu is a static multi-select menu.
type MultiSelectMenu struct {
	actionID    string
	placeholder Text
	choices     selectChoices
	maxSelected int
}

// NewMultiSelectMenu builds a static multi-select menu. maxSelected
// caps the number of simultaneously selected items; zero leaves the
// cap unset, a negative or zero explicit cap is not expressible.
func NewMultiSelectMenu(actionID string, placeholder Text, opts SelectOpts, maxSelected int) (MultiSelectMenu, error) {
	if err := validateID("action_id", actionID); err != nil {
		return MultiSelectMenu{}, err
	}
	bound, err := boundText(placeholder, 150, KindPlain)
	if err != nil {
		return MultiSelectMenu{}, errors.Wrap(err, "multi select placeholder")
	}
	choices, err := validateChoices(opts)
	if err != nil {
		return MultiSelectMenu{}, err
	}
	if maxSelected < 0 {
		return MultiSelectMenu{}, errors.Wrapf(ErrCardinality, "max selected items must be at least 1, got %d", maxSelected)
	}
	return MultiSelectMenu{actionID: actionID, placeholder: bound, choices: choices, maxSelected: maxSelected}, nil
}

// selectChoices is the validated option side of a select menu.
type selectChoices struct {
	options       []Option
	optionGroups  []OptionGroup
	initialOption *Option
	initialGroup  *OptionGroup
}

func validateChoices(opts SelectOpts) (selectChoices, error) {
	hasOptions := len(opts.Options) > 0
	hasGroups := len(opts.OptionGroups) > 0
	switch {
	case hasOptions && hasGroups:
		return selectChoices{}, errors.Wrap(ErrMutualExclusion, "options and option_groups both set")
	case !hasOptions && !hasGroups:
		return selectChoices{}, errors.Wrap(ErrMutualExclusion, "one of options and option_groups is required")
	}
	if opts.InitialOption != nil && opts.InitialGroup != nil {
		return selectChoices{}, errors.Wrap(ErrMutualExclusion, "initial_option and initial_group both set")
	}
	if len(opts.Options) > 100 {
		return selectChoices{}, errors.Wrapf(ErrCardinality, "select holds %d options, allowed 1..100", len(opts.Options))
	}
	if len(opts.OptionGroups) > 100 {
		return selectChoices{}, errors.Wrapf(ErrCardinality, "select holds %d option groups, allowed 1..100", len(opts.OptionGroups))
	}

	declared := mapset.NewThreadUnsafeSet[string]()
	for _, o := range opts.Options {
		declared.Add(o.value)
	}
	for _, g := range opts.OptionGroups {
		for _, o := range g.options {
			declared.Add(o.value)
		}
	}

	if opts.InitialOption != nil && !declared.Contains(opts.InitialOption.value) {
		return selectChoices{}, errors.Wrapf(ErrReferenceIntegrity,
			"initial option %q is not a declared option", opts.InitialOption.value)
	}
	if opts.InitialGroup != nil {
		if !hasGroups {
			return selectChoices{}, errors.Wrap(ErrReferenceIntegrity, "initial group set but no option groups declared")
		}
		want := groupValues(*opts.InitialGroup)
		found := false
		for _, g := range opts.OptionGroups {
			if groupValues(g).Equal(want) {
				found = true
				break
			}
		}
		if !found {
			return selectChoices{}, errors.Wrap(ErrReferenceIntegrity, "initial group does not match any declared option group")
		}
	}

	return selectChoices{
		options:       opts.Options,
		optionGroups:  opts.OptionGroups,
		initialOption: opts.InitialOption,
		initialGroup:  opts.InitialGroup,
	}, nil
}

func groupValues(g OptionGroup) mapset.Set[string] {
	values := mapset.NewThreadUnsafeSet[string]()
	for _, o := range g.options {
		values.Add(o.value)
	}
	return values
}

// SelectorKind distinguishes checkbox groups from radio button groups.
type SelectorKind string

const (
	Checkboxes   SelectorKind = "checkboxes"
	RadioButtons SelectorKind = "radio_buttons"
)

// Selector is a checkbox or radio button group. Both take a short flat
// option list; checkboxes allow several initial options, radio buttons
// use at most one.
type Selector struct {
	kind           SelectorKind
	actionID       string
	options        []Option
	initialOptions []Option
}

// NewSelector builds a checkbox or radio group of 1 to 10 options.
// Every initial option must reference a declared option by value.
func NewSelector(kind SelectorKind, actionID string, options []Option, initial ...Option) (Selector, error) {
	if kind != Checkboxes && kind != RadioButtons {
		return Selector{}, errors.Wrapf(ErrKindMismatch, "unknown selector kind %q", kind)
	}
	if err := validateID("action_id", actionID); err != nil {
		return Selector{}, err
	}
	if len(options) < 1 || len(options) > 10 {
		return Selector{}, errors.Wrapf(ErrCardinality, "selector holds %d options, allowed 1..10", len(options))
	}
	if kind == RadioButtons && len(initial) > 1 {
		return Selector{}, errors.Wrapf(ErrCardinality, "radio buttons take at most one initial option, got %d", len(initial))
	}
	declared := mapset.NewThreadUnsafeSet[string]()
	for _, o := range options {
		declared.Add(o.value)
	}
	for _, o := range initial {
		if !declared.Contains(o.value) {
			return Selector{}, errors.Wrapf(ErrReferenceIntegrity,
				"initial option %q is not a declared option", o.value)
		}
	}
	return Selector{kind: kind, actionID: actionID, options: options, initialOptions: initial}, nil
}

// ButtonStyle decorates a button. The default (zero) style renders no
// style token at all.
type ButtonStyle string

const (
	StyleDefault ButtonStyle = ""
	StylePrimary ButtonStyle = "primary"
	StyleDanger  ButtonStyle = "danger"
)

// ButtonOpts carries the optional fields of a Button.
type ButtonOpts struct {
	// URL opens in the user's browser when the button is clicked.
	// Maximum 3000 characters. The interaction payload still arrives and
	// must be acknowledged.
	URL string
	// Value is handed back in the interaction payload. Maximum 2000
	// characters.
	Value string
	Style ButtonStyle
	// AccessibilityLabel is read out by screen readers instead of the
	// button label. Maximum 75 characters.
	AccessibilityLabel string
}

// Button is a clickable button element.
type Button struct {
	actionID string
	text     Text
	url      string
	value    string
	style    ButtonStyle
	a11y     string
}

// NewButton builds a button. The label is plain_text only and capped at
// 75 characters.
func NewButton(actionID string, text Text, opts *ButtonOpts) (Button, error) {
	if err := validateID("action_id", actionID); err != nil {
		return Button{}, err
	}
	bound, err := boundText(text, 75, KindPlain)
	if err != nil {
		return Button{}, errors.Wrap(err, "button text")
	}
	b := Button{actionID: actionID, text: bound}
	if opts != nil {
		if n := len([]rune(opts.URL)); n > 3000 {
			return Button{}, errors.Wrapf(ErrLengthExceeded, "button url is %d characters, limit is 3000", n)
		}
		if n := len([]rune(opts.Value)); n > 2000 {
			return Button{}, errors.Wrapf(ErrLengthExceeded, "button value is %d characters, limit is 2000", n)
		}
		switch opts.Style {
		case StyleDefault, StylePrimary, StyleDanger:
		default:
			return Button{}, errors.Wrapf(ErrKindMismatch, "unknown button style %q", opts.Style)
		}
		if n := len([]rune(opts.AccessibilityLabel)); n > 75 {
			return Button{}, errors.Wrapf(ErrLengthExceeded, "accessibility label is %d characters, limit is 75", n)
		}
		b.url = opts.URL
		b.value = opts.Value
		b.style = opts.Style
		b.a11y = opts.AccessibilityLabel
	}
	return b, nil
}

// DispatchTrigger names an interaction that makes a text input dispatch
// a block_actions payload while the user is still typing.
type DispatchTrigger string

const (
	OnEnterPressed     DispatchTrigger = "on_enter_pressed"
	OnCharacterEntered DispatchTrigger = "on_character_entered"
)

// DispatchConfig configures when a text input dispatches payloads.
type DispatchConfig struct {
	triggers []DispatchTrigger
}

// NewDispatchConfig builds a dispatch configuration from one or two
// distinct triggers.
func NewDispatchConfig(triggers ...DispatchTrigger) (DispatchConfig, error) {
	if len(triggers) < 1 || len(triggers) > 2 {
		return DispatchConfig{}, errors.Wrapf(ErrCardinality, "dispatch config takes 1 or 2 triggers, got %d", len(triggers))
	}
	seen := mapset.NewThreadUnsafeSet[DispatchTrigger]()
	for _, t := range triggers {
		if t != OnEnterPressed && t != OnCharacterEntered {
			return DispatchConfig{}, errors.Wrapf(ErrKindMismatch, "unknown dispatch trigger %q", t)
		}
		if !seen.Add(t) {
			return DispatchConfig{}, errors.Wrapf(ErrCardinality, "duplicate dispatch trigger %q", t)
		}
	}
	return DispatchConfig{triggers: triggers}, nil
}

// TextInputOpts carries the optional fields of a TextInput.
type TextInputOpts struct {
	// Placeholder is shown in the empty input. Maximum 150 characters,
	// plain_text only.
	Placeholder  *Text
	InitialValue string
	Multiline    bool
	// MinLength is the minimum number of characters the user must enter,
	// up to 2999. Zero leaves it unset.
	MinLength int
	// MaxLength caps the entered text at up to 3000 characters. Zero
	// leaves it unset.
	MaxLength int
	Dispatch  *DispatchConfig
}

// TextInput is a single or multi line free-text input element.
type TextInput struct {
	actionID     string
	placeholder  *Text
	initialValue string
	multiline    bool
	minLength    int
	maxLength    int
	dispatch     *DispatchConfig
}

// NewTextInput builds a plain-text input element.
func NewTextInput(actionID string, opts *TextInputOpts) (TextInput, error) {
	if err := validateID("action_id", actionID); err != nil {
		return TextInput{}, err
	}
	in := TextInput{actionID: actionID}
	if opts == nil {
		return in, nil
	}
	placeholder, err := boundOptionalText(opts.Placeholder, 150, KindPlain)
	if err != nil {
		return TextInput{}, errors.Wrap(err, "text input placeholder")
	}
	if opts.MinLength < 0 || opts.MinLength > 2999 {
		return TextInput{}, errors.Wrapf(ErrLengthExceeded, "min length %d outside 0..2999", opts.MinLength)
	}
	if opts.MaxLength < 0 || opts.MaxLength > 3000 {
		return TextInput{}, errors.Wrapf(ErrLengthExceeded, "max length %d outside 1..3000", opts.MaxLength)
	}
	if opts.MaxLength != 0 && opts.MinLength > opts.MaxLength {
		return TextInput{}, errors.Wrapf(ErrLengthExceeded, "min length %d exceeds max length %d", opts.MinLength, opts.MaxLength)
	}
	in.placeholder = placeholder
	in.initialValue = opts.InitialValue
	in.multiline = opts.Multiline
	in.minLength = opts.MinLength
	in.maxLength = opts.MaxLength
	in.dispatch = opts.Dispatch
	return in, nil
}
