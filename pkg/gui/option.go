package gui

import (
	"github.com/pkg/errors"
)

// Option is a selectable choice inside a select menu, checkbox group or
// radio group. The value is the opaque string handed back to the app
// when the option is chosen.
type Option struct {
	text        Text
	value       string
	description *Text
	url         string
}

// OptionOpts carries the optional fields of an Option.
type OptionOpts struct {
	// Description is a line of descriptive text shown below the option
	// label. Maximum 75 characters, plain_text only.
	Description *Text
	// URL opens in the user's browser when the option is clicked. Only
	// honored in overflow menus. Maximum 3000 characters.
	URL string
}

// NewOption builds an option. The label is capped at 75 characters, the
// value must be non-empty and at most 75 characters.
func NewOption(text Text, value string, opts *OptionOpts) (Option, error) {
	bound, err := boundText(text, 75, anyKind)
	if err != nil {
		return Option{}, errors.Wrap(err, "option text")
	}
	if value == "" {
		return Option{}, errors.Wrap(ErrMissingRequiredField, "option value")
	}
	if n := len([]rune(value)); n > 75 {
		return Option{}, errors.Wrapf(ErrLengthExceeded, "option value is %d characters, limit is 75", n)
	}

	o := Option{text: bound, value: value}
	if opts != nil {
		o.description, err = boundOptionalText(opts.Description, 75, KindPlain)
		if err != nil {
			return Option{}, errors.Wrap(err, "option description")
		}
		if n := len([]rune(opts.URL)); n > 3000 {
			return Option{}, errors.Wrapf(ErrLengthExceeded, "option url is %d characters, limit is 3000", n)
		}
		o.url = opts.URL
	}
	return o, nil
}

// Value returns the opaque value of the option.
func (o Option) Value() string { return o.value }

// OptionGroup is a labelled group of options inside a select menu.
type OptionGroup struct {
	label   Text
	options []Option
}

// NewOptionGroup builds an option group. The label is plain_text only
// and capped at 75 characters; a group holds between 1 and 100 options.
func NewOptionGroup(label Text, options []Option) (OptionGroup, error) {
	bound, err := boundText(label, 75, KindPlain)
	if err != nil {
		return OptionGroup{}, errors.Wrap(err, "option group label")
	}
	if len(options) < 1 || len(options) > 100 {
		return OptionGroup{}, errors.Wrapf(ErrCardinality, "option group holds %d options, allowed 1..100", len(options))
	}
	g := OptionGroup{label: bound, options: make([]Option, len(options))}
	copy(g.options, options)
	return g, nil
}

// Options returns a copy of the group's options.
func (g OptionGroup) Options() []Option {
	out := make([]Option, len(g.options))
	copy(out, g.options)
	return out
}
