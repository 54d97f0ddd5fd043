package gui

import (
	"github.com/pkg/errors"
)

// TextKind selects the formatting of a text object.
type TextKind string

const (
	// KindPlain is unformatted text.
	KindPlain TextKind = "plain_text"
	// KindMrkdwn is text formatted with Slack's markdown dialect.
	KindMrkdwn TextKind = "mrkdwn"

	// anyKind places no kind restriction on a bound text field.
	anyKind TextKind = ""
)

// LengthPolicy decides what happens when a text is longer than the
// maximum of the field receiving it.
type LengthPolicy int

const (
	// Reject fails construction with ErrLengthExceeded. Used for
	// operator-typed input, where the overflow must surface as an error.
	Reject LengthPolicy = iota
	// Truncate silently shortens the text to the maximum, replacing the
	// tail with a three character ellipsis. Used for platform-supplied
	// informational strings.
	Truncate
)

const ellipsis = "..."

// Text is a kind-tagged text value. The length bound is applied by the
// node that receives the text, not by the Text itself: the same value
// may be legal as a section body (3000) and illegal as an option label
// (75). Construct with Plain/Mrkdwn and their flag-carrying variants.
type Text struct {
	kind     TextKind
	text     string
	emoji    *bool
	verbatim *bool
	policy   LengthPolicy
}

// Plain returns an unformatted text value.
func Plain(text string) Text {
	return Text{kind: KindPlain, text: text}
}

// PlainEmoji returns an unformatted text value with an explicit emoji
// escaping flag. The flag is only legal on plain_text.
func PlainEmoji(text string, emoji bool) Text {
	return Text{kind: KindPlain, text: text, emoji: &emoji}
}

// Mrkdwn returns a markdown-formatted text value.
func Mrkdwn(text string) Text {
	return Text{kind: KindMrkdwn, text: text}
}

// MrkdwnVerbatim returns a markdown-formatted text value with an
// explicit verbatim flag. The flag is only legal on mrkdwn.
func MrkdwnVerbatim(text string, verbatim bool) Text {
	return Text{kind: KindMrkdwn, text: text, verbatim: &verbatim}
}

// Truncated returns a copy of the text that is shortened with an
// ellipsis instead of rejected when it overflows the receiving field.
func (t Text) Truncated() Text {
	t.policy = Truncate
	return t
}

// Kind reports the formatting of the text.
func (t Text) Kind() TextKind { return t.kind }

// String returns the raw text value.
func (t Text) String() string { return t.text }

// boundText validates a text against the limit of the field receiving
// it and returns the value that will actually be rendered. restrict
// narrows the accepted kind; pass anyKind for fields taking both.
// Under the Reject policy an over-long text fails with
// ErrLengthExceeded; under Truncate it is cut to max-3 runes plus the
// ellipsis, so the result is exactly max runes long.
func boundText(t Text, max int, restrict TextKind) (Text, error) {
	if restrict != anyKind && t.kind != restrict {
		return Text{}, errors.Wrapf(ErrKindMismatch, "field accepts %s only, got %s", restrict, t.kind)
	}
	if t.emoji != nil && t.kind != KindPlain {
		return Text{}, errors.Wrapf(ErrKindMismatch, "emoji flag is only valid on %s", KindPlain)
	}
	if t.verbatim != nil && t.kind != KindMrkdwn {
		return Text{}, errors.Wrapf(ErrKindMismatch, "verbatim flag is only valid on %s", KindMrkdwn)
	}

	runes := []rune(t.text)
	switch t.policy {
	case Truncate:
		if len(runes) == 0 {
			return Text{}, errors.Wrap(ErrMissingRequiredField, "cannot truncate an empty text")
		}
		if len(runes) > max {
			t.text = string(runes[:max-len(ellipsis)]) + ellipsis
		}
	default:
		if len(runes) > max {
			return Text{}, errors.Wrapf(ErrLengthExceeded, "text is %d characters, limit is %d", len(runes), max)
		}
	}
	return t, nil
}

// boundOptionalText is boundText for optional fields held by pointer.
// A nil input stays nil.
func boundOptionalText(t *Text, max int, restrict TextKind) (*Text, error) {
	if t == nil {
		return nil, nil
	}
	bound, err := boundText(*t, max, restrict)
	if err != nil {
		return nil, err
	}
	return &bound, nil
}

// validateID checks an action_id or block_id. Identifiers are optional
// in most nodes but capped at 255 characters when present.
func validateID(name, id string) error {
	if n := len([]rune(id)); n > 255 {
		return errors.Wrapf(ErrLengthExceeded, "%s is %d characters, limit is 255", name, n)
	}
	return nil
}
