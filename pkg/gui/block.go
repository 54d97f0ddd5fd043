package gui

import (
	"github.com/pkg/errors"
)

// Block is a top-level layout unit of a document. Like Element the set
// of implementations is closed and the serializer dispatches over it
// exhaustively.
type Block interface {
	block()
}

func (ActionsBlock) block() {}
func (InputBlock) block()   {}
func (DividerBlock) block() {}
func (ContextBlock) block() {}
func (HeaderBlock) block()  {}
func (SectionBlock) block() {}

// ActionsBlock holds a row of up to 25 interactive elements.
type ActionsBlock struct {
	blockID  string
	elements []Element
}

// NewActionsBlock builds an actions block. blockID may be empty.
func NewActionsBlock(blockID string, elements ...Element) (ActionsBlock, error) {
	if err := validateID("block_id", blockID); err != nil {
		return ActionsBlock{}, err
	}
	if len(elements) < 1 || len(elements) > 25 {
		return ActionsBlock{}, errors.Wrapf(ErrCardinality, "actions block holds %d elements, allowed 1..25", len(elements))
	}
	return ActionsBlock{blockID: blockID, elements: elements}, nil
}

// InputOpts carries the optional fields of an InputBlock.
type InputOpts struct {
	// Hint is shown below the input element. Maximum 2000 characters,
	// plain_text only.
	Hint *Text
	// Optional marks the input as skippable on submission.
	Optional bool
	// DispatchAction makes the element's interactions dispatch
	// block_actions payloads.
	DispatchAction bool
}

// InputBlock wraps a single element with a label for use in modals and
// home tabs.
type InputBlock struct {
	blockID        string
	label          Text
	element        Element
	hint           *Text
	optional       bool
	dispatchAction bool
}

// NewInputBlock builds an input block. The label is plain_text only and
// capped at 2000 characters.
func NewInputBlock(blockID string, label Text, element Element, opts *InputOpts) (InputBlock, error) {
	if err := validateID("block_id", blockID); err != nil {
		return InputBlock{}, err
	}
	bound, err := boundText(label, 2000, KindPlain)
	if err != nil {
		return InputBlock{}, errors.Wrap(err, "input label")
	}
	if element == nil {
		return InputBlock{}, errors.Wrap(ErrMissingRequiredField, "input element")
	}
	b := InputBlock{blockID: blockID, label: bound, element: element}
	if opts != nil {
		b.hint, err = boundOptionalText(opts.Hint, 2000, KindPlain)
		if err != nil {
			return InputBlock{}, errors.Wrap(err, "input hint")
		}
		b.optional = opts.Optional
		b.dispatchAction = opts.DispatchAction
	}
	return b, nil
}

// DividerBlock is a horizontal rule between blocks.
type DividerBlock struct{}

// NewDividerBlock builds a divider. Dividers carry no fields and cannot
// fail validation.
func NewDividerBlock() DividerBlock { return DividerBlock{} }

// ContextBlock shows up to 10 small text items, typically metadata
// below a section.
type ContextBlock struct {
	elements []Text
}

// NewContextBlock builds a context block of 1 to 10 texts. Each text is
// capped at 2000 characters and may be either kind.
func NewContextBlock(elements ...Text) (ContextBlock, error) {
	if len(elements) < 1 || len(elements) > 10 {
		return ContextBlock{}, errors.Wrapf(ErrCardinality, "context block holds %d elements, allowed 1..10", len(elements))
	}
	bound := make([]Text, len(elements))
	for i, t := range elements {
		b, err := boundText(t, 2000, anyKind)
		if err != nil {
			return ContextBlock{}, errors.Wrapf(err, "context element %d", i)
		}
		bound[i] = b
	}
	return ContextBlock{elements: bound}, nil
}

// HeaderBlock is a large title line.
type HeaderBlock struct {
	text Text
}

// NewHeaderBlock builds a header. The text is plain_text only and
// capped at 150 characters.
func NewHeaderBlock(text Text) (HeaderBlock, error) {
	bound, err := boundText(text, 150, KindPlain)
	if err != nil {
		return HeaderBlock{}, errors.Wrap(err, "header text")
	}
	return HeaderBlock{text: bound}, nil
}

// SectionOpts carries the fields of a SectionBlock. At least one of
// Text and Fields must be set.
type SectionOpts struct {
	// Text is the section body. Maximum 3000 characters, either kind.
	Text *Text
	// Fields renders as a two-column grid of up to 10 texts, each capped
	// at 2000 characters.
	Fields []Text
	// Accessory is an element rendered beside the text.
	Accessory Element
}

// SectionBlock is the most flexible block: body text, a field grid, an
// accessory element, or any combination.
type SectionBlock struct {
	blockID   string
	text      *Text
	fields    []Text
	accessory Element
}

// NewSectionBlock builds a section block.
func NewSectionBlock(blockID string, opts SectionOpts) (SectionBlock, error) {
	if err := validateID("block_id", blockID); err != nil {
		return SectionBlock{}, err
	}
	if opts.Text == nil && len(opts.Fields) == 0 {
		return SectionBlock{}, errors.Wrap(ErrMissingRequiredField, "section needs text or fields")
	}
	text, err := boundOptionalText(opts.Text, 3000, anyKind)
	if err != nil {
		return SectionBlock{}, errors.Wrap(err, "section text")
	}
	if len(opts.Fields) > 10 {
		return SectionBlock{}, errors.Wrapf(ErrCardinality, "section holds %d fields, allowed at most 10", len(opts.Fields))
	}
	var fields []Text
	if len(opts.Fields) > 0 {
		fields = make([]Text, len(opts.Fields))
		for i, f := range opts.Fields {
			b, err := boundText(f, 2000, anyKind)
			if err != nil {
				return SectionBlock{}, errors.Wrapf(err, "section field %d", i)
			}
			fields[i] = b
		}
	}
	return SectionBlock{blockID: blockID, text: text, fields: fields, accessory: opts.Accessory}, nil
}
