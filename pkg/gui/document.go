package gui

import (
	"github.com/pkg/errors"
)

// Modal is a modal-shaped document: a titled dialog of up to 100
// blocks, submitted back to the app under its callback id.
type Modal struct {
	callbackID string
	title      Text
	submit     *Text
	close      *Text
	blocks     []Block
}

// ModalOpts carries the optional chrome texts of a modal. Both are
// plain_text only and capped at 24 characters.
type ModalOpts struct {
	Submit *Text
	Close  *Text
}

// NewModal builds a modal document. The title is plain_text only and
// capped at 24 characters; the callback id is required.
func NewModal(callbackID string, title Text, opts *ModalOpts, blocks ...Block) (Modal, error) {
	if callbackID == "" {
		return Modal{}, errors.Wrap(ErrMissingRequiredField, "modal callback_id")
	}
	if err := validateID("callback_id", callbackID); err != nil {
		return Modal{}, err
	}
	bound, err := boundText(title, 24, KindPlain)
	if err != nil {
		return Modal{}, errors.Wrap(err, "modal title")
	}
	if err := validateBlockCount("modal", blocks, 100); err != nil {
		return Modal{}, err
	}
	m := Modal{callbackID: callbackID, title: bound, blocks: blocks}
	if opts != nil {
		m.submit, err = boundOptionalText(opts.Submit, 24, KindPlain)
		if err != nil {
			return Modal{}, errors.Wrap(err, "modal submit")
		}
		m.close, err = boundOptionalText(opts.Close, 24, KindPlain)
		if err != nil {
			return Modal{}, errors.Wrap(err, "modal close")
		}
	}
	return m, nil
}

// Render produces the wire mapping of the modal.
func (m Modal) Render() map[string]any {
	obj := map[string]any{
		"type":        "modal",
		"callback_id": m.callbackID,
		"title":       renderText(m.title),
		"blocks":      renderBlocks(m.blocks),
	}
	if m.submit != nil {
		obj["submit"] = renderText(*m.submit)
	}
	if m.close != nil {
		obj["close"] = renderText(*m.close)
	}
	return obj
}

// HomeTab is a home-tab-shaped document of up to 100 blocks.
type HomeTab struct {
	callbackID string
	blocks     []Block
}

// NewHomeTab builds a home tab view. callbackID may be empty.
func NewHomeTab(callbackID string, blocks ...Block) (HomeTab, error) {
	if err := validateID("callback_id", callbackID); err != nil {
		return HomeTab{}, err
	}
	if err := validateBlockCount("home tab", blocks, 100); err != nil {
		return HomeTab{}, err
	}
	return HomeTab{callbackID: callbackID, blocks: blocks}, nil
}

// Render produces the wire mapping of the home tab.
func (h HomeTab) Render() map[string]any {
	obj := map[string]any{
		"type":   "home",
		"blocks": renderBlocks(h.blocks),
	}
	setID(obj, "callback_id", h.callbackID)
	return obj
}

// Message is a message-shaped document of up to 50 blocks. Unlike
// modals and home tabs it has no envelope of its own: it renders to the
// bare ordered block list that goes into a chat message.
type Message struct {
	blocks []Block
}

// NewMessage builds a message document.
func NewMessage(blocks ...Block) (Message, error) {
	if err := validateBlockCount("message", blocks, 50); err != nil {
		return Message{}, err
	}
	return Message{blocks: blocks}, nil
}

// Render produces the ordered serialized block list.
func (m Message) Render() []any {
	return renderBlocks(m.blocks)
}

func validateBlockCount(doc string, blocks []Block, max int) error {
	if len(blocks) < 1 || len(blocks) > max {
		return errors.Wrapf(ErrCardinality, "%s holds %d blocks, allowed 1..%d", doc, len(blocks), max)
	}
	return nil
}
