package bot

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/slack-go/slack"

	"github.com/IamTugy/DailyBot/pkg/gui"
)

// RawBlock carries one rendered block mapping across the slack-go
// boundary. slack-go only needs the block type discriminator and the
// JSON form, so the rendered mapping is passed through untouched.
type RawBlock struct {
	block map[string]any
}

func (b RawBlock) BlockType() slack.MessageBlockType {
	kind, _ := b.block["type"].(string)
	return slack.MessageBlockType(kind)
}

func (b RawBlock) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.block)
}

// MessageBlocks adapts a rendered message document for PostMessage.
func MessageBlocks(m gui.Message) []slack.Block {
	rendered := m.Render()
	blocks := make([]slack.Block, len(rendered))
	for i, block := range rendered {
		blocks[i] = RawBlock{block: block.(map[string]any)}
	}
	return blocks
}

// ModalRequest adapts a rendered modal document into the view request
// slack-go sends to views.open, going through its JSON wire form.
func ModalRequest(m gui.Modal) (slack.ModalViewRequest, error) {
	var req slack.ModalViewRequest
	if err := roundTrip(m.Render(), &req); err != nil {
		return slack.ModalViewRequest{}, errors.Wrap(err, "adapt modal")
	}
	return req, nil
}

// HomeTabRequest adapts a rendered home tab document for views.publish.
func HomeTabRequest(h gui.HomeTab) (slack.HomeTabViewRequest, error) {
	var req slack.HomeTabViewRequest
	if err := roundTrip(h.Render(), &req); err != nil {
		return slack.HomeTabViewRequest{}, errors.Wrap(err, "adapt home tab")
	}
	return req, nil
}

func roundTrip(rendered map[string]any, out any) error {
	raw, err := json.Marshal(rendered)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}
