package bot

import (
	"encoding/json"
	"testing"

	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IamTugy/DailyBot/pkg/gui"
	"github.com/IamTugy/DailyBot/store"
)

func TestRawBlockMarshal(t *testing.T) {
	block := RawBlock{block: map[string]any{
		"type": "header",
		"text": map[string]any{"type": "plain_text", "text": "Daily Report"},
	}}

	assert.Equal(t, slack.MessageBlockType("header"), block.BlockType())

	raw, err := json.Marshal(block)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"header","text":{"type":"plain_text","text":"Daily Report"}}`, string(raw))
}

func TestMessageBlocks(t *testing.T) {
	daily := store.NewDaily("platform", "2024-05-01")
	msg, err := DailyDigestMessage(daily, false)
	require.NoError(t, err)

	blocks := MessageBlocks(msg)
	require.Len(t, blocks, 2)
	assert.Equal(t, slack.MBTHeader, blocks[0].BlockType())
	assert.Equal(t, slack.MBTContext, blocks[1].BlockType())
}

func TestModalRequest(t *testing.T) {
	header, err := gui.NewHeaderBlock(gui.Plain("Your user is not defined!"))
	require.NoError(t, err)
	modal, err := gui.NewModal("test-callback", gui.Plain("Daily Report"), &gui.ModalOpts{
		Submit: textPtr(gui.Plain("Submit")),
	}, header)
	require.NoError(t, err)

	req, err := ModalRequest(modal)
	require.NoError(t, err)

	assert.Equal(t, slack.VTModal, req.Type)
	assert.Equal(t, "test-callback", req.CallbackID)
	require.NotNil(t, req.Title)
	assert.Equal(t, "Daily Report", req.Title.Text)
	require.NotNil(t, req.Submit)
	assert.Equal(t, "Submit", req.Submit.Text)
	assert.Len(t, req.Blocks.BlockSet, 1)
}

func TestHomeTabRequest(t *testing.T) {
	home, err := HomeConfiguredView()
	require.NoError(t, err)

	req, err := HomeTabRequest(home)
	require.NoError(t, err)
	assert.Equal(t, slack.VTHomeTab, req.Type)
	assert.Len(t, req.Blocks.BlockSet, 3)
}
