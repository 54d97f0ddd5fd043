package gui

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustOption(t *testing.T, value string) Option {
	t.Helper()
	o, err := NewOption(Plain(value), value, nil)
	require.NoError(t, err)
	return o
}

func makeOptions(t *testing.T, n int) []Option {
	t.Helper()
	out := make([]Option, n)
	for i := range out {
		out[i] = mustOption(t, fmt.Sprintf("opt-%d", i))
	}
	return out
}

func TestNewOption(t *testing.T) {
	t.Run("empty value rejected", func(t *testing.T) {
		_, err := NewOption(Plain("label"), "", nil)
		assert.ErrorIs(t, err, ErrMissingRequiredField)
	})

	t.Run("mrkdwn description rejected", func(t *testing.T) {
		desc := Mrkdwn("*desc*")
		_, err := NewOption(Plain("label"), "v", &OptionOpts{Description: &desc})
		assert.ErrorIs(t, err, ErrKindMismatch)
	})

	t.Run("plain description accepted", func(t *testing.T) {
		desc := Plain("desc")
		_, err := NewOption(Plain("label"), "v", &OptionOpts{Description: &desc})
		assert.NoError(t, err)
	})

	t.Run("over-long label rejected", func(t *testing.T) {
		_, err := NewOption(Plain(stringOfLen(76)), "v", nil)
		assert.ErrorIs(t, err, ErrLengthExceeded)
	})
}

func TestNewOptionGroupCardinality(t *testing.T) {
	tests := []struct {
		name    string
		count   int
		wantErr error
	}{
		{name: "empty", count: 0, wantErr: ErrCardinality},
		{name: "one", count: 1},
		{name: "hundred", count: 100},
		{name: "hundred and one", count: 101, wantErr: ErrCardinality},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewOptionGroup(Plain("group"), makeOptions(t, tt.count))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestNewSelectMenuMutualExclusion(t *testing.T) {
	options := makeOptions(t, 2)
	group, err := NewOptionGroup(Plain("group"), options)
	require.NoError(t, err)

	t.Run("both set", func(t *testing.T) {
		_, err := NewSelectMenu("sel", Plain("pick"), SelectOpts{
			Options:      options,
			OptionGroups: []OptionGroup{group},
		})
		assert.ErrorIs(t, err, ErrMutualExclusion)
	})

	t.Run("neither set", func(t *testing.T) {
		_, err := NewSelectMenu("sel", Plain("pick"), SelectOpts{})
		assert.ErrorIs(t, err, ErrMutualExclusion)
	})

	t.Run("options only", func(t *testing.T) {
		_, err := NewSelectMenu("sel", Plain("pick"), SelectOpts{Options: options})
		assert.NoError(t, err)
	})

	t.Run("groups only", func(t *testing.T) {
		_, err := NewSelectMenu("sel", Plain("pick"), SelectOpts{OptionGroups: []OptionGroup{group}})
		assert.NoError(t, err)
	})
}

func TestNewSelectMenuCardinality(t *testing.T) {
	_, err := NewSelectMenu("sel", Plain("pick"), SelectOpts{Options: makeOptions(t, 101)})
	assert.ErrorIs(t, err, ErrCardinality)
}

func TestNewSelectMenuInitialOption(t *testing.T) {
	a := mustOption(t, "A")
	b := mustOption(t, "B")
	c := mustOption(t, "C")

	t.Run("declared value accepted", func(t *testing.T) {
		_, err := NewSelectMenu("sel", Plain("pick"), SelectOpts{
			Options:       []Option{a, b},
			InitialOption: &a,
		})
		assert.NoError(t, err)
	})

	t.Run("undeclared value rejected", func(t *testing.T) {
		_, err := NewSelectMenu("sel", Plain("pick"), SelectOpts{
			Options:       []Option{a, b},
			InitialOption: &c,
		})
		assert.ErrorIs(t, err, ErrReferenceIntegrity)
	})

	t.Run("value inside declared group accepted", func(t *testing.T) {
		group, err := NewOptionGroup(Plain("group"), []Option{a, b})
		require.NoError(t, err)
		_, err = NewSelectMenu("sel", Plain("pick"), SelectOpts{
			OptionGroups:  []OptionGroup{group},
			InitialOption: &b,
		})
		assert.NoError(t, err)
	})
}

func TestNewSelectMenuInitialGroup(t *testing.T) {
	a := mustOption(t, "A")
	b := mustOption(t, "B")
	c := mustOption(t, "C")

	declared, err := NewOptionGroup(Plain("first"), []Option{a, b})
	require.NoError(t, err)

	t.Run("same member values match regardless of label", func(t *testing.T) {
		// Group identity is the set of member values, order ignored.
		same, err := NewOptionGroup(Plain("other label"), []Option{b, a})
		require.NoError(t, err)
		_, err = NewSelectMenu("sel", Plain("pick"), SelectOpts{
			OptionGroups: []OptionGroup{declared},
			InitialGroup: &same,
		})
		assert.NoError(t, err)
	})

	t.Run("different member values rejected", func(t *testing.T) {
		other, err := NewOptionGroup(Plain("first"), []Option{a, c})
		require.NoError(t, err)
		_, err = NewSelectMenu("sel", Plain("pick"), SelectOpts{
			OptionGroups: []OptionGroup{declared},
			InitialGroup: &other,
		})
		assert.ErrorIs(t, err, ErrReferenceIntegrity)
	})

	t.Run("initial group without declared groups rejected", func(t *testing.T) {
		_, err = NewSelectMenu("sel", Plain("pick"), SelectOpts{
			Options:      []Option{a, b},
			InitialGroup: &declared,
		})
		assert.ErrorIs(t, err, ErrReferenceIntegrity)
	})

	t.Run("initial option and initial group both set rejected", func(t *testing.T) {
		_, err := NewSelectMenu("sel", Plain("pick"), SelectOpts{
			OptionGroups:  []OptionGroup{declared},
			InitialOption: &a,
			InitialGroup:  &declared,
		})
		assert.ErrorIs(t, err, ErrMutualExclusion)
	})
}

func TestNewSelectMenuPlaceholder(t *testing.T) {
	_, err := NewSelectMenu("sel", Mrkdwn("*pick*"), SelectOpts{Options: makeOptions(t, 1)})
	assert.ErrorIs(t, err, ErrKindMismatch)

	_, err = NewSelectMenu("sel", Plain(stringOfLen(151)), SelectOpts{Options: makeOptions(t, 1)})
	assert.ErrorIs(t, err, ErrLengthExceeded)
}

func TestNewMultiSelectMenu(t *testing.T) {
	options := makeOptions(t, 3)

	t.Run("max selected items kept", func(t *testing.T) {
		m, err := NewMultiSelectMenu("sel", Plain("pick"), SelectOpts{Options: options}, 2)
		require.NoError(t, err)
		assert.Equal(t, 2, m.maxSelected)
	})

	t.Run("negative max rejected", func(t *testing.T) {
		_, err := NewMultiSelectMenu("sel", Plain("pick"), SelectOpts{Options: options}, -1)
		assert.ErrorIs(t, err, ErrCardinality)
	})

	t.Run("same membership rules as single select", func(t *testing.T) {
		stray := mustOption(t, "stray")
		_, err := NewMultiSelectMenu("sel", Plain("pick"), SelectOpts{
			Options:       options,
			InitialOption: &stray,
		}, 0)
		assert.ErrorIs(t, err, ErrReferenceIntegrity)
	})
}

func TestNewSelector(t *testing.T) {
	options := makeOptions(t, 3)

	t.Run("initial subset accepted", func(t *testing.T) {
		_, err := NewSelector(Checkboxes, "chk", options, options[0], options[2])
		assert.NoError(t, err)
	})

	t.Run("initial outside options rejected", func(t *testing.T) {
		stray := mustOption(t, "stray")
		_, err := NewSelector(Checkboxes, "chk", options, stray)
		assert.ErrorIs(t, err, ErrReferenceIntegrity)
	})

	t.Run("eleven options rejected", func(t *testing.T) {
		_, err := NewSelector(RadioButtons, "radio", makeOptions(t, 11))
		assert.ErrorIs(t, err, ErrCardinality)
	})

	t.Run("single initial radio option accepted", func(t *testing.T) {
		_, err := NewSelector(RadioButtons, "radio", options, options[1])
		assert.NoError(t, err)
	})

	t.Run("several initial radio options rejected", func(t *testing.T) {
		_, err := NewSelector(RadioButtons, "radio", options, options[0], options[1])
		assert.ErrorIs(t, err, ErrCardinality)
	})

	t.Run("empty options rejected", func(t *testing.T) {
		_, err := NewSelector(RadioButtons, "radio", nil)
		assert.ErrorIs(t, err, ErrCardinality)
	})
}

func TestNewButton(t *testing.T) {
	t.Run("mrkdwn label rejected", func(t *testing.T) {
		_, err := NewButton("btn", Mrkdwn("*go*"), nil)
		assert.ErrorIs(t, err, ErrKindMismatch)
	})

	t.Run("over-long value rejected", func(t *testing.T) {
		_, err := NewButton("btn", Plain("go"), &ButtonOpts{Value: stringOfLen(2001)})
		assert.ErrorIs(t, err, ErrLengthExceeded)
	})

	t.Run("unknown style rejected", func(t *testing.T) {
		_, err := NewButton("btn", Plain("go"), &ButtonOpts{Style: "flashy"})
		assert.ErrorIs(t, err, ErrKindMismatch)
	})

	t.Run("over-long action id rejected", func(t *testing.T) {
		_, err := NewButton(stringOfLen(256), Plain("go"), nil)
		assert.ErrorIs(t, err, ErrLengthExceeded)
	})
}

func TestNewTextInput(t *testing.T) {
	t.Run("bare input", func(t *testing.T) {
		_, err := NewTextInput("in", nil)
		assert.NoError(t, err)
	})

	t.Run("min above max rejected", func(t *testing.T) {
		_, err := NewTextInput("in", &TextInputOpts{MinLength: 10, MaxLength: 5})
		assert.ErrorIs(t, err, ErrLengthExceeded)
	})

	t.Run("max above 3000 rejected", func(t *testing.T) {
		_, err := NewTextInput("in", &TextInputOpts{MaxLength: 3001})
		assert.ErrorIs(t, err, ErrLengthExceeded)
	})

	t.Run("mrkdwn placeholder rejected", func(t *testing.T) {
		ph := Mrkdwn("type here")
		_, err := NewTextInput("in", &TextInputOpts{Placeholder: &ph})
		assert.ErrorIs(t, err, ErrKindMismatch)
	})
}

func TestNewDispatchConfig(t *testing.T) {
	t.Run("single trigger", func(t *testing.T) {
		_, err := NewDispatchConfig(OnEnterPressed)
		assert.NoError(t, err)
	})

	t.Run("both triggers", func(t *testing.T) {
		_, err := NewDispatchConfig(OnEnterPressed, OnCharacterEntered)
		assert.NoError(t, err)
	})

	t.Run("no triggers rejected", func(t *testing.T) {
		_, err := NewDispatchConfig()
		assert.ErrorIs(t, err, ErrCardinality)
	})

	t.Run("duplicate trigger rejected", func(t *testing.T) {
		_, err := NewDispatchConfig(OnEnterPressed, OnEnterPressed)
		assert.ErrorIs(t, err, ErrCardinality)
	})

	t.Run("unknown trigger rejected", func(t *testing.T) {
		_, err := NewDispatchConfig(DispatchTrigger("on_mouse_over"))
		assert.ErrorIs(t, err, ErrKindMismatch)
	})
}

func TestLimitsCountRunes(t *testing.T) {
	// 75 runes of a 3 byte character overflow a byte count three times
	// over but stay within the limit.
	value := strings.Repeat("値", 75)

	t.Run("option value", func(t *testing.T) {
		_, err := NewOption(Plain("label"), value, nil)
		assert.NoError(t, err)

		_, err = NewOption(Plain("label"), value+"値", nil)
		assert.ErrorIs(t, err, ErrLengthExceeded)
	})

	t.Run("action id", func(t *testing.T) {
		_, err := NewButton(strings.Repeat("値", 255), Plain("go"), nil)
		assert.NoError(t, err)

		_, err = NewButton(strings.Repeat("値", 256), Plain("go"), nil)
		assert.ErrorIs(t, err, ErrLengthExceeded)
	})

	t.Run("button value", func(t *testing.T) {
		_, err := NewButton("btn", Plain("go"), &ButtonOpts{Value: strings.Repeat("値", 2000)})
		assert.NoError(t, err)
	})
}

func stringOfLen(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = 'x'
	}
	return string(b)
}
