package gui

// The serializer walks a validated tree depth-first and produces the
// nested mapping that goes over the wire. Only fields that are set are
// emitted; enum-valued fields render as their wire tokens; array order
// is construction order. Rendering never fails: every node was already
// validated by its constructor.

func renderText(t Text) map[string]any {
	obj := map[string]any{
		"type": string(t.kind),
		"text": t.text,
	}
	if t.emoji != nil {
		obj["emoji"] = *t.emoji
	}
	if t.verbatim != nil {
		obj["verbatim"] = *t.verbatim
	}
	return obj
}

func renderOption(o Option) map[string]any {
	obj := map[string]any{
		"text":  renderText(o.text),
		"value": o.value,
	}
	if o.description != nil {
		obj["description"] = renderText(*o.description)
	}
	if o.url != "" {
		obj["url"] = o.url
	}
	return obj
}

func renderOptions(options []Option) []any {
	out := make([]any, len(options))
	for i, o := range options {
		out[i] = renderOption(o)
	}
	return out
}

func renderOptionGroup(g OptionGroup) map[string]any {
	return map[string]any{
		"label":   renderText(g.label),
		"options": renderOptions(g.options),
	}
}

func renderElement(e Element) map[string]any {
	switch e := e.(type) {
	case SelectMenu:
		obj := map[string]any{
			"type":        "static_select",
			"placeholder": renderText(e.placeholder),
		}
		setID(obj, "action_id", e.actionID)
		renderChoices(obj, e.choices, false)
		return obj

	case MultiSelectMenu:
		obj := map[string]any{
			"type":        "multi_static_select",
			"placeholder": renderText(e.placeholder),
		}
		setID(obj, "action_id", e.actionID)
		renderChoices(obj, e.choices, true)
		if e.maxSelected > 0 {
			obj["max_selected_items"] = e.maxSelected
		}
		return obj

	case Selector:
		obj := map[string]any{
			"type":    string(e.kind),
			"options": renderOptions(e.options),
		}
		setID(obj, "action_id", e.actionID)
		// Checkboxes carry a list, radio buttons a single initial option.
		switch {
		case len(e.initialOptions) == 0:
		case e.kind == RadioButtons:
			obj["initial_option"] = renderOption(e.initialOptions[0])
		default:
			obj["initial_options"] = renderOptions(e.initialOptions)
		}
		return obj

	case Button:
		obj := map[string]any{
			"type": "button",
			"text": renderText(e.text),
		}
		setID(obj, "action_id", e.actionID)
		if e.url != "" {
			obj["url"] = e.url
		}
		if e.value != "" {
			obj["value"] = e.value
		}
		if e.style != StyleDefault {
			obj["style"] = string(e.style)
		}
		if e.a11y != "" {
			obj["accessibility_label"] = e.a11y
		}
		return obj

	case TextInput:
		obj := map[string]any{
			"type": "plain_text_input",
		}
		setID(obj, "action_id", e.actionID)
		if e.placeholder != nil {
			obj["placeholder"] = renderText(*e.placeholder)
		}
		if e.initialValue != "" {
			obj["initial_value"] = e.initialValue
		}
		if e.multiline {
			obj["multiline"] = true
		}
		if e.minLength > 0 {
			obj["min_length"] = e.minLength
		}
		if e.maxLength > 0 {
			obj["max_length"] = e.maxLength
		}
		if e.dispatch != nil {
			triggers := make([]any, len(e.dispatch.triggers))
			for i, t := range e.dispatch.triggers {
				triggers[i] = string(t)
			}
			obj["dispatch_action_config"] = map[string]any{"trigger_actions_on": triggers}
		}
		return obj
	}
	// Unreachable for trees built through this package's constructors.
	return nil
}

// renderChoices fills the option side of a select menu. Multi-select
// menus carry their initial selection under initial_options, single
// selects under initial_option.
func renderChoices(obj map[string]any, c selectChoices, multi bool) {
	if len(c.options) > 0 {
		obj["options"] = renderOptions(c.options)
	}
	if len(c.optionGroups) > 0 {
		groups := make([]any, len(c.optionGroups))
		for i, g := range c.optionGroups {
			groups[i] = renderOptionGroup(g)
		}
		obj["option_groups"] = groups
	}
	switch {
	case multi && c.initialOption != nil:
		obj["initial_options"] = renderOptions([]Option{*c.initialOption})
	case multi && c.initialGroup != nil:
		obj["initial_options"] = renderOptions(c.initialGroup.options)
	case c.initialOption != nil:
		obj["initial_option"] = renderOption(*c.initialOption)
	case c.initialGroup != nil:
		obj["initial_option"] = renderOptionGroup(*c.initialGroup)
	}
}

func renderBlock(b Block) map[string]any {
	switch b := b.(type) {
	case ActionsBlock:
		elements := make([]any, len(b.elements))
		for i, e := range b.elements {
			elements[i] = renderElement(e)
		}
		obj := map[string]any{
			"type":     "actions",
			"elements": elements,
		}
		setID(obj, "block_id", b.blockID)
		return obj

	case InputBlock:
		obj := map[string]any{
			"type":    "input",
			"label":   renderText(b.label),
			"element": renderElement(b.element),
		}
		setID(obj, "block_id", b.blockID)
		if b.hint != nil {
			obj["hint"] = renderText(*b.hint)
		}
		if b.optional {
			obj["optional"] = true
		}
		if b.dispatchAction {
			obj["dispatch_action"] = true
		}
		return obj

	case DividerBlock:
		return map[string]any{"type": "divider"}

	case ContextBlock:
		elements := make([]any, len(b.elements))
		for i, t := range b.elements {
			elements[i] = renderText(t)
		}
		return map[string]any{
			"type":     "context",
			"elements": elements,
		}

	case HeaderBlock:
		return map[string]any{
			"type": "header",
			"text": renderText(b.text),
		}

	case SectionBlock:
		obj := map[string]any{"type": "section"}
		setID(obj, "block_id", b.blockID)
		if b.text != nil {
			obj["text"] = renderText(*b.text)
		}
		if len(b.fields) > 0 {
			fields := make([]any, len(b.fields))
			for i, f := range b.fields {
				fields[i] = renderText(f)
			}
			obj["fields"] = fields
		}
		if b.accessory != nil {
			obj["accessory"] = renderElement(b.accessory)
		}
		return obj
	}
	return nil
}

func renderBlocks(blocks []Block) []any {
	out := make([]any, len(blocks))
	for i, b := range blocks {
		out[i] = renderBlock(b)
	}
	return out
}

func setID(obj map[string]any, key, id string) {
	if id != "" {
		obj[key] = id
	}
}
