package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/nikbrunner/nexus/internal/ai"
	"github.com/nikbrunner/nexus/internal/model"
	"github.com/nikbrunner/nexus/internal/tui/layout"
)

// Mode represents the current UI mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
	ModeAdd
	ModeConfirmDelete
	ModeHelp
)

// MessageType determines the styling of the status message.
type MessageType int

const (
	MessageInfo MessageType = iota
	MessageSuccess
	MessageWarning
	MessageError
)

// Form field indexes, in focus order.
const (
	FieldURL = iota
	FieldTitle
	FieldDescription
	FieldCategory
	FieldTags
	fieldCount
)

var fieldLabels = [fieldCount]string{"URL", "Title", "Description", "Category", "Tags"}

// AddFormState holds state for the add-bookmark form.
//
// Session identifies one opening of the form. An analysis result carries
// the session it was started in and is dropped if the form has since been
// closed or reopened.
type AddFormState struct {
	Inputs    [fieldCount]textinput.Model
	Focus     int
	Session   int
	Analyzing bool
}

// NewAddFormState creates the form inputs.
func NewAddFormState(cfg layout.LayoutConfig) AddFormState {
	limits := [fieldCount]int{
		cfg.Input.URLCharLimit,
		cfg.Input.TitleCharLimit,
		cfg.Input.DescriptionCharLimit,
		cfg.Input.CategoryCharLimit,
		cfg.Input.TagsCharLimit,
	}
	placeholders := [fieldCount]string{
		"https://...",
		"Title (defaults to the URL)",
		"Description",
		model.DefaultCategory,
		"tag1, tag2, tag3",
	}

	var f AddFormState
	for i := range f.Inputs {
		in := textinput.New()
		in.Placeholder = placeholders[i]
		in.CharLimit = limits[i]
		in.Width = cfg.Input.StandardWidth
		f.Inputs[i] = in
	}
	return f
}

// Open starts a new session with empty inputs and the URL focused.
func (f *AddFormState) Open() {
	f.Session++
	f.Analyzing = false
	for i := range f.Inputs {
		f.Inputs[i].Reset()
	}
	f.SetFocus(FieldURL)
}

// Close ends the session so any pending analysis is ignored.
func (f *AddFormState) Close() {
	f.Session++
	f.Analyzing = false
	for i := range f.Inputs {
		f.Inputs[i].Blur()
	}
}

// SetFocus moves the cursor to field i, wrapping around.
func (f *AddFormState) SetFocus(i int) {
	i = ((i % fieldCount) + fieldCount) % fieldCount
	for j := range f.Inputs {
		f.Inputs[j].Blur()
	}
	f.Focus = i
	f.Inputs[i].Focus()
}

// Value returns the trimmed content of field i.
func (f AddFormState) Value(i int) string {
	return strings.TrimSpace(f.Inputs[i].Value())
}

// Fill replaces title, description, category and tags with meta.
func (f *AddFormState) Fill(meta ai.Metadata) {
	f.Inputs[FieldTitle].SetValue(meta.Title)
	f.Inputs[FieldDescription].SetValue(meta.Description)
	f.Inputs[FieldCategory].SetValue(meta.Category)
	f.Inputs[FieldTags].SetValue(strings.Join(meta.Tags, ", "))
}

// Params converts the form into creation parameters.
func (f AddFormState) Params() model.NewBookmarkParams {
	return model.NewBookmarkParams{
		URL:         f.Value(FieldURL),
		Title:       f.Value(FieldTitle),
		Description: f.Value(FieldDescription),
		Category:    f.Value(FieldCategory),
		Tags:        model.ParseTags(f.Inputs[FieldTags].Value()),
	}
}

// analysisMsg delivers an enrichment result to the form session that
// requested it.
type analysisMsg struct {
	session  int
	analysis ai.Analysis
}

// themeTickMsg triggers a poll of the host color scheme.
type themeTickMsg struct{}
