package blog

import (
	"errors"
	"testing"

	"github.com/kailas-cloud/blogdex/internal/domain"
)

func validView() View {
	return View{
		ID:                 1,
		Author:             "jane",
		Name:               "AI rising",
		Content:            "body",
		PublishDate:        MustParseDate("2023-03-01"),
		Topics:             []Topic{TopicTechnology},
		CelebrityFullNames: []string{"Elon Musk"},
		Active:             true,
	}
}

func violatedFields(t *testing.T, err error) []string {
	t.Helper()
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *domain.ValidationError, got %T (%v)", err, err)
	}
	fields := make([]string, len(ve.Violations))
	for i, v := range ve.Violations {
		fields[i] = v.Field
	}
	return fields
}

func TestValidate_Valid(t *testing.T) {
	v := validView()
	if err := v.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_Violations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(v *View)
		want   []string
	}{
		{"zero id", func(v *View) { v.ID = 0 }, []string{FieldID}},
		{"negative id", func(v *View) { v.ID = -5 }, []string{FieldID}},
		{"blank author", func(v *View) { v.Author = "   " }, []string{FieldAuthor}},
		{"blank name", func(v *View) { v.Name = "" }, []string{FieldName}},
		{"blank content", func(v *View) { v.Content = "\t" }, []string{FieldContent}},
		{"missing publish date", func(v *View) { v.PublishDate = Date{} }, []string{FieldPublishDate}},
		{"unknown topic", func(v *View) { v.Topics = []Topic{"COOKING"} }, []string{FieldTopics}},
		{"blank celebrity", func(v *View) { v.CelebrityFullNames = []string{"ok", " ", ""} }, []string{FieldCelebrityFullNames}},
		{
			"every text field blank",
			func(v *View) { v.Author, v.Name, v.Content = "", "", "" },
			[]string{FieldAuthor, FieldName, FieldContent},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := validView()
			tc.mutate(&v)
			err := v.Validate()
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			got := violatedFields(t, err)
			if len(got) != len(tc.want) {
				t.Fatalf("violations = %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("violation[%d] = %s, want %s", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestValidateContent_IgnoresImmutableFields(t *testing.T) {
	v := View{Name: "n", Content: "c"}
	if err := v.ValidateContent(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateContent_ReportsMutableFields(t *testing.T) {
	v := View{Topics: []Topic{"BOGUS"}}
	got := violatedFields(t, v.ValidateContent())
	want := []string{FieldName, FieldContent, FieldTopics}
	if len(got) != len(want) {
		t.Fatalf("violations = %v, want %v", got, want)
	}
}
