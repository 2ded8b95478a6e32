package blog

import (
	"reflect"
	"testing"
)

func fullDocument() Document {
	return Document{
		ID:                 42,
		Author:             "jane",
		Name:               "AI rising",
		Content:            "a long read",
		PublishDate:        MustParseDate("2023-03-01"),
		LastUpdateDate:     MustParseDate("2023-04-15"),
		Topics:             []Topic{TopicScience, TopicTechnology},
		CelebrityFullNames: []string{"Ada Lovelace", "Elon Musk"},
		Active:             true,
	}
}

func TestViewMirrorsDocumentFields(t *testing.T) {
	docType := reflect.TypeOf(Document{})
	viewType := reflect.TypeOf(View{})

	if docType.NumField() != viewType.NumField() {
		t.Fatalf("Document has %d fields, View has %d", docType.NumField(), viewType.NumField())
	}
	for i := 0; i < docType.NumField(); i++ {
		df := docType.Field(i)
		vf, ok := viewType.FieldByName(df.Name)
		if !ok {
			t.Errorf("View is missing field %s", df.Name)
			continue
		}
		if vf.Type != df.Type {
			t.Errorf("field %s: View type %s, Document type %s", df.Name, vf.Type, df.Type)
		}
	}
}

func TestViewJSONNamesMatchPersistedFields(t *testing.T) {
	want := map[string]string{
		"ID":                 FieldID,
		"Author":             FieldAuthor,
		"Name":               FieldName,
		"Content":            FieldContent,
		"PublishDate":        FieldPublishDate,
		"LastUpdateDate":     FieldLastUpdateDate,
		"Topics":             FieldTopics,
		"CelebrityFullNames": FieldCelebrityFullNames,
		"Active":             FieldActive,
	}
	viewType := reflect.TypeOf(View{})
	for i := 0; i < viewType.NumField(); i++ {
		f := viewType.Field(i)
		if got := f.Tag.Get("json"); got != want[f.Name] {
			t.Errorf("field %s json tag = %q, want %q", f.Name, got, want[f.Name])
		}
	}
}

func TestToView_CopiesEveryField(t *testing.T) {
	d := fullDocument()
	v := ToView(d)

	dv := reflect.ValueOf(d)
	vv := reflect.ValueOf(v)
	for i := 0; i < dv.NumField(); i++ {
		name := dv.Type().Field(i).Name
		if !reflect.DeepEqual(dv.Field(i).Interface(), vv.FieldByName(name).Interface()) {
			t.Errorf("field %s: got %v, want %v", name, vv.FieldByName(name), dv.Field(i))
		}
	}
}

func TestFromView_CopiesEveryField(t *testing.T) {
	v := ToView(fullDocument())
	d := FromView(v)

	dv := reflect.ValueOf(d)
	vv := reflect.ValueOf(v)
	for i := 0; i < vv.NumField(); i++ {
		name := vv.Type().Field(i).Name
		if !reflect.DeepEqual(vv.Field(i).Interface(), dv.FieldByName(name).Interface()) {
			t.Errorf("field %s: got %v, want %v", name, dv.FieldByName(name), vv.Field(i))
		}
	}
}

func TestRoundTrip_DocumentViewDocument(t *testing.T) {
	d := fullDocument()
	if got := FromView(ToView(d)); !reflect.DeepEqual(got, d) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, d)
	}
}

func TestConversion_AppliesSetSemantics(t *testing.T) {
	v := View{
		Topics:             []Topic{TopicSports, TopicCulture, TopicSports},
		CelebrityFullNames: []string{"Zed", "Amy", "Zed"},
	}
	d := FromView(v)

	if !reflect.DeepEqual(d.Topics, []Topic{TopicCulture, TopicSports}) {
		t.Errorf("topics = %v", d.Topics)
	}
	if !reflect.DeepEqual(d.CelebrityFullNames, []string{"Amy", "Zed"}) {
		t.Errorf("celebrities = %v", d.CelebrityFullNames)
	}
}

func TestConversion_NilSetsBecomeEmpty(t *testing.T) {
	v := ToView(Document{ID: 1})
	if v.Topics == nil || len(v.Topics) != 0 {
		t.Errorf("topics = %#v, want empty non-nil", v.Topics)
	}
	if v.CelebrityFullNames == nil || len(v.CelebrityFullNames) != 0 {
		t.Errorf("celebrities = %#v, want empty non-nil", v.CelebrityFullNames)
	}
}

func TestConversion_DoesNotAliasInput(t *testing.T) {
	names := []string{"Bob", "Amy"}
	d := FromView(View{CelebrityFullNames: names})
	d.CelebrityFullNames[0] = "mutated"
	if names[0] != "Bob" || names[1] != "Amy" {
		t.Errorf("input slice was modified: %v", names)
	}
}

func TestToViews_PreservesOrder(t *testing.T) {
	views := ToViews([]Document{{ID: 3}, {ID: 1}, {ID: 2}})
	if len(views) != 3 || views[0].ID != 3 || views[1].ID != 1 || views[2].ID != 2 {
		t.Errorf("unexpected order: %+v", views)
	}
	if got := ToViews(nil); got == nil || len(got) != 0 {
		t.Errorf("ToViews(nil) = %#v, want empty non-nil", got)
	}
}
