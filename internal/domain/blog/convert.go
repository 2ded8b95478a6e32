package blog

import "slices"

// ToView converts a persisted document into its exposed form.
func ToView(d Document) View {
	return View{
		ID:                 d.ID,
		Author:             d.Author,
		Name:               d.Name,
		Content:            d.Content,
		PublishDate:        d.PublishDate,
		LastUpdateDate:     d.LastUpdateDate,
		Topics:             normalizeTopics(d.Topics),
		CelebrityFullNames: normalizeNames(d.CelebrityFullNames),
		Active:             d.Active,
	}
}

// FromView converts an exposed view into the persisted form.
func FromView(v View) Document {
	return Document{
		ID:                 v.ID,
		Author:             v.Author,
		Name:               v.Name,
		Content:            v.Content,
		PublishDate:        v.PublishDate,
		LastUpdateDate:     v.LastUpdateDate,
		Topics:             normalizeTopics(v.Topics),
		CelebrityFullNames: normalizeNames(v.CelebrityFullNames),
		Active:             v.Active,
	}
}

// ToViews converts a slice of documents, preserving order.
func ToViews(docs []Document) []View {
	out := make([]View, len(docs))
	for i, d := range docs {
		out[i] = ToView(d)
	}
	return out
}

// normalizeTopics applies set semantics: sorted, duplicates collapsed, never nil.
func normalizeTopics(in []Topic) []Topic {
	out := slices.Clone(in)
	if out == nil {
		out = []Topic{}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// normalizeNames applies set semantics to celebrity names.
func normalizeNames(in []string) []string {
	out := slices.Clone(in)
	if out == nil {
		out = []string{}
	}
	slices.Sort(out)
	return slices.Compact(out)
}
