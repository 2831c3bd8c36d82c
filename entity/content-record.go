package entity

// Facet column names as they appear in the catalog sheet header.
const (
	FieldAudience = "audience"
	FieldLanguage = "language"
	FieldCountry  = "country"
	FieldTopic    = "topic"
	FieldFormat   = "format"
)

// ContentRecord is one row of the marketing content catalog.
type ContentRecord struct {
	Audience string `json:"audience" bson:"audience"`
	Language string `json:"language" bson:"language"`
	Country  string `json:"country" bson:"country"`
	Topic    string `json:"topic" bson:"topic"`
	Format   string `json:"format" bson:"format"`
	Text     string `json:"text" bson:"text"`
	ImageID  string `json:"image_id,omitempty" bson:"image_id,omitempty"`
}

// Facet returns the facet value stored under the given column name.
func (r *ContentRecord) Facet(field string) string {
	switch field {
	case FieldAudience:
		return r.Audience
	case FieldLanguage:
		return r.Language
	case FieldCountry:
		return r.Country
	case FieldTopic:
		return r.Topic
	case FieldFormat:
		return r.Format
	}
	return ""
}

// Matches reports whether all five facets equal the collected answers.
func (r *ContentRecord) Matches(audience, language, country, topic, format string) bool {
	return r.Audience == audience &&
		r.Language == language &&
		r.Country == country &&
		r.Topic == topic &&
		r.Format == format
}
