package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// Preference is one saved settings document, keyed by name.
type Preference struct {
	ent.Schema
}

func (Preference) Fields() []ent.Field {
	return []ent.Field{
		field.String("key").
			NotEmpty().
			Immutable().
			Comment("project, team or theme"),
		field.Text("value").
			Comment("JSON document or plain value"),
		field.Time("updated_at"),
	}
}
