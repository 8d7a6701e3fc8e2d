package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// TourEvent records a guided tour start, completion or skip.
type TourEvent struct {
	ent.Schema
}

func (TourEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (TourEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("action").
			NotEmpty().
			Comment("started, completed or skipped"),
		field.String("step_id").
			Default("").
			Comment("Step shown when the tour ended"),
		field.Int("step_index").
			Default(0),
		field.Text("completed").
			Default("[]").
			Comment("JSON array of completed step IDs"),
	}
}

func (TourEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("action"),
	}
}
