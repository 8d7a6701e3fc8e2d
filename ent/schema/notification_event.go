package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// NotificationEvent records a notification accepted by the center.
type NotificationEvent struct {
	ent.Schema
}

func (NotificationEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (NotificationEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("notification_id").
			NotEmpty(),
		field.String("kind").
			NotEmpty().
			Comment("success, error, warning or info"),
		field.String("title"),
		field.Text("message"),
	}
}

func (NotificationEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("kind"),
	}
}
