package store

import (
	"context"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

var (
	// PreferencesColumns holds the key-value settings blob.
	PreferencesColumns = []*schema.Column{
		{Name: "key", Type: field.TypeString},
		{Name: "value", Type: field.TypeString, Size: 2147483647},
		{Name: "updated_at", Type: field.TypeTime},
	}
	PreferencesTable = &schema.Table{
		Name:       "preferences",
		Columns:    PreferencesColumns,
		PrimaryKey: []*schema.Column{PreferencesColumns[0]},
	}

	// TourEventsColumns records tour activations and their outcome.
	TourEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "action", Type: field.TypeString},
		{Name: "step_id", Type: field.TypeString, Default: ""},
		{Name: "step_index", Type: field.TypeInt, Default: 0},
		{Name: "completed", Type: field.TypeString, Size: 2147483647, Default: "[]"},
	}
	TourEventsTable = &schema.Table{
		Name:       "tour_events",
		Columns:    TourEventsColumns,
		PrimaryKey: []*schema.Column{TourEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "tourevent_timestamp", Columns: []*schema.Column{TourEventsColumns[2]}},
			{Name: "tourevent_action", Columns: []*schema.Column{TourEventsColumns[3]}},
		},
	}

	// NotificationEventsColumns records every notification the center accepted.
	NotificationEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "notification_id", Type: field.TypeString},
		{Name: "kind", Type: field.TypeString},
		{Name: "title", Type: field.TypeString},
		{Name: "message", Type: field.TypeString, Size: 2147483647},
	}
	NotificationEventsTable = &schema.Table{
		Name:       "notification_events",
		Columns:    NotificationEventsColumns,
		PrimaryKey: []*schema.Column{NotificationEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "notificationevent_timestamp", Columns: []*schema.Column{NotificationEventsColumns[2]}},
			{Name: "notificationevent_kind", Columns: []*schema.Column{NotificationEventsColumns[4]}},
		},
	}

	// Tables lists every table managed by the migrator.
	Tables = []*schema.Table{
		PreferencesTable,
		TourEventsTable,
		NotificationEventsTable,
	}
)

// migrate creates or updates the tables in place.
func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return err
	}
	return m.Create(ctx, Tables...)
}
