package schema

import (
	"testing"

	"entgo.io/ent"
	entschema "entgo.io/ent/dialect/sql/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/hashboard/internal/store"
)

type mixer interface {
	Mixin() []ent.Mixin
}

func fieldNames(s ent.Interface) []string {
	var names []string
	if m, ok := s.(mixer); ok {
		for _, mx := range m.Mixin() {
			for _, f := range mx.Fields() {
				names = append(names, f.Descriptor().Name)
			}
		}
	}
	for _, f := range s.Fields() {
		names = append(names, f.Descriptor().Name)
	}
	return names
}

// columnNames skips the auto-increment id the migrator adds.
func columnNames(t *entschema.Table) []string {
	var names []string
	for _, c := range t.Columns {
		if c.Increment {
			continue
		}
		names = append(names, c.Name)
	}
	return names
}

func TestSchemaMatchesStoreTables(t *testing.T) {
	tests := []struct {
		schema ent.Interface
		table  *entschema.Table
	}{
		{Preference{}, store.PreferencesTable},
		{TourEvent{}, store.TourEventsTable},
		{NotificationEvent{}, store.NotificationEventsTable},
	}
	for _, tt := range tests {
		t.Run(tt.table.Name, func(t *testing.T) {
			assert.Equal(t, columnNames(tt.table), fieldNames(tt.schema))
		})
	}
}

func TestEventTablesShareMixin(t *testing.T) {
	for _, s := range []mixer{TourEvent{}, NotificationEvent{}} {
		require.Len(t, s.Mixin(), 1)
		assert.IsType(t, EventMixin{}, s.Mixin()[0])
	}
}

func TestFieldDescriptorsValid(t *testing.T) {
	for _, s := range []ent.Interface{Preference{}, TourEvent{}, NotificationEvent{}} {
		for _, f := range s.Fields() {
			d := f.Descriptor()
			assert.NoError(t, d.Err, d.Name)
		}
	}
}
