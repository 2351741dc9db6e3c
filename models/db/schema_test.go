package dbmodels

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

func TestSchemaParse(t *testing.T) {
	t.Run(`all tables are parsed`, func(t *testing.T) {
		for _, model := range []interface{}{&Profile{}, &LeaveRequest{}, &Task{}, &Announcement{}, &ProjectUpdate{}} {
			_, err := schema.Parse(model, &sync.Map{}, schema.NamingStrategy{})
			require.NoError(t, err, "%T", model)
		}
	})
	t.Run(`images are a column, not a relation`, func(t *testing.T) {
		parsed, err := schema.Parse(&ProjectUpdate{}, &sync.Map{}, schema.NamingStrategy{})
		require.NoError(t, err)
		field := parsed.LookUpField("images")
		require.NotNil(t, field)
		require.EqualValues(t, "text[]", field.DataType)
		require.NotContains(t, parsed.Relationships.Relations, "Images")
	})
}
