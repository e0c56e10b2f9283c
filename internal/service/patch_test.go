package service_test

import (
	"encoding/json"
	"testing"
	"time"

	"kanbanapi/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullable_Decode(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		set   bool
		valid bool
		value int
	}{
		{name: "absent", body: `{}`},
		{name: "null", body: `{"limit":null}`, set: true},
		{name: "value", body: `{"limit":4}`, set: true, valid: true, value: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var patch service.ColumnPatch
			require.NoError(t, json.Unmarshal([]byte(tt.body), &patch))
			assert.Equal(t, tt.set, patch.Limit.Set)
			assert.Equal(t, tt.valid, patch.Limit.Valid)
			assert.Equal(t, tt.value, patch.Limit.Value)
		})
	}
}

func TestDate_Decode(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    time.Time
		wantErr bool
	}{
		{name: "day", body: `"2025-01-31"`, want: time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC)},
		{name: "rfc3339", body: `"2025-01-31T10:30:00Z"`, want: time.Date(2025, time.January, 31, 10, 30, 0, 0, time.UTC)},
		{name: "garbage", body: `"next week"`, wantErr: true},
		{name: "number", body: `20250131`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d service.Date
			err := json.Unmarshal([]byte(tt.body), &d)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(d.Time), d.Time.String())
		})
	}
}
