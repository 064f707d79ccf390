package store

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalUnmarshal(t *testing.T) {
	type payload struct {
		DueDay Optional[int]    `json:"due_day"`
		Notes  Optional[string] `json:"notes"`
	}

	tests := []struct {
		name string
		body string
		want payload
	}{
		{
			name: "omitted keys stay unset",
			body: `{}`,
			want: payload{},
		},
		{
			name: "explicit null is set but not valid",
			body: `{"due_day": null}`,
			want: payload{DueDay: Optional[int]{Set: true}},
		},
		{
			name: "value is set and valid",
			body: `{"due_day": 15, "notes": "pay early"}`,
			want: payload{
				DueDay: Optional[int]{Set: true, Valid: true, Value: 15},
				Notes:  Optional[string]{Set: true, Valid: true, Value: "pay early"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got payload
			require.NoError(t, json.Unmarshal([]byte(tt.body), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOptionalPtr(t *testing.T) {
	var unset Optional[int]
	assert.Nil(t, unset.Ptr())

	null := Optional[int]{Set: true}
	assert.Nil(t, null.Ptr())

	set := Optional[int]{Set: true, Valid: true, Value: 7}
	require.NotNil(t, set.Ptr())
	assert.Equal(t, 7, *set.Ptr())
}

func TestCategoryPatchValidate(t *testing.T) {
	var bad CategoryPatch
	require.NoError(t, json.Unmarshal([]byte(`{"due_day": 42}`), &bad))
	assert.Error(t, bad.Validate())

	var clear CategoryPatch
	require.NoError(t, json.Unmarshal([]byte(`{"due_day": null, "notes": null}`), &clear))
	assert.NoError(t, clear.Validate())

	var rename CategoryPatch
	require.NoError(t, json.Unmarshal([]byte(`{"name": ""}`), &rename))
	assert.Error(t, rename.Validate())
}
