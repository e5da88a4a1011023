package rpc

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodec_Unmarshal(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr bool
		check   func(t *testing.T, req *UpdateTaskRequest)
	}{
		{
			name: "known fields",
			data: `{"id":"task-1","title":"New title","payment":"42.50","tags":[]}`,
			check: func(t *testing.T, req *UpdateTaskRequest) {
				assert.Equal(t, "task-1", req.ID)
				require.NotNil(t, req.Title)
				assert.Equal(t, "New title", *req.Title)
				require.NotNil(t, req.Payment)
				assert.True(t, req.Payment.Equal(decimal.RequireFromString("42.5")))
				assert.NotNil(t, req.Tags)
				assert.Empty(t, req.Tags)
				assert.Nil(t, req.Attachments)
				assert.Nil(t, req.Status)
			},
		},
		{
			name: "numeric payment",
			data: `{"id":"task-1","payment":42}`,
			check: func(t *testing.T, req *UpdateTaskRequest) {
				require.NotNil(t, req.Payment)
				assert.True(t, req.Payment.Equal(decimal.NewFromInt(42)))
			},
		},
		{
			name:    "immutable field is rejected",
			data:    `{"id":"task-1","createdAt":"2023-09-15T14:30:00Z"}`,
			wantErr: true,
		},
		{
			name:    "poster is rejected",
			data:    `{"id":"task-1","postedBy":{"id":"user-2"}}`,
			wantErr: true,
		},
		{
			name:    "trailing data",
			data:    `{"id":"task-1"} {"id":"task-2"}`,
			wantErr: true,
		},
		{
			name: "empty body",
			data: "",
			check: func(t *testing.T, req *UpdateTaskRequest) {
				assert.Empty(t, req.ID)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req UpdateTaskRequest
			err := Codec{}.Unmarshal([]byte(tt.data), &req)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, &req)
		})
	}
}

func TestCodec_Marshal(t *testing.T) {
	data, err := Codec{}.Marshal(&DeleteTaskResponse{Deleted: true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"deleted":true}`, string(data))
	assert.Equal(t, "json", Codec{}.Name())
}
