package worker

import (
	"context"
	"testing"

	"asset-tracker/internal/models"

	"github.com/stretchr/testify/assert"
)

type recordingInvalidator struct {
	entities []string
}

func (r *recordingInvalidator) Invalidate(_ context.Context, entity string) {
	r.entities = append(r.entities, entity)
}

func TestHandleMessage(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    []string
		wantErr bool
	}{
		{
			name:    "asset change",
			payload: `{"entity":"asset","action":"update","id":3}`,
			want:    []string{models.EntityAsset},
		},
		{
			name:    "category delete",
			payload: `{"entity":"category","action":"delete","id":9}`,
			want:    []string{models.EntityCategory},
		},
		{
			name:    "todo is ignored",
			payload: `{"entity":"todo","action":"create","id":1}`,
		},
		{
			name:    "unknown entity",
			payload: `{"entity":"invoice","action":"create","id":1}`,
			wantErr: true,
		},
		{
			name:    "garbage",
			payload: `{not json`,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := &recordingInvalidator{}
			err := handleMessage(context.Background(), inv, []byte(tt.payload))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, inv.entities)
		})
	}
}
