package approval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseToken(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    Token
		wantErr bool
	}{
		{
			name: "approve company",
			data: "approve_company_42",
			want: Token{Action: ActionApprove, Subject: SubjectCompany, AccountID: "42"},
		},
		{
			name: "reject worker",
			data: "reject_worker_abc-def",
			want: Token{Action: ActionReject, Subject: SubjectWorker, AccountID: "abc-def"},
		},
		{
			name:    "missing id",
			data:    "approve_company_",
			wantErr: true,
		},
		{
			name:    "missing parts",
			data:    "approve_company",
			wantErr: true,
		},
		{
			name:    "unknown action",
			data:    "promote_company_42",
			wantErr: true,
		},
		{
			name:    "unknown subject",
			data:    "approve_basket_42",
			wantErr: true,
		},
		{
			name:    "empty data",
			data:    "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseToken(tt.data)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrMalformedToken)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTokenString(t *testing.T) {
	token := NewToken(ActionApprove, SubjectWorker, "42")
	assert.Equal(t, "approve_worker_42", token.String())

	parsed, err := ParseToken(token.String())
	require.NoError(t, err)
	assert.Equal(t, token, parsed)
}
