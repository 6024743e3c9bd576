package status_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"restaurant/internal/core/domain/model/status"
	"restaurant/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	testCases := []struct {
		input    string
		expected status.Status
	}{
		{"", status.Pending},
		{"   ", status.Pending},
		{"pending", status.Pending},
		{"Pendente", status.Pending},
		{"preparing", status.Preparing},
		{"em preparo", status.Preparing},
		{"PREPARANDO", status.Preparing},
		{"ready", status.Ready},
		{"pronto", status.Ready},
		{"Pronta", status.Ready},
		{"delivered", status.Delivered},
		{"entregue", status.Delivered},
		{" deliv ", status.Delivered},
		{"canceled", status.Canceled},
		{"cancelado", status.Canceled},
		{"paid", status.Paid},
		{"pago", status.Paid},
		{"pagamento", status.Paid},
		{"pre", status.Preparing},
		{"rea", status.Ready},
		{"del", status.Delivered},
		{"can", status.Canceled},
		{"pai", status.Paid},
		{"re", status.Pending},
		{"garbage", status.Pending},
		{"42", status.Pending},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%q", tc.input), func(t *testing.T) {
			assert.Equal(t, tc.expected, status.Normalize(tc.input))
		})
	}
}

func TestNormalize_IsTotalAndCanonical(t *testing.T) {
	for _, in := range []string{"", "x", "??", "ready!", "ENTREGUE", "pa", "p", "prep", "zzzzzzzz"} {
		got := status.Normalize(in)
		require.NoError(t, got.Validate(), in)
		assert.Equal(t, got, status.Normalize(got.String()), "normalizing a canonical token is a fixed point")
	}
}

func TestParse(t *testing.T) {
	t.Run("accepts every canonical token", func(t *testing.T) {
		for _, s := range []status.Status{
			status.Pending, status.Preparing, status.Ready,
			status.Delivered, status.Canceled, status.Paid,
		} {
			parsed, err := status.Parse(s.String())
			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
	})

	t.Run("rejects fuzzy input", func(t *testing.T) {
		_, err := status.Parse("pronto")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestStatus_Validate(t *testing.T) {
	assert.NoError(t, status.Ready.Validate())

	for _, s := range []status.Status{status.Unknown, status.Status(-1), status.Status(7)} {
		err := s.Validate()
		require.Error(t, err)
		assert.IsType(t, &errs.ValueIsInvalidError{}, err)
	}
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "preparing", status.Preparing.String())
	assert.Equal(t, "unknown", status.Unknown.String())
	assert.Equal(t, "unknown", status.Status(99).String())
}

func TestStatus_Predicates(t *testing.T) {
	testCases := []struct {
		status    status.Status
		done      bool
		finalized bool
		item      bool
	}{
		{status.Pending, false, false, true},
		{status.Preparing, false, false, true},
		{status.Ready, true, false, true},
		{status.Delivered, true, true, true},
		{status.Canceled, false, false, false},
		{status.Paid, false, true, false},
		{status.Unknown, false, false, false},
	}

	for _, tc := range testCases {
		t.Run(tc.status.String(), func(t *testing.T) {
			assert.Equal(t, tc.done, tc.status.IsDone())
			assert.Equal(t, tc.finalized, tc.status.IsFinalized())
			assert.Equal(t, tc.item, tc.status.IsItemStatus())
		})
	}
}

func TestStatus_JSON(t *testing.T) {
	type envelope struct {
		Status status.Status `json:"status"`
	}

	t.Run("round trip", func(t *testing.T) {
		for _, s := range []status.Status{
			status.Pending, status.Preparing, status.Ready,
			status.Delivered, status.Paid, status.Canceled,
		} {
			raw, err := json.Marshal(envelope{Status: s})
			require.NoError(t, err)
			assert.JSONEq(t, fmt.Sprintf(`{"status":%q}`, s.String()), string(raw))

			var decoded envelope
			require.NoError(t, json.Unmarshal(raw, &decoded))
			assert.Equal(t, s, decoded.Status)
		}
	})

	t.Run("non canonical token is rejected", func(t *testing.T) {
		var decoded envelope
		err := json.Unmarshal([]byte(`{"status":"Pronto"}`), &decoded)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
