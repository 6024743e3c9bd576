package guard_test

import (
	"errors"
	"testing"

	"restaurant/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	errNotConstructed := errors.New("ticket must be created via NewTicket")

	t.Run("constructed_guard_returns_nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errNotConstructed))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_returns_supplied_error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(errNotConstructed)

		assert.Equal(t, errNotConstructed, err)
	})

	t.Run("zero_value_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})
}

func TestConstructorGuard_EmbeddedInValue(t *testing.T) {
	type ticket struct {
		table string
		guard guard.ConstructorGuard
	}
	errTicketNotConstructed := errors.New("ticket must be created via newTicket")

	newTicket := func(table string) (ticket, error) {
		if table == "" {
			return ticket{}, errors.New("table is required")
		}
		return ticket{table: table, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructed_value_validates", func(t *testing.T) {
		tk, err := newTicket("12")
		require.NoError(t, err)

		require.NoError(t, tk.guard.Validate(errTicketNotConstructed))
	})

	t.Run("literal_value_fails", func(t *testing.T) {
		tk := ticket{table: "12"}

		require.ErrorIs(t, tk.guard.Validate(errTicketNotConstructed), errTicketNotConstructed)
	})

	t.Run("copies_keep_the_flag", func(t *testing.T) {
		tk, err := newTicket("7")
		require.NoError(t, err)
		copied := tk

		require.NoError(t, copied.guard.Validate(errTicketNotConstructed))
	})
}
