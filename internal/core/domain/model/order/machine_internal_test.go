package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTransitions(t *testing.T) {
	t.Run("shipped table references only declared states and events", func(t *testing.T) {
		assert.NotPanics(t, validateTransitions)
	})

	t.Run("every event has at least one edge", func(t *testing.T) {
		table := transitions()
		for _, event := range []Event{EventNext, EventCancel, EventResume, EventAuthorizeReturn, EventReturn} {
			require.NotEmpty(t, table[event], "event %s has no transitions", event)
		}
	})

	t.Run("the next event walks cart to complete", func(t *testing.T) {
		var path []State
		for _, tr := range transitions()[EventNext] {
			path = append(path, tr.to)
		}

		assert.Equal(t, []State{StateAddress, StateDelivery, StatePayment, StateConfirm, StateComplete}, path)
	})
}
