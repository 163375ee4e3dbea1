package shutdown

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/honeycarbs/jobboard/pkg/logging"
)

func TestStop_RunsEveryTargetInOrder(t *testing.T) {
	var order []string

	first := Func(func(context.Context) error {
		order = append(order, "first")
		return assert.AnError
	})
	second := Func(func(ctx context.Context) error {
		order = append(order, "second")
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		return nil
	})

	Stop(time.Second, logging.NewNop(), first, nil, second)

	assert.Equal(t, []string{"first", "second"}, order)
}
