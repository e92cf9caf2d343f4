package keyseq

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/keyseq/keyseq/metrics"
)

func TestBulkInvokeAll_EmptyAndNilRejected(t *testing.T) {
	disp := newDispatcher(4, metrics.NewNoopProvider())
	defer disp.close()

	_, err := bulkInvokeAll(context.Background(), disp, nil)
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = bulkInvokeAll(context.Background(), disp, []func(context.Context) (interface{}, error){nil})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestBulkInvokeAny_EmptyRejectedWithNoTasks(t *testing.T) {
	disp := newDispatcher(4, metrics.NewNoopProvider())
	defer disp.close()

	_, err := bulkInvokeAny(context.Background(), disp, nil)
	require.ErrorIs(t, err, ErrNoTasks)
}

func TestBulkInvokeAny_ReturnsFirstSuccessNotFirstError(t *testing.T) {
	disp := newDispatcher(8, metrics.NewNoopProvider())
	defer disp.close()

	fns := []func(context.Context) (interface{}, error){
		func(ctx context.Context) (interface{}, error) { return nil, errors.New("fail-1") },
		func(ctx context.Context) (interface{}, error) { return "ok", nil },
		func(ctx context.Context) (interface{}, error) { return nil, errors.New("fail-2") },
	}

	v, err := bulkInvokeAny(context.Background(), disp, fns)
	require.NoError(t, err)
	require.Equal(t, "ok", v)
}

func TestBulkInvokeAny_AllFailReturnsAnError(t *testing.T) {
	disp := newDispatcher(8, metrics.NewNoopProvider())
	defer disp.close()

	fns := []func(context.Context) (interface{}, error){
		func(ctx context.Context) (interface{}, error) { return nil, errors.New("fail-1") },
		func(ctx context.Context) (interface{}, error) { return nil, errors.New("fail-2") },
	}

	_, err := bulkInvokeAny(context.Background(), disp, fns)
	require.Error(t, err)
}
