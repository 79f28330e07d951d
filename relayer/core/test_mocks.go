package core

import (
	"context"

	"github.com/Vikakfuse/star-craft/eth"
	"github.com/stretchr/testify/mock"
)

type EventProcessorMock struct {
	mock.Mock
}

var _ EventProcessor = (*EventProcessorMock)(nil)

func (m *EventProcessorMock) Process(raw *eth.LockEventLog) (*ProcessedEvent, error) {
	args := m.Called(raw)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	arg0, _ := args.Get(0).(*ProcessedEvent)

	return arg0, args.Error(1)
}

type TxSubmitterMock struct {
	mock.Mock
}

var _ TxSubmitter = (*TxSubmitterMock)(nil)

func (m *TxSubmitterMock) Submit(ctx context.Context, event *ProcessedEvent) bool {
	args := m.Called(ctx, event)
	arg0, _ := args.Get(0).(bool)

	return arg0
}
