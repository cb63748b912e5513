package job

import (
	"context"
)

// Task is one unit of work handed to the worker pool. Done is closed once Run returns.
type Task struct {
	Id      string
	TraceId string
	Ctx     context.Context
	Run     func(ctx context.Context)
	Done    chan struct{}
	// Panic holds the recovered value when Run panicked. Read it only after Done is closed.
	Panic any
}

func NewTask(ctx context.Context, id, traceId string, run func(ctx context.Context)) *Task {
	return &Task{
		Id:      id,
		TraceId: traceId,
		Ctx:     ctx,
		Run:     run,
		Done:    make(chan struct{}),
	}
}

type Service struct {
	TaskChannel       chan *Task
	RequestCount      int64
	DispatcherChannel chan bool
}

type ServiceConfig struct {
	TaskChannel       chan *Task
	DispatcherChannel chan bool
}

func InitJobService(cfg ServiceConfig) *Service {
	return &Service{
		TaskChannel:       cfg.TaskChannel,
		DispatcherChannel: cfg.DispatcherChannel,
	}
}
