package config

import "time"

// Tasks настраивает очередь фоновых задач (уведомления и письма).
type Tasks struct {
	Concurrency    int           `env:"TASKS_CONCURRENCY" envDefault:"10"`
	EnqueueTimeout time.Duration `env:"TASKS_ENQUEUE_TIMEOUT" envDefault:"2s"`
}
