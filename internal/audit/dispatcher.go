package audit

import "go.uber.org/zap"

type Event struct {
	SalonID  uint
	UserID   *uint
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

type Dispatcher struct {
	logger *Logger
	log    *zap.Logger
	queue  chan Event
}

func NewDispatcher(logger *Logger, log *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		log:    log,
		queue:  make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.logger.Log(
			ev.SalonID,
			ev.UserID,
			ev.Action,
			ev.Entity,
			ev.EntityID,
			ev.Metadata,
		); err != nil {
			d.log.Warn("audit write failed", zap.String("action", ev.Action), zap.Error(err))
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		// fila cheia: descartamos audit, nunca quebramos a API
		d.log.Warn("audit queue full, dropping event", zap.String("action", ev.Action))
	}
}
