package service

import (
	log "github.com/sirupsen/logrus"
)

// ActionContext carries the per-request values an update action needs:
// who is acting and where to log.
type ActionContext struct {
	ActorID string
	Logger  log.FieldLogger
}

func (ac ActionContext) logger(fallback log.FieldLogger) log.FieldLogger {
	if ac.Logger != nil {
		return ac.Logger
	}
	if fallback != nil {
		return fallback
	}
	return log.StandardLogger()
}
