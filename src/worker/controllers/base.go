package controllers

import (
	"sync"

	"assetserver/src/config"
	"assetserver/src/scheduler"
	"assetserver/src/services"

	"github.com/sirupsen/logrus"
)

type Controller struct {
	ImportService  services.ImportServiceI
	Imports        []config.ImportSchedule
	Logger         *logrus.Logger
	SchedulerMutex sync.Mutex
	Schedulers     map[string]*scheduler.ScheduledTask
}

func NewController(importService services.ImportServiceI, imports []config.ImportSchedule, logger *logrus.Logger) *Controller {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Controller{
		ImportService: importService,
		Imports:       imports,
		Logger:        logger,
		Schedulers:    map[string]*scheduler.ScheduledTask{},
	}
}

func (c *Controller) GetSchedulers() map[string]*scheduler.ScheduledTask {
	c.SchedulerMutex.Lock()
	defer c.SchedulerMutex.Unlock()
	out := make(map[string]*scheduler.ScheduledTask, len(c.Schedulers))
	for name, task := range c.Schedulers {
		out[name] = task
	}
	return out
}

// Stop cancels every scheduled import.
func (c *Controller) Stop() {
	c.SchedulerMutex.Lock()
	defer c.SchedulerMutex.Unlock()
	for name, task := range c.Schedulers {
		task.Cancel()
		delete(c.Schedulers, name)
	}
}
