package controllers

import (
	"context"
	"errors"
	"fmt"

	"assetserver/src/config"
	"assetserver/src/ingest"
	"assetserver/src/scheduler"
	"assetserver/src/services"
	"assetserver/src/utils"

	"github.com/sirupsen/logrus"
)

// ImportTask is what a schedule runs on each tick.
type ImportTask func(ctx context.Context, schedule config.ImportSchedule) (*ingest.Report, error)

// LoadAllImportSchedules (re)schedules every configured import.
func (c *Controller) LoadAllImportSchedules(ctx context.Context) error {
	for _, schedule := range c.Imports {
		if err := c.ScheduleImport(ctx, schedule, c.RunImport); err != nil {
			return fmt.Errorf("failed to schedule import %q: %w", schedule.Name, err)
		}
	}
	return nil
}

// RunImportByName runs a configured import immediately.
func (c *Controller) RunImportByName(ctx context.Context, name string) (*ingest.Report, error) {
	for _, schedule := range c.Imports {
		if schedule.Name == name {
			return c.RunImport(ctx, schedule)
		}
	}
	return nil, utils.NotFound(fmt.Sprintf("import %q is not configured", name))
}

// RunImport ingests the schedule's file and logs the outcome.
func (c *Controller) RunImport(ctx context.Context, schedule config.ImportSchedule) (*ingest.Report, error) {
	entry := c.Logger.WithFields(logrus.Fields{
		"import":  schedule.Name,
		"dialect": schedule.Dialect,
		"file":    schedule.Path,
	})
	ctx = utils.WithLogger(ctx, entry)

	report, err := c.ImportService.ImportFile(ctx, schedule.Dialect, schedule.Path)
	if err != nil {
		entry.WithError(err).Error("Scheduled import failed")
		return nil, translateError(err)
	}
	entry.WithFields(logrus.Fields{
		"run_id":  report.RunID,
		"created": report.Created,
		"updated": report.Updated,
		"skipped": report.Skipped,
		"aborted": report.Aborted,
	}).Info("Scheduled import finished")
	return report, nil
}

// ScheduleImport replaces any task already registered under the schedule's
// name with one running taskFunc on its cron spec.
func (c *Controller) ScheduleImport(_ context.Context, schedule config.ImportSchedule, taskFunc ImportTask) error {
	c.SchedulerMutex.Lock()
	if existingTask, exists := c.Schedulers[schedule.Name]; exists {
		existingTask.Cancel()
		delete(c.Schedulers, schedule.Name)
	}
	c.SchedulerMutex.Unlock()

	newTask, err := scheduler.NewScheduledTask(schedule.Cron, func() {
		if _, err := taskFunc(context.Background(), schedule); err != nil {
			c.Logger.WithField("import", schedule.Name).WithError(err).Warn("Import run failed")
		}
	}, c.Logger)
	if err != nil {
		return err
	}

	c.SchedulerMutex.Lock()
	c.Schedulers[schedule.Name] = newTask
	c.SchedulerMutex.Unlock()

	c.Logger.WithFields(logrus.Fields{
		"import": schedule.Name,
		"cron":   schedule.Cron,
	}).Info("Import scheduled")
	return nil
}

func translateError(err error) error {
	switch {
	case errors.Is(err, services.ErrUnreadableSource):
		return utils.UnprocessableEntity(err.Error())
	case errors.Is(err, ingest.ErrUnknownDialect):
		return utils.BadRequest(err.Error())
	}
	return err
}
