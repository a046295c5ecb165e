package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mattsolo1/grove-weekly/pkg/models"
)

// WeeklySchedule returns a cron expression firing at 00:05 on startDay
func WeeklySchedule(startDay models.Weekday) string {
	day, ok := startDay.Index()
	if !ok {
		day = 1
	}
	return fmt.Sprintf("5 0 * * %d", day)
}

// Watch creates the weekly note (without opening it) on every tick of the cron
// schedule spec until ctx is cancelled. With runNow the first run happens immediately.
// Ticks are independent; a failed tick is logged and the next one still runs.
func (s *Service) Watch(ctx context.Context, settings models.Settings, spec string, runNow bool, onRun func(*models.WeeklyNote, error)) error {
	if spec == "" {
		spec = WeeklySchedule(settings.StartDay)
	}

	run := func() {
		note, err := s.OpenWeeklyNote(ctx, settings, WithoutOpen())
		if err != nil {
			s.log.WithError(err).Error("scheduled weekly note run failed")
		}
		if onRun != nil {
			onRun(note, err)
		}
	}

	c := cron.New(cron.WithLocation(time.Local))
	if _, err := c.AddFunc(spec, run); err != nil {
		return fmt.Errorf("parse schedule %q: %w", spec, err)
	}

	if runNow {
		run()
	}

	c.Start()
	s.log.WithField("schedule", spec).Debug("watching for new weeks")

	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}
