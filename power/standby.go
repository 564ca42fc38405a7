package power

import "github.com/omzlo/pivoyager-firmware/calendar"

// standby cuts host power, arms the wake sources selected in the shadow
// configuration and sleeps.
func (s *Sequencer) standby(reason string) {
	s.log.Printf("[power] standby: %s\n", reason)
	s.b.Enable.Set(false)
	s.asleep = true
	s.b.Sleep.Standby(s.wakeSources())
}

func (s *Sequencer) wakeSources() Wake {
	conf := s.cfg.conf
	w := Wake{
		Button: conf&ConfWakeButton != 0,
		// A power-good edge can only wake us if power is absent now.
		PowerGood: conf&ConfWakePower != 0 && !s.b.PG.Get(),
		Alarm:     conf&ConfWakeAlarm != 0,
	}
	if w.Alarm {
		f, err := s.b.RTC.Flags()
		if err != nil {
			s.log.Printf("[power] alarm flags: %v\n", err)
		}
		w.AlarmPending = f.AlarmPending
	}
	// A delayed wake reprograms the only alarm and clears its flag, so a
	// host alarm that already fired takes precedence.
	if conf&ConfWakeAfter != 0 && !w.AlarmPending {
		d, t, err := s.b.RTC.Now()
		if err == nil {
			err = s.b.RTC.SetAlarm(calendar.After(d, t, uint32(s.cfg.wake)))
		}
		if err != nil {
			s.log.Printf("[power] wake alarm: %v\n", err)
		} else {
			w.Alarm = true
		}
	}
	return w
}
