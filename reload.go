package ccfield

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 200 * time.Millisecond

// WatchRules reloads the rules from the configuration file whenever it
// changes, until ctx is done. A file that fails to load leaves the active
// rules in place. It returns once the watch could not be set up.
func (p *Proxy) WatchRules(ctx context.Context, filename string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	// watch the directory, editors replace files on save
	dir := filepath.Dir(filename)
	base := filepath.Base(filename)
	if err := w.Add(dir); err != nil {
		return err
	}
	p.log.Info().Str("path", filename).Msg("Watching config")

	var timer *time.Timer
	var timerCh <-chan time.Time
	schedule := func() {
		if timer == nil {
			timer = time.NewTimer(reloadDebounce)
		} else {
			timer.Reset(reloadDebounce)
		}
		timerCh = timer.C
	}
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != base {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			schedule()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			p.log.Warn().Err(err).Msg("Config watch error")
		case <-timerCh:
			timerCh = nil
			p.reloadRules(filename)
		}
	}
}

func (p *Proxy) reloadRules(filename string) {
	config, err := LoadConfig(filename)
	if err != nil {
		p.log.Error().Err(err).Msg("Could not reload config, keeping current rules")
		return
	}
	if err := p.SetRules(config.Rules); err != nil {
		p.log.Error().Err(err).Msg("Could not apply rules")
		return
	}
	p.log.Info().Int("rules", len(config.Rules)).Msg("Reloaded rules")
}
