package tikzcli

import (
	"context"
	"errors"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"oss.terrastruct.com/tikzed/lib/xmain"
	"oss.terrastruct.com/tikzed/tikzrenderers/tikzpreview"
)

type watcher struct {
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	ms *xmain.State
	pj *previewJob

	renderCh chan struct{}

	fw *fsnotify.Watcher

	errMu sync.Mutex
	err   error
}

func newWatcher(ctx context.Context, ms *xmain.State, pj *previewJob) (*watcher, error) {
	ctx, cancel := context.WithCancel(ctx)

	w := &watcher{
		ctx:    ctx,
		cancel: cancel,

		ms: ms,
		pj: pj,

		renderCh: make(chan struct{}, 1),
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		cancel()
		return nil, err
	}
	w.fw = fw
	return w, nil
}

func (w *watcher) run() error {
	defer w.close()

	w.goFunc(w.watchLoop)
	w.goFunc(w.renderLoop)

	w.wg.Wait()
	w.pj.r.Wait()
	if errors.Is(w.err, context.Canceled) {
		return nil
	}
	return w.err
}

func (w *watcher) close() {
	w.cancel()
	if w.fw != nil {
		err := w.fw.Close()
		w.setErr(err)
	}
}

func (w *watcher) setErr(err error) {
	w.errMu.Lock()
	if w.err == nil {
		w.err = err
	}
	w.errMu.Unlock()
}

func (w *watcher) goFunc(fn func(context.Context) error) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer w.cancel()

		err := fn(w.ctx)
		w.setErr(err)
	}()
}

// watchLoop requests a render on start and after every burst of changes to
// the input.
func (w *watcher) watchLoop(ctx context.Context) error {
	lastModified, err := w.ensureAddWatch(ctx)
	if err != nil {
		return err
	}
	w.ms.Log.Info.Printf("rendering %v...", w.ms.HumanPath(w.pj.inputPath))
	w.requestRender()

	eatBurstTimer := time.NewTimer(0)
	<-eatBurstTimer.C
	pollTicker := time.NewTicker(time.Second * 10)
	defer pollTicker.Stop()

	for {
		select {
		case <-pollTicker.C:
			// Editors that replace the file can drop the watch without an
			// event.
			mt, err := w.ensureAddWatch(ctx)
			if err != nil {
				return err
			}
			if !mt.Equal(lastModified) {
				lastModified = mt
				w.requestRender()
			}
		case ev, ok := <-w.fw.Events:
			if !ok {
				return errors.New("fsnotify watcher closed")
			}
			w.ms.Log.Debug.Printf("received file system event %v", ev)
			mt, err := w.ensureAddWatch(ctx)
			if err != nil {
				return err
			}
			if ev.Op == fsnotify.Chmod {
				if mt.Equal(lastModified) {
					continue
				}
				lastModified = mt
			}
			// Wait for the burst of events from one save to settle.
			eatBurstTimer.Reset(time.Millisecond * 32)
		case <-eatBurstTimer.C:
			w.ms.Log.Info.Printf("detected change in %v: re-rendering...", w.ms.HumanPath(w.pj.inputPath))
			w.requestRender()
		case err, ok := <-w.fw.Errors:
			if !ok {
				return errors.New("fsnotify watcher closed")
			}
			w.ms.Log.Error.Printf("fsnotify error: %v", err)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (w *watcher) requestRender() {
	select {
	case w.renderCh <- struct{}{}:
	default:
	}
}

func (w *watcher) ensureAddWatch(ctx context.Context) (time.Time, error) {
	interval := time.Second
	tc := time.NewTimer(0)
	<-tc.C
	for {
		mt, err := w.addWatch()
		if err == nil {
			return mt, nil
		}
		w.ms.Log.Error.Printf("failed to watch %q: %v (retrying in %v)", w.pj.inputPath, err, interval)

		tc.Reset(interval)
		select {
		case <-tc.C:
			if interval < time.Second*16 {
				interval *= 2
			}
		case <-ctx.Done():
			return time.Time{}, ctx.Err()
		}
	}
}

func (w *watcher) addWatch() (time.Time, error) {
	err := w.fw.Add(w.pj.inputPath)
	if err != nil {
		return time.Time{}, err
	}
	d, err := os.Stat(w.pj.inputPath)
	if err != nil {
		return time.Time{}, err
	}
	return d.ModTime(), nil
}

// renderLoop starts an asynchronous render per request. A request that
// arrives mid-render supersedes it.
func (w *watcher) renderLoop(ctx context.Context) error {
	for {
		select {
		case <-w.renderCh:
		case <-ctx.Done():
			return ctx.Err()
		}

		texPath, err := w.pj.prepare()
		if err != nil {
			w.ms.Log.Error.Printf("%v", err)
			continue
		}
		w.pj.r.RenderAsync(ctx, texPath, w.pj.lowDPI, w.pj.highDPI, func(p *tikzpreview.Preview) {
			if p == nil {
				if ctx.Err() == nil {
					w.ms.Log.Error.Printf("failed to render %v", w.ms.HumanPath(w.pj.inputPath))
				}
				return
			}
			if err := w.pj.write(p); err != nil {
				w.ms.Log.Error.Printf("%v", err)
			}
		})
	}
}
