package config

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// tunablesDebounce 文件最后一次变化后等待多久再重载
const tunablesDebounce = 100 * time.Millisecond

// TunablesWatcher 监听战斗参数文件，修改后重新加载
//
// 监听文件所在目录（编辑器常用 重命名+创建 的方式保存），
// 只处理目标文件的事件。解析失败的版本通过 Errors 报告，不会发送到 Configs。
type TunablesWatcher struct {
	path    string
	watcher *fsnotify.Watcher

	// Configs 每次成功重新加载后发送新配置
	Configs chan *CombatConfig
	// Errors 报告读取/解析/监听错误
	Errors chan error

	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewTunablesWatcher 创建参数文件监听器
//
// 参数:
//
//	path - 要监听的 YAML 文件路径
//
// 返回:
//
//	*TunablesWatcher - 监听器，使用完毕后必须调用 Close
//	error - 创建 fsnotify 监听失败时返回错误
func NewTunablesWatcher(path string) (*TunablesWatcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tunables path %s: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create tunables watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(absPath)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(absPath), err)
	}

	tw := &TunablesWatcher{
		path:    absPath,
		watcher: w,
		Configs: make(chan *CombatConfig, 4),
		Errors:  make(chan error, 4),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go tw.run()

	log.Printf("[TunablesWatcher] Watching %s", absPath)
	return tw, nil
}

// Close 停止监听并关闭输出通道
// 可重复调用
func (tw *TunablesWatcher) Close() error {
	var err error
	tw.once.Do(func() {
		close(tw.closeCh)
		err = tw.watcher.Close()
		<-tw.done
	})
	return err
}

func (tw *TunablesWatcher) run() {
	defer func() {
		close(tw.Configs)
		close(tw.Errors)
		close(tw.done)
	}()

	// 每次变化都重新计时，静默 tunablesDebounce 后读取最终内容
	debounce := time.NewTimer(tunablesDebounce)
	debounce.Stop()
	defer debounce.Stop()

	for {
		select {
		case event, ok := <-tw.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != tw.path {
				continue
			}
			debounce.Reset(tunablesDebounce)
		case <-debounce.C:
			tw.reload()
		case err, ok := <-tw.watcher.Errors:
			if !ok {
				return
			}
			tw.sendError(err)
		case <-tw.closeCh:
			return
		}
	}
}

// reload 重新读取文件，成功则发送新配置
func (tw *TunablesWatcher) reload() {
	cfg, err := LoadCombatConfig(tw.path)
	if err != nil {
		log.Printf("[TunablesWatcher] Reload rejected: %v", err)
		tw.sendError(err)
		return
	}

	log.Printf("[TunablesWatcher] Reloaded %s", tw.path)
	select {
	case tw.Configs <- cfg:
	case <-tw.closeCh:
	}
}

func (tw *TunablesWatcher) sendError(err error) {
	select {
	case tw.Errors <- err:
	case <-tw.closeCh:
	default:
		// 没人读取错误时丢弃，避免阻塞监听循环
	}
}
