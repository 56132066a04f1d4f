// Package embedded 提供嵌入资源的统一访问接口
//
// 由于 Go embed 指令只能嵌入当前包目录及其子目录的文件，
// embed.FS 变量必须声明在项目根目录（embed.go）。
// 本包保存该文件系统，让 config 等包按 "data/..." 路径读取内置参数。
//
// 使用前必须调用 Init() 初始化。
package embedded

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
)

var (
	mu          sync.RWMutex
	dataFS      fs.FS
	initialized bool
)

// Init 设置数据文件系统
// 必须在 main() 开始时、任何资源加载之前调用
// 测试中可以传入 fstest.MapFS
func Init(data fs.FS) {
	mu.Lock()
	defer mu.Unlock()
	dataFS = data
	initialized = data != nil
}

// Reset 清除初始化状态（仅测试使用）
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	dataFS = nil
	initialized = false
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	mu.RLock()
	defer mu.RUnlock()
	return initialized
}

// normalize 标准化路径并检查前缀
func normalize(path string) (string, error) {
	// embed.FS 使用正斜杠
	path = filepath.ToSlash(path)
	path = strings.TrimPrefix(path, "./")

	if !strings.HasPrefix(path, "data/") {
		return "", fmt.Errorf("unknown resource path prefix: %s (must start with 'data/')", path)
	}
	return path, nil
}

// current 返回已初始化的文件系统
func current() (fs.FS, error) {
	mu.RLock()
	defer mu.RUnlock()
	if !initialized {
		return nil, fmt.Errorf("embedded package not initialized, call Init() first")
	}
	return dataFS, nil
}

// ReadFile 读取内置数据文件
// 路径必须以 "data/" 开头
func ReadFile(path string) ([]byte, error) {
	fsys, err := current()
	if err != nil {
		return nil, err
	}
	path, err = normalize(path)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(fsys, path)
}

// Exists 检查文件是否存在
func Exists(path string) bool {
	fsys, err := current()
	if err != nil {
		return false
	}
	path, err = normalize(path)
	if err != nil {
		return false
	}
	_, err = fs.Stat(fsys, path)
	return err == nil
}

// Glob 匹配内置数据文件
// 路径模式必须以 "data/" 开头
func Glob(pattern string) ([]string, error) {
	fsys, err := current()
	if err != nil {
		return nil, err
	}
	pattern, err = normalize(pattern)
	if err != nil {
		return nil, err
	}
	return fs.Glob(fsys, pattern)
}
