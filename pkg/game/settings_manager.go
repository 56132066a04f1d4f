package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// GameSettings 玩家偏好设置
type GameSettings struct {
	Coop         bool    `yaml:"coop"`         // 默认以双人模式开局
	SoundVolume  float64 `yaml:"soundVolume"`  // 0.0 ~ 1.0
	Fullscreen   bool    `yaml:"fullscreen"`   // 启动时是否全屏
	ShowHitboxes bool    `yaml:"showHitboxes"` // 绘制碰撞区域（调试）
	AutoSave     bool    `yaml:"autoSave"`     // 关卡结束时自动保存到快速存档槽
}

// DefaultSettings 返回默认设置
func DefaultSettings() *GameSettings {
	return &GameSettings{
		SoundVolume: 0.8,
		AutoSave:    true,
	}
}

// SettingsManager 设置管理器
// gdataManager 为 nil 时只保留内存中的设置
type SettingsManager struct {
	gdataManager *gdata.Manager
	settings     *GameSettings
}

const (
	settingsObject   = "settings"
	settingsProperty = "global"
)

// NewSettingsManager 创建设置管理器并尝试加载已保存的设置
// 加载失败只记录日志，使用默认设置
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}
	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}
	return sm
}

// Load 从 gdata 加载设置
func (sm *SettingsManager) Load() error {
	sm.settings = DefaultSettings()
	if sm.gdataManager == nil || !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	loaded.SoundVolume = clampVolume(loaded.SoundVolume)
	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata；降级模式下直接返回 nil
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}
	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// Settings 当前设置
func (sm *SettingsManager) Settings() *GameSettings {
	return sm.settings
}

// SetSoundVolume 设置音效音量，限制在 0.0 ~ 1.0
// 仅修改内存中的设置，需调用 Save 持久化
func (sm *SettingsManager) SetSoundVolume(volume float64) {
	sm.settings.SoundVolume = clampVolume(volume)
}

// ToggleHitboxes 切换碰撞区域显示
func (sm *SettingsManager) ToggleHitboxes() bool {
	sm.settings.ShowHitboxes = !sm.settings.ShowHitboxes
	return sm.settings.ShowHitboxes
}

func clampVolume(volume float64) float64 {
	return min(max(volume, 0), 1)
}
