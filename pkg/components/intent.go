package components

// PlayerIntent 一帧内已解析的玩家操作
// 输入设备与按键映射不属于战斗核心，调用方负责转换
type PlayerIntent struct {
	PlayerID int
	MoveX    float64 // -1 向左 ... 1 向右，超出范围会被截断
	Shoot    bool
}
