package config

// 布局配置常量
// 本文件定义了部署界面的布局参数，包括棋盘网格、区域面板位置等

// Board Configuration (部署棋盘配置)
// 所有坐标使用屏幕坐标系（相对于窗口左上角）
const (
	// BoardOriginX 是部署棋盘左上角的X坐标
	BoardOriginX = 40.0

	// BoardOriginY 是部署棋盘左上角的Y坐标
	BoardOriginY = 60.0

	// BoardColumns 是棋盘的列数（横向格子数），与 roster.BoardWidth 一致
	BoardColumns = 9

	// BoardRows 是棋盘的行数（纵向格子数），与 roster.BoardHeight 一致
	BoardRows = 4

	// CellWidth 是每个格子的宽度（像素）
	CellWidth = 80.0

	// CellHeight 是每个格子的高度（像素）
	CellHeight = 100.0

	// BoardEndX 是棋盘右边界X坐标
	// 计算方式：起始X + 列数 * 格子宽度 = 40 + 9*80 = 760
	BoardEndX = BoardOriginX + float64(BoardColumns)*CellWidth
)

// Zone Panel Configuration (区域面板配置)
// 四个区域面板在棋盘右侧纵向排列，每个面板按行排布单位槽位
const (
	// PanelOriginX 是第一个区域面板左上角的X坐标
	PanelOriginX = BoardEndX + 40.0 // 800

	// PanelOriginY 是第一个区域面板左上角的Y坐标
	PanelOriginY = 20.0

	// PanelTitleHeight 是面板标题栏高度
	PanelTitleHeight = 20.0

	// PanelSlotSize 是面板中单位槽位的边长（正方形）
	PanelSlotSize = 36.0

	// PanelColumns 是面板每行的槽位数
	// 12 列 × 4 行 = 48，恰好容纳名册全部单位
	PanelColumns = 12

	// PanelSpacing 是相邻面板之间的垂直间距
	PanelSpacing = 10.0

	// PanelHeight 是一个面板的总高度（标题 + 4 行槽位）
	PanelHeight = PanelTitleHeight + 4*PanelSlotSize // 164
)

// Window Configuration (窗口配置)
const (
	// WindowWidth 是窗口逻辑宽度
	WindowWidth = 1280

	// WindowHeight 是窗口逻辑高度
	WindowHeight = 720
)

// GetBoardBounds 返回部署棋盘的屏幕坐标边界
// 返回值：startX, startY, endX, endY
func GetBoardBounds() (float64, float64, float64, float64) {
	startX := BoardOriginX
	startY := BoardOriginY
	endX := BoardOriginX + float64(BoardColumns)*CellWidth
	endY := BoardOriginY + float64(BoardRows)*CellHeight
	return startX, startY, endX, endY
}

// CalculatePanelOrigin 计算第 zoneIndex 个区域面板的槽位区域左上角
//
// 参数：
//   - zoneIndex: 区域序号（0-based，按 Staging/Deployed/Overflow/Shop 顺序）
//
// 返回：
//   - x, y: 面板第一个槽位的左上角坐标（已跳过标题栏）
func CalculatePanelOrigin(zoneIndex int) (x, y float64) {
	x = PanelOriginX
	y = PanelOriginY + float64(zoneIndex)*(PanelHeight+PanelSpacing) + PanelTitleHeight
	return x, y
}
