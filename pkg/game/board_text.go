package game

import (
	"fmt"
	"strings"

	"github.com/decker502/roster/pkg/config"
	"github.com/decker502/roster/pkg/roster"
)

// boardCellWidth 文本棋盘中每个格子的字符宽度
const boardCellWidth = 10

// BoardText 将名册渲染为纯文本：各区域的显示顺序 + 9×4 部署棋盘
//
// 格子中显示单位ID与模板名称（截断到格子宽度），空格子显示 "."。
// catalog 可为 nil，此时只显示模板ID。
func BoardText(s *roster.Store, catalog *config.UnitCatalog) string {
	var b strings.Builder

	fmt.Fprintf(&b, "roster: %d/%d units, %d placed\n", s.Count(), roster.Capacity, s.PlacedCount())
	for _, zone := range roster.Zones() {
		fmt.Fprintf(&b, "%-9s(%2d):", zone, s.CountInZone(zone))
		for id := range s.UnitsInZone(zone) {
			typeID, _, _ := s.Lookup(id)
			fmt.Fprintf(&b, " %d:%s", id, catalog.Name(typeID))
		}
		b.WriteByte('\n')
	}

	border := "+" + strings.Repeat(strings.Repeat("-", boardCellWidth)+"+", roster.BoardWidth) + "\n"
	b.WriteString(border)
	for y := 0; y < roster.BoardHeight; y++ {
		b.WriteByte('|')
		for x := 0; x < roster.BoardWidth; x++ {
			label := "."
			if id, ok := s.UnitAt(x, y); ok {
				typeID, _, _ := s.Lookup(id)
				label = fmt.Sprintf("%d %s", id, catalog.Name(typeID))
			}
			fmt.Fprintf(&b, "%-*s|", boardCellWidth, truncate(label, boardCellWidth))
		}
		b.WriteByte('\n')
		b.WriteString(border)
	}
	return b.String()
}

// truncate 按字符截断，保证不切断多字节字符
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
