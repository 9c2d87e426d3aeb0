package app

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/atomicstack/swipekbd/internal/format/table"
	"github.com/atomicstack/swipekbd/internal/layout"
	"github.com/atomicstack/swipekbd/internal/vkbd"
)

// ListLayouts writes the built-in layouts and known keymaps as a table.
func ListLayouts(w io.Writer) error {
	reg, err := layout.NewRegistry(layout.Builtin())
	if err != nil {
		return fmt.Errorf("build layouts: %w", err)
	}
	rows := [][]string{{"LAYOUT", "KEYMAP", "ABC", "ROWS", "KEYS"}}
	for id := 0; id < reg.Len(); id++ {
		l := reg.Layout(layout.ID(id))
		abc := ""
		if l.Abc {
			abc = "yes"
		}
		rows = append(rows, []string{l.Name, l.Keymap, abc, strconv.Itoa(l.Rows()), strconv.Itoa(countKeys(l))})
	}
	lines := table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignLeft, table.AlignLeft, table.AlignRight, table.AlignRight})
	lines = append(lines, "", "keymaps: "+strings.Join(vkbd.Names(), ", "))
	_, err = io.WriteString(w, strings.Join(lines, "\n")+"\n")
	return err
}

func countKeys(l *layout.Layout) int {
	n := 0
	for i := range l.Keys {
		if l.Keys[i].Pressable() {
			n++
		}
	}
	return n
}
