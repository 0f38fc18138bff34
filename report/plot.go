// plot.go
//
// Gnuplot heatmap script emission. The script embeds the text table as
// inline heredoc data, so `icl -p | gnuplot -p` needs no temporary files.
// Palette and terminal settings are fixed; they are part of the output
// contract, not tunables.

package report

import (
	"fmt"
	"strings"

	"github.com/wangrongwei/core-scalability/handshake"
	"github.com/wangrongwei/core-scalability/matrix"
)

// palette is a 26-stop cyan-to-yellow gradient tuned so neighbouring latency
// bands stay distinguishable on the heatmap.
const palette = "set palette defined (0 '#80e0e0', 1 '#54e0eb', " +
	"2 '#34d4f3', 3 '#26baf9', 4 '#40a0ff', 5 '#5888e7', " +
	"6 '#6e72d1', 7 '#845cbb', 8 '#9848a7', 9 '#ac3493', " +
	"10 '#c0207f', 11 '#d20e6d', 12 '#e60059', 13 '#f80047', " +
	"14 '#ff0035', 15 '#ff0625', 16 '#ff2113', 17 '#ff3903', " +
	"18 '#ff5400', 19 '#ff6c00', 20 '#ff8400', 21 '#ff9c00', " +
	"22 '#ffb400', 23 '#ffcc00', 24 '#ffe400', 25 '#fffc00')\n"

// Plot wraps the rendered table in a complete gnuplot script producing
// heatmap.png. name, when non-empty, prefixes the title; mode picks the
// "write" vs "data" wording.
func Plot(m *matrix.Matrix, order []int, name string, mode handshake.Mode) string {
	var b strings.Builder

	kind := "data"
	if mode == handshake.ModeWrite {
		kind = "write"
	}
	title := ""
	if name != "" {
		title = name + " : "
	}

	b.WriteString("set terminal pngcairo size 800,600 enhanced font \"Verdana,10\"\n")
	fmt.Fprintf(&b, "set title \"%sInter-core one-way %s latency between CPU cores\"\n", title, kind)
	b.WriteString("set xlabel \"CPU\"\n")
	b.WriteString("set ylabel \"CPU\"\n")
	b.WriteString("set cblabel \"Latency (ns)\"\n")
	b.WriteString("set output 'heatmap.png'\n")
	b.WriteString("$data << EOD\n")
	b.WriteString(Table(m, order))
	b.WriteString("EOD\n")
	b.WriteString(palette)
	b.WriteString("#set tics font \",7\"\n")
	b.WriteString("plot '$data' matrix rowheaders columnheaders using 2:1:3 " +
		"notitle with image, " +
		"'$data' matrix rowheaders columnheaders using " +
		"2:1:(sprintf(\"%g\",$3)) notitle with labels #font \",5\"\n")
	return b.String()
}
