package main

import (
	"fmt"
)

const (
	colorGreen  = "\033[0;32m"
	colorRed    = "\033[0;31m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
	colorReset  = "\033[0m"
)

func printColored(color, prefix, format string, a ...interface{}) {
	fmt.Printf(color+prefix+format+colorReset+"\n", a...)
}

func PrintInfo(format string, a ...interface{}) {
	printColored(colorBlue, "ℹ ", format, a...)
}

func PrintSuccess(format string, a ...interface{}) {
	printColored(colorGreen, "✓ ", format, a...)
}

func PrintWarning(format string, a ...interface{}) {
	printColored(colorYellow, "⚠ ", format, a...)
}

func PrintError(format string, a ...interface{}) {
	printColored(colorRed, "✗ ", format, a...)
}

func PrintHeader(title string) {
	printColored(colorYellow, "\n=== ", "%s ===", title)
}
