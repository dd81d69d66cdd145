package color

import (
	"github.com/fatih/color"
)

var (
	promptColor  = color.New(color.FgCyan, color.Bold)
	infoColor    = color.New(color.FgGreen)
	warningColor = color.New(color.FgYellow, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	answerColor  = color.New(color.FgHiYellow, color.Bold)
	sourceColor  = color.New(color.FgBlue)
	stepColor    = color.New(color.FgMagenta)
)

func ColorPrompt(s string) string {
	return promptColor.Sprint(s)
}

func ColorInfo(s string) string {
	return infoColor.Sprint(s)
}

func ColorWarning(s string) string {
	return warningColor.Sprint(s)
}

func ColorError(s string) string {
	return errorColor.Sprint(s)
}

func ColorAnswer(s string) string {
	return answerColor.Sprint(s)
}

func ColorSource(s string) string {
	return sourceColor.Sprint(s)
}

func ColorStep(s string) string {
	return stepColor.Sprint(s)
}

// Disable turns colors off, e.g. when stdout is not a terminal.
func Disable() {
	color.NoColor = true
}
