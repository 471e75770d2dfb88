package progress

import "fmt"

const streamNewline = "\r\n"

type rawProgressFormatter struct{}

func (sf *rawProgressFormatter) formatStatus(id, format string, a ...interface{}) []byte {
	return []byte(fmt.Sprintf(format, a...) + streamNewline)
}

func (sf *rawProgressFormatter) formatProgress(id, action string, current, total int64, units string) []byte {
	counts := ""
	switch {
	case total > 0:
		counts = fmt.Sprintf("%d/%d", current, total)
	case current > 0:
		counts = fmt.Sprintf("%d", current)
	}
	if counts != "" && units != "" {
		counts += " " + units
	}
	endl := "\r"
	if counts == "" {
		endl += "\n"
	}
	return []byte(action + " " + counts + endl)
}
