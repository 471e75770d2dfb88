package progress

import (
	"io"

	"github.com/pcj/mobyprogress"
)

// NewProgressOutput returns an Output that writes plain-text progress lines
// to out.
func NewProgressOutput(out io.Writer) mobyprogress.Output {
	return &progressOutput{sf: &rawProgressFormatter{}, out: out, newLines: true}
}

type progressOutput struct {
	sf       *rawProgressFormatter
	out      io.Writer
	newLines bool
}

// WriteProgress implements mobyprogress.Output.
func (out *progressOutput) WriteProgress(prog mobyprogress.Progress) error {
	var formatted []byte
	if prog.Message != "" {
		formatted = out.sf.formatStatus(prog.ID, prog.Message)
	} else {
		formatted = out.sf.formatProgress(prog.ID, prog.Action, prog.Current, prog.Total, prog.Units)
	}
	_, err := out.out.Write(formatted)
	if err != nil {
		return err
	}

	if out.newLines && prog.LastUpdate {
		_, err = out.out.Write(out.sf.formatStatus("", ""))
		return err
	}

	return nil
}
